package cli

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func newQuizCmds() []*cobra.Command {
	return []*cobra.Command{
		newJoinCmd(),
		newRulesCmd(),
		newScoresCmd(),
		newMeCmd(),
		newHintCmd(),
		newAnswerCmd(),
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the quiz roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinResult

			if err := client.Post("/api/v1/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the game rules and current state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Rules

			if err := client.Get("/api/v1/rules", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Scores

			if err := client.Get("/api/v1/scores", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your roster record",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Participant

			if err := client.Get("/api/v1/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint",
		Short: "Request a hint for the current puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Hint

			if err := client.Post("/api/v1/hint", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <text>",
		Short: "Submit an answer for the current puzzle",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"text": strings.Join(args, " ")}
			var result RoundResult

			status, err := client.Do(http.MethodPost, "/api/v1/answer", req, &result)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if status == http.StatusNoContent {
				out.PrintMessage("Not quite, keep guessing!")
				return nil
			}

			out.Print(result)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
