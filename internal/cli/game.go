package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Operator game controls",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameNextCmd())
	cmd.AddCommand(newGameEndCmd())
	cmd.AddCommand(newGameResetCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameStatus

			if err := client.Post("/api/v1/admin/game/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Skip to the next puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameStatus

			if err := client.Post("/api/v1/admin/game/next", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the game and show final standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Standings

			if err := client.Post("/api/v1/admin/game/end", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	var confirm, cancel string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all participants and scores (two-step)",
		Long: `Resetting wipes every participant and score, so it is a two-step
operation. Run without flags to request a confirmation token, then
run again with --confirm <token> to execute or --cancel <token> to
abort.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if confirm != "" && cancel != "" {
				return fmt.Errorf("--confirm and --cancel are mutually exclusive")
			}

			if confirm == "" && cancel == "" {
				var result ResetChallenge
				if err := client.Post("/api/v1/admin/reset", nil, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			req := map[string]string{"confirm_token": confirm, "action": "confirm"}
			if cancel != "" {
				req = map[string]string{"confirm_token": cancel, "action": "cancel"}
			}
			if err := client.Post("/api/v1/admin/reset/confirm", req, nil); err != nil {
				return err
			}

			if cancel != "" {
				out.PrintMessage("Reset cancelled")
			} else {
				out.PrintMessage("All participants and scores wiped")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", "Confirmation token to execute the reset")
	cmd.Flags().StringVar(&cancel, "cancel", "", "Confirmation token to abort the reset")

	return cmd
}
