package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionOperatorCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var user, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a participant session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username":     user,
				"display_name": name,
			}
			var result AuthResult

			if err := client.Post("/api/v1/session", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newSessionOperatorCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Log in as a game operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username":   user,
				"passphrase": pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/session/operator", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Operator username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Operator passphrase (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}
