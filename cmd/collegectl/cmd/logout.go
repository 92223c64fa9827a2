package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Controller.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear stored session: %w", err)
		}
		pterm.Success.Println("Logged out successfully")
		return nil
	},
}
