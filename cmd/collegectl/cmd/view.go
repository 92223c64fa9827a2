package cmd

import (
	"github.com/jrsteele09/college-portal/views"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [name]",
	Short: "Show a view (home, create-student, add-student-subject, subjects, edit-profile)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := restoreSession(cmd); err != nil {
			return err
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		requested, err := views.ParseView(name)
		if err != nil {
			return err
		}
		if _, err := app.Controller.Navigate(requested); err != nil {
			return err
		}
		return app.Controller.Render(cmd.Context(), newTerminalRenderer(cmd.OutOrStdout()))
	},
}
