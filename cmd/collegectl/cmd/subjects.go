package cmd

import (
	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects (all subjects for faculty, enrolled subjects for students)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := restoreSession(cmd); err != nil {
			return err
		}
		data, err := app.Controller.Subjects(cmd.Context())
		if err != nil {
			return err
		}
		return newTerminalRenderer(cmd.OutOrStdout()).subjects(data.Subjects)
	},
}
