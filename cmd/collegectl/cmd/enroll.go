package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	enrollSubjectID int64
	enrollStudentID int64
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Add a student to a subject (faculty only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := restoreSession(cmd); err != nil {
			return err
		}
		if err := app.Controller.AddStudentToSubject(cmd.Context(), enrollSubjectID, enrollStudentID); err != nil {
			return err
		}
		pterm.Success.Println("Student added to subject successfully")
		return nil
	},
}

func init() {
	enrollCmd.Flags().Int64Var(&enrollSubjectID, "subject", 0, "Subject id")
	enrollCmd.Flags().Int64Var(&enrollStudentID, "student", 0, "Student id")
}
