package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrsteele09/college-portal/portal"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	studentForm    portal.StudentForm
	profilePicPath string
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage students (faculty only)",
}

var createStudentCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a student account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := restoreSession(cmd); err != nil {
			return err
		}

		form := studentForm
		if profilePicPath != "" {
			file, err := os.Open(profilePicPath)
			if err != nil {
				return fmt.Errorf("failed to open profile picture: %w", err)
			}
			defer file.Close()
			form.ProfilePic = file
			form.ProfilePicName = filepath.Base(profilePicPath)
		}

		student, err := app.Controller.CreateStudent(cmd.Context(), form)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Student %s created with id %d", student.User.Username, student.ID)
		return nil
	},
}

func init() {
	f := createStudentCmd.Flags()
	f.StringVar(&studentForm.Username, "username", "", "Username")
	f.StringVar(&studentForm.Email, "email", "", "Email address")
	f.StringVar(&studentForm.Password, "password", "", "Initial password")
	f.StringVar(&studentForm.FirstName, "first-name", "", "First name")
	f.StringVar(&studentForm.LastName, "last-name", "", "Last name")
	f.StringVar(&studentForm.ContactNumber, "contact", "", "Contact number")
	f.StringVar(&studentForm.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
	f.StringVar(&studentForm.Gender, "gender", "", "Gender (M, F or O)")
	f.StringVar(&studentForm.BloodGroup, "blood-group", "", "Blood group")
	f.StringVar(&studentForm.Address, "address", "", "Address")
	f.StringVar(&profilePicPath, "profile-pic", "", "Path to a profile picture")

	studentsCmd.AddCommand(createStudentCmd)
}
