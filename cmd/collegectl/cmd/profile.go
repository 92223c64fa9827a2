package cmd

import (
	"github.com/jrsteele09/college-portal/portal"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var profileUpdate portal.ProfileForm

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in student's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := restoreSession(cmd); err != nil {
			return err
		}
		student, err := app.Controller.Profile(cmd.Context())
		if err != nil {
			return err
		}
		return newTerminalRenderer(cmd.OutOrStdout()).student(student)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the signed-in student's profile; unset flags keep their value",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := restoreSession(cmd); err != nil {
			return err
		}
		current, err := app.Controller.Profile(cmd.Context())
		if err != nil {
			return err
		}

		form := portal.ProfileFormFrom(*current)
		flags := cmd.Flags()
		overrides := map[string]*string{
			"username":    &form.Username,
			"email":       &form.Email,
			"first-name":  &form.FirstName,
			"last-name":   &form.LastName,
			"contact":     &form.ContactNumber,
			"dob":         &form.DateOfBirth,
			"gender":      &form.Gender,
			"blood-group": &form.BloodGroup,
			"address":     &form.Address,
		}
		for name, field := range overrides {
			if flags.Changed(name) {
				*field, _ = flags.GetString(name)
			}
		}

		updated, err := app.Controller.UpdateProfile(cmd.Context(), form)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Profile of %s updated successfully", updated.User.Username)
		return nil
	},
}

func init() {
	f := profileUpdateCmd.Flags()
	f.StringVar(&profileUpdate.Username, "username", "", "New username")
	f.StringVar(&profileUpdate.Email, "email", "", "Email address")
	f.StringVar(&profileUpdate.FirstName, "first-name", "", "First name")
	f.StringVar(&profileUpdate.LastName, "last-name", "", "Last name")
	f.StringVar(&profileUpdate.ContactNumber, "contact", "", "Contact number")
	f.StringVar(&profileUpdate.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
	f.StringVar(&profileUpdate.Gender, "gender", "", "Gender (M, F or O)")
	f.StringVar(&profileUpdate.BloodGroup, "blood-group", "", "Blood group")
	f.StringVar(&profileUpdate.Address, "address", "", "Address")

	profileCmd.AddCommand(profileUpdateCmd)
}
