package cmd

import (
	"fmt"

	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/sessions"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	username         string
	password         string
	refreshToken     string
	showRefreshToken bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the college portal",
	Long: `Signs in with a username and password, or exchanges a refresh token for a
new access token with --refresh-token. Missing credentials are prompted for.
The role (faculty or student) is worked out from the profiles the account owns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			session sessions.Session
			err     error
		)

		if refreshToken != "" {
			session, err = app.Controller.Renew(cmd.Context(), refreshToken)
		} else {
			creds, promptErr := promptCredentials()
			if promptErr != nil {
				return promptErr
			}
			session, err = app.Controller.Login(cmd.Context(), creds)
		}
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		pterm.Success.Printfln("Logged in as %s (id %d)", session.Role, session.Principal())
		if showRefreshToken {
			pterm.Info.Printfln("Refresh token: %s", app.Controller.RefreshToken())
		}
		return nil
	},
}

func promptCredentials() (college.Credentials, error) {
	creds := college.Credentials{Username: username, Password: password}
	var err error
	if creds.Username == "" {
		if creds.Username, err = pterm.DefaultInteractiveTextInput.Show("Username"); err != nil {
			return creds, err
		}
	}
	if creds.Password == "" {
		if creds.Password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password"); err != nil {
			return creds, err
		}
	}
	return creds, nil
}

func init() {
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	loginCmd.Flags().StringVar(&refreshToken, "refresh-token", "", "Renew the session with a refresh token instead of credentials")
	loginCmd.Flags().BoolVar(&showRefreshToken, "show-refresh-token", false, "Print the refresh token after signing in")
}
