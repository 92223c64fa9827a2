package cmd

import (
	"time"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the signed-in role and token expiry",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := restoreSession(cmd)
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Session")
		pterm.Info.Printfln("Role: %s", session.Role)
		pterm.Info.Printfln("Principal ID: %d", session.Principal())

		info, err := auth.InspectToken(session.Token)
		if err != nil {
			pterm.Warning.Printfln("Token claims unavailable: %v", err)
			return nil
		}
		if info.UserID != "" {
			pterm.Info.Printfln("User ID: %s", info.UserID)
		}
		if !info.Expiry.IsZero() {
			pterm.Info.Printfln("Token expires: %s (in %s)", info.Expiry.Local().Format(time.RFC1123), time.Until(info.Expiry).Round(time.Second))
		}
		return nil
	},
}
