package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/internal/bootstrap"
	"github.com/jrsteele09/college-portal/internal/config"
	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/views"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	backendURL string
	envFile    string
	verbose    bool

	app *bootstrap.Portal
)

var errNotLoggedIn = errors.New("not logged in, run 'collegectl login' first")

var rootCmd = &cobra.Command{
	Use:   "collegectl",
	Short: "College portal CLI",
	Long: `collegectl is the terminal client of the college portal. It signs in against
the college backend, keeps the session in the same store as the portal server
and shows the views available to the signed-in faculty member or student.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var envFiles []string
		if envFile != "" {
			envFiles = append(envFiles, envFile)
		}
		c := config.New(envFiles...)

		bootstrap.SetupLogging(c, os.Stderr)
		if !verbose {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}

		portal, err := bootstrap.NewPortal(cmd.Context(), c, backendURL)
		if err != nil {
			return err
		}
		app = portal
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, views.ErrRejected) {
			pterm.Warning.Println(err)
		} else {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "College backend API root (default from BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load configuration from this .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured LOG_LEVEL instead of warnings only")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(profileCmd)
}

// restoreSession resolves the stored token; every command except login starts here
func restoreSession(cmd *cobra.Command) (sessions.Session, error) {
	session, err := app.Controller.Restore(cmd.Context())
	switch {
	case err == nil:
		return session, nil
	case errors.Is(err, auth.ErrNoStoredSession):
		return session, errNotLoggedIn
	case auth.IsTerminal(err):
		return session, fmt.Errorf("stored session is no longer valid, run 'collegectl login': %w", err)
	default:
		return session, err
	}
}
