package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the views available to the signed-in role",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := restoreSession(cmd)
		if err != nil {
			return err
		}

		table := pterm.TableData{{"VIEW", "LABEL"}}
		for _, item := range app.Controller.Menu() {
			table = append(table, []string{item.View.String(), item.Label})
		}
		pterm.DefaultSection.Printfln("Menu for %s", session.Role)
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}
