package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive question shell",
		Long:  "Starts a REPL that answers questions against the stored dataset.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := tea.NewProgram(newShellModel(app)).Run()
			return err
		},
	}
}
