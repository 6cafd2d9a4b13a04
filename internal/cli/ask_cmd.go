package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Hadil1-h/pfe/internal/cli/formatter"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask ["<question>"]`,
		Short: "Answer a question about the stored dataset",
		Long:  "Answers a free-text French question over the projects stored in the local database. Prompts for the question when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			} else {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("question is required when stdin is not a terminal")
				}
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Votre question").
							Placeholder("Quel est le budget total ?").
							Value(&query),
					),
				).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("question is required")
			}

			req, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return err
			}
			req.Query = query

			result, err := app.Analyze.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatAnswer(result))
			return nil
		},
	}
}
