package cli

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Hadil1-h/pfe/internal/analysis"
)

func newSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest questions to ask about the stored dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := loadDataset(cmd.Context(), app)
			if err != nil {
				return err
			}

			questions, err := app.Suggest.Suggest(cmd.Context(), analysis.SuggestRequest{
				Projects: dataset.Projects,
				Tasks:    dataset.Tasks,
				Agents:   dataset.Agents,
				Teams:    dataset.Teams,
				Language: dataset.Language,
			})
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"#", "Question"})
			for i, q := range questions {
				tw.AppendRow(table.Row{i + 1, q})
			}
			tw.Render()
			return nil
		},
	}
}
