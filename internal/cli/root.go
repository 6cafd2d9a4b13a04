package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Hadil1-h/pfe/internal/analysis"
	"github.com/Hadil1-h/pfe/internal/config"
	"github.com/Hadil1-h/pfe/internal/llm"
	"github.com/Hadil1-h/pfe/internal/repository"
)

// App holds the wired services and shared state the CLI commands use.
type App struct {
	Analyze analysis.AnalyzeService
	Suggest analysis.SuggestService
	Repo    repository.DatasetRepo
	Config  *config.Config
	Logger  *zap.Logger

	// Generator backs the analysis services. The services themselves are
	// built once the logger exists, unless the caller pre-wired them.
	Generator llm.GeneratorClient

	// IsInteractive reports whether stdin is a terminal. Commands that
	// would prompt fall back to an error when it returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "pfe" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pfe",
		Short: "Assistant de gestion de projets",
		Long: `Answers free-text French questions about projects, tasks, agents
and teams, through deterministic intent rules with a generative fallback.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			if viper.GetBool("verbose") {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app.Logger = logger
			if app.Analyze == nil {
				app.Analyze = analysis.NewAnalyzeService(app.Generator, logger)
			}
			if app.Suggest == nil {
				app.Suggest = analysis.NewSuggestService(app.Generator, logger)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	viper.SetEnvPrefix("PFE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	root.AddCommand(
		newServeCmd(app),
		newAskCmd(app),
		newSuggestCmd(app),
		newShellCmd(app),
	)

	return root
}

// loadDataset pulls the full dataset out of the repository for the
// offline commands.
func loadDataset(ctx context.Context, app *App) (analysis.Request, error) {
	var req analysis.Request

	projects, err := app.Repo.ListProjects(ctx, false)
	if err != nil {
		return req, fmt.Errorf("loading projects: %w", err)
	}
	tasks, err := app.Repo.ListTasks(ctx)
	if err != nil {
		return req, fmt.Errorf("loading tasks: %w", err)
	}
	agents, err := app.Repo.ListAgents(ctx)
	if err != nil {
		return req, fmt.Errorf("loading agents: %w", err)
	}
	teams, err := app.Repo.ListTeams(ctx)
	if err != nil {
		return req, fmt.Errorf("loading teams: %w", err)
	}

	req.Projects = projects
	req.Tasks = tasks
	req.Agents = agents
	req.Teams = teams
	req.Language = app.Config.Language
	return req, nil
}
