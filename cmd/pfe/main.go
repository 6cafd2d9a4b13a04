package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Hadil1-h/pfe/internal/cli"
	"github.com/Hadil1-h/pfe/internal/config"
	"github.com/Hadil1-h/pfe/internal/db"
	"github.com/Hadil1-h/pfe/internal/llm"
	"github.com/Hadil1-h/pfe/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	workspace := os.Getenv("PFE_WORKSPACE")
	cfg, err := config.Load(workspace)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.Database.Path
	if v := os.Getenv("PFE_DB"); v != "" {
		dbPath = v
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	repo := repository.NewSQLiteDatasetRepo(database)

	genCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if genCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewHTTPClient(genCfg, observer)

	app := &cli.App{
		Repo:      repo,
		Config:    cfg,
		Generator: client,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
