package main

import (
	"context"
	"errors"
	"os"

	"github.com/cold-cofffeee/focustube/internal/services"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/store"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	st := store.New(db)
	if err := st.EnsureDefaults(config.YouTube.APIKey); err != nil {
		logger.Fatalf("failed to seed defaults: %v", err)
	}

	expander := services.NewYouTubeService(services.YouTubeOpts{
		BaseURL:    config.YouTube.BaseURL,
		MaxResults: config.YouTube.MaxResults,
		RateLimit:  config.YouTube.RateLimit,
	})

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Store:    st,
		Expander: expander,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "focustube",
		Usage:    "Track YouTube courses without the distractions",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
