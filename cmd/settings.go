package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/urfave/cli/v3"
)

// SettingsSetKey stores the YouTube Data API key.
func (r *Runner) SettingsSetKey(ctx context.Context, cmd *cli.Command) error {
	key := strings.TrimSpace(cmd.StringArg("key"))
	if key == "" {
		return fmt.Errorf("%w: API key", shared.ErrMissingArgument)
	}

	if err := r.store.SetAPIKey(key); err != nil {
		return err
	}

	r.writePlain("✓ API key saved\n")
	return nil
}

// SettingsShow prints current settings with the API key masked.
func (r *Runner) SettingsShow(ctx context.Context, cmd *cli.Command) error {
	apiKey, err := r.store.APIKey()
	if err != nil {
		return err
	}

	r.writePlainHeader("Settings")
	r.writePlain("Database: %s\n", r.config.Database.Path)
	r.writePlain("API key: %s\n", maskKey(apiKey))
	r.writePlain("Save interval: %.0fs\n", r.config.Playback.SaveIntervalSeconds)
	r.writePlain("Advance delay: %.0fs\n", r.config.Playback.AdvanceDelaySeconds)
	return nil
}

// maskKey hides all but the last four characters.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
