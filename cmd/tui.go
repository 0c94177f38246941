package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cold-cofffeee/focustube/internal/player"
	"github.com/cold-cofffeee/focustube/internal/session"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for course playback.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/focustube-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	controller := session.NewController(session.Opts{
		Store:        r.store,
		Courses:      r.courses,
		Logger:       fileLogger,
		TickInterval: secondsToDuration(r.config.Playback.SaveIntervalSeconds),
		AdvanceDelay: secondsToDuration(r.config.Playback.AdvanceDelaySeconds),
	})
	defer controller.Close()

	engine := player.NewHeadless(player.Opts{})
	engine.SetStateChangeFunc(controller.HandleStateChange)

	model := ui.NewModel(ctx, r.courses, controller, engine)

	if err := controller.HandleEngineReady(engine); err != nil {
		return err
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
