package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cold-cofffeee/focustube/internal/courses"
	"github.com/cold-cofffeee/focustube/internal/services"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/store"
	"github.com/cold-cofffeee/focustube/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	store    *store.Store
	courses  *courses.Service
	expander services.Expander
	builder  *tasks.Builder
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Store    *store.Store
	Courses  *courses.Service
	Expander services.Expander
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Courses == nil && opts.Store != nil {
		opts.Courses = courses.NewService(opts.Store, opts.Logger)
	}

	builder := tasks.NewBuilder(tasks.BuilderOpts{
		Courses:  opts.Courses,
		Expander: opts.Expander,
		Store:    opts.Store,
		Logger:   opts.Logger,
	})

	return &Runner{
		config:   opts.Config,
		store:    opts.Store,
		courses:  opts.Courses,
		expander: opts.Expander,
		builder:  builder,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the terminal is owned by the TUI.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, courseCommand, lessonCommand, noteCommand, playCommand, settingsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
