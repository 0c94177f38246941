// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles first-run initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config file, initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// courseCommand handles course operations
func courseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "course",
		Aliases: []string{"c"},
		Usage:   "Manage courses",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a course from video and playlist URLs",
				ArgsUsage: "[urls...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Course title (defaults to Course N)",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read URLs from a file, one per line",
					},
				},
				Action: r.CourseAdd,
			},
			{
				Name:  "list",
				Usage: "List courses with progress",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CourseList,
			},
			{
				Name:  "show",
				Usage: "Show a course's lessons and notes",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CourseShow,
			},
			{
				Name:  "delete",
				Usage: "Delete a course",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.CourseDelete,
			},
			{
				Name:      "export",
				Usage:     "Export courses to files (all courses when no ids given)",
				ArgsUsage: "[ids...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, markdown, txt",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
				},
				Action: r.CourseExport,
			},
		},
	}
}

// lessonCommand handles per-lesson operations
func lessonCommand(r *Runner) *cli.Command {
	lessonFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "course",
			Usage:    "Course ID",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "lesson",
			Usage:    "Lesson (video) ID",
			Required: true,
		},
	}

	return &cli.Command{
		Name:  "lesson",
		Usage: "Manage lessons",
		Commands: []*cli.Command{
			{
				Name:   "complete",
				Usage:  "Mark a lesson completed (keeps the resume position)",
				Flags:  lessonFlags,
				Action: r.LessonComplete,
			},
			{
				Name:   "skip",
				Usage:  "Mark a lesson skipped",
				Flags:  lessonFlags,
				Action: r.LessonSkip,
			},
			{
				Name:   "open",
				Usage:  "Open the lesson's watch page in a browser",
				Flags:  lessonFlags,
				Action: r.LessonOpen,
			},
		},
	}
}

// noteCommand handles timestamped note operations
func noteCommand(r *Runner) *cli.Command {
	lessonFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "course",
			Usage:    "Course ID",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "lesson",
			Usage:    "Lesson (video) ID",
			Required: true,
		},
	}

	return &cli.Command{
		Name:  "note",
		Usage: "Manage timestamped notes",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a note to a lesson",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "text"},
				},
				Flags: append([]cli.Flag{
					&cli.Float64Flag{
						Name:  "at",
						Usage: "Playback position in seconds",
					},
				}, lessonFlags...),
				Action: r.NoteAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a note by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  lessonFlags,
				Action: r.NoteRemove,
			},
			{
				Name:   "list",
				Usage:  "List a lesson's notes",
				Flags:  lessonFlags,
				Action: r.NoteList,
			},
		},
	}
}

// playCommand starts a headless playback session
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a course with the simulated engine (resumes the last session by default)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "course",
				Usage: "Course ID to play",
			},
			&cli.StringFlag{
				Name:  "lesson",
				Usage: "Lesson to start from (defaults to the first unfinished lesson)",
			},
			&cli.Float64Flag{
				Name:  "duration",
				Usage: "Simulated video duration in seconds",
				Value: 300,
			},
		},
		Action: r.Play,
	}
}

// settingsCommand handles stored settings
func settingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Manage stored settings",
		Commands: []*cli.Command{
			{
				Name:  "set-key",
				Usage: "Store the YouTube Data API key",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Action: r.SettingsSetKey,
			},
			{
				Name:   "show",
				Usage:  "Show current settings",
				Action: r.SettingsShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive course playback.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for course playback",
		Action:  r.TUI,
	}
}
