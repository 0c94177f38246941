package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cold-cofffeee/focustube/internal/formatter"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CourseAdd creates a course from mixed video and playlist URLs.
func (r *Runner) CourseAdd(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	file := cmd.String("file")

	lines := cmd.Args().Slice()
	if file != "" {
		fileLines, err := readLines(file)
		if err != nil {
			return err
		}
		lines = append(lines, fileLines...)
	}

	if len(lines) == 0 {
		return fmt.Errorf("%w: provide URLs as arguments or via --file", shared.ErrMissingArgument)
	}

	r.logger.Info("building course", "lines", len(lines))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.Expand:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.Create:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.builder.BuildCourse(ctx, progressCh, title, lines)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlainHeader("Course Created")
	r.writePlain("Title: %s\n", result.Course.Title)
	r.writePlain("ID: %s\n", result.Course.ID)
	r.writePlain("Lessons: %d (%d videos, %d playlists)\n", len(result.Course.Lessons), result.VideoCount, result.PlaylistCount)

	if len(result.InvalidLines) > 0 {
		r.writePlain("\nSkipped %d unrecognized lines:\n", len(result.InvalidLines))
		for _, line := range result.InvalidLines {
			r.writePlain("  - %s\n", line)
		}
	}

	return nil
}

// CourseList lists all courses with completion progress.
func (r *Runner) CourseList(ctx context.Context, cmd *cli.Command) error {
	all, err := r.courses.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(all, true)
	}

	if len(all) == 0 {
		r.writePlain("No courses yet. Create one with 'focustube course add'.\n")
		return nil
	}

	for _, course := range all {
		r.writePlain("%s  %s (%d/%d completed)\n", course.ID, course.Title, course.CompletedCount(), len(course.Lessons))
	}
	return nil
}

// CourseShow prints a course's lessons, state, and notes.
func (r *Runner) CourseShow(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.StringArg("id")
	if courseID == "" {
		return fmt.Errorf("%w: course id", shared.ErrMissingArgument)
	}

	course, err := r.courses.Get(courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return fmt.Errorf("%w: %s", shared.ErrCourseNotFound, courseID)
	}

	if cmd.Bool("json") {
		return r.writeJSON(course, true)
	}

	text, err := formatCourse(course)
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

// CourseDelete removes a course. Deleting the course under playback clears
// the session pointer.
func (r *Runner) CourseDelete(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.StringArg("id")
	if courseID == "" {
		return fmt.Errorf("%w: course id", shared.ErrMissingArgument)
	}

	if err := r.courses.DeleteCourse(courseID); err != nil {
		return err
	}

	r.writePlain("✓ Course deleted: %s\n", courseID)
	return nil
}

// CourseExport exports courses to files with a worker pool.
func (r *Runner) CourseExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.builder.ExportCourses(ctx, progressCh, cmd.Args().Slice(), opts)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlainln("Exported %d/%d courses to %s", result.SuccessfulExports, result.TotalCourses, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("%d exports failed; see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}

// formatCourse renders a course for terminal display.
func formatCourse(course *models.Course) (string, error) {
	data, err := formatter.ExportToText(course)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readLines reads non-empty lines from a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
