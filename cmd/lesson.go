package main

import (
	"context"
	"fmt"

	"github.com/cold-cofffeee/focustube/internal/parser"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/urfave/cli/v3"
)

// LessonComplete marks a lesson completed. Manual completion keeps the
// resume position; only natural end-of-media resets it.
func (r *Runner) LessonComplete(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.String("course")
	lessonID := cmd.String("lesson")

	if err := r.requireLesson(courseID, lessonID); err != nil {
		return err
	}

	if err := r.courses.SetLessonCompleted(courseID, lessonID, false); err != nil {
		return err
	}
	r.writePlain("✓ Lesson marked complete\n")
	return nil
}

// LessonSkip marks a lesson skipped.
func (r *Runner) LessonSkip(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.String("course")
	lessonID := cmd.String("lesson")

	if err := r.requireLesson(courseID, lessonID); err != nil {
		return err
	}

	if err := r.courses.SetLessonSkipped(courseID, lessonID); err != nil {
		return err
	}
	r.writePlain("↷ Lesson skipped\n")
	return nil
}

// LessonOpen opens the lesson's watch page in the default browser.
func (r *Runner) LessonOpen(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.String("course")
	lessonID := cmd.String("lesson")

	if err := r.requireLesson(courseID, lessonID); err != nil {
		return err
	}

	watchURL := parser.WatchURL(lessonID)
	r.logger.Info("opening browser", "url", watchURL)
	return shared.OpenBrowser(watchURL)
}

// requireLesson fails with a sentinel when the lesson does not exist.
func (r *Runner) requireLesson(courseID, lessonID string) error {
	lesson, err := r.courses.GetLesson(courseID, lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return fmt.Errorf("%w: %s/%s", shared.ErrLessonNotFound, courseID, lessonID)
	}
	return nil
}
