package main

import (
	"context"
	"fmt"

	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/urfave/cli/v3"
)

// NoteAdd attaches a timestamped note to a lesson.
func (r *Runner) NoteAdd(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if text == "" {
		return fmt.Errorf("%w: note text", shared.ErrMissingArgument)
	}

	note, err := r.courses.AppendNote(cmd.String("course"), cmd.String("lesson"), text, cmd.Float64("at"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Note added at %s (id %s)\n", shared.FormatTimestamp(note.Timestamp), note.ID)
	return nil
}

// NoteRemove deletes a note by id.
func (r *Runner) NoteRemove(ctx context.Context, cmd *cli.Command) error {
	noteID := cmd.StringArg("id")
	if noteID == "" {
		return fmt.Errorf("%w: note id", shared.ErrMissingArgument)
	}

	if err := r.courses.RemoveNote(cmd.String("course"), cmd.String("lesson"), noteID); err != nil {
		return err
	}

	r.writePlain("✓ Note removed\n")
	return nil
}

// NoteList prints a lesson's notes in insertion order.
func (r *Runner) NoteList(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.String("course")
	lessonID := cmd.String("lesson")

	lesson, err := r.courses.GetLesson(courseID, lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return fmt.Errorf("%w: %s/%s", shared.ErrLessonNotFound, courseID, lessonID)
	}

	if len(lesson.Notes) == 0 {
		r.writePlain("No notes for %s\n", lesson.Title)
		return nil
	}

	r.writePlain("Notes for %s:\n", lesson.Title)
	for _, note := range lesson.Notes {
		r.writePlain("  [%s] %s  (%s)\n", shared.FormatTimestamp(note.Timestamp), note.Text, note.ID)
	}
	return nil
}
