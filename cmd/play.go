package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cold-cofffeee/focustube/internal/player"
	"github.com/cold-cofffeee/focustube/internal/session"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/urfave/cli/v3"
)

// Play runs a headless playback session until the course completes or the
// context is cancelled. Without --course it resumes the persisted session.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.String("course")
	lessonID := cmd.String("lesson")

	controller := session.NewController(session.Opts{
		Store:        r.store,
		Courses:      r.courses,
		Logger:       r.logger,
		TickInterval: secondsToDuration(r.config.Playback.SaveIntervalSeconds),
		AdvanceDelay: secondsToDuration(r.config.Playback.AdvanceDelaySeconds),
	})
	defer controller.Close()

	done := make(chan struct{})
	var once sync.Once

	controller.Subscribe(func(ev session.Event) {
		switch ev.Kind {
		case session.LessonSelected:
			title := ev.LessonID
			if lesson, err := r.courses.GetLesson(ev.CourseID, ev.LessonID); err == nil && lesson != nil {
				title = lesson.Title
			}
			r.writePlain("▶ %s (from %s)\n", title, shared.FormatTimestamp(ev.Position))
		case session.LessonCompleted:
			r.writePlain("✓ Lesson complete\n")
		case session.CourseCompleted:
			r.writePlain("\n🎉 Course complete!\n")
			once.Do(func() { close(done) })
		}
	})

	engine := player.NewHeadless(player.Opts{Duration: cmd.Float64("duration")})
	engine.SetStateChangeFunc(controller.HandleStateChange)

	if err := controller.HandleEngineReady(engine); err != nil {
		return err
	}

	if courseID != "" {
		if lessonID == "" {
			var err error
			if lessonID, err = r.firstUnfinishedLesson(courseID); err != nil {
				return err
			}
		}
		if err := controller.SelectLesson(courseID, lessonID); err != nil {
			return err
		}
	}

	if controller.State() != session.Active {
		return fmt.Errorf("%w: nothing to resume, pass --course", shared.ErrNoSelection)
	}

	// The poll drives the simulated playhead; end-of-media events reach the
	// controller through the engine callback.
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case <-ticker.C:
			engine.PlaybackState()
		}
	}
}

// firstUnfinishedLesson picks the first lesson that is neither completed
// nor skipped, falling back to the first lesson.
func (r *Runner) firstUnfinishedLesson(courseID string) (string, error) {
	course, err := r.courses.Get(courseID)
	if err != nil {
		return "", err
	}
	if course == nil {
		return "", fmt.Errorf("%w: %s", shared.ErrCourseNotFound, courseID)
	}
	if len(course.Lessons) == 0 {
		return "", shared.ErrNoLessons
	}

	for _, lesson := range course.Lessons {
		if !lesson.Completed && !lesson.Skipped {
			return lesson.ID, nil
		}
	}
	return course.Lessons[0].ID, nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
