package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/shared"
)

var (
	_ list.Item = courseItem{}
	_ list.Item = lessonItem{}
)

// courseItem wraps [models.Course] to implement [list.Item].
type courseItem struct {
	course models.Course
}

func (i courseItem) FilterValue() string { return i.course.Title }
func (i courseItem) Title() string       { return i.course.Title }
func (i courseItem) Description() string {
	return fmt.Sprintf("%d/%d lessons completed", i.course.CompletedCount(), len(i.course.Lessons))
}

// lessonItem wraps [models.Lesson] to implement [list.Item].
type lessonItem struct {
	lesson  models.Lesson
	current bool
}

func (i lessonItem) FilterValue() string { return i.lesson.Title }

func (i lessonItem) Title() string {
	marker := "○"
	switch {
	case i.lesson.Completed:
		marker = "✓"
	case i.lesson.Skipped:
		marker = "↷"
	}
	title := fmt.Sprintf("%s %s", marker, i.lesson.Title)
	if i.current {
		title += " ▸"
	}
	return title
}

func (i lessonItem) Description() string {
	desc := "unwatched"
	switch {
	case i.lesson.Completed:
		desc = "completed"
	case i.lesson.Skipped:
		desc = "skipped"
	case i.lesson.LastPosition > 0:
		desc = fmt.Sprintf("resume at %s", shared.FormatTimestamp(i.lesson.LastPosition))
	}
	if n := len(i.lesson.Notes); n == 1 {
		desc = fmt.Sprintf("%s • 1 note", desc)
	} else if n > 1 {
		desc = fmt.Sprintf("%s • %d notes", desc, n)
	}
	return desc
}
