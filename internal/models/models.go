package models

import (
	"fmt"
	"strings"
	"time"
)

// Course is a named, ordered collection of lessons. Lesson order is
// significant: it defines next/previous during playback.
type Course struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Lessons   []Lesson  `json:"lessons"`
	CreatedAt time.Time `json:"createdAt"`
}

// Lesson is a single trackable video unit. The lesson ID equals the
// underlying YouTube video id.
//
// Completed and Skipped are mutually exclusive; setting one clears the
// other. Both false is the default "not yet watched" state.
type Lesson struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Completed    bool    `json:"completed"`
	Skipped      bool    `json:"skipped"`
	LastPosition float64 `json:"lastPosition"`
	Notes        []Note  `json:"notes"`
}

// Note is a freeform annotation taken at a playback position. Notes keep
// insertion order and are only ever removed by explicit delete-by-id.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp float64   `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionPointer is the globally-current (course, lesson) selection.
// Both fields are empty or both are populated; the empty string is the
// persisted "unset" sentinel.
type SessionPointer struct {
	CourseID string `json:"courseId"`
	LessonID string `json:"lessonId"`
}

// IsSet reports whether the pointer references a lesson.
func (p SessionPointer) IsSet() bool {
	return p.CourseID != "" && p.LessonID != ""
}

// Validate checks course invariants before persistence.
func (c *Course) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("course id is empty")
	}
	if len(c.Lessons) == 0 {
		return fmt.Errorf("course %q has no lessons", c.Title)
	}
	seen := make(map[string]bool, len(c.Lessons))
	for _, l := range c.Lessons {
		if err := l.Validate(); err != nil {
			return err
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate lesson id %q in course %q", l.ID, c.Title)
		}
		seen[l.ID] = true
	}
	return nil
}

// Validate checks lesson invariants.
func (l *Lesson) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lesson id is empty")
	}
	if l.Completed && l.Skipped {
		return fmt.Errorf("lesson %q is both completed and skipped", l.ID)
	}
	if l.LastPosition < 0 {
		return fmt.Errorf("lesson %q has negative position", l.ID)
	}
	return nil
}

// Validate checks note invariants.
func (n *Note) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("note id is empty")
	}
	if strings.TrimSpace(n.Text) == "" {
		return fmt.Errorf("note %q has empty text", n.ID)
	}
	if n.Timestamp < 0 {
		return fmt.Errorf("note %q has negative timestamp", n.ID)
	}
	return nil
}

// LessonIndex returns the position of the lesson with the given id in the
// course order, or -1 when absent.
func (c *Course) LessonIndex(lessonID string) int {
	for i, l := range c.Lessons {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}

// Lesson returns the lesson with the given id, or nil when absent.
func (c *Course) Lesson(lessonID string) *Lesson {
	if i := c.LessonIndex(lessonID); i >= 0 {
		return &c.Lessons[i]
	}
	return nil
}

// CompletedCount returns how many lessons in the course are completed.
func (c *Course) CompletedCount() int {
	n := 0
	for _, l := range c.Lessons {
		if l.Completed {
			n++
		}
	}
	return n
}
