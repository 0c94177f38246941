package models

import (
	"testing"
	"time"
)

func testCourse() Course {
	return Course{
		ID:    "course-1",
		Title: "Intro to Go",
		Lessons: []Lesson{
			{ID: "video-aaaa1", Title: "Lesson 1"},
			{ID: "video-bbbb2", Title: "Lesson 2"},
			{ID: "video-cccc3", Title: "Lesson 3"},
		},
		CreatedAt: time.Now(),
	}
}

func TestCourse(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		t.Run("accepts a well-formed course", func(t *testing.T) {
			c := testCourse()
			if err := c.Validate(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("rejects empty id", func(t *testing.T) {
			c := testCourse()
			c.ID = ""
			if err := c.Validate(); err == nil {
				t.Error("expected error for empty course id")
			}
		})

		t.Run("rejects no lessons", func(t *testing.T) {
			c := testCourse()
			c.Lessons = nil
			if err := c.Validate(); err == nil {
				t.Error("expected error for empty lesson list")
			}
		})

		t.Run("rejects duplicate lesson ids", func(t *testing.T) {
			c := testCourse()
			c.Lessons[2].ID = c.Lessons[0].ID
			if err := c.Validate(); err == nil {
				t.Error("expected error for duplicate lesson ids")
			}
		})

		t.Run("rejects completed and skipped both set", func(t *testing.T) {
			c := testCourse()
			c.Lessons[0].Completed = true
			c.Lessons[0].Skipped = true
			if err := c.Validate(); err == nil {
				t.Error("expected error for completed+skipped lesson")
			}
		})
	})

	t.Run("LessonIndex", func(t *testing.T) {
		c := testCourse()
		if i := c.LessonIndex("video-bbbb2"); i != 1 {
			t.Errorf("expected index 1, got %d", i)
		}
		if i := c.LessonIndex("missing"); i != -1 {
			t.Errorf("expected -1 for missing lesson, got %d", i)
		}
	})

	t.Run("Lesson", func(t *testing.T) {
		c := testCourse()
		if l := c.Lesson("video-cccc3"); l == nil || l.Title != "Lesson 3" {
			t.Errorf("expected Lesson 3, got %+v", l)
		}
		if l := c.Lesson("missing"); l != nil {
			t.Errorf("expected nil for missing lesson, got %+v", l)
		}
	})

	t.Run("CompletedCount", func(t *testing.T) {
		c := testCourse()
		c.Lessons[0].Completed = true
		c.Lessons[2].Completed = true
		if n := c.CompletedCount(); n != 2 {
			t.Errorf("expected 2 completed, got %d", n)
		}
	})
}

func TestSessionPointer(t *testing.T) {
	if (SessionPointer{}).IsSet() {
		t.Error("zero pointer should be unset")
	}
	if (SessionPointer{CourseID: "c"}).IsSet() {
		t.Error("half-populated pointer should be unset")
	}
	if !(SessionPointer{CourseID: "c", LessonID: "l"}).IsSet() {
		t.Error("full pointer should be set")
	}
}

func TestNoteValidate(t *testing.T) {
	n := Note{ID: "n1", Text: "remember this", Timestamp: 12.5, CreatedAt: time.Now()}
	if err := n.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	n.Text = "   "
	if err := n.Validate(); err == nil {
		t.Error("expected error for whitespace-only text")
	}

	n.Text = "ok"
	n.Timestamp = -1
	if err := n.Validate(); err == nil {
		t.Error("expected error for negative timestamp")
	}
}
