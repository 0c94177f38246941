package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/store"
	tu "github.com/cold-cofffeee/focustube/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T, expander *tu.MockExpander) (*Runner, *bytes.Buffer) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	st := store.New(db)
	if err := st.EnsureDefaults("test-key"); err != nil {
		t.Fatalf("failed to seed defaults: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Store:    st,
		Expander: expander,
		Output:   output,
	})
	return runner, output
}

func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "focustube",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"focustube"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("builds course service from store", func(t *testing.T) {
			runner, _ := newTestRunner(t, &tu.MockExpander{})
			if runner.courses == nil {
				t.Error("expected course service to be built from store")
			}
			if runner.builder == nil {
				t.Error("expected builder to be set")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestCourseCommands(t *testing.T) {
	t.Run("add builds a course from mixed URLs", func(t *testing.T) {
		expander := &tu.MockExpander{Playlists: map[string][]string{
			"PL123": {"vid-bbbb0002", "vid-cccc0003"},
		}}
		runner, output := newTestRunner(t, expander)

		err := runCommand(t, runner, "course", "add", "--title", "Go Basics",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://www.youtube.com/playlist?list=PL123",
		)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "Go Basics") {
			t.Errorf("expected course title in output, got:\n%s", output.String())
		}

		all, _ := runner.courses.List()
		if len(all) != 1 || len(all[0].Lessons) != 3 {
			t.Fatalf("expected one course with 3 lessons, got %+v", all)
		}
	})

	t.Run("add reads URLs from a file", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})

		path := filepath.Join(t.TempDir(), "urls.txt")
		os.WriteFile(path, []byte("https://youtu.be/dQw4w9WgXcQ\n\nhttps://youtu.be/jNQXAC9IVRw\n"), 0644)

		if err := runCommand(t, runner, "course", "add", "--file", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		all, _ := runner.courses.List()
		if len(all) != 1 || len(all[0].Lessons) != 2 {
			t.Fatalf("expected one course with 2 lessons, got %+v", all)
		}
	})

	t.Run("add without input fails", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		if err := runCommand(t, runner, "course", "add"); err == nil {
			t.Error("expected error without URLs")
		}
	})

	t.Run("list shows progress", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockExpander{})
		course, _ := runner.courses.CreateCourse("Listed", []string{"vid-aaaa0001", "vid-bbbb0002"})
		runner.courses.SetLessonCompleted(course.ID, "vid-aaaa0001", false)

		if err := runCommand(t, runner, "course", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Listed (1/2 completed)") {
			t.Errorf("expected progress in output, got:\n%s", output.String())
		}
	})

	t.Run("show renders lessons and notes", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockExpander{})
		course, _ := runner.courses.CreateCourse("Shown", []string{"vid-aaaa0001"})
		runner.courses.AppendNote(course.ID, "vid-aaaa0001", "remember this", 65)

		if err := runCommand(t, runner, "course", "show", course.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "remember this") {
			t.Errorf("expected note in output, got:\n%s", output.String())
		}
		if !strings.Contains(output.String(), "1:05") {
			t.Errorf("expected formatted timestamp, got:\n%s", output.String())
		}
	})

	t.Run("show fails for unknown course", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		if err := runCommand(t, runner, "course", "show", "missing"); err == nil {
			t.Error("expected error for unknown course")
		}
	})

	t.Run("delete removes the course", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		course, _ := runner.courses.CreateCourse("Doomed", []string{"vid-aaaa0001"})

		if err := runCommand(t, runner, "course", "delete", course.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		all, _ := runner.courses.List()
		if len(all) != 0 {
			t.Errorf("expected course removed, got %+v", all)
		}
	})

	t.Run("export writes files and manifest", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		runner.courses.CreateCourse("Exported", []string{"vid-aaaa0001"})

		dir := filepath.Join(t.TempDir(), "out")
		if err := runCommand(t, runner, "course", "export", "--output", dir); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
	})
}

func TestLessonAndNoteCommands(t *testing.T) {
	t.Run("complete keeps resume position", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		course, _ := runner.courses.CreateCourse("Flags", []string{"vid-aaaa0001"})
		runner.courses.RecordPosition(course.ID, "vid-aaaa0001", 120)

		err := runCommand(t, runner, "lesson", "complete", "--course", course.ID, "--lesson", "vid-aaaa0001")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lesson, _ := runner.courses.GetLesson(course.ID, "vid-aaaa0001")
		if !lesson.Completed || lesson.LastPosition != 120 {
			t.Errorf("expected completed with position kept, got %+v", lesson)
		}
	})

	t.Run("skip marks the lesson", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		course, _ := runner.courses.CreateCourse("Flags", []string{"vid-aaaa0001"})

		err := runCommand(t, runner, "lesson", "skip", "--course", course.ID, "--lesson", "vid-aaaa0001")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lesson, _ := runner.courses.GetLesson(course.ID, "vid-aaaa0001")
		if !lesson.Skipped {
			t.Errorf("expected skipped, got %+v", lesson)
		}
	})

	t.Run("unknown lesson fails", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		err := runCommand(t, runner, "lesson", "complete", "--course", "nope", "--lesson", "nope")
		if err == nil {
			t.Error("expected error for unknown lesson")
		}
	})

	t.Run("note add and list round-trip", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockExpander{})
		course, _ := runner.courses.CreateCourse("Notes", []string{"vid-aaaa0001"})

		err := runCommand(t, runner, "note", "add", "--course", course.ID, "--lesson", "vid-aaaa0001", "--at", "90", "key point")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		output.Reset()
		if err := runCommand(t, runner, "note", "list", "--course", course.ID, "--lesson", "vid-aaaa0001"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "[1:30] key point") {
			t.Errorf("expected note listed, got:\n%s", output.String())
		}
	})

	t.Run("note remove deletes by id", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})
		course, _ := runner.courses.CreateCourse("Notes", []string{"vid-aaaa0001"})
		note, _ := runner.courses.AppendNote(course.ID, "vid-aaaa0001", "gone soon", 5)

		err := runCommand(t, runner, "note", "remove", "--course", course.ID, "--lesson", "vid-aaaa0001", note.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lesson, _ := runner.courses.GetLesson(course.ID, "vid-aaaa0001")
		if len(lesson.Notes) != 0 {
			t.Errorf("expected no notes, got %+v", lesson.Notes)
		}
	})
}

func TestSettingsCommands(t *testing.T) {
	t.Run("set-key stores the key", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockExpander{})

		if err := runCommand(t, runner, "settings", "set-key", "new-api-key"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		key, _ := runner.store.APIKey()
		if key != "new-api-key" {
			t.Errorf("expected stored key, got %s", key)
		}
	})

	t.Run("show masks the key", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockExpander{})

		if err := runCommand(t, runner, "settings", "show"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if strings.Contains(output.String(), "test-key") {
			t.Errorf("expected masked key, got:\n%s", output.String())
		}
		if !strings.Contains(output.String(), "-key") {
			t.Errorf("expected key suffix visible, got:\n%s", output.String())
		}
	})
}

func TestMaskKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "(not set)"},
		{"abc", "***"},
		{"abcdefgh", "****efgh"},
	}
	for _, tc := range cases {
		if got := maskKey(tc.in); got != tc.want {
			t.Errorf("maskKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
