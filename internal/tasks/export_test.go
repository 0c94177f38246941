package tasks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/cold-cofffeee/focustube/internal/testing"
)

func TestExportCourses(t *testing.T) {
	t.Run("exports all courses as json by default", func(t *testing.T) {
		builder, svc := newTestBuilder(t, &mockExpander{})
		first, _ := svc.CreateCourse("First", []string{"vid-aaaa0001"})
		second, _ := svc.CreateCourse("Second", []string{"vid-bbbb0002"})

		dir := filepath.Join(t.TempDir(), "out")
		result, err := builder.ExportCourses(context.Background(), nil, nil, ExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.TotalCourses != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("unexpected counts: %+v", result)
		}

		for _, id := range []string{first.ID, second.ID} {
			if _, err := os.Stat(filepath.Join(dir, id+".json")); err != nil {
				t.Errorf("expected export file for %s: %v", id, err)
			}
		}

		manifest := tu.MustReadFile(t, result.ManifestPath)
		if !strings.Contains(manifest, `"total_courses": 2`) {
			t.Errorf("unexpected manifest: %s", manifest)
		}
	})

	t.Run("defaults to a timestamped output directory", func(t *testing.T) {
		builder, svc := newTestBuilder(t, &mockExpander{})
		svc.CreateCourse("Default", []string{"vid-aaaa0001"})

		// The default directory is relative to the working directory.
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		t.Cleanup(func() { tu.MustChdir(t, wd) })

		result, err := builder.ExportCourses(context.Background(), nil, nil, ExportOpts{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.HasPrefix(result.OutputDirectory, "focustube_export_") {
			t.Errorf("unexpected output directory: %s", result.OutputDirectory)
		}
		tu.AssertDirExists(t, result.OutputDirectory)
		tu.AssertFileExists(t, result.ManifestPath)
	})

	t.Run("unknown ids are partial failures", func(t *testing.T) {
		builder, svc := newTestBuilder(t, &mockExpander{})
		course, _ := svc.CreateCourse("Known", []string{"vid-aaaa0001"})

		dir := filepath.Join(t.TempDir(), "out")
		result, err := builder.ExportCourses(context.Background(), nil, []string{course.ID, "missing"}, ExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("expected one success and one failure, got %+v", result)
		}
	})

	t.Run("markdown format writes per-course directories", func(t *testing.T) {
		builder, svc := newTestBuilder(t, &mockExpander{})
		course, _ := svc.CreateCourse("MD", []string{"vid-aaaa0001"})
		svc.AppendNote(course.ID, "vid-aaaa0001", "remember this", 42.5)

		dir := filepath.Join(t.TempDir(), "out")
		result, err := builder.ExportCourses(context.Background(), nil, []string{course.ID}, ExportOpts{OutputDir: dir, Format: "markdown"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.SuccessfulExports != 1 {
			t.Fatalf("expected success, got %+v", result)
		}

		readme := tu.MustReadFile(t, filepath.Join(dir, course.ID, "README.md"))
		if !strings.Contains(readme, "remember this") {
			t.Errorf("expected note in export, got:\n%s", readme)
		}
	})

	t.Run("csv format writes lessons and metadata", func(t *testing.T) {
		builder, svc := newTestBuilder(t, &mockExpander{})
		course, _ := svc.CreateCourse("CSV", []string{"vid-aaaa0001"})

		dir := filepath.Join(t.TempDir(), "out")
		result, err := builder.ExportCourses(context.Background(), nil, []string{course.ID}, ExportOpts{OutputDir: dir, Format: "csv"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(result.Results) != 1 || len(result.Results[0].Files) != 2 {
			t.Errorf("expected two files, got %+v", result.Results)
		}
	})

	t.Run("empty store exports nothing", func(t *testing.T) {
		builder, _ := newTestBuilder(t, &mockExpander{})

		dir := filepath.Join(t.TempDir(), "out")
		result, err := builder.ExportCourses(context.Background(), nil, nil, ExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.TotalCourses != 0 {
			t.Errorf("expected empty run, got %+v", result)
		}
	})
}
