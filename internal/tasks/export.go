package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cold-cofffeee/focustube/internal/formatter"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/shared"
)

// ExportOpts contains configuration for bulk course exports.
type ExportOpts struct {
	Format     string // Export format: json, csv, markdown, txt
	OutputDir  string // Base output directory (default: focustube_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 5)
}

// CourseExportJob carries one course through the worker pool.
type CourseExportJob struct {
	CourseID string
	Course   *models.Course
}

// CourseExportResult records the outcome of exporting a single course.
type CourseExportResult struct {
	CourseID    string   `json:"course_id"`
	CourseTitle string   `json:"course_title"`
	Success     bool     `json:"success"`
	Files       []string `json:"files,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalCourses      int                  `json:"total_courses"`
	SuccessfulExports int                  `json:"successful_exports"`
	FailedExports     int                  `json:"failed_exports"`
	OutputDirectory   string               `json:"output_directory"`
	ManifestPath      string               `json:"manifest_path,omitempty"`
	Results           []CourseExportResult `json:"results"`
}

// ExportCourses exports multiple courses concurrently with progress tracking.
//
// An empty id list exports every stored course. The method implements a
// worker pool, handles partial failures gracefully, and writes a manifest
// file summarizing the export results.
func (b *Builder) ExportCourses(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts ExportOpts) (*BulkExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("focustube_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if len(ids) == 0 {
		all, err := b.courses.List()
		if err != nil {
			return nil, err
		}
		for _, course := range all {
			ids = append(ids, course.ID)
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalCourses:    len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]CourseExportResult, 0, len(ids)),
	}

	jobs := make(chan CourseExportJob, len(ids))
	results := make(chan CourseExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go b.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, courseID := range ids {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			course, err := b.courses.Get(courseID)
			if err != nil || course == nil {
				msg := "course not found"
				if err != nil {
					msg = err.Error()
				}
				results <- CourseExportResult{
					CourseID:    courseID,
					CourseTitle: fmt.Sprintf("Unknown (%s)", courseID),
					Error:       msg,
				}
				continue
			}

			b.sendProgress(prog, exportingCourseUpdate(i+1, len(ids), course.Title))
			jobs <- CourseExportJob{CourseID: courseID, Course: course}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			b.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.CourseTitle, len(res.Files)))
		} else {
			result.FailedExports++
			b.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.CourseTitle, fmt.Errorf("%s", res.Error)))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports courses from the jobs channel.
func (b *Builder) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan CourseExportJob,
	results chan<- CourseExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- b.exportSingleCourse(job, opts)
	}
}

// exportSingleCourse exports a single course to the appropriate format.
func (b *Builder) exportSingleCourse(j CourseExportJob, opts ExportOpts) CourseExportResult {
	result := CourseExportResult{
		CourseID:    j.CourseID,
		CourseTitle: j.Course.Title,
		Files:       []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.Course.ID)
		csvRes, err := formatter.WriteCSVExport(j.Course, baseFilepath)
		if err != nil {
			result.Error = fmt.Sprintf("CSV export failed: %v", err)
			return result
		}
		result.Files = []string{csvRes.LessonsFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.Course.ID)
		mdRes, err := formatter.WriteMarkdownExport(j.Course, outputDir)
		if err != nil {
			result.Error = fmt.Sprintf("markdown export failed: %v", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_lessons.txt", j.Course.ID))
		written, err := formatter.WriteTextExport(j.Course, txtPath)
		if err != nil {
			result.Error = fmt.Sprintf("text export failed: %v", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.Course.ID))
		data, err := shared.MarshalJSON(j.Course, true)
		if err != nil {
			result.Error = fmt.Sprintf("JSON marshal failed: %v", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Sprintf("JSON write failed: %v", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}
