// package formatter provides functions to export course data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/parser"
	"github.com/cold-cofffeee/focustube/internal/shared"
)

// ExportToCSV converts a Course to CSV format with columns: ID, Title, Completed, Skipped, LastPosition, Notes
func ExportToCSV(course *models.Course) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Completed", "Skipped", "LastPosition", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, lesson := range course.Lessons {
		record := []string{
			lesson.ID,
			lesson.Title,
			strconv.FormatBool(lesson.Completed),
			strconv.FormatBool(lesson.Skipped),
			shared.FormatTimestamp(lesson.LastPosition),
			strconv.Itoa(len(lesson.Notes)),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Course to Markdown format: a checklist of
// lessons with watch links, resume positions, and timestamped notes.
func ExportToMarkdown(course *models.Course) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", course.Title))
	buf.WriteString(fmt.Sprintf("**Created**: %s\n", course.CreatedAt.Format("2006-01-02")))
	buf.WriteString(fmt.Sprintf("**Lessons**: %d (%d completed)\n\n", len(course.Lessons), course.CompletedCount()))

	buf.WriteString("## Lessons\n\n")
	for i, lesson := range course.Lessons {
		box := " "
		if lesson.Completed {
			box = "x"
		}
		suffix := ""
		if lesson.Skipped {
			suffix = " (skipped)"
		} else if lesson.LastPosition > 0 {
			suffix = fmt.Sprintf(" (resume %s)", shared.FormatTimestamp(lesson.LastPosition))
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] [%s](%s)%s\n", i+1, box, lesson.Title, parser.WatchURL(lesson.ID), suffix))

		for _, note := range lesson.Notes {
			buf.WriteString(fmt.Sprintf("   - [%s] %s\n", shared.FormatTimestamp(note.Timestamp), note.Text))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Course to plain text format
func ExportToText(course *models.Course) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Course: %s\n", course.Title))
	buf.WriteString(fmt.Sprintf("Lessons: %d (%d completed)\n\n", len(course.Lessons), course.CompletedCount()))

	for i, lesson := range course.Lessons {
		status := "unwatched"
		switch {
		case lesson.Completed:
			status = "completed"
		case lesson.Skipped:
			status = "skipped"
		case lesson.LastPosition > 0:
			status = fmt.Sprintf("at %s", shared.FormatTimestamp(lesson.LastPosition))
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, lesson.Title, status))

		for _, note := range lesson.Notes {
			buf.WriteString(fmt.Sprintf("   %s  %s\n", shared.FormatTimestamp(note.Timestamp), note.Text))
		}
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of course metadata (without lessons)
func ToMetadataJSON(course *models.Course) ([]byte, error) {
	metadata := struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		CreatedAt string `json:"createdAt"`
		Lessons   int    `json:"lessons"`
		Completed int    `json:"completed"`
	}{
		ID:        course.ID,
		Title:     course.Title,
		CreatedAt: course.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Lessons:   len(course.Lessons),
		Completed: course.CompletedCount(),
	}
	return shared.MarshalJSON(metadata, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	LessonsFile  string
	MetadataFile string
}

// WriteCSVExport exports a course to CSV format with an accompanying metadata JSON file.
//
// Defaults to the course ID as the base filename & creates {base}_lessons.csv and {base}_metadata.json
func WriteCSVExport(course *models.Course, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = course.ID
	}

	csvData, err := ExportToCSV(course)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	lessonsFile := baseFilepath + "_lessons.csv"
	if err := os.WriteFile(lessonsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(course)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		LessonsFile:  lessonsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a course to Markdown format in a dedicated directory.
//
// Directory name defaults to the course ID. Creates {dir}/README.md.
func WriteMarkdownExport(course *models.Course, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = course.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(course)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{mdFile},
	}, nil
}

// WriteTextExport exports a course to plain text format.
//
// Defaults to {course.ID}_lessons.txt as the filename.
func WriteTextExport(course *models.Course, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_lessons.txt", course.ID)
	}

	textData, err := ExportToText(course)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteExportManifest writes a JSON summary of a bulk export run.
func WriteExportManifest(manifest any, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
