package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Classify Phase = iota
	Expand
	Create
	Export
)

func (p Phase) String() string {
	switch p {
	case Classify:
		return "classify"
	case Expand:
		return "expand"
	case Create:
		return "create"
	case Export:
		return "export"
	default:
		return ""
	}
}

func classifyUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Classify,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Classifying input...", step, total),
	}
}

func expandUpdate(step, total int, playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Expand,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Expanding playlist %s...", playlistID),
	}
}

func expandedUpdate(step, total int, playlistID string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Expand,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Playlist %s: %d videos", playlistID, count),
	}
}

func createCourseUpdate(title string, lessons int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Create,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Course created: %s (%d lessons)", title, lessons),
	}
}

func exportingCourseUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Export,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, title),
	}
}

func exportCompletedUpdate(step, total int, title string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Export,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, title, filesCount),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Export,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}
