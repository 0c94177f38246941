package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("YouTube API key not configured")

	// Storage errors
	ErrStorage = fmt.Errorf("storage operation failed")

	// Remote expansion errors. All four are recoverable: callers suggest
	// manual URL entry instead of aborting.
	ErrAuth             = fmt.Errorf("invalid API key or quota exceeded")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found or private")
	ErrEmptyPlaylist    = fmt.Errorf("no videos found in playlist")
	ErrFetch            = fmt.Errorf("failed to fetch playlist")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidURL      = fmt.Errorf("not a recognized YouTube URL")
	ErrNoLessons       = fmt.Errorf("no valid video URLs found")
	ErrEmptyNote       = fmt.Errorf("note text is empty")
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Playback session errors
	ErrNoSelection    = fmt.Errorf("no lesson selected")
	ErrSuperseded     = fmt.Errorf("superseded by a newer request")
	ErrEngineNotReady = fmt.Errorf("playback engine not ready")
	ErrCourseNotFound = fmt.Errorf("course not found")
	ErrLessonNotFound = fmt.Errorf("lesson not found")
)
