package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/cold-cofffeee/focustube/internal/courses"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/parser"
	"github.com/cold-cofffeee/focustube/internal/services"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/store"
)

// SourceResult records how a single input line was resolved.
type SourceResult struct {
	Line     string      // Raw input line
	Kind     parser.Kind // Classification outcome
	VideoIDs []string    // Resolved video ids (one for videos, many for playlists)
}

// BuildResult contains all data from a course build operation.
type BuildResult struct {
	Course        *models.Course // Created course
	Sources       []SourceResult // Per-line resolution details
	VideoCount    int            // Lines classified as single videos
	PlaylistCount int            // Lines classified as playlists
	InvalidLines  []string       // Lines that matched nothing, skipped
}

// Builder orchestrates course creation and export.
// Contains dependencies on the course service, playlist expander, and store.
type Builder struct {
	courses  *courses.Service
	expander services.Expander
	store    *store.Store
	logger   *log.Logger

	// generation guards against stale builds: a result computed for an
	// older request is discarded, never persisted.
	generation atomic.Uint64
}

// BuilderOpts contains configuration options for creating a Builder.
type BuilderOpts struct {
	Courses  *courses.Service
	Expander services.Expander
	Store    *store.Store
	Logger   *log.Logger
}

// NewBuilder creates a new Builder with the provided dependencies.
func NewBuilder(opts BuilderOpts) *Builder {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Builder{
		courses:  opts.Courses,
		expander: opts.Expander,
		store:    opts.Store,
		logger:   opts.Logger.With("component", "tasks"),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (b *Builder) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// BuildCourse resolves mixed URL input into a course and persists it.
//
// Each line is classified as a video URL, a playlist URL, or unrecognized.
// Video ids pass through directly; playlists expand through the configured
// expander using the stored API key. Unrecognized lines are skipped and
// reported, not fatal. Expansion failures abort the build so the caller
// can retry; nothing is persisted on failure.
//
// A build that finishes after a newer one has started returns
// shared.ErrSuperseded and discards its result.
func (b *Builder) BuildCourse(ctx context.Context, progress chan<- ProgressUpdate, title string, lines []string) (*BuildResult, error) {
	generation := b.generation.Add(1)

	result := &BuildResult{}
	var videoIDs []string

	total := len(lines)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		b.sendProgress(progress, classifyUpdate(i+1, total))

		classification := parser.Classify(line)
		switch classification.Kind {
		case parser.Video:
			result.VideoCount++
			result.Sources = append(result.Sources, SourceResult{
				Line:     line,
				Kind:     parser.Video,
				VideoIDs: []string{classification.ID},
			})
			videoIDs = append(videoIDs, classification.ID)

		case parser.Playlist:
			result.PlaylistCount++
			b.sendProgress(progress, expandUpdate(i+1, total, classification.ID))

			apiKey, err := b.store.APIKey()
			if err != nil {
				return nil, err
			}

			expanded, err := b.expander.ExpandPlaylist(ctx, classification.ID, apiKey)
			if err != nil {
				return nil, fmt.Errorf("failed to expand playlist %s: %w", classification.ID, err)
			}

			b.sendProgress(progress, expandedUpdate(i+1, total, classification.ID, len(expanded)))
			result.Sources = append(result.Sources, SourceResult{
				Line:     line,
				Kind:     parser.Playlist,
				VideoIDs: expanded,
			})
			videoIDs = append(videoIDs, expanded...)

		default:
			result.InvalidLines = append(result.InvalidLines, line)
			b.logger.Warn("skipping unrecognized line", "line", line)
		}
	}

	if b.generation.Load() != generation {
		b.logger.Debug("discarding stale build result", "generation", generation)
		return nil, shared.ErrSuperseded
	}

	course, err := b.courses.CreateCourse(title, videoIDs)
	if err != nil {
		return nil, err
	}
	result.Course = course

	b.sendProgress(progress, createCourseUpdate(course.Title, len(course.Lessons)))
	return result, nil
}
