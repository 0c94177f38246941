package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cold-cofffeee/focustube/internal/courses"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/store"
)

type mockExpander struct {
	playlists map[string][]string
	expandErr error
	onExpand  func(playlistID string)
	calls     int
}

func (m *mockExpander) Name() string {
	return "mock"
}

func (m *mockExpander) ExpandPlaylist(ctx context.Context, playlistID, apiKey string) ([]string, error) {
	m.calls++
	if m.onExpand != nil {
		m.onExpand(playlistID)
	}
	if m.expandErr != nil {
		return nil, m.expandErr
	}
	if ids, ok := m.playlists[playlistID]; ok {
		return ids, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
}

func newTestBuilder(t *testing.T, expander *mockExpander) (*Builder, *courses.Service) {
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
	if err := st.SetAPIKey("test-key"); err != nil {
		t.Fatalf("failed to set API key: %v", err)
	}

	svc := courses.NewService(st, nil)
	builder := NewBuilder(BuilderOpts{Courses: svc, Expander: expander, Store: st})
	return builder, svc
}

func TestBuildCourse(t *testing.T) {
	t.Run("mixed input resolves in order", func(t *testing.T) {
		expander := &mockExpander{playlists: map[string][]string{
			"PL123": {"vid-cccc0003", "vid-dddd0004"},
		}}
		builder, _ := newTestBuilder(t, expander)

		lines := []string{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://www.youtube.com/playlist?list=PL123",
			"not a url at all",
			"https://youtu.be/jNQXAC9IVRw",
		}

		result, err := builder.BuildCourse(context.Background(), nil, "Mixed", lines)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"dQw4w9WgXcQ", "vid-cccc0003", "vid-dddd0004", "jNQXAC9IVRw"}
		if len(result.Course.Lessons) != len(want) {
			t.Fatalf("expected %d lessons, got %d", len(want), len(result.Course.Lessons))
		}
		for i, id := range want {
			if result.Course.Lessons[i].ID != id {
				t.Errorf("lesson %d: expected %s, got %s", i, id, result.Course.Lessons[i].ID)
			}
		}

		if result.VideoCount != 2 || result.PlaylistCount != 1 {
			t.Errorf("expected 2 videos and 1 playlist, got %d/%d", result.VideoCount, result.PlaylistCount)
		}
		if len(result.InvalidLines) != 1 || result.InvalidLines[0] != "not a url at all" {
			t.Errorf("expected invalid line recorded, got %v", result.InvalidLines)
		}
	})

	t.Run("expansion failure aborts without persisting", func(t *testing.T) {
		expander := &mockExpander{expandErr: shared.ErrAuth}
		builder, svc := newTestBuilder(t, expander)

		_, err := builder.BuildCourse(context.Background(), nil, "Fail", []string{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://www.youtube.com/playlist?list=PL123",
		})
		if !errors.Is(err, shared.ErrAuth) {
			t.Errorf("expected ErrAuth, got %v", err)
		}

		all, _ := svc.List()
		if len(all) != 0 {
			t.Errorf("expected nothing persisted, got %d courses", len(all))
		}
	})

	t.Run("no resolvable input fails", func(t *testing.T) {
		builder, _ := newTestBuilder(t, &mockExpander{})
		_, err := builder.BuildCourse(context.Background(), nil, "Empty", []string{"nope", ""})
		if !errors.Is(err, shared.ErrNoLessons) {
			t.Errorf("expected ErrNoLessons, got %v", err)
		}
	})

	t.Run("stale build is discarded", func(t *testing.T) {
		expander := &mockExpander{playlists: map[string][]string{
			"PL123": {"vid-aaaa0001"},
		}}
		builder, svc := newTestBuilder(t, expander)

		// A newer build starts while this one is mid-expansion.
		expander.onExpand = func(string) { builder.generation.Add(1) }

		_, err := builder.BuildCourse(context.Background(), nil, "Stale", []string{
			"https://www.youtube.com/playlist?list=PL123",
		})
		if !errors.Is(err, shared.ErrSuperseded) {
			t.Errorf("expected ErrSuperseded, got %v", err)
		}

		all, _ := svc.List()
		if len(all) != 0 {
			t.Errorf("stale result must not persist, got %d courses", len(all))
		}
	})

	t.Run("emits progress updates", func(t *testing.T) {
		expander := &mockExpander{playlists: map[string][]string{
			"PL123": {"vid-aaaa0001"},
		}}
		builder, _ := newTestBuilder(t, expander)

		progress := make(chan ProgressUpdate, 32)
		_, err := builder.BuildCourse(context.Background(), progress, "Progress", []string{
			"https://www.youtube.com/playlist?list=PL123",
		})
		if err != nil {
			t.Fatal(err)
		}
		close(progress)

		seen := map[Phase]bool{}
		for update := range progress {
			seen[update.Phase] = true
		}
		for _, phase := range []Phase{Classify, Expand, Create} {
			if !seen[phase] {
				t.Errorf("expected a %s update", phase)
			}
		}
	})
}
