package services

import "context"

// Expander resolves a playlist identifier into its ordered, deduplicated
// member video identifiers.
type Expander interface {
	// ExpandPlaylist fetches every page of the playlist and returns video
	// ids deduplicated by first-seen order. Fails with shared.ErrAuth,
	// shared.ErrPlaylistNotFound, shared.ErrEmptyPlaylist, or
	// shared.ErrFetch; callers must treat all four as recoverable.
	ExpandPlaylist(ctx context.Context, playlistID, apiKey string) ([]string, error)

	// Name returns the name of the backing service.
	Name() string
}
