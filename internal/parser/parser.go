// package parser classifies pasted YouTube URLs.
//
// Pure functions only: no normalization beyond pattern extraction, no
// network access. A URL that carries both a video id and a list id (a
// "watch" URL inside a playlist) classifies as a playlist.
package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the classification of a pasted URL.
type Kind int

const (
	Invalid Kind = iota
	Video
	Playlist
)

func (k Kind) String() string {
	switch k {
	case Video:
		return "video"
	case Playlist:
		return "playlist"
	default:
		return "invalid"
	}
}

// Classification is the result of classifying a raw URL: its kind and the
// extracted video or playlist identifier.
type Classification struct {
	Kind Kind
	ID   string
}

var (
	// The canonical URL shapes: watch?v=, youtu.be/, embed/. Video ids are
	// always 11 characters.
	videoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
	}

	playlistPattern = regexp.MustCompile(`[?&]list=([a-zA-Z0-9_-]+)`)
)

// ExtractVideoID extracts an 11-character video id from a URL, reporting
// whether one was found.
func ExtractVideoID(url string) (string, bool) {
	for _, pattern := range videoPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ExtractPlaylistID extracts a playlist id from a URL's list query
// parameter, reporting whether one was found.
func ExtractPlaylistID(url string) (string, bool) {
	if m := playlistPattern.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

// Classify maps a pasted string to a video, playlist, or invalid
// classification. Whitespace is trimmed first; playlist detection takes
// precedence when a URL exhibits both shapes.
func Classify(raw string) Classification {
	url := strings.TrimSpace(raw)
	if url == "" {
		return Classification{Kind: Invalid}
	}

	if id, ok := ExtractPlaylistID(url); ok {
		return Classification{Kind: Playlist, ID: id}
	}
	if id, ok := ExtractVideoID(url); ok {
		return Classification{Kind: Video, ID: id}
	}
	return Classification{Kind: Invalid}
}

// WatchURL formats the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
