package parser

import "testing"

const videoID = "dQw4w9WgXcQ"

func TestClassify(t *testing.T) {
	t.Run("video URL shapes round-trip", func(t *testing.T) {
		tc := []struct {
			name string
			url  string
		}{
			{name: "watch", url: "https://www.youtube.com/watch?v=" + videoID},
			{name: "short", url: "https://youtu.be/" + videoID},
			{name: "embed", url: "https://www.youtube.com/embed/" + videoID},
			{name: "watch with extra params", url: "https://www.youtube.com/watch?feature=shared&v=" + videoID},
			{name: "leading whitespace", url: "  https://youtu.be/" + videoID + "  "},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got := Classify(tt.url)
				if got.Kind != Video {
					t.Fatalf("expected video classification, got %s", got.Kind)
				}
				if got.ID != videoID {
					t.Errorf("expected id %s, got %s", videoID, got.ID)
				}
			})
		}
	})

	t.Run("playlist", func(t *testing.T) {
		got := Classify("https://www.youtube.com/playlist?list=PLabc123_-XYZ")
		if got.Kind != Playlist {
			t.Fatalf("expected playlist classification, got %s", got.Kind)
		}
		if got.ID != "PLabc123_-XYZ" {
			t.Errorf("expected playlist id PLabc123_-XYZ, got %s", got.ID)
		}
	})

	t.Run("playlist wins over video", func(t *testing.T) {
		got := Classify("https://www.youtube.com/watch?v=" + videoID + "&list=PLabc123")
		if got.Kind != Playlist {
			t.Fatalf("expected playlist to take precedence, got %s", got.Kind)
		}
		if got.ID != "PLabc123" {
			t.Errorf("expected playlist id PLabc123, got %s", got.ID)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, url := range []string{
			"",
			"   ",
			"not a url",
			"https://vimeo.com/12345",
			"https://www.youtube.com/watch?v=tooshort",
		} {
			if got := Classify(url); got.Kind != Invalid {
				t.Errorf("expected %q to be invalid, got %s(%s)", url, got.Kind, got.ID)
			}
		}
	})
}

func TestWatchURL(t *testing.T) {
	want := "https://www.youtube.com/watch?v=" + videoID
	if got := WatchURL(videoID); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	// Formatted URLs classify back to the same video.
	if got := Classify(WatchURL(videoID)); got.Kind != Video || got.ID != videoID {
		t.Errorf("round-trip failed: %+v", got)
	}
}
