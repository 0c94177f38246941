// YouTube Data API v3 [Expander] implementation.
//
// Uses the public playlistItems endpoint with an API key; no OAuth.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cold-cofffeee/focustube/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL string = "https://www.googleapis.com/youtube/v3"

// The API caps page size at 50.
const maxPageSize = 50

// playlistItemsPage mirrors the playlistItems response shape.
type playlistItemsPage struct {
	Items []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// apiError mirrors the error envelope returned on non-2xx responses.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// YouTubeService implements the Expander interface against the YouTube
// Data API v3.
type YouTubeService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxResults int
}

// YouTubeOpts contains configuration options for creating a YouTubeService.
type YouTubeOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	RateLimit  float64 // page requests per second (default: 5)
	MaxResults int     // page size, capped at 50
}

// NewYouTubeService creates a new YouTube Data API client.
func NewYouTubeService(opts YouTubeOpts) *YouTubeService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.MaxResults <= 0 || opts.MaxResults > maxPageSize {
		opts.MaxResults = maxPageSize
	}

	return &YouTubeService{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		maxResults: opts.MaxResults,
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// ExpandPlaylist fetches all pages of a playlist and returns the member
// video ids, deduplicated by first-seen order across pages.
func (y *YouTubeService) ExpandPlaylist(ctx context.Context, playlistID, apiKey string) ([]string, error) {
	if apiKey == "" {
		return nil, shared.ErrMissingAPIKey
	}

	var videoIDs []string
	seen := make(map[string]bool)
	pageToken := ""

	for {
		if err := y.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrFetch, err)
		}

		page, err := y.fetchPage(ctx, playlistID, apiKey, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			id := item.ContentDetails.VideoID
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			videoIDs = append(videoIDs, id)
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if len(videoIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrEmptyPlaylist, playlistID)
	}

	return videoIDs, nil
}

// fetchPage requests a single playlistItems page.
func (y *YouTubeService) fetchPage(ctx context.Context, playlistID, apiKey, pageToken string) (*playlistItemsPage, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("maxResults", strconv.Itoa(y.maxResults))
	params.Set("playlistId", playlistID)
	params.Set("key", apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	apiURL := fmt.Sprintf("%s/playlistItems?%s", y.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrFetch, err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusForbidden:
			return nil, fmt.Errorf("%w (status 403)", shared.ErrAuth)
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s (status 404)", shared.ErrPlaylistNotFound, playlistID)
		}

		var errResp apiError
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s (status %d)", shared.ErrFetch, errResp.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", shared.ErrFetch, resp.StatusCode)
	}

	var page playlistItemsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrFetch, err)
	}

	return &page, nil
}
