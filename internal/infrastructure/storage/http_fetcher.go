package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
)

// httpFetchTimeout bounds remote GPX fetches.
const httpFetchTimeout = 20 * time.Second

type httpTrackFetcher struct {
	client *http.Client
}

// NewHTTPTrackFetcher creates a TrackFetcher for http(s) track references.
func NewHTTPTrackFetcher() rides.TrackFetcher {
	return &httpTrackFetcher{
		client: &http.Client{Timeout: httpFetchTimeout},
	}
}

func (f *httpTrackFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build track request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("track %s returned status %d: %w", url, resp.StatusCode, rides.ErrTrackMissing)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read track response: %w", err)
	}
	return data, nil
}
