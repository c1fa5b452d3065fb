package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL   = "https://github.com/nflverse/nflverse-data/releases/download"
	defaultUserAgent = "redzone/1.0 (+matchup-analytics)"
	defaultTimeout   = 30 * time.Second

	datasetStats    = "player_stats"
	datasetSchedule = "schedules"
)

// Option applies a configuration option to the NFLVerse client.
type Option func(*NFLVerse)

// WithBaseURL overrides the release download base URL.
func WithBaseURL(url string) Option {
	return func(c *NFLVerse) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *NFLVerse) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) Option {
	return func(c *NFLVerse) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NFLVerse implements Provider against the nflverse-data release assets.
type NFLVerse struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewNFLVerse creates an nflverse-backed provider with configuration options.
func NewNFLVerse(opts ...Option) *NFLVerse {
	c := &NFLVerse{
		http:      &http.Client{Timeout: defaultTimeout},
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SeasonStats downloads and parses the per-season player stats asset.
func (c *NFLVerse) SeasonStats(ctx context.Context, season int) ([]model.StatRecord, error) {
	url := fmt.Sprintf("%s/player_stats/player_stats_%d.csv", c.baseURL, season)
	body, err := c.get(ctx, datasetStats, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := ParseSeasonStats(body, season)
	if err != nil {
		metrics.RecordProviderFetch(datasetStats, "parse_error")
		return nil, fmt.Errorf("%w: parse %s: %v", ErrDataUnavailable, url, err)
	}
	metrics.RecordProviderFetch(datasetStats, "ok")
	return records, nil
}

// Schedule downloads and parses the schedule asset, filtered to the season.
func (c *NFLVerse) Schedule(ctx context.Context, season int) ([]model.Game, error) {
	url := fmt.Sprintf("%s/schedules/games.csv", c.baseURL)
	body, err := c.get(ctx, datasetSchedule, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	games, err := ParseSchedule(body, season)
	if err != nil {
		metrics.RecordProviderFetch(datasetSchedule, "parse_error")
		return nil, fmt.Errorf("%w: parse %s: %v", ErrDataUnavailable, url, err)
	}
	metrics.RecordProviderFetch(datasetSchedule, "ok")
	return games, nil
}

// get issues a GET and returns the body on a 200, wrapping everything else
// as ErrDataUnavailable.
func (c *NFLVerse) get(ctx context.Context, dataset, url string) (io.ReadCloser, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrDataUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	metrics.RecordProviderFetchDuration(dataset, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordProviderFetch(dataset, "network_error")
		return nil, fmt.Errorf("%w: get %s: %v", ErrDataUnavailable, url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		metrics.RecordProviderFetch(dataset, fmt.Sprintf("http_%d", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d for %s", ErrDataUnavailable, resp.StatusCode, url)
	}
	return resp.Body, nil
}
