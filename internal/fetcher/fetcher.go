// Package fetcher handles match list downloading, decoding, and normalization.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"cricket_bot/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the RapidAPI host of the Cricbuzz API.
const DefaultBaseURL = "https://cricbuzz-cricket.p.rapidapi.com"

const maxBodySize = 5 * 1024 * 1024

var endpoints = map[model.MatchType]string{
	model.MatchLive:     "/matches/v1/live",
	model.MatchRecent:   "/matches/v1/recent",
	model.MatchUpcoming: "/matches/v1/upcoming",
}

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer is notified after every match list request.
type Observer interface {
	ObserveFetch(mt model.MatchType, elapsed time.Duration, err error)
}

// FetchError is returned when a request fails or its response cannot be decoded.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures how the Fetcher reaches the API.
type Options struct {
	BaseURL string
	APIKey  string
	APIHost string
}

// Fetcher downloads match lists from the scores API.
type Fetcher struct {
	client   HTTPClient
	opts     Options
	timeout  time.Duration
	observer Observer
}

// New creates a Fetcher with the given HTTP client.
func New(client HTTPClient, opts Options) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Fetcher{
		client:  client,
		opts:    opts,
		timeout: 30 * time.Second,
	}
}

// SetObserver registers an observer for match list requests.
func (f *Fetcher) SetObserver(o Observer) {
	f.observer = o
}

// Fetch downloads the match list of the given type.
func (f *Fetcher) Fetch(ctx context.Context, mt model.MatchType) (*RawPayload, error) {
	path, ok := endpoints[mt]
	if !ok {
		return nil, &FetchError{Endpoint: string(mt), Err: fmt.Errorf("unknown match type %q", mt)}
	}

	start := time.Now()
	var payload RawPayload
	err := f.getJSON(ctx, path, &payload)
	if f.observer != nil {
		f.observer.ObserveFetch(mt, time.Since(start), err)
	}
	if err != nil {
		return nil, &FetchError{Endpoint: path, Err: err}
	}
	return &payload, nil
}

func (f *Fetcher) getJSON(ctx context.Context, path string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.opts.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "CricketScoresBot/1.0")
	req.Header.Set("Accept", "application/json")
	if f.opts.APIKey != "" {
		req.Header.Set("x-rapidapi-key", f.opts.APIKey)
	}
	if f.opts.APIHost != "" {
		req.Header.Set("x-rapidapi-host", f.opts.APIHost)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
