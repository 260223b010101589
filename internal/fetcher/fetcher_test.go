package fetcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"cricket_bot/internal/model"
)

type mockTransport struct {
	mu         sync.Mutex
	body       string
	statusCode int
	err        error
	requests   []*http.Request
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

// routeTransport answers by URL suffix; unknown URLs get 404.
type routeTransport struct {
	routes map[string]string
	called []string
}

func (r *routeTransport) Do(req *http.Request) (*http.Response, error) {
	r.called = append(r.called, req.URL.Path)
	for suffix, body := range r.routes {
		if strings.HasSuffix(req.URL.Path, suffix) {
			return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewBufferString(body))}, nil
		}
	}
	return &http.Response{StatusCode: 404, Body: io.NopCloser(bytes.NewBufferString("not found"))}, nil
}

type observed struct {
	MatchType model.MatchType
	Failed    bool
}

type mockObserver struct {
	calls []observed
}

func (o *mockObserver) ObserveFetch(mt model.MatchType, _ time.Duration, err error) {
	o.calls = append(o.calls, observed{MatchType: mt, Failed: err != nil})
}

func loadFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test-only fixture loading
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}

func TestFetch(t *testing.T) {
	payload := loadFixture(t, "../../testdata/live.json")

	tests := []struct {
		name       string
		transport  *mockTransport
		matchType  model.MatchType
		wantGroups int
		wantErr    bool
	}{
		{
			name:       "successful fetch",
			transport:  &mockTransport{body: payload, statusCode: 200},
			matchType:  model.MatchLive,
			wantGroups: 4,
		},
		{
			name:       "null body yields empty payload",
			transport:  &mockTransport{body: "null", statusCode: 200},
			matchType:  model.MatchRecent,
			wantGroups: 0,
		},
		{
			name:      "http error status",
			transport: &mockTransport{body: `{"error":"boom"}`, statusCode: 500},
			matchType: model.MatchLive,
			wantErr:   true,
		},
		{
			name:      "network error",
			transport: &mockTransport{err: io.ErrUnexpectedEOF},
			matchType: model.MatchUpcoming,
			wantErr:   true,
		},
		{
			name:      "invalid json",
			transport: &mockTransport{body: "<html>rate limited</html>", statusCode: 200},
			matchType: model.MatchLive,
			wantErr:   true,
		},
		{
			name:      "unknown match type",
			transport: &mockTransport{body: payload, statusCode: 200},
			matchType: model.MatchType("finished"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.transport, Options{})
			got, err := f.Fetch(context.Background(), tt.matchType)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var fe *FetchError
				if !errors.As(err, &fe) {
					t.Fatalf("expected *FetchError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantGroups, len(got.TypeMatches)); diff != "" {
				t.Errorf("group count mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchRequest(t *testing.T) {
	tests := []struct {
		matchType model.MatchType
		wantURL   string
	}{
		{matchType: model.MatchLive, wantURL: "https://api.example.com/matches/v1/live"},
		{matchType: model.MatchRecent, wantURL: "https://api.example.com/matches/v1/recent"},
		{matchType: model.MatchUpcoming, wantURL: "https://api.example.com/matches/v1/upcoming"},
	}

	for _, tt := range tests {
		t.Run(string(tt.matchType), func(t *testing.T) {
			tr := &mockTransport{body: "{}", statusCode: 200}
			f := New(tr, Options{BaseURL: "https://api.example.com/", APIKey: "secret", APIHost: "api.example.com"})
			if _, err := f.Fetch(context.Background(), tt.matchType); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tr.requests) != 1 {
				t.Fatalf("expected 1 request, got %d", len(tr.requests))
			}
			req := tr.requests[0]
			if diff := cmp.Diff(tt.wantURL, req.URL.String()); diff != "" {
				t.Errorf("url mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff("secret", req.Header.Get("x-rapidapi-key")); diff != "" {
				t.Errorf("api key header mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff("api.example.com", req.Header.Get("x-rapidapi-host")); diff != "" {
				t.Errorf("api host header mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchObserver(t *testing.T) {
	obs := &mockObserver{}

	ok := New(&mockTransport{body: "{}", statusCode: 200}, Options{})
	ok.SetObserver(obs)
	if _, err := ok.Fetch(context.Background(), model.MatchLive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := New(&mockTransport{err: io.ErrUnexpectedEOF}, Options{})
	bad.SetObserver(obs)
	_, _ = bad.Fetch(context.Background(), model.MatchUpcoming)

	want := []observed{
		{MatchType: model.MatchLive, Failed: false},
		{MatchType: model.MatchUpcoming, Failed: true},
	}
	if diff := cmp.Diff(want, obs.calls); diff != "" {
		t.Errorf("observer calls mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	f := New(&mockTransport{err: io.ErrUnexpectedEOF}, Options{})
	_, err := f.Fetch(context.Background(), model.MatchLive)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected error chain to contain io.ErrUnexpectedEOF, got %v", err)
	}
	if !strings.Contains(err.Error(), "/matches/v1/live") {
		t.Errorf("error should name the endpoint, got %q", err.Error())
	}
}

func TestFetchScorecard(t *testing.T) {
	hscard := loadFixture(t, "../../testdata/hscard.json")

	t.Run("high-level scorecard has innings", func(t *testing.T) {
		tr := &routeTransport{routes: map[string]string{
			"/hscard": hscard,
			"/scard":  `{"scoreCard":[]}`,
		}}
		got, err := New(tr, Options{}).FetchScorecard(context.Background(), 101)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := &Scorecard{
			MatchID: 101,
			Status:  "Australia need 168 runs",
			Innings: []ScorecardInnings{
				{InningsID: 1, Team: "India", Runs: 287, Wickets: 8, Overs: "50"},
				{InningsID: 2, Team: "AUS", Runs: 120, Wickets: 4, Overs: "18.2"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("scorecard mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"/mcenter/v1/101/hscard"}, tr.called); diff != "" {
			t.Errorf("detailed scorecard should not be requested (-want +got):\n%s", diff)
		}
	})

	t.Run("falls back to detailed scorecard", func(t *testing.T) {
		tr := &routeTransport{routes: map[string]string{
			"/hscard": `{"scoreCard":[]}`,
			"/scard":  hscard,
		}}
		got, err := New(tr, Options{}).FetchScorecard(context.Background(), 55)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(2, len(got.Innings)); diff != "" {
			t.Errorf("innings count mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no scorecard anywhere", func(t *testing.T) {
		tr := &routeTransport{routes: map[string]string{
			"/hscard": `{"matchHeader":{"status":"Match yet to begin"}}`,
			"/scard":  `{}`,
		}}
		got, err := New(tr, Options{}).FetchScorecard(context.Background(), 77)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := &Scorecard{MatchID: 77, Status: "Match yet to begin"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("scorecard mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("request failure", func(t *testing.T) {
		tr := &routeTransport{routes: map[string]string{}}
		_, err := New(tr, Options{}).FetchScorecard(context.Background(), 1)
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
	})
}

func TestFetchMatchInfo(t *testing.T) {
	t.Run("details and squads", func(t *testing.T) {
		tr := &routeTransport{routes: map[string]string{
			"/mcenter/v1/101": loadFixture(t, "../../testdata/matchinfo.json"),
		}}
		got, err := New(tr, Options{}).FetchMatchInfo(context.Background(), 101)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		start := time.UnixMilli(1792828800000).UTC()
		want := &MatchInfo{
			MatchID:     101,
			Description: "1st ODI",
			Format:      "ODI",
			Status:      "Australia need 168 runs",
			Series:      "India tour of Australia, 2026",
			Venue:       "Melbourne Cricket Ground",
			City:        "Melbourne",
			Toss:        "India opted for Batting",
			StartTime:   &start,
			Team1: Squad{Name: "India", ShortName: "IND", Players: []Player{
				{Name: "Rohit Sharma", Role: "Batsman", Captain: true},
				{Name: "Rishabh Pant", Role: "WK-Batsman", Keeper: true},
				{Name: "Bumrah", Role: "Bowler"},
			}},
			Team2: Squad{Name: "Australia", ShortName: "AUS", Players: []Player{
				{Name: "Pat Cummins", Role: "Bowler", Captain: true},
			}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("match info mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"/mcenter/v1/101"}, tr.called); diff != "" {
			t.Errorf("requested paths mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing match info", func(t *testing.T) {
		tr := &routeTransport{routes: map[string]string{"/mcenter/v1/5": `{}`}}
		got, err := New(tr, Options{}).FetchMatchInfo(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(&MatchInfo{MatchID: 5}, got); diff != "" {
			t.Errorf("match info mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("request failure", func(t *testing.T) {
		_, err := New(&routeTransport{routes: map[string]string{}}, Options{}).FetchMatchInfo(context.Background(), 1)
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if diff := cmp.Diff("/mcenter/v1/1", fe.Endpoint); diff != "" {
			t.Errorf("endpoint mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFetchCommentary(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		tr := &routeTransport{routes: map[string]string{
			"/mcenter/v1/101/comm": loadFixture(t, "../../testdata/comm.json"),
		}}
		got, err := New(tr, Options{}).FetchCommentary(context.Background(), 101)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := &Commentary{
			MatchID: 101,
			Status:  "Australia need 168 runs",
			Entries: []CommentaryEntry{
				{Over: "18.2", Event: "FOUR", Text: "Cummins to Rohit, FOUR, pulled away for four"},
				{Over: "18.1", Text: "Cummins to Rohit, no run"},
				{Text: "Drinks break"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("commentary mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("request failure", func(t *testing.T) {
		_, err := New(&routeTransport{routes: map[string]string{}}, Options{}).FetchCommentary(context.Background(), 9)
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if diff := cmp.Diff("/mcenter/v1/9/comm", fe.Endpoint); diff != "" {
			t.Errorf("endpoint mismatch (-want +got):\n%s", diff)
		}
	})
}
