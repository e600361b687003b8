// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/seedscout/internal/httputil"
	"github.com/pdiddy/seedscout/pkg/types"
)

func scholarTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

// testSearcher uses a zero delay range so tests never sleep.
func testSearcher(ts *httptest.Server) *Searcher {
	return &Searcher{Client: ts.Client(), Config: types.ScholarConfig{}}
}

// --- Searcher.Search ---

func TestSearcherSearch(t *testing.T) {
	ts := scholarTestServer(http.StatusOK, resultsPage)
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := testSearcher(ts)
	papers, err := s.Search(context.Background(), "climate change mitigation", 20)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 3 {
		t.Fatalf("len(papers) = %d, want 3", len(papers))
	}
	if papers[0].Title != "Renewable energy technology & climate change mitigation" {
		t.Errorf("title = %q", papers[0].Title)
	}
	if papers[0].Citations != 1542 {
		t.Errorf("citations = %d, want 1542", papers[0].Citations)
	}
	if papers[0].Query != "climate change mitigation" {
		t.Errorf("query = %q", papers[0].Query)
	}
}

func TestSearcherSearchMaxResults(t *testing.T) {
	ts := scholarTestServer(http.StatusOK, resultsPage)
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := testSearcher(ts)
	papers, err := s.Search(context.Background(), "test", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 2 {
		t.Errorf("len(papers) = %d, want 2", len(papers))
	}

	// maxResults <= 0 falls back to the configured limit.
	s.Config.MaxResults = 1
	papers, err = s.Search(context.Background(), "test", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(papers) != 1 {
		t.Errorf("len(papers) = %d, want configured max 1", len(papers))
	}
}

func TestSearcherEmptyQuery(t *testing.T) {
	s := &Searcher{Client: &http.Client{}}
	_, err := s.Search(context.Background(), "", 10)
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty query error, got: %v", err)
	}
}

// --- Request shape ---

func TestSearcherRequestShape(t *testing.T) {
	var gotPath, gotQuery, gotLang string
	var gotHeaders http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotLang = r.URL.Query().Get("hl")
		gotHeaders = r.Header.Clone()
		fmt.Fprint(w, resultsPage)
	}))
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := testSearcher(ts)
	if _, err := s.Search(context.Background(), "carbon pricing policy", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/scholar" {
		t.Errorf("path = %q, want /scholar", gotPath)
	}
	if gotQuery != "carbon pricing policy" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotLang != "en" {
		t.Errorf("hl = %q, want en", gotLang)
	}

	// The full browser header set must ride along.
	if ua := gotHeaders.Get("User-Agent"); !strings.Contains(ua, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want a browser identity", ua)
	}
	for _, h := range []string{"Accept", "Accept-Language", "DNT", "Upgrade-Insecure-Requests", "Sec-Fetch-Mode"} {
		if gotHeaders.Get(h) == "" {
			t.Errorf("header %s missing", h)
		}
	}
}

func TestSearcherCustomUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, resultsPage)
	}))
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := testSearcher(ts)
	s.Config.UserAgent = "custom-browser/9.9"
	_, _ = s.Search(context.Background(), "test", 5)
	if gotUA != "custom-browser/9.9" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

// --- Error cases ---

func TestSearcherNon200(t *testing.T) {
	ts := scholarTestServer(http.StatusForbidden, "blocked")
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := testSearcher(ts)
	_, err := s.Search(context.Background(), "test", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("error = %q, should contain HTTP 403", err.Error())
	}
}

func TestSearcherRetriesOn429(t *testing.T) {
	oldDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	defer func() { httputil.RetryBaseDelay = oldDelay }()

	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, resultsPage)
	}))
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := testSearcher(ts)
	papers, err := s.Search(context.Background(), "test", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2 (one 429 then success)", attempts)
	}
	if len(papers) != 3 {
		t.Errorf("len(papers) = %d, want 3", len(papers))
	}
}

func TestSearcherCancelledDuringDelay(t *testing.T) {
	ts := scholarTestServer(http.StatusOK, resultsPage)
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := testSearcher(ts)
	s.Config.MinDelay = time.Second
	s.Config.MaxDelay = time.Second
	start := time.Now()
	_, err := s.Search(ctx, "test", 5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled search took %v, should return immediately", elapsed)
	}
}

// --- politenessDelay ---

func TestPolitenessDelay(t *testing.T) {
	s := &Searcher{}

	// Unconfigured: no delay.
	if d := s.politenessDelay(); d != 0 {
		t.Errorf("delay = %v, want 0 for zero config", d)
	}

	// Inverted range: disabled.
	s.Config.MinDelay = 5 * time.Second
	s.Config.MaxDelay = 2 * time.Second
	if d := s.politenessDelay(); d != 0 {
		t.Errorf("delay = %v, want 0 for inverted range", d)
	}

	// Degenerate range: exactly min.
	s.Config.MinDelay = 3 * time.Second
	s.Config.MaxDelay = 3 * time.Second
	if d := s.politenessDelay(); d != 3*time.Second {
		t.Errorf("delay = %v, want exactly 3s", d)
	}

	// Proper range: stays within bounds.
	s.Config.MinDelay = 2 * time.Second
	s.Config.MaxDelay = 5 * time.Second
	for i := 0; i < 50; i++ {
		d := s.politenessDelay()
		if d < 2*time.Second || d > 5*time.Second {
			t.Fatalf("delay = %v, want within [2s, 5s]", d)
		}
	}
}
