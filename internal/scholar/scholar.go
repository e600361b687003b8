// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar scrapes the search-results pages of Google Scholar for
// paper metadata. The page has no API and deploys anti-bot measures, so
// the scraper mimics a browser session and paces itself with a randomized
// delay. Parsing runs in fallback layers because the markup shifts.
package scholar

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/seedscout/internal/httputil"
	"github.com/pdiddy/seedscout/pkg/types"
)

// scholarBase is the search endpoint. Declared as a var so tests can
// substitute an httptest server.
var scholarBase = "https://scholar.google.com"

// DefaultUserAgent is a desktop browser identity. Requests with a plain
// library User-Agent are served a CAPTCHA page instead of results.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Searcher queries the results page and extracts paper metadata.
type Searcher struct {
	Client *http.Client
	Config types.ScholarConfig
	Logger zerolog.Logger
}

// Search fetches one page of results for query and returns up to
// maxResults papers. A randomized politeness delay (Config.MinDelay to
// Config.MaxDelay) runs before the request; HTTP 429 responses are
// retried with backoff. Scrape failures surface as errors so the caller
// can decide whether to continue with other queries.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]types.Paper, error) {
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}
	if maxResults <= 0 {
		maxResults = s.Config.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 20
	}

	if wait := s.politenessDelay(); wait > 0 {
		s.Logger.Debug().Dur("wait", wait).Str("query", query).Msg("politeness delay before scrape")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	params := url.Values{
		"q":  {query},
		"hl": {"en"},
	}
	reqURL := scholarBase + "/scholar?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	s.setBrowserHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("results page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results page returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading results page: %w", err)
	}

	papers := parseResults(body, query, maxResults, s.Logger)
	s.Logger.Debug().Str("query", query).Int("papers", len(papers)).Msg("scrape complete")
	return papers, nil
}

// politenessDelay picks a random wait in [MinDelay, MaxDelay]. A zero or
// inverted range disables the delay.
func (s *Searcher) politenessDelay() time.Duration {
	min, max := s.Config.MinDelay, s.Config.MaxDelay
	if max <= 0 || max < min {
		return 0
	}
	if max == min {
		return min
	}
	return min + rand.N(max-min)
}

// setBrowserHeaders applies the full desktop-browser header set. The
// results page fingerprints requests; a bare User-Agent is not enough.
func (s *Searcher) setBrowserHeaders(req *http.Request) {
	ua := s.Config.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")
}
