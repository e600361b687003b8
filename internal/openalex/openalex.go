// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex queries the OpenAlex works API for bibliographic
// records and links scraped papers to them. OpenAlex is the reliable
// source in the pipeline: citation counts come from a real API instead
// of scraped HTML, and callers who identify themselves get the polite
// pool.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/seedscout/internal/httputil"
	"github.com/pdiddy/seedscout/pkg/types"
)

// openAlexBase is the works endpoint. Declared as a var so tests can
// substitute an httptest server.
var openAlexBase = "https://api.openalex.org/works"

// DefaultUserAgent identifies the tool to the API. The configured mailto
// address is appended for polite-pool access.
const DefaultUserAgent = "seedscout/1.0"

// Client queries the works endpoint at a steady request rate.
type Client struct {
	HTTPClient *http.Client
	Config     types.OpenAlexConfig
	// Limiter paces requests. A nil limiter disables pacing (tests).
	Limiter *rate.Limiter
	Logger  zerolog.Logger
}

// New returns a client whose request rate comes from the config
// (default 1 request per second, burst 1).
func New(client *http.Client, cfg types.OpenAlexConfig, logger zerolog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		HTTPClient: client,
		Config:     cfg,
		Limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		Logger:     logger,
	}
}

// Search queries the works endpoint and returns up to maxResults records.
// The query is cleaned first (quotes stripped, whitespace collapsed);
// HTTP 429 responses are retried with backoff. Blocks on the rate
// limiter before sending, so sequential callers stay inside the polite
// request rate.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.Work, error) {
	cleaned := CleanQuery(query)
	if cleaned == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{
		"search":   {cleaned},
		"per_page": {strconv.Itoa(maxResults)},
	}
	if c.Config.Mailto != "" {
		params.Set("mailto", c.Config.Mailto)
	}
	reqURL := openAlexBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var wr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	works := make([]types.Work, 0, len(wr.Results))
	for _, w := range wr.Results {
		works = append(works, toWork(w))
	}
	c.Logger.Debug().Str("query", cleaned).Int("works", len(works)).Msg("OpenAlex search complete")
	return works, nil
}

// userAgent builds the request identity. The mailto address rides in the
// User-Agent as well as the query string; OpenAlex accepts either but
// checks both.
func (c *Client) userAgent() string {
	ua := c.Config.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	if c.Config.Mailto != "" {
		ua += "; mailto:" + c.Config.Mailto
	}
	return ua
}

// CleanQuery strips quote characters and collapses whitespace. Quoted
// phrases switch the API into exact-match mode and miss most results.
func CleanQuery(query string) string {
	query = strings.ReplaceAll(query, `"`, "")
	query = strings.ReplaceAll(query, "'", "")
	return strings.Join(strings.Fields(query), " ")
}

// toWork flattens an API work record into the pipeline's Work type.
func toWork(w workJSON) types.Work {
	work := types.Work{
		OpenAlexID:      w.ID,
		Title:           w.Title,
		PublicationYear: w.PublicationYear,
		DOI:             w.DOI,
		Citations:       w.CitedByCount,
		Abstract:        reconstructAbstract(w.AbstractInvertedIndex),
		Type:            w.Type,
		OpenAccess:      w.OpenAccess.IsOA,
	}

	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		work.Journal = w.PrimaryLocation.Source.DisplayName
	}

	for _, authorship := range w.Authorships {
		if authorship.Author.DisplayName == "" {
			continue
		}
		work.Authors = append(work.Authors, types.WorkAuthor{
			Name:       authorship.Author.DisplayName,
			OpenAlexID: authorship.Author.ID,
		})
	}

	for _, concept := range w.Concepts {
		work.Concepts = append(work.Concepts, types.WorkConcept{
			Name:       concept.DisplayName,
			OpenAlexID: concept.ID,
			Level:      concept.Level,
			Score:      concept.Score,
		})
	}
	return work
}

// reconstructAbstract converts the API's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where
// it appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type worksResponse struct {
	Meta    worksMeta  `json:"meta"`
	Results []workJSON `json:"results"`
}

type worksMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type workJSON struct {
	ID                    string           `json:"id"`
	Title                 string           `json:"title"`
	DOI                   string           `json:"doi"`
	PublicationYear       int              `json:"publication_year"`
	Type                  string           `json:"type"`
	CitedByCount          int              `json:"cited_by_count"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
	Authorships           []authorshipJSON `json:"authorships"`
	PrimaryLocation       *locationJSON    `json:"primary_location"`
	OpenAccess            openAccessJSON   `json:"open_access"`
	Concepts              []conceptJSON    `json:"concepts"`
}

type authorshipJSON struct {
	Author authorJSON `json:"author"`
}

type authorJSON struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type locationJSON struct {
	Source *sourceJSON `json:"source"`
}

type sourceJSON struct {
	DisplayName string `json:"display_name"`
}

type openAccessJSON struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
}

type conceptJSON struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Level       int     `json:"level"`
	Score       float64 `json:"score"`
}
