// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the seedscout pipeline.
package types

// Paper represents a result scraped from a search-results page.
// Authors is the raw byline as it appears on the page, not a parsed list;
// the scrape source does not delimit author names reliably.
type Paper struct {
	// Title is the paper title after HTML cleanup.
	Title string `json:"title" yaml:"title"`

	// Authors is the author/venue byline as scraped (e.g. "J Smith, A Jones - Nature, 2019").
	Authors string `json:"authors" yaml:"authors"`

	// Citations is the citation count parsed from the result footer, 0 when absent.
	Citations int `json:"citations" yaml:"citations"`

	// Query is the search query that produced this result.
	Query string `json:"query" yaml:"query"`

	// Rank is the 1-based position of the result on the page.
	Rank int `json:"rank" yaml:"rank"`

	// PatternUsed records which parse layer extracted the result:
	// "selector", a numeric regex pattern index ("1".."7"), or "aggressive".
	PatternUsed string `json:"pattern_used" yaml:"pattern_used"`

	// TopicID is the catalog topic this paper was collected for (0 outside a harvest).
	TopicID int `json:"topic_id,omitempty" yaml:"topic_id,omitempty"`

	// TopicTheme is the main theme of the catalog topic.
	TopicTheme string `json:"topic_theme,omitempty" yaml:"topic_theme,omitempty"`

	// SearchQuery is the topic query used during a harvest run.
	SearchQuery string `json:"search_query,omitempty" yaml:"search_query,omitempty"`

	// Matches holds candidate bibliographic records found for this paper.
	Matches []Work `json:"openalex_matches,omitempty" yaml:"openalex_matches,omitempty"`

	// BestMatch is the highest-scoring candidate, nil when no candidate scored above zero.
	BestMatch *Work `json:"best_openalex_match,omitempty" yaml:"best_openalex_match,omitempty"`

	// OpenAlexID is the identifier of the best match, empty when unmatched.
	OpenAlexID string `json:"openalex_id,omitempty" yaml:"openalex_id,omitempty"`
}
