// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Topic is one research topic from the chapter catalog.
// Validation tags are enforced by topics.ValidateCatalog.
type Topic struct {
	// ID is the 1-based catalog position.
	ID int `json:"id" yaml:"id" validate:"required,min=1"`

	// Theme is the main theme of the topic.
	Theme string `json:"main_theme" yaml:"main_theme" validate:"required"`

	// Queries are the hand-written search queries for this topic.
	Queries []string `json:"search_queries" yaml:"search_queries" validate:"required,min=1,dive,required"`

	// KeyConcepts are the central terms of the topic, used to build
	// bibliographic search strategies.
	KeyConcepts []string `json:"key_concepts" yaml:"key_concepts"`
}

// TopicResult aggregates everything collected for a single topic during a
// harvest run. Counts are kept separately from the lists so the summary
// writers do not have to re-derive them.
type TopicResult struct {
	// TopicID is the catalog topic ID.
	TopicID int `json:"topic_id" yaml:"topic_id"`

	// Theme is the main theme of the topic.
	Theme string `json:"main_theme" yaml:"main_theme"`

	// KeyConcepts are the topic's key concepts, carried for the report.
	KeyConcepts []string `json:"key_concepts" yaml:"key_concepts"`

	// Queries are the topic's search queries, carried for the report.
	Queries []string `json:"search_queries" yaml:"search_queries"`

	// ScholarCount is the number of unique scraped papers.
	ScholarCount int `json:"google_scholar_papers" yaml:"google_scholar_papers"`

	// WorkCount is the number of unique bibliographic records.
	WorkCount int `json:"openalex_papers_found" yaml:"openalex_papers_found"`

	// TopPapers holds the highest-cited scraped papers (at most the configured top-N).
	TopPapers []Paper `json:"top_google_scholar_papers" yaml:"top_google_scholar_papers"`

	// TopWorks holds the highest-cited bibliographic records.
	TopWorks []Work `json:"openalex_top_papers" yaml:"openalex_top_papers"`

	// Papers holds every unique scraped paper, sorted by citations descending.
	Papers []Paper `json:"all_google_scholar_papers" yaml:"all_google_scholar_papers"`

	// Works holds every unique bibliographic record, sorted by citations descending.
	Works []Work `json:"all_openalex_papers" yaml:"all_openalex_papers"`
}

// HarvestSummary is the outcome of a full harvest run: every topic's
// result plus run-level totals. The report writers turn it into the
// comprehensive JSON, the text summary, the workbook, and the citation
// export.
type HarvestSummary struct {
	// Chapter names the catalog the run covered.
	Chapter string `json:"chapter" yaml:"chapter"`

	// GeneratedAt is the local completion time, "2006-01-02 15:04:05".
	GeneratedAt string `json:"search_timestamp" yaml:"search_timestamp"`

	// Results holds one entry per harvested topic, in catalog order.
	Results []TopicResult `json:"results" yaml:"results"`

	// TotalScholarPapers counts unique scraped papers across topics.
	TotalScholarPapers int `json:"total_google_scholar_papers" yaml:"total_google_scholar_papers"`

	// TotalWorks counts unique bibliographic records across topics.
	TotalWorks int `json:"total_openalex_papers" yaml:"total_openalex_papers"`
}
