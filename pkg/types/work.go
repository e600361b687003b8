// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WorkAuthor is an author entry on a bibliographic record.
type WorkAuthor struct {
	// Name is the author display name.
	Name string `json:"name" yaml:"name"`

	// OpenAlexID is the author's OpenAlex identifier URL.
	OpenAlexID string `json:"openalex_id" yaml:"openalex_id"`
}

// WorkConcept is a subject classification attached to a bibliographic record.
type WorkConcept struct {
	// Name is the concept display name.
	Name string `json:"name" yaml:"name"`

	// OpenAlexID is the concept's OpenAlex identifier URL.
	OpenAlexID string `json:"openalex_id" yaml:"openalex_id"`

	// Level is the concept hierarchy depth (0 is a root discipline).
	Level int `json:"level" yaml:"level"`

	// Score is the classifier confidence for this concept.
	Score float64 `json:"score" yaml:"score"`
}

// Work represents a record returned by the bibliographic API.
type Work struct {
	// OpenAlexID is the canonical OpenAlex identifier URL (e.g. "https://openalex.org/W2096885696").
	OpenAlexID string `json:"openalex_id" yaml:"openalex_id"`

	// Title is the work title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the work authors in source order.
	Authors []WorkAuthor `json:"authors" yaml:"authors"`

	// PublicationYear is the year of publication, 0 when unknown.
	PublicationYear int `json:"publication_year" yaml:"publication_year"`

	// Journal is the display name of the primary publication venue.
	Journal string `json:"journal" yaml:"journal"`

	// DOI is the DOI URL as returned by the API, empty when absent.
	DOI string `json:"doi" yaml:"doi"`

	// Citations is the cited-by count.
	Citations int `json:"citations_count" yaml:"citations_count"`

	// Abstract is the abstract text reconstructed from the API's inverted index.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Concepts lists subject classifications, strongest first.
	Concepts []WorkConcept `json:"concepts" yaml:"concepts"`

	// Type is the work type (e.g. "article", "book-chapter").
	Type string `json:"type" yaml:"type"`

	// OpenAccess reports whether an open-access version exists.
	OpenAccess bool `json:"open_access" yaml:"open_access"`

	// TopicID is the catalog topic this work was collected for (0 outside a harvest).
	TopicID int `json:"topic_id,omitempty" yaml:"topic_id,omitempty"`

	// TopicTheme is the main theme of the catalog topic.
	TopicTheme string `json:"topic_theme,omitempty" yaml:"topic_theme,omitempty"`

	// SearchSource labels the harvest strategy that found this work
	// (e.g. "strategy_1_climate change mitigation Fea").
	SearchSource string `json:"search_source,omitempty" yaml:"search_source,omitempty"`
}
