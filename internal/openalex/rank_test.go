// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"strings"
	"testing"

	"github.com/pdiddy/seedscout/pkg/types"
)

// --- Dedupe ---

func TestDedupe(t *testing.T) {
	works := []types.Work{
		{OpenAlexID: "W1", Title: "Carbon pricing and industrial decarbonization"},
		{OpenAlexID: "W2", Title: "carbon pricing and industrial decarbonization"}, // case dup
		{OpenAlexID: "W3", Title: "Carbon pricing and industrial decarbonization."}, // near dup (edit distance 1)
		{OpenAlexID: "W4", Title: "Behavioral barriers to energy transitions"},
		{OpenAlexID: "W5", Title: "short"}, // below minimum length
		{OpenAlexID: "W6", Title: "  Behavioral barriers to energy transitions  "},
	}

	unique := Dedupe(works)
	if len(unique) != 2 {
		t.Fatalf("len(unique) = %d, want 2", len(unique))
	}
	if unique[0].OpenAlexID != "W1" {
		t.Errorf("unique[0] = %s, want W1 (first occurrence wins)", unique[0].OpenAlexID)
	}
	if unique[1].OpenAlexID != "W4" {
		t.Errorf("unique[1] = %s, want W4", unique[1].OpenAlexID)
	}
}

func TestDedupeDistantTitlesKept(t *testing.T) {
	works := []types.Work{
		{OpenAlexID: "W1", Title: "Carbon taxes in developing economies"},
		{OpenAlexID: "W2", Title: "Carbon taxes in developed economies!!"},
	}
	// Edit distance is 5, well past the near-duplicate cutoff.
	unique := Dedupe(works)
	if len(unique) != 2 {
		t.Errorf("len(unique) = %d, want 2 distinct works", len(unique))
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("Dedupe(nil) = %v, want empty", got)
	}
}

// --- SortByCitations ---

func TestSortByCitations(t *testing.T) {
	works := []types.Work{
		{OpenAlexID: "W1", Citations: 10},
		{OpenAlexID: "W2", Citations: 300},
		{OpenAlexID: "W3", Citations: 50},
	}
	SortByCitations(works)
	wantOrder := []string{"W2", "W3", "W1"}
	for i, want := range wantOrder {
		if works[i].OpenAlexID != want {
			t.Errorf("works[%d] = %s, want %s", i, works[i].OpenAlexID, want)
		}
	}
}

func TestSortByCitationsStable(t *testing.T) {
	works := []types.Work{
		{OpenAlexID: "W1", Citations: 50},
		{OpenAlexID: "W2", Citations: 50},
		{OpenAlexID: "W3", Citations: 50},
	}
	SortByCitations(works)
	for i, want := range []string{"W1", "W2", "W3"} {
		if works[i].OpenAlexID != want {
			t.Errorf("works[%d] = %s, want %s (ties keep input order)", i, works[i].OpenAlexID, want)
		}
	}
}

// --- FormatTable ---

func TestFormatTable(t *testing.T) {
	works := []types.Work{
		{
			OpenAlexID:      "https://openalex.org/W123",
			Title:           "A very long title that should be cut off because it exceeds the sixty character column width",
			Authors:         []types.WorkAuthor{{Name: "Maria Chen"}, {Name: "Tom Okafor"}},
			PublicationYear: 2021,
			Citations:       842,
		},
		{
			OpenAlexID: "https://openalex.org/W456",
			Title:      "Short title",
			Citations:  12,
		},
	}

	var sb strings.Builder
	FormatTable(works, &sb)
	out := sb.String()

	if !strings.Contains(out, "Rank") || !strings.Contains(out, "Citations") {
		t.Error("output missing table header")
	}
	if !strings.Contains(out, "...") {
		t.Error("long title should be truncated with ellipsis")
	}
	if !strings.Contains(out, "Maria Chen et al.") {
		t.Errorf("output should abbreviate multiple authors:\n%s", out)
	}
	if !strings.Contains(out, "W123") || strings.Contains(out, "https://openalex.org/W123") {
		t.Error("OpenAlex ID should be displayed without URL prefix")
	}
	if !strings.Contains(out, "2 works") {
		t.Error("output missing result count")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var sb strings.Builder
	FormatTable(nil, &sb)
	if !strings.Contains(sb.String(), "No works found.") {
		t.Errorf("output = %q, want no-results message", sb.String())
	}
}
