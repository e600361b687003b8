// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pdiddy/seedscout/pkg/types"
)

const (
	// minTitleLen filters out titles too short to compare meaningfully.
	minTitleLen = 10
	// maxEditDistance treats near-identical titles as the same work
	// (catches trailing punctuation and single-character OCR noise).
	maxEditDistance = 2
)

// Dedupe drops works whose normalized title repeats an earlier entry,
// exactly or within a small edit distance. Order is preserved, so the
// first occurrence wins. Titles at or below the minimum length are
// dropped outright.
func Dedupe(works []types.Work) []types.Work {
	seen := make([]string, 0, len(works))
	unique := make([]types.Work, 0, len(works))
	for _, work := range works {
		title := strings.ToLower(strings.TrimSpace(work.Title))
		if len(title) <= minTitleLen || isDuplicate(title, seen) {
			continue
		}
		seen = append(seen, title)
		unique = append(unique, work)
	}
	return unique
}

func isDuplicate(title string, seen []string) bool {
	for _, s := range seen {
		if levenshtein.ComputeDistance(s, title) <= maxEditDistance {
			return true
		}
	}
	return false
}

// SortByCitations orders works by citation count, most cited first.
// The sort is stable so equally cited works keep their API order.
func SortByCitations(works []types.Work) {
	sort.SliceStable(works, func(i, j int) bool {
		return works[i].Citations > works[j].Citations
	})
}

// FormatTable writes works as a human-readable table to w.
func FormatTable(works []types.Work, w io.Writer) {
	if len(works) == 0 {
		fmt.Fprintln(w, "No works found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-9s  %s\n",
		"Rank", "Title", "Authors", "Year", "Citations", "OpenAlex ID")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, work := range works {
		title := work.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		year := ""
		if work.PublicationYear > 0 {
			year = strconv.Itoa(work.PublicationYear)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-9d  %s\n",
			i+1, title, formatAuthors(work.Authors), year, work.Citations, shortID(work.OpenAlexID))
	}

	fmt.Fprintf(w, "\n%d works\n", len(works))
}

func formatAuthors(authors []types.WorkAuthor) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0].Name, 20)
	default:
		return truncate(authors[0].Name, 14) + " et al."
	}
}

// shortID trims the https://openalex.org/ prefix for display.
func shortID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
