// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pdiddy/seedscout/pkg/types"
)

// maxEditDistance treats near-identical titles as the same paper. The
// scrape layers reassemble titles from markup, so the same paper can
// come back with a stray period or a dropped character.
const maxEditDistance = 2

// Dedupe drops papers whose normalized title repeats an earlier entry,
// exactly or within a small edit distance. Order is preserved, so the
// first occurrence wins. Titles at or below the minimum length are
// dropped outright.
func Dedupe(papers []types.Paper) []types.Paper {
	seen := make([]string, 0, len(papers))
	unique := make([]types.Paper, 0, len(papers))
	for _, paper := range papers {
		title := strings.ToLower(strings.TrimSpace(paper.Title))
		if len(title) <= minTitleLen || isDuplicate(title, seen) {
			continue
		}
		seen = append(seen, title)
		unique = append(unique, paper)
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

// SortByCitations orders papers by citation count, most cited first.
// The sort is stable so equally cited papers keep their scrape order.
func SortByCitations(papers []types.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Citations > papers[j].Citations
	})
}

// FormatTable writes papers as a human-readable table to w.
func FormatTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-30s  %-9s  %s\n",
		"Rank", "Title", "Authors", "Citations", "Parse")
	fmt.Fprintln(w, strings.Repeat("-", 115))

	for i, paper := range papers {
		title := paper.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-30s  %-9d  %s\n",
			i+1, title, truncate(paper.Authors, 30), paper.Citations, paper.PatternUsed)
	}

	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
