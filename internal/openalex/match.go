// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"strings"

	"github.com/pdiddy/seedscout/pkg/types"
)

// Match score weights. Title overlap dominates; citation counts only
// break ties between works with near-identical titles.
const (
	titleWeight    = 0.7
	citationWeight = 0.3
)

// TitleSimilarity returns the Jaccard similarity of the two titles'
// word sets, case-insensitive. Empty titles score 0.
func TitleSimilarity(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// CitationSimilarity compares two citation counts on a 0..1 scale.
// Two uncited works are considered identical; an uncited work never
// matches a cited one.
func CitationSimilarity(a, b int) float64 {
	switch {
	case a == 0 && b == 0:
		return 1
	case a == 0 || b == 0:
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	max := a
	if b > max {
		max = b
	}
	return 1 - float64(diff)/float64(max)
}

// MatchScore combines title and citation similarity into a single
// 0..1 confidence that the work is the scraped paper.
func MatchScore(paper types.Paper, work types.Work) float64 {
	return titleWeight*TitleSimilarity(paper.Title, work.Title) +
		citationWeight*CitationSimilarity(paper.Citations, work.Citations)
}

// BestMatch returns the candidate with the highest match score, or nil
// when no candidate scores above zero.
func BestMatch(paper types.Paper, candidates []types.Work) (*types.Work, float64) {
	var best *types.Work
	bestScore := 0.0
	for i := range candidates {
		if score := MatchScore(paper, candidates[i]); score > bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}
	return best, bestScore
}

// Annotate looks up each scraped paper on OpenAlex by title and attaches
// the candidate works and the best match. Lookup failures leave the
// paper unannotated and move on; a cancelled context stops the pass and
// returns whatever was processed so far plus the untouched remainder.
func (c *Client) Annotate(ctx context.Context, papers []types.Paper, maxMatches int) []types.Paper {
	if maxMatches <= 0 {
		maxMatches = 3
	}

	annotated := make([]types.Paper, 0, len(papers))
	for i, paper := range papers {
		works, err := c.Search(ctx, paper.Title, maxMatches)
		if err != nil {
			if ctx.Err() != nil {
				return append(annotated, papers[i:]...)
			}
			c.Logger.Warn().Err(err).Str("title", paper.Title).Msg("OpenAlex match lookup failed")
			annotated = append(annotated, paper)
			continue
		}

		paper.Matches = works
		if best, score := BestMatch(paper, works); best != nil {
			paper.BestMatch = best
			paper.OpenAlexID = best.OpenAlexID
			c.Logger.Debug().
				Str("title", paper.Title).
				Str("openalex_id", best.OpenAlexID).
				Float64("score", score).
				Msg("matched paper to OpenAlex work")
		}
		annotated = append(annotated, paper)
	}
	return annotated
}
