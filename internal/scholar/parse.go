// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/pdiddy/seedscout/pkg/types"
)

// minTitleLen filters out navigation fragments and footer links that
// survive the HTML cleanup. Real paper titles are longer.
const minTitleLen = 10

var (
	citedByRe     = regexp.MustCompile(`(?i)Cited by (\d+)`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	namedEntityRe = regexp.MustCompile(`&[a-zA-Z]+;`)
	numEntityRe   = regexp.MustCompile(`&#\d+;`)
	wsRe          = regexp.MustCompile(`\s+`)
	leadingTagRe  = regexp.MustCompile(`^\s*(\[[A-Z]+\]\s*)+`)
)

// regexPattern pairs a title expression with an author expression. The
// ladder runs from the current page layout down to very loose shapes so
// markup changes degrade results instead of zeroing them.
type regexPattern struct {
	paper  *regexp.Regexp
	author *regexp.Regexp
}

var patternLadder = []regexPattern{
	{regexp.MustCompile(`(?is)<h3 class="gs_rt">.*?<a.*?>(.*?)</a>.*?</h3>`), regexp.MustCompile(`(?is)<div class="gs_a">(.*?)</div>`)},
	{regexp.MustCompile(`(?is)<h3 class="gs_rt">(.*?)</h3>`), regexp.MustCompile(`(?is)<div class="gs_a">(.*?)</div>`)},
	{regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`), regexp.MustCompile(`(?is)<div[^>]*class="gs_a"[^>]*>(.*?)</div>`)},
	{regexp.MustCompile(`(?is)<h3[^>]*>.*?<a[^>]*>(.*?)</a>.*?</h3>`), regexp.MustCompile(`(?is)<div[^>]*class="gs_a"[^>]*>(.*?)</div>`)},
	{regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`), regexp.MustCompile(`(?is)<div[^>]*>(.*?)</div>`)},
	{regexp.MustCompile(`(?is)<div[^>]*class="gs_rt"[^>]*>.*?<a[^>]*>(.*?)</a>.*?</div>`), regexp.MustCompile(`(?is)<div[^>]*class="gs_a"[^>]*>(.*?)</div>`)},
	{regexp.MustCompile(`(?is)<div[^>]*class="gs_rt"[^>]*>(.*?)</div>`), regexp.MustCompile(`(?is)<div[^>]*class="gs_a"[^>]*>(.*?)</div>`)},
}

// academicWords marks lines that plausibly contain a paper title during
// aggressive parsing.
var academicWords = []string{
	"climate", "change", "mitigation", "policy", "analysis", "study", "review",
	"development", "technology", "finance", "governance", "social", "economic",
	"environmental", "indigenous", "political", "international", "cooperation",
	"security", "conflict", "peace", "labor", "transition", "justice",
}

// parseResults extracts papers from a results page. Three layers run in
// order until one produces papers: structured selectors, the regex
// ladder, then aggressive line scanning.
func parseResults(html []byte, query string, maxResults int, logger zerolog.Logger) []types.Paper {
	if papers := parseSelectors(html, query, maxResults); len(papers) > 0 {
		return papers
	}
	logger.Debug().Str("query", query).Msg("selector parse found nothing, trying regex ladder")

	if papers := parseRegexLadder(html, query, maxResults, logger); len(papers) > 0 {
		return papers
	}
	logger.Debug().Str("query", query).Msg("regex ladder found nothing, trying aggressive parse")

	return parseAggressive(html, query, maxResults)
}

// parseSelectors walks the page's result blocks (.gs_ri) with CSS
// selectors: title from the .gs_rt heading, byline from .gs_a, citation
// count from the "Cited by N" footer link.
func parseSelectors(html []byte, query string, maxResults int) []types.Paper {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	var papers []types.Paper
	doc.Find(".gs_ri").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(papers) >= maxResults {
			return false
		}

		title := strings.TrimSpace(sel.Find(".gs_rt a").First().Text())
		if title == "" {
			// Citation-only entries have no link; take the heading text
			// and drop the [CITATION]-style markers.
			title = leadingTagRe.ReplaceAllString(strings.TrimSpace(sel.Find(".gs_rt").First().Text()), "")
		}
		title = CleanText(title)
		if len(title) <= minTitleLen {
			return true
		}

		citations := 0
		sel.Find(".gs_fl a").Each(func(_ int, link *goquery.Selection) {
			if m := citedByRe.FindStringSubmatch(link.Text()); m != nil {
				if n, convErr := strconv.Atoi(m[1]); convErr == nil {
					citations = n
				}
			}
		})

		papers = append(papers, types.Paper{
			Title:       title,
			Authors:     CleanText(sel.Find(".gs_a").First().Text()),
			Citations:   citations,
			Query:       query,
			Rank:        len(papers) + 1,
			PatternUsed: "selector",
		})
		return true
	})
	return papers
}

// parseRegexLadder tries each pattern pair in order and stops at the
// first one that yields papers. Citation counts pair with titles by
// position; the page lists them in result order.
func parseRegexLadder(html []byte, query string, maxResults int, logger zerolog.Logger) []types.Paper {
	text := string(html)
	citationMatches := citedByRe.FindAllStringSubmatch(text, -1)

	for idx, pattern := range patternLadder {
		paperMatches := pattern.paper.FindAllStringSubmatch(text, -1)
		if len(paperMatches) == 0 {
			continue
		}
		authorMatches := pattern.author.FindAllStringSubmatch(text, -1)

		var papers []types.Paper
		for i := 0; i < len(paperMatches) && i < maxResults; i++ {
			title := CleanText(paperMatches[i][1])
			if len(title) <= minTitleLen {
				continue
			}

			var authors string
			if i < len(authorMatches) {
				authors = CleanText(authorMatches[i][1])
			}
			citations := 0
			if i < len(citationMatches) {
				citations, _ = strconv.Atoi(citationMatches[i][1])
			}

			papers = append(papers, types.Paper{
				Title:       title,
				Authors:     authors,
				Citations:   citations,
				Query:       query,
				Rank:        i + 1,
				PatternUsed: strconv.Itoa(idx + 1),
			})
		}

		if len(papers) > 0 {
			logger.Debug().Int("pattern", idx+1).Int("papers", len(papers)).Msg("regex ladder matched")
			return papers
		}
	}
	return nil
}

// parseAggressive is the last resort when the page shape is unrecognized:
// any line of plausible title length mentioning an academic keyword
// becomes a candidate with no byline and zero citations.
func parseAggressive(html []byte, query string, maxResults int) []types.Paper {
	var papers []types.Paper
	for _, line := range strings.Split(string(html), "\n") {
		if len(papers) >= maxResults {
			break
		}
		line = strings.TrimSpace(line)
		if len(line) <= 20 || len(line) >= 200 {
			continue
		}

		lower := strings.ToLower(line)
		matched := false
		for _, word := range academicWords {
			if strings.Contains(lower, word) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		papers = append(papers, types.Paper{
			Title:       CleanText(line),
			Authors:     "Unknown",
			Citations:   0,
			Query:       query,
			Rank:        len(papers) + 1,
			PatternUsed: "aggressive",
		})
	}
	return papers
}

// CleanText strips HTML tags and entities and collapses whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = tagRe.ReplaceAllString(text, "")
	text = namedEntityRe.ReplaceAllString(text, " ")
	text = numEntityRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
}
