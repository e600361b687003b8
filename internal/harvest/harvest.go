// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest drives the full seed-paper discovery run across the
// topic catalog and both sources. The run is strictly sequential: both
// upstream sources throttle aggressive clients.
package harvest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/seedscout/internal/openalex"
	"github.com/pdiddy/seedscout/internal/report"
	"github.com/pdiddy/seedscout/internal/scholar"
	"github.com/pdiddy/seedscout/internal/topics"
	"github.com/pdiddy/seedscout/pkg/types"
)

// Harvester runs the discovery pass. Progress banners go to Out;
// diagnostics go to the logger.
type Harvester struct {
	Scholar  *scholar.Searcher
	OpenAlex *openalex.Client
	Config   types.Config
	Out      io.Writer
	Logger   zerolog.Logger
}

// Run harvests every catalog topic (or just Config.Harvest.OnlyTopic
// when set) and writes all reports under the output dir. Individual
// query failures are tolerated; a cancelled context aborts the run
// between requests. The returned summary is also persisted.
func (h *Harvester) Run(ctx context.Context) (*types.HarvestSummary, error) {
	catalog, err := h.selectTopics()
	if err != nil {
		return nil, err
	}
	outDir := h.Config.Harvest.OutputDir

	fmt.Fprintf(h.Out, "%s - Seed Paper Search\n", topics.Chapter)
	fmt.Fprintln(h.Out, strings.Repeat("=", 80))
	if h.Config.Scholar.Enabled {
		fmt.Fprintln(h.Out, "Note: Google Scholar searches are limited due to anti-bot measures.")
		fmt.Fprintln(h.Out, "Focusing on OpenAlex searches for reliable results.")
	} else {
		fmt.Fprintln(h.Out, "Google Scholar scraping is disabled; searching OpenAlex only.")
	}
	fmt.Fprintf(h.Out, "Starting search for %d topics...\n\n", len(catalog))

	summary := &types.HarvestSummary{Chapter: topics.Chapter}
	for _, topic := range catalog {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fmt.Fprintf(h.Out, "\n%s\n", strings.Repeat("=", 60))
		fmt.Fprintf(h.Out, "Processing Topic %d: %s\n", topic.ID, topic.Theme)
		fmt.Fprintln(h.Out, strings.Repeat("=", 60))

		papers, err := h.scholarPass(ctx, topic)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(h.Out, "  Google Scholar: Found %d papers\n", len(papers))

		works, err := h.openAlexPass(ctx, topic)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(h.Out, "  OpenAlex: Found %d papers\n", len(works))

		result := h.buildResult(topic, papers, works)
		if err := report.WriteTopicResult(outDir, result); err != nil {
			return nil, fmt.Errorf("saving topic %d results: %w", topic.ID, err)
		}
		fmt.Fprintf(h.Out, "Topic %d results saved to: %s\n", topic.ID, report.TopicFilename(topic.ID))
		fmt.Fprintf(h.Out, "Topic %d completed: %d Google Scholar papers, %d OpenAlex papers\n",
			topic.ID, len(papers), len(works))

		summary.Results = append(summary.Results, result)
		summary.TotalScholarPapers += len(papers)
		summary.TotalWorks += len(works)
	}

	summary.GeneratedAt = time.Now().Format(report.TimeFormat)
	fmt.Fprintln(h.Out)
	if err := report.WriteAll(outDir, *summary, h.Config.Harvest, h.Out); err != nil {
		return nil, err
	}

	fmt.Fprintf(h.Out, "\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintln(h.Out, "SEARCH COMPLETED SUCCESSFULLY!")
	fmt.Fprintf(h.Out, "Total topics processed: %d\n", len(summary.Results))
	fmt.Fprintf(h.Out, "Total OpenAlex papers found: %d\n", summary.TotalWorks)
	fmt.Fprintf(h.Out, "Results saved in: %s/\n", outDir)
	fmt.Fprintln(h.Out, strings.Repeat("=", 80))

	return summary, nil
}

// selectTopics resolves the catalog subset for this run.
func (h *Harvester) selectTopics() ([]types.Topic, error) {
	if id := h.Config.Harvest.OnlyTopic; id > 0 {
		topic, err := topics.Get(id)
		if err != nil {
			return nil, err
		}
		return []types.Topic{topic}, nil
	}
	return topics.All(), nil
}

// scholarPass runs every query of the topic against the scrape source
// and returns the deduplicated papers, most cited first. Failed queries
// are reported and skipped; the scraper is expected to be flaky.
func (h *Harvester) scholarPass(ctx context.Context, topic types.Topic) ([]types.Paper, error) {
	if !h.Config.Scholar.Enabled {
		return nil, nil
	}

	fmt.Fprintf(h.Out, "Searching Google Scholar with %d queries...\n", len(topic.Queries))
	var all []types.Paper
	for i, query := range topic.Queries {
		fmt.Fprintf(h.Out, "  Query %d/%d: %s\n", i+1, len(topic.Queries), query)

		papers, err := h.Scholar.Search(ctx, query, h.Config.Scholar.MaxResults)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(h.Out, "    Error searching query %q: %v\n", query, err)
			h.Logger.Warn().Err(err).Str("query", query).Msg("scholar query failed")
			continue
		}

		for j := range papers {
			papers[j].TopicID = topic.ID
			papers[j].TopicTheme = topic.Theme
			papers[j].SearchQuery = query
		}
		all = append(all, papers...)
		fmt.Fprintf(h.Out, "    Found %d papers\n", len(papers))
	}

	unique := scholar.Dedupe(all)
	scholar.SortByCitations(unique)
	fmt.Fprintf(h.Out, "Total unique Google Scholar papers found: %d\n", len(unique))
	return unique, nil
}

// openAlexPass runs the topic's strategy queries against the API,
// splitting the configured result budget evenly across strategies, and
// returns the deduplicated works, most cited first.
func (h *Harvester) openAlexPass(ctx context.Context, topic types.Topic) ([]types.Work, error) {
	fmt.Fprintf(h.Out, "Searching OpenAlex for top papers on: %s\n", topic.Theme)

	strategies := topics.Strategies(topic)
	perStrategy := h.Config.OpenAlex.MaxResults / len(strategies)
	if perStrategy <= 0 {
		perStrategy = 1
	}

	var all []types.Work
	for i, strategy := range strategies {
		fmt.Fprintf(h.Out, "  Strategy %d: %s\n", i+1, strategy)

		works, err := h.OpenAlex.Search(ctx, strategy, perStrategy)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(h.Out, "    Error with strategy %d: %v\n", i+1, err)
			h.Logger.Warn().Err(err).Str("strategy", strategy).Msg("openalex strategy failed")
			continue
		}

		label := strategyLabel(i+1, strategy)
		for j := range works {
			works[j].TopicID = topic.ID
			works[j].TopicTheme = topic.Theme
			works[j].SearchSource = label
		}
		all = append(all, works...)
		fmt.Fprintf(h.Out, "    Found %d papers\n", len(works))
	}

	unique := openalex.Dedupe(all)
	openalex.SortByCitations(unique)
	fmt.Fprintf(h.Out, "Total unique OpenAlex papers found: %d\n", len(unique))
	return unique, nil
}

// buildResult assembles the per-topic record, keeping the configured
// top-N of each source (default 5).
func (h *Harvester) buildResult(topic types.Topic, papers []types.Paper, works []types.Work) types.TopicResult {
	topN := h.Config.Harvest.TopPapers
	if topN <= 0 {
		topN = 5
	}

	result := types.TopicResult{
		TopicID:      topic.ID,
		Theme:        topic.Theme,
		KeyConcepts:  topic.KeyConcepts,
		Queries:      topic.Queries,
		ScholarCount: len(papers),
		WorkCount:    len(works),
		TopPapers:    papers,
		TopWorks:     works,
		Papers:       papers,
		Works:        works,
	}
	if len(papers) > topN {
		result.TopPapers = papers[:topN]
	}
	if len(works) > topN {
		result.TopWorks = works[:topN]
	}
	return result
}

// strategyLabel tags works with the strategy that found them. Labels
// carry the strategy position and the first 30 characters of the query.
func strategyLabel(i int, strategy string) string {
	runes := []rune(strategy)
	if len(runes) > 30 {
		strategy = string(runes[:30])
	}
	return fmt.Sprintf("strategy_%d_%s", i, strategy)
}
