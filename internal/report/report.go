// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes harvest results to disk: per-topic JSON, the
// comprehensive run file, a plain-text summary, an Excel workbook, and
// a CSL-JSON bibliography. File shapes are stable; downstream notebooks
// read them by key.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/seedscout/internal/topics"
	"github.com/pdiddy/seedscout/pkg/types"
)

// Output file names under the report directory.
const (
	ComprehensiveFile = "comprehensive_results.json"
	SummaryFile       = "summary_report.txt"
	WorkbookFile      = "seed_papers.xlsx"
	CSLFile           = "seed_papers.csl.json"
)

// TimeFormat is the timestamp layout embedded in the JSON and text
// reports.
const TimeFormat = "2006-01-02 15:04:05"

// TopicFilename returns the per-topic results file name, zero-padded so
// directory listings sort in catalog order.
func TopicFilename(topicID int) string {
	return fmt.Sprintf("topic_%02d_results.json", topicID)
}

// WriteTopicResult persists one topic's results as indented JSON.
func WriteTopicResult(dir string, result types.TopicResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling topic %d results: %w", result.TopicID, err)
	}
	return os.WriteFile(filepath.Join(dir, TopicFilename(result.TopicID)), data, 0o644)
}

// LoadTopicResults reads every per-topic results file under dir, in
// topic order. Missing files are not an error; an empty dir yields an
// empty slice.
func LoadTopicResults(dir string) ([]types.TopicResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "topic_*_results.json"))
	if err != nil {
		return nil, fmt.Errorf("listing topic results: %w", err)
	}

	var results []types.TopicResult
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
		}
		var result types.TopicResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].TopicID < results[j].TopicID
	})
	return results, nil
}

// Summarize rebuilds a run summary from per-topic results, stamped with
// the current time.
func Summarize(results []types.TopicResult) types.HarvestSummary {
	summary := types.HarvestSummary{
		Chapter:     topics.Chapter,
		GeneratedAt: time.Now().Format(TimeFormat),
		Results:     results,
	}
	for _, r := range results {
		summary.TotalScholarPapers += r.ScholarCount
		summary.TotalWorks += r.WorkCount
	}
	return summary
}

// comprehensiveReport is the top-level shape of comprehensive_results.json:
// run totals, a per-topic brief, and the full per-topic results.
type comprehensiveReport struct {
	SearchTimestamp    string              `json:"search_timestamp"`
	Chapter            string              `json:"chapter"`
	TotalTopics        int                 `json:"total_topics"`
	TotalScholarPapers int                 `json:"total_google_scholar_papers"`
	TotalWorks         int                 `json:"total_openalex_papers"`
	TopicsSummary      []topicBrief        `json:"topics_summary"`
	AllResults         []types.TopicResult `json:"all_results"`
}

type topicBrief struct {
	TopicID      int           `json:"topic_id"`
	Theme        string        `json:"main_theme"`
	ScholarCount int           `json:"google_scholar_papers"`
	WorkCount    int           `json:"openalex_papers"`
	TopPapers    []types.Paper `json:"top_google_scholar_papers"`
	TopWorks     []types.Work  `json:"top_openalex_papers"`
}

// WriteComprehensive writes the all-topics results file.
func WriteComprehensive(dir string, summary types.HarvestSummary) error {
	briefs := make([]topicBrief, 0, len(summary.Results))
	for _, r := range summary.Results {
		briefs = append(briefs, topicBrief{
			TopicID:      r.TopicID,
			Theme:        r.Theme,
			ScholarCount: r.ScholarCount,
			WorkCount:    r.WorkCount,
			TopPapers:    r.TopPapers,
			TopWorks:     r.TopWorks,
		})
	}

	data, err := json.MarshalIndent(comprehensiveReport{
		SearchTimestamp:    summary.GeneratedAt,
		Chapter:            summary.Chapter,
		TotalTopics:        len(summary.Results),
		TotalScholarPapers: summary.TotalScholarPapers,
		TotalWorks:         summary.TotalWorks,
		TopicsSummary:      briefs,
		AllResults:         summary.Results,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling comprehensive results: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ComprehensiveFile), data, 0o644)
}

// WriteSummaryText writes the human-readable per-topic summary. Titles
// are cut to 80 characters; the top three papers per source appear with
// their citation counts.
func WriteSummaryText(dir string, summary types.HarvestSummary) error {
	lines := []string{
		summary.Chapter + " - Seed Papers Summary Report",
		strings.Repeat("=", 80),
		"Generated: " + summary.GeneratedAt,
		fmt.Sprintf("Total Topics: %d", len(summary.Results)),
		"",
		"TOPIC SUMMARIES:",
		"",
	}

	for _, r := range summary.Results {
		lines = append(lines,
			fmt.Sprintf("Topic %d: %s", r.TopicID, r.Theme),
			fmt.Sprintf("  Google Scholar papers: %d", r.ScholarCount),
			fmt.Sprintf("  OpenAlex papers: %d", r.WorkCount),
			"  Top Google Scholar papers by citations:",
		)
		for i, p := range topPapers(r.TopPapers, 3) {
			lines = append(lines, fmt.Sprintf("    %d. %s (Citations: %d)",
				i+1, truncateRunes(p.Title, 80), p.Citations))
		}

		lines = append(lines, "  Top OpenAlex papers by citations:")
		for i, w := range topWorks(r.TopWorks, 3) {
			id := w.OpenAlexID
			if id == "" {
				id = "N/A"
			}
			lines = append(lines, fmt.Sprintf("    %d. %s (Citations: %d, OpenAlex: %s)",
				i+1, truncateRunes(w.Title, 80), w.Citations, id))
		}
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(filepath.Join(dir, SummaryFile), []byte(content), 0o644)
}

// WriteAll writes every run-level output: comprehensive JSON, text
// summary, and (per config) the workbook and citation export. Progress
// lines go to w; the first failure aborts.
func WriteAll(dir string, summary types.HarvestSummary, cfg types.HarvestConfig, w io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	if err := WriteComprehensive(dir, summary); err != nil {
		return err
	}
	fmt.Fprintf(w, "Comprehensive results saved to: %s\n", ComprehensiveFile)

	if err := WriteSummaryText(dir, summary); err != nil {
		return err
	}
	fmt.Fprintf(w, "Summary report saved to: %s\n", SummaryFile)

	if cfg.Excel {
		fmt.Fprintln(w, "Creating joint Excel workbook...")
		if err := WriteWorkbook(dir, summary); err != nil {
			return err
		}
		fmt.Fprintf(w, "Workbook created: %s\n", WorkbookFile)
		fmt.Fprintf(w, "Contains %d total papers across all topics\n",
			summary.TotalScholarPapers+summary.TotalWorks)
	}

	if cfg.CSL {
		if err := WriteCSL(dir, summary); err != nil {
			return err
		}
		fmt.Fprintf(w, "Citation export saved to: %s\n", CSLFile)
	}
	return nil
}

func topPapers(papers []types.Paper, n int) []types.Paper {
	if len(papers) <= n {
		return papers
	}
	return papers[:n]
}

func topWorks(works []types.Work, n int) []types.Work {
	if len(works) <= n {
		return works
	}
	return works[:n]
}

// truncateRunes cuts s to at most n runes, with no ellipsis. Report
// consumers expect plain prefixes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
