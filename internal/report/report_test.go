// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/seedscout/pkg/types"
)

const longTitle = "The adaptive capacity of financial institutions for climate change mitigation in developing and emerging economies"

func sampleSummary() types.HarvestSummary {
	papers := []types.Paper{
		{
			Title:       longTitle,
			Authors:     "J Smith, A Jones - Nature Climate Change, 2019",
			Citations:   1542,
			Query:       "climate finance mitigation",
			Rank:        1,
			PatternUsed: "selector",
			TopicID:     1,
			TopicTheme:  "Finance and investment",
			SearchQuery: "climate finance mitigation",
		},
		{
			Title:       "Green bonds and the low-carbon transition",
			Authors:     "B Chen - Energy Policy, 2021",
			Citations:   87,
			Rank:        2,
			PatternUsed: "3",
			TopicID:     1,
			TopicTheme:  "Finance and investment",
			SearchQuery: "green bonds mitigation",
		},
	}
	works := []types.Work{
		{
			OpenAlexID:      "https://openalex.org/W111",
			Title:           "Climate finance architecture and the Paris agreement",
			Authors:         []types.WorkAuthor{{Name: "Maria Chen"}, {Name: "Tom Okafor"}},
			PublicationYear: 2021,
			Journal:         "Nature Climate Change",
			DOI:             "https://doi.org/10.1234/cf.2021",
			Citations:       900,
			Type:            "article",
			TopicID:         1,
			TopicTheme:      "Finance and investment",
			SearchSource:    "strategy_1_climate change mitigation F",
		},
	}

	return types.HarvestSummary{
		Chapter:     "IPCC AR7 Chapter 5: Enablers and Barriers",
		GeneratedAt: "2026-08-23 10:00:00",
		Results: []types.TopicResult{
			{
				TopicID:      1,
				Theme:        "Finance and investment",
				KeyConcepts:  []string{"climate finance"},
				Queries:      []string{"climate finance mitigation"},
				ScholarCount: 2,
				WorkCount:    1,
				TopPapers:    papers,
				TopWorks:     works,
				Papers:       papers,
				Works:        works,
			},
			{
				TopicID:      2,
				Theme:        "Behavioral and social change",
				ScholarCount: 0,
				WorkCount:    1,
				TopWorks: []types.Work{
					{Title: "Household energy behavior interventions", Citations: 55},
				},
				Works: []types.Work{
					{Title: "Household energy behavior interventions", Citations: 55},
				},
			},
		},
		TotalScholarPapers: 2,
		TotalWorks:         2,
	}
}

// --- TopicFilename ---

func TestTopicFilename(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "topic_01_results.json"},
		{9, "topic_09_results.json"},
		{15, "topic_15_results.json"},
	}
	for _, tt := range tests {
		if got := TopicFilename(tt.id); got != tt.want {
			t.Errorf("TopicFilename(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

// --- WriteTopicResult / LoadTopicResults ---

func TestWriteAndLoadTopicResults(t *testing.T) {
	dir := t.TempDir()
	summary := sampleSummary()

	// Write out of order; loading must come back in topic order.
	if err := WriteTopicResult(dir, summary.Results[1]); err != nil {
		t.Fatalf("WriteTopicResult: %v", err)
	}
	if err := WriteTopicResult(dir, summary.Results[0]); err != nil {
		t.Fatalf("WriteTopicResult: %v", err)
	}

	results, err := LoadTopicResults(dir)
	if err != nil {
		t.Fatalf("LoadTopicResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].TopicID != 1 || results[1].TopicID != 2 {
		t.Errorf("topic order = %d, %d, want 1, 2", results[0].TopicID, results[1].TopicID)
	}
	if results[0].Theme != "Finance and investment" {
		t.Errorf("Theme = %q", results[0].Theme)
	}
	if len(results[0].Papers) != 2 || results[0].Papers[0].Citations != 1542 {
		t.Errorf("papers did not round-trip: %+v", results[0].Papers)
	}
	if len(results[0].Works) != 1 || results[0].Works[0].OpenAlexID != "https://openalex.org/W111" {
		t.Errorf("works did not round-trip: %+v", results[0].Works)
	}
}

func TestLoadTopicResultsEmptyDir(t *testing.T) {
	results, err := LoadTopicResults(t.TempDir())
	if err != nil {
		t.Fatalf("LoadTopicResults: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestLoadTopicResultsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topic_03_results.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTopicResults(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "topic_03_results.json") {
		t.Errorf("error = %q, should name the offending file", err.Error())
	}
}

// --- Summarize ---

func TestSummarize(t *testing.T) {
	results := sampleSummary().Results
	summary := Summarize(results)

	if summary.TotalScholarPapers != 2 {
		t.Errorf("TotalScholarPapers = %d, want 2", summary.TotalScholarPapers)
	}
	if summary.TotalWorks != 2 {
		t.Errorf("TotalWorks = %d, want 2", summary.TotalWorks)
	}
	if summary.Chapter == "" {
		t.Error("Chapter is empty")
	}
	if _, err := time.Parse("2006-01-02 15:04:05", summary.GeneratedAt); err != nil {
		t.Errorf("GeneratedAt = %q, not in report timestamp format: %v", summary.GeneratedAt, err)
	}
	if len(summary.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(summary.Results))
	}
}

// --- WriteComprehensive ---

func TestWriteComprehensive(t *testing.T) {
	dir := t.TempDir()
	if err := WriteComprehensive(dir, sampleSummary()); err != nil {
		t.Fatalf("WriteComprehensive: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ComprehensiveFile))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc["search_timestamp"] != "2026-08-23 10:00:00" {
		t.Errorf("search_timestamp = %v", doc["search_timestamp"])
	}
	if doc["chapter"] != "IPCC AR7 Chapter 5: Enablers and Barriers" {
		t.Errorf("chapter = %v", doc["chapter"])
	}
	if doc["total_topics"] != float64(2) {
		t.Errorf("total_topics = %v, want 2", doc["total_topics"])
	}
	if doc["total_google_scholar_papers"] != float64(2) {
		t.Errorf("total_google_scholar_papers = %v, want 2", doc["total_google_scholar_papers"])
	}
	if doc["total_openalex_papers"] != float64(2) {
		t.Errorf("total_openalex_papers = %v, want 2", doc["total_openalex_papers"])
	}

	briefs, ok := doc["topics_summary"].([]any)
	if !ok || len(briefs) != 2 {
		t.Fatalf("topics_summary = %v, want 2 entries", doc["topics_summary"])
	}
	brief := briefs[0].(map[string]any)
	for _, key := range []string{"topic_id", "main_theme", "google_scholar_papers", "openalex_papers", "top_google_scholar_papers", "top_openalex_papers"} {
		if _, ok := brief[key]; !ok {
			t.Errorf("topics_summary entry missing key %q", key)
		}
	}

	all, ok := doc["all_results"].([]any)
	if !ok || len(all) != 2 {
		t.Fatalf("all_results = %v, want 2 entries", doc["all_results"])
	}
	full := all[0].(map[string]any)
	if _, ok := full["all_google_scholar_papers"]; !ok {
		t.Error("all_results entry missing full paper list")
	}
}

// --- WriteSummaryText ---

func TestWriteSummaryText(t *testing.T) {
	dir := t.TempDir()
	if err := WriteSummaryText(dir, sampleSummary()); err != nil {
		t.Fatalf("WriteSummaryText: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "IPCC AR7 Chapter 5: Enablers and Barriers - Seed Papers Summary Report") {
		t.Error("missing banner line")
	}
	if !strings.Contains(out, strings.Repeat("=", 80)) {
		t.Error("missing banner rule")
	}
	if !strings.Contains(out, "Generated: 2026-08-23 10:00:00") {
		t.Error("missing generation timestamp")
	}
	if !strings.Contains(out, "Total Topics: 2") {
		t.Error("missing topic total")
	}
	if !strings.Contains(out, "Topic 1: Finance and investment") {
		t.Error("missing topic heading")
	}
	if !strings.Contains(out, "  Google Scholar papers: 2") || !strings.Contains(out, "  OpenAlex papers: 1") {
		t.Error("missing per-source counts")
	}

	// Titles are cut at 80 characters with no ellipsis.
	want80 := string([]rune(longTitle)[:80])
	if !strings.Contains(out, want80) {
		t.Error("missing truncated title")
	}
	if strings.Contains(out, longTitle) {
		t.Error("long title should not appear in full")
	}
	if !strings.Contains(out, "(Citations: 1542)") {
		t.Error("missing citation count")
	}
	if !strings.Contains(out, "(Citations: 900, OpenAlex: https://openalex.org/W111)") {
		t.Error("missing work citation line")
	}
	// Works without an ID show N/A.
	if !strings.Contains(out, "OpenAlex: N/A") {
		t.Error("missing N/A for work without an ID")
	}
}

// --- WriteAll ---

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	var progress strings.Builder

	cfg := types.HarvestConfig{Excel: true, CSL: true}
	if err := WriteAll(dir, sampleSummary(), cfg, &progress); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for _, name := range []string{ComprehensiveFile, SummaryFile, WorkbookFile, CSLFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}

	out := progress.String()
	if !strings.Contains(out, "Comprehensive results saved to:") {
		t.Error("missing comprehensive progress line")
	}
	if !strings.Contains(out, "Summary report saved to:") {
		t.Error("missing summary progress line")
	}
	if !strings.Contains(out, "Contains 4 total papers across all topics") {
		t.Errorf("missing workbook paper count, output:\n%s", out)
	}
	if !strings.Contains(out, "Citation export saved to:") {
		t.Error("missing citation progress line")
	}
}

func TestWriteAllSkipsDisabledOutputs(t *testing.T) {
	dir := t.TempDir()
	var progress strings.Builder

	cfg := types.HarvestConfig{Excel: false, CSL: false}
	if err := WriteAll(dir, sampleSummary(), cfg, &progress); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, WorkbookFile)); !os.IsNotExist(err) {
		t.Error("workbook should not be written when disabled")
	}
	if _, err := os.Stat(filepath.Join(dir, CSLFile)); !os.IsNotExist(err) {
		t.Error("citation export should not be written when disabled")
	}
}
