// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	if err := WriteWorkbook(dir, sampleSummary()); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, WorkbookFile))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{sheetAllPapers, sheetSummary, sheetTopPapers}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheet[%d] = %q, want %q", i, sheets[i], name)
		}
	}

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s, %s): %v", sheet, ref, err)
		}
		return v
	}

	// All_Papers: header then scholar rows then work rows per topic.
	if got := cell(sheetAllPapers, "A1"); got != "Topic_ID" {
		t.Errorf("All_Papers A1 = %q, want Topic_ID", got)
	}
	if got := cell(sheetAllPapers, "M1"); got != "Rank" {
		t.Errorf("All_Papers M1 = %q, want Rank", got)
	}
	if got := cell(sheetAllPapers, "C2"); got != "Google Scholar" {
		t.Errorf("All_Papers C2 = %q, want Google Scholar", got)
	}
	if got := cell(sheetAllPapers, "F2"); got != "1542" {
		t.Errorf("All_Papers F2 = %q, want 1542", got)
	}
	// Scholar rows leave the bibliographic columns blank.
	if got := cell(sheetAllPapers, "G2"); got != "" {
		t.Errorf("All_Papers G2 = %q, want blank Journal for scraped paper", got)
	}
	// Row 4 is topic 1's work.
	if got := cell(sheetAllPapers, "C4"); got != "OpenAlex" {
		t.Errorf("All_Papers C4 = %q, want OpenAlex", got)
	}
	if got := cell(sheetAllPapers, "E4"); got != "Maria Chen, Tom Okafor" {
		t.Errorf("All_Papers E4 = %q, want joined author names", got)
	}
	if got := cell(sheetAllPapers, "J4"); got != "2021" {
		t.Errorf("All_Papers J4 = %q, want publication year", got)
	}
	if got := cell(sheetAllPapers, "L4"); got != "OpenAlex API" {
		t.Errorf("All_Papers L4 = %q, want OpenAlex API", got)
	}
	if got := cell(sheetAllPapers, "M4"); got != "0" {
		t.Errorf("All_Papers M4 = %q, want 0 rank for work rows", got)
	}
	// Row 5 is topic 2's work; it has no year, so the cell stays blank.
	if got := cell(sheetAllPapers, "J5"); got != "" {
		t.Errorf("All_Papers J5 = %q, want blank year", got)
	}

	// Summary: per-topic counts with total.
	if got := cell(sheetSummary, "A1"); got != "Topic_ID" {
		t.Errorf("Summary A1 = %q", got)
	}
	if got := cell(sheetSummary, "C2"); got != "2" {
		t.Errorf("Summary C2 = %q, want 2 scholar papers", got)
	}
	if got := cell(sheetSummary, "E2"); got != "3" {
		t.Errorf("Summary E2 = %q, want total 3", got)
	}
	if got := cell(sheetSummary, "B3"); got != "Behavioral and social change" {
		t.Errorf("Summary B3 = %q", got)
	}

	// Top_Papers: ranked 1..3 per source per topic.
	if got := cell(sheetTopPapers, "D2"); got != "1" {
		t.Errorf("Top_Papers D2 = %q, want rank 1", got)
	}
	if got := cell(sheetTopPapers, "C2"); got != "Google Scholar" {
		t.Errorf("Top_Papers C2 = %q", got)
	}
	if got := cell(sheetTopPapers, "F2"); got != "1542" {
		t.Errorf("Top_Papers F2 = %q, want citations", got)
	}
}

func TestWriteWorkbookEmptySummary(t *testing.T) {
	dir := t.TempDir()
	var empty = sampleSummary()
	empty.Results = nil

	// Headers only; still a valid workbook.
	if err := WriteWorkbook(dir, empty); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, WorkbookFile))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	v, err := f.GetCellValue(sheetAllPapers, "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "" {
		t.Errorf("A2 = %q, want empty data area", v)
	}
}
