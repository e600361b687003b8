// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/seedscout/pkg/types"
)

// Sheet names in the workbook.
const (
	sheetAllPapers = "All_Papers"
	sheetSummary   = "Summary"
	sheetTopPapers = "Top_Papers"
)

// Source labels in the workbook rows.
const (
	sourceScholar  = "Google Scholar"
	sourceOpenAlex = "OpenAlex"
)

var (
	allPapersHeader = []string{
		"Topic_ID", "Main_Theme", "Source", "Title", "Authors", "Citations",
		"Journal", "DOI", "OpenAlex_ID", "Publication_Year", "Search_Query",
		"Pattern_Used", "Rank",
	}
	summaryHeader = []string{
		"Topic_ID", "Main_Theme", "Google_Scholar_Papers", "OpenAlex_Papers",
		"Total_Papers",
	}
	topPapersHeader = []string{
		"Topic_ID", "Main_Theme", "Source", "Rank", "Title", "Citations",
		"Authors",
	}
)

// WriteWorkbook writes the three-sheet workbook: every paper from both
// sources, per-topic counts, and the top three per source per topic.
// All_Papers rows come out ordered by topic, then source (Google
// Scholar before OpenAlex), then citations descending, because each
// per-topic list is already citation-sorted.
func WriteWorkbook(dir string, summary types.HarvestSummary) error {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetAllPapers); err != nil {
		return fmt.Errorf("renaming workbook sheet: %w", err)
	}
	if err := writeRows(f, sheetAllPapers, allPapersRows(summary)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating %s sheet: %w", sheetSummary, err)
	}
	if err := writeRows(f, sheetSummary, summaryRows(summary)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetTopPapers); err != nil {
		return fmt.Errorf("creating %s sheet: %w", sheetTopPapers, err)
	}
	if err := writeRows(f, sheetTopPapers, topPapersRows(summary)); err != nil {
		return err
	}

	if err := f.SaveAs(filepath.Join(dir, WorkbookFile)); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// writeRows fills a sheet from the top-left corner; rows[0] is the header.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("addressing %s cell: %w", sheet, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func headerRow(cols []string) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}

func allPapersRows(summary types.HarvestSummary) [][]any {
	rows := [][]any{headerRow(allPapersHeader)}
	for _, r := range summary.Results {
		for _, p := range r.Papers {
			rows = append(rows, []any{
				r.TopicID, r.Theme, sourceScholar, p.Title, p.Authors,
				p.Citations, "", "", "", "", p.SearchQuery, p.PatternUsed,
				p.Rank,
			})
		}
		for _, w := range r.Works {
			rows = append(rows, []any{
				r.TopicID, r.Theme, sourceOpenAlex, w.Title,
				joinAuthors(w.Authors), w.Citations, w.Journal, w.DOI,
				w.OpenAlexID, yearCell(w.PublicationYear), w.SearchSource,
				"OpenAlex API", 0,
			})
		}
	}
	return rows
}

func summaryRows(summary types.HarvestSummary) [][]any {
	rows := [][]any{headerRow(summaryHeader)}
	for _, r := range summary.Results {
		rows = append(rows, []any{
			r.TopicID, r.Theme, r.ScholarCount, r.WorkCount,
			r.ScholarCount + r.WorkCount,
		})
	}
	return rows
}

func topPapersRows(summary types.HarvestSummary) [][]any {
	rows := [][]any{headerRow(topPapersHeader)}
	for _, r := range summary.Results {
		for i, p := range topPapers(r.TopPapers, 3) {
			rows = append(rows, []any{
				r.TopicID, r.Theme, sourceScholar, i + 1, p.Title,
				p.Citations, p.Authors,
			})
		}
		for i, w := range topWorks(r.TopWorks, 3) {
			rows = append(rows, []any{
				r.TopicID, r.Theme, sourceOpenAlex, i + 1, w.Title,
				w.Citations, joinAuthors(w.Authors),
			})
		}
	}
	return rows
}

func joinAuthors(authors []types.WorkAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// yearCell keeps missing years blank instead of zero.
func yearCell(year int) any {
	if year == 0 {
		return ""
	}
	return year
}
