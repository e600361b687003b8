package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/seedscout/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Author         []CSLName `json:"author,omitempty"`
	Abstract       string    `json:"abstract,omitempty"`
	Issued         *CSLDate  `json:"issued,omitempty"`
	DOI            string    `json:"DOI,omitempty"`
	ContainerTitle string    `json:"container-title,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `json:"family,omitempty"`
	Given   string `json:"given,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `json:"date-parts"`
}

// WriteCSL writes a CSL-JSON bibliography of every harvested paper and
// work for citation-manager handoff.
func WriteCSL(dir string, summary types.HarvestSummary) error {
	data, err := json.MarshalIndent(collectCSLItems(summary), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling citation export: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, CSLFile), data, 0o644)
}

func collectCSLItems(summary types.HarvestSummary) []CSLItem {
	items := make([]CSLItem, 0)
	for _, r := range summary.Results {
		for i, p := range r.Papers {
			items = append(items, paperToCSL(p, r.TopicID, i+1))
		}
		for i, w := range r.Works {
			items = append(items, workToCSL(w, i+1))
		}
	}
	return items
}

// workToCSL converts a bibliographic record. The entry ID prefers the
// bare DOI, then the OpenAlex work ID, then a positional fallback.
func workToCSL(w types.Work, n int) CSLItem {
	doi := strings.TrimPrefix(w.DOI, "https://doi.org/")

	id := doi
	if id == "" {
		if i := strings.LastIndex(w.OpenAlexID, "/"); i >= 0 {
			id = w.OpenAlexID[i+1:]
		} else {
			id = w.OpenAlexID
		}
	}
	if id == "" {
		id = fmt.Sprintf("work-%d", n)
	}

	item := CSLItem{
		ID:             id,
		Type:           "article",
		Title:          w.Title,
		Abstract:       w.Abstract,
		DOI:            doi,
		ContainerTitle: w.Journal,
	}
	for _, a := range w.Authors {
		item.Author = append(item.Author, parseAuthorName(a.Name))
	}
	if w.PublicationYear > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{w.PublicationYear}}}
	}
	return item
}

// paperToCSL converts a scraped paper. Scraped bylines carry venue and
// year after a " - " separator; only the leading author list is parsed.
func paperToCSL(p types.Paper, topicID, n int) CSLItem {
	item := CSLItem{
		ID:    fmt.Sprintf("scholar-%02d-%03d", topicID, n),
		Type:  "article",
		Title: p.Title,
	}

	byline := p.Authors
	if i := strings.Index(byline, " - "); i >= 0 {
		byline = byline[:i]
	}
	if byline != "" && byline != "Unknown" {
		for _, name := range strings.Split(byline, ", ") {
			item.Author = append(item.Author, parseAuthorName(name))
		}
	}
	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
