// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/seedscout/pkg/types"
)

// DerivedTopic is a topic parsed from a plain-text chapter outline rather
// than the curated catalog. The main theme is the text before the first
// comma of a bullet point; everything after it becomes subtopics.
type DerivedTopic struct {
	ID        int      `json:"id" yaml:"id"`
	Theme     string   `json:"main_theme" yaml:"main_theme"`
	Subtopics []string `json:"subtopics" yaml:"subtopics"`
	FullText  string   `json:"full_text" yaml:"full_text"`
	Queries   []string `json:"search_queries" yaml:"search_queries"`
}

// OutlineFile is the on-disk representation of a parsed outline. The
// researcher can derive topics once and reload them for later harvests
// without keeping the outline around.
type OutlineFile struct {
	Chapter     string         `json:"chapter" yaml:"chapter"`
	TotalTopics int            `json:"total_topics" yaml:"total_topics"`
	Topics      []DerivedTopic `json:"topics" yaml:"topics"`
}

// FromOutline parses a chapter outline into derived topics. Bullet points
// may use "•", "-", or "*" markers; a bullet's text before the first comma
// is the main theme and the comma-separated remainder its subtopics. Each
// derived topic gets one query per theme plus one per subtopic, all
// prefixed with "climate change mitigation".
func FromOutline(r io.Reader) ([]DerivedTopic, error) {
	var points []string
	scanner := bufio.NewScanner(r)
	var current strings.Builder

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			points = append(points, text)
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if marker := bulletText(line); marker != "" {
			flush()
			current.WriteString(marker)
			continue
		}
		// Continuation of the previous bullet.
		if current.Len() > 0 {
			current.WriteString(" ")
			current.WriteString(line)
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no bullet points found in outline")
	}

	topics := make([]DerivedTopic, 0, len(points))
	for i, point := range points {
		theme := point
		var subtopics []string
		if idx := strings.Index(point, ","); idx >= 0 {
			theme = strings.TrimSpace(point[:idx])
			for _, st := range strings.Split(point[idx+1:], ",") {
				if st = strings.TrimSpace(st); st != "" {
					subtopics = append(subtopics, st)
				}
			}
		}

		topics = append(topics, DerivedTopic{
			ID:        i + 1,
			Theme:     theme,
			Subtopics: subtopics,
			FullText:  point,
			Queries:   deriveQueries(theme, subtopics),
		})
	}
	return topics, nil
}

// bulletText returns the text of a bullet line without its marker, or ""
// when the line does not start a new bullet.
func bulletText(line string) string {
	for _, marker := range []string{"•", "- ", "* "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker))
		}
	}
	return ""
}

func deriveQueries(theme string, subtopics []string) []string {
	queries := []string{"climate change mitigation " + theme}
	for _, st := range subtopics {
		clean := strings.Join(strings.Fields(st), " ")
		if clean != "" {
			queries = append(queries, fmt.Sprintf("climate change mitigation %s %s", theme, clean))
		}
	}
	return queries
}

// ToTopic converts a derived topic into a catalog-shaped topic so the
// harvest driver can process it. Subtopics stand in for key concepts.
func (d DerivedTopic) ToTopic() types.Topic {
	return types.Topic{
		ID:          d.ID,
		Theme:       d.Theme,
		Queries:     d.Queries,
		KeyConcepts: d.Subtopics,
	}
}

// WriteOutlineFile saves derived topics to a YAML file.
func WriteOutlineFile(path string, topics []DerivedTopic) error {
	of := OutlineFile{
		Chapter:     Chapter,
		TotalTopics: len(topics),
		Topics:      topics,
	}
	data, err := yaml.Marshal(&of)
	if err != nil {
		return fmt.Errorf("marshaling outline file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadOutlineFile loads a previously saved outline file from disk.
func ReadOutlineFile(path string) (*OutlineFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline file: %w", err)
	}
	var of OutlineFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return nil, fmt.Errorf("parsing outline file: %w", err)
	}
	return &of, nil
}
