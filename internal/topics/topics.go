// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics holds the research topic catalog for the assessment
// chapter and generates the search queries used by the harvest stages.
package topics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/seedscout/pkg/types"
)

// Chapter is the assessment chapter the catalog was written for.
const Chapter = "IPCC AR7 Chapter 5: Enablers and Barriers"

var validate = validator.New()

// catalog is the hand-curated topic list. IDs are sequential from 1 and
// every topic carries five search queries written for citation-rich
// results on that theme.
var catalog = []types.Topic{
	{
		ID:    1,
		Theme: "Feasibility of mitigation in different contexts and under multiple barriers and enablers",
		Queries: []string{
			"climate change mitigation feasibility barriers enablers",
			"climate mitigation feasibility different contexts",
			"climate change mitigation barriers enablers analysis",
			"mitigation feasibility assessment climate change",
			"climate change mitigation potential feasibility",
		},
		KeyConcepts: []string{"feasibility", "barriers", "enablers", "contexts", "mitigation potential"},
	},
	{
		ID:    2,
		Theme: "Development as enabler of mitigation",
		Queries: []string{
			"development enabler climate change mitigation",
			"economic development climate mitigation",
			"sustainable development climate change mitigation",
			"development pathways climate mitigation",
			"IPAT equation climate change",
		},
		KeyConcepts: []string{"development", "economic growth", "sustainable development", "IPAT", "mitigation enablers"},
	},
	{
		ID:    3,
		Theme: "Capacity for mitigation, including technological, institutional, economic, and human capacity",
		Queries: []string{
			"climate change mitigation capacity technological institutional economic human",
			"mitigation capacity building climate change",
			"institutional capacity climate mitigation",
			"human capacity climate change mitigation",
			"adaptive management climate change capacity",
		},
		KeyConcepts: []string{"capacity building", "institutional capacity", "human capacity", "adaptive management", "mitigation capacity"},
	},
	{
		ID:    4,
		Theme: "Technology, including access, cost, infrastructure, innovation, scalability, replicability and speed of and disparity in adoption",
		Queries: []string{
			"climate change mitigation technology innovation adoption",
			"renewable energy technology diffusion adoption",
			"technology transfer climate change mitigation",
			"clean technology adoption barriers",
			"technology diffusion innovation climate mitigation",
		},
		KeyConcepts: []string{"technology adoption", "innovation diffusion", "technology transfer", "renewable energy", "clean technology"},
	},
	{
		ID:    5,
		Theme: "Finance, investment, policies and governance",
		Queries: []string{
			"climate change mitigation finance investment",
			"climate finance governance policies",
			"climate investment barriers enablers",
			"climate policy governance effectiveness",
			"climate finance mechanisms",
		},
		KeyConcepts: []string{"climate finance", "investment", "governance", "policy effectiveness", "financial mechanisms"},
	},
	{
		ID:    6,
		Theme: "Distribution of benefits, costs, and impacts of mitigation",
		Queries: []string{
			"climate change mitigation distribution benefits costs",
			"mitigation policy distributional effects",
			"climate mitigation equity justice",
			"distributional impacts climate policies",
			"climate justice mitigation policies",
		},
		KeyConcepts: []string{"distributional effects", "equity", "justice", "benefits", "costs", "impacts"},
	},
	{
		ID:    7,
		Theme: "Inequality and inequity within and across countries, including intergenerational aspects",
		Queries: []string{
			"climate change inequality inequity countries",
			"intergenerational equity climate change",
			"climate justice international inequality",
			"climate change social inequality",
			"intergenerational climate justice",
		},
		KeyConcepts: []string{"inequality", "inequity", "intergenerational equity", "climate justice", "social inequality"},
	},
	{
		ID:    8,
		Theme: "Social enablers, barriers, and impacts of mitigation, including public perception and support, lifestyles and behavior, production and consumption, communication, information, engagement, education, health and well-being",
		Queries: []string{
			"climate change mitigation social barriers enablers",
			"public perception climate change mitigation",
			"behavioral change climate mitigation",
			"lifestyle changes climate change",
			"climate communication engagement education",
		},
		KeyConcepts: []string{"social barriers", "public perception", "behavioral change", "lifestyle", "communication", "engagement"},
	},
	{
		ID:    9,
		Theme: "Labor as enabler and barrier to mitigation, including supply, organization, wellbeing, skills",
		Queries: []string{
			"climate change mitigation labor employment",
			"just transition labor climate change",
			"green jobs climate mitigation",
			"labor market climate change transition",
			"workforce skills climate mitigation",
		},
		KeyConcepts: []string{"labor", "employment", "just transition", "green jobs", "workforce skills"},
	},
	{
		ID:    10,
		Theme: "Just transitions",
		Queries: []string{
			"just transition climate change",
			"climate justice transition",
			"equitable climate transition",
			"social justice climate transition",
			"just transition framework",
		},
		KeyConcepts: []string{"just transition", "climate justice", "equitable transition", "social justice"},
	},
	{
		ID:    11,
		Theme: "Environmental and natural resources enablers and barriers for mitigation at national, international, and subnational levels, including land, water, natural resources, minerals, and climate services",
		Queries: []string{
			"natural resources climate change mitigation",
			"land use climate mitigation",
			"water resources climate change",
			"mineral resources climate mitigation",
			"climate services natural resources",
		},
		KeyConcepts: []string{"natural resources", "land use", "water resources", "minerals", "climate services"},
	},
	{
		ID:    12,
		Theme: "Indigenous rights, governance, and knowledge systems",
		Queries: []string{
			"indigenous knowledge climate change mitigation",
			"indigenous rights climate change",
			"traditional ecological knowledge climate",
			"indigenous governance climate change",
			"indigenous knowledge systems climate",
		},
		KeyConcepts: []string{"indigenous knowledge", "indigenous rights", "traditional ecological knowledge", "indigenous governance"},
	},
	{
		ID:    13,
		Theme: "Political economy of mitigation including public preferences, interest groups, and political institutions",
		Queries: []string{
			"political economy climate change mitigation",
			"interest groups climate policy",
			"political institutions climate change",
			"public preferences climate policy",
			"climate policy political economy",
		},
		KeyConcepts: []string{"political economy", "interest groups", "political institutions", "public preferences", "policy making"},
	},
	{
		ID:    14,
		Theme: "International cooperation and supply chains",
		Queries: []string{
			"international cooperation climate change",
			"climate change supply chains",
			"global climate governance",
			"international climate agreements",
			"climate cooperation multilateral",
		},
		KeyConcepts: []string{"international cooperation", "supply chains", "global governance", "multilateral agreements"},
	},
	{
		ID:    15,
		Theme: "Peace, security, and conflict, including resource competition",
		Queries: []string{
			"climate change security conflict",
			"climate change peace security",
			"resource competition climate change",
			"climate change human security",
			"climate security conflict resolution",
		},
		KeyConcepts: []string{"security", "conflict", "peace", "resource competition", "human security"},
	},
}

// All returns every catalog topic in ID order.
func All() []types.Topic {
	out := make([]types.Topic, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the catalog topic with the given ID.
func Get(id int) (types.Topic, error) {
	for _, t := range catalog {
		if t.ID == id {
			return t, nil
		}
	}
	return types.Topic{}, fmt.Errorf("unknown topic ID %d: catalog has topics 1-%d", id, len(catalog))
}

// AllQueries returns the search queries of every topic, in catalog order.
func AllQueries() []string {
	var queries []string
	for _, t := range catalog {
		queries = append(queries, t.Queries...)
	}
	return queries
}

// ValidateCatalog checks the catalog's structural constraints: struct tags
// on each topic plus sequential IDs starting at 1.
func ValidateCatalog() error {
	seen := make(map[int]bool, len(catalog))
	for i, t := range catalog {
		if err := validate.Struct(t); err != nil {
			return fmt.Errorf("topic %d invalid: %w", t.ID, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate topic ID %d", t.ID)
		}
		seen[t.ID] = true
		if t.ID != i+1 {
			return fmt.Errorf("topic IDs must be sequential: position %d has ID %d", i+1, t.ID)
		}
	}
	return nil
}

// Strategies returns the five bibliographic search strategies for a topic:
// theme and key-concept variants that cast a wider net than the
// hand-written queries.
func Strategies(t types.Topic) []string {
	concept := "mitigation"
	if len(t.KeyConcepts) > 0 {
		concept = t.KeyConcepts[0]
	}

	words := strings.Fields(t.Theme)
	if len(words) > 3 {
		words = words[:3]
	}

	return []string{
		"climate change mitigation " + t.Theme,
		"climate change " + concept,
		"climate change " + strings.Join(words, " "),
		"IPCC climate change " + concept,
		t.Theme,
	}
}

// Summary writes a human-readable catalog listing.
func Summary(w io.Writer) {
	fmt.Fprintf(w, "%s - Search Topics\n", Chapter)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Total topics: %d\n\n", len(catalog))

	for _, t := range catalog {
		fmt.Fprintf(w, "%2d. %s\n", t.ID, t.Theme)
		fmt.Fprintf(w, "    Key concepts: %s\n", strings.Join(t.KeyConcepts, ", "))
		fmt.Fprintf(w, "    Search queries: %d\n\n", len(t.Queries))
	}
}

// catalogExport is the JSON shape written by ExportJSON.
type catalogExport struct {
	Chapter      string        `json:"chapter"`
	TotalTopics  int           `json:"total_topics"`
	TotalQueries int           `json:"total_queries"`
	Topics       []types.Topic `json:"topics"`
}

// ExportJSON writes the full catalog to path as indented JSON.
func ExportJSON(path string) error {
	data, err := json.MarshalIndent(catalogExport{
		Chapter:      Chapter,
		TotalTopics:  len(catalog),
		TotalQueries: len(AllQueries()),
		Topics:       All(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling topic catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing topic catalog: %w", err)
	}
	return nil
}
