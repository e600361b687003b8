package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/seedscout/internal/openalex"
	"github.com/pdiddy/seedscout/internal/scholar"
	"github.com/pdiddy/seedscout/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Run a single query against Google Scholar, OpenAlex, or both",
	Long: `Search runs one query against the selected sources and prints the
results ranked by citation count. Scraped papers can be annotated with
their best OpenAlex match via --match.`,
	RunE: runSearch,
}

// searchOutput is the --json shape for a one-shot search.
type searchOutput struct {
	Query  string        `json:"query"`
	Papers []types.Paper `json:"google_scholar_papers,omitempty"`
	Works  []types.Work  `json:"openalex_works,omitempty"`
}

func init() {
	searchCmd.Flags().String("source", "both", "sources to query: scholar, openalex, or both")
	searchCmd.Flags().Int("max-results", 0, "maximum results per source (0 = config default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("match", false, "annotate scraped papers with OpenAlex best matches")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	source, _ := cmd.Flags().GetString("source")
	switch source {
	case "scholar", "openalex", "both":
	default:
		return fmt.Errorf("unknown source %q: use scholar, openalex, or both", source)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	scholarMax := maxResults
	if scholarMax <= 0 {
		scholarMax = cfg.Scholar.MaxResults
	}
	openAlexMax := maxResults
	if openAlexMax <= 0 {
		openAlexMax = cfg.OpenAlex.MaxResults
	}

	ctx := context.Background()

	var papers []types.Paper
	var works []types.Work

	if source == "scholar" || source == "both" {
		papers, err = newScholarSearcher(cfg).Search(ctx, query, scholarMax)
		if err != nil {
			return err
		}
		papers = scholar.Dedupe(papers)
		scholar.SortByCitations(papers)
	}
	if source == "openalex" || source == "both" {
		works, err = newOpenAlexClient(cfg).Search(ctx, query, openAlexMax)
		if err != nil {
			return err
		}
		openalex.SortByCitations(works)
	}

	match, _ := cmd.Flags().GetBool("match")
	if match && len(papers) > 0 {
		papers = newOpenAlexClient(cfg).Annotate(ctx, papers, cfg.Match.MaxMatches)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{Query: query, Papers: papers, Works: works})
	}

	if source == "scholar" || source == "both" {
		fmt.Printf("Google Scholar results for %q:\n", query)
		scholar.FormatTable(papers, os.Stdout)
	}
	if source == "openalex" || source == "both" {
		if source == "both" {
			fmt.Println()
		}
		fmt.Printf("OpenAlex results for %q:\n", query)
		openalex.FormatTable(works, os.Stdout)
	}
	if match && len(papers) > 0 {
		printMatches(papers)
	}
	return nil
}

func printMatches(papers []types.Paper) {
	fmt.Println("\nOpenAlex matches:")
	for i, p := range papers {
		title := p.Title
		if len(title) > 70 {
			title = title[:67] + "..."
		}
		fmt.Printf("%d. %s\n", i+1, title)

		if p.BestMatch == nil {
			fmt.Println("   no match")
			continue
		}
		matched := p.BestMatch.Title
		if len(matched) > 60 {
			matched = matched[:57] + "..."
		}
		fmt.Printf("   matched: %s (%d citations, %s)\n", matched, p.BestMatch.Citations, p.OpenAlexID)
	}
}
