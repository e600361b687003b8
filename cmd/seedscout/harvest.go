// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/seedscout/internal/harvest"
	"github.com/pdiddy/seedscout/pkg/types"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Run the full seed-paper discovery across all topics",
	Long: `Harvest runs every topic in the catalog through both sources: the five
hand-written queries against Google Scholar and the five strategy
queries against OpenAlex. Results are deduplicated and ranked by
citation count, then written as per-topic JSON files plus comprehensive,
summary, workbook, and citation exports.

Google Scholar scraping is unreliable by nature; failed queries are
skipped and OpenAlex remains the dependable source. Interrupting the
run keeps the per-topic files written so far.`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("output-dir", "", "output directory (default seed-papers)")
	harvestCmd.Flags().Int("topic", 0, "restrict the run to a single topic ID")
	harvestCmd.Flags().Int("top-papers", 0, "papers kept per source in per-topic summaries")
	harvestCmd.Flags().Int("max-results", 0, "papers per Google Scholar query")
	harvestCmd.Flags().Int("max-openalex", 0, "total OpenAlex works per topic across strategies")
	harvestCmd.Flags().Duration("min-delay", 0, "minimum politeness delay before scrape requests")
	harvestCmd.Flags().Duration("max-delay", 0, "maximum politeness delay before scrape requests")
	harvestCmd.Flags().Bool("no-scholar", false, "skip Google Scholar scraping")
	harvestCmd.Flags().Bool("no-excel", false, "skip the Excel workbook")
	harvestCmd.Flags().Bool("no-csl", false, "skip the CSL-JSON citation export")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyHarvestFlags(cmd, &cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := &harvest.Harvester{
		Scholar:  newScholarSearcher(cfg),
		OpenAlex: newOpenAlexClient(cfg),
		Config:   cfg,
		Out:      os.Stdout,
		Logger:   logger.With().Str("component", "harvest").Logger(),
	}

	_, err = h.Run(ctx)
	return err
}

// applyHarvestFlags overrides the loaded config with explicitly set flags.
func applyHarvestFlags(cmd *cobra.Command, cfg *types.Config) {
	flags := cmd.Flags()

	if flags.Changed("output-dir") {
		cfg.Harvest.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("topic") {
		cfg.Harvest.OnlyTopic, _ = flags.GetInt("topic")
	}
	if flags.Changed("top-papers") {
		cfg.Harvest.TopPapers, _ = flags.GetInt("top-papers")
	}
	if flags.Changed("max-results") {
		cfg.Scholar.MaxResults, _ = flags.GetInt("max-results")
	}
	if flags.Changed("max-openalex") {
		cfg.OpenAlex.MaxResults, _ = flags.GetInt("max-openalex")
	}
	if flags.Changed("min-delay") {
		cfg.Scholar.MinDelay, _ = flags.GetDuration("min-delay")
	}
	if flags.Changed("max-delay") {
		cfg.Scholar.MaxDelay, _ = flags.GetDuration("max-delay")
	}
	if noScholar, _ := flags.GetBool("no-scholar"); noScholar {
		cfg.Scholar.Enabled = false
	}
	if noExcel, _ := flags.GetBool("no-excel"); noExcel {
		cfg.Harvest.Excel = false
	}
	if noCSL, _ := flags.GetBool("no-csl"); noCSL {
		cfg.Harvest.CSL = false
	}
}
