package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/seedscout/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate joint reports from per-topic result files",
	Long: `Report rebuilds the comprehensive JSON, text summary, Excel workbook,
and CSL-JSON outputs from the topic_NN_results.json files already on
disk, without re-running any searches.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("output-dir", "", "directory holding per-topic result files")
	reportCmd.Flags().Bool("no-excel", false, "skip the Excel workbook")
	reportCmd.Flags().Bool("no-csl", false, "skip the CSL-JSON citation export")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Harvest.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if noExcel, _ := cmd.Flags().GetBool("no-excel"); noExcel {
		cfg.Harvest.Excel = false
	}
	if noCSL, _ := cmd.Flags().GetBool("no-csl"); noCSL {
		cfg.Harvest.CSL = false
	}

	results, err := report.LoadTopicResults(cfg.Harvest.OutputDir)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no topic result files found in %s", cfg.Harvest.OutputDir)
	}

	summary := report.Summarize(results)
	return report.WriteAll(cfg.Harvest.OutputDir, summary, cfg.Harvest, os.Stdout)
}
