package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/seedscout/internal/topics"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Inspect and export the research topic catalog",
	Long: `Topics lists the fifteen curated research topics, exports the catalog
to JSON, or derives ad-hoc topics from a plain-text chapter outline.`,
}

// --- list subcommand ---

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the topic catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := topics.ValidateCatalog(); err != nil {
			return err
		}
		topics.Summary(os.Stdout)
		return nil
	},
}

// --- export subcommand ---

var topicsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the topic catalog to JSON",
	RunE:  runTopicsExport,
}

func runTopicsExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	if err := topics.ExportJSON(out); err != nil {
		return err
	}
	fmt.Printf("Topics exported to %s\n", out)
	return nil
}

// --- derive subcommand ---

var topicsDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive topics from a plain-text chapter outline",
	Long: `Derive parses a bulleted chapter outline into topics with generated
search queries. The result is printed as a listing or JSON, or saved as
a YAML outline file that can be inspected and reused.`,
	RunE: runTopicsDerive,
}

func runTopicsDerive(cmd *cobra.Command, args []string) error {
	outlinePath, _ := cmd.Flags().GetString("outline")
	if outlinePath == "" {
		return fmt.Errorf("provide the outline file with --outline")
	}

	f, err := os.Open(outlinePath)
	if err != nil {
		return fmt.Errorf("opening outline: %w", err)
	}
	defer f.Close()

	derived, err := topics.FromOutline(f)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := topics.WriteOutlineFile(out, derived); err != nil {
			return err
		}
		fmt.Printf("Derived %d topics to %s\n", len(derived), out)
		return nil
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(derived)
	}

	for _, d := range derived {
		fmt.Printf("%2d. %s (%d queries)\n", d.ID, d.Theme, len(d.Queries))
	}
	return nil
}

func init() {
	topicsExportCmd.Flags().String("out", "search_topics.json", "output file for the catalog export")

	topicsDeriveCmd.Flags().String("outline", "", "plain-text chapter outline to parse")
	topicsDeriveCmd.Flags().String("out", "", "save derived topics to a YAML outline file")
	topicsDeriveCmd.Flags().Bool("json", false, "print derived topics as JSON")

	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsExportCmd)
	topicsCmd.AddCommand(topicsDeriveCmd)

	rootCmd.AddCommand(topicsCmd)
}
