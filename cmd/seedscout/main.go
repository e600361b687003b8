// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the seedscout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/seedscout/internal/httputil"
	"github.com/pdiddy/seedscout/internal/logging"
	"github.com/pdiddy/seedscout/internal/secrets"
	"github.com/pdiddy/seedscout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds contact details loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is the process diagnostics logger, rebuilt in PersistentPreRunE
// once flags and config are known.
var logger = zerolog.Nop()

// rootCmd is the base command for the seedscout CLI.
var rootCmd = &cobra.Command{
	Use:   "seedscout",
	Short: "Seed-paper discovery for assessment chapter topics",
	Long: `seedscout finds highly cited seed papers for the fifteen research topics
of an assessment chapter on climate mitigation enablers and barriers. It
scrapes Google Scholar result pages, queries the OpenAlex API, merges and
ranks results by citation count, and writes per-topic JSON files plus
joint summary, workbook, and citation exports.

Each operation is a subcommand: topics, search, harvest, and report.`,
}

func init() {
	// Assigned here rather than in the rootCmd literal to avoid an
	// initialization cycle: the closure calls buildLogger, which reads
	// rootCmd's flags.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger = buildLogger()
		httputil.Logger = logger.With().Str("component", "http").Logger()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./seedscout.yaml or ~/.config/seedscout/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug-level diagnostics")
	rootCmd.PersistentFlags().String("log-format", "", "diagnostics format: console or json")
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("seedscout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "seedscout"))
		}
	}

	viper.SetEnvPrefix("SEEDSCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildLogger constructs the diagnostics logger from config, with the
// --verbose and --log-format flags taking precedence.
func buildLogger() zerolog.Logger {
	cfg := types.LogConfig{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		cfg.Level = "debug"
	}
	if format, _ := rootCmd.PersistentFlags().GetString("log-format"); format != "" {
		cfg.Format = format
	}
	return logging.New(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
