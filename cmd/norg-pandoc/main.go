// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the norg-pandoc CLI.
// Implements: prd005-cli (convert, batch, version surface).
// See docs/ARCHITECTURE § Command Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/norg-pandoc/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the norg-pandoc CLI.
var rootCmd = &cobra.Command{
	Use:   "norg-pandoc",
	Short: "Convert Neorg documents to Pandoc JSON",
	Long: `norg-pandoc converts Neorg markup (.norg) into the Pandoc JSON
interchange format, suitable for piping into pandoc to produce HTML, PDF,
LaTeX, or any other format pandoc writes.

Use convert for single documents and batch for whole workspaces.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./norg-pandoc.yaml or ~/.config/norg-pandoc/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("norg-pandoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "norg-pandoc"))
		}
	}

	viper.SetEnvPrefix("NORG_PANDOC")
	viper.AutomaticEnv()

	defaults := types.DefaultConfig()
	viper.SetDefault("pretty", defaults.Pretty)
	viper.SetDefault("batch.out_dir", defaults.Batch.OutDir)
	viper.SetDefault("batch.index_dir", defaults.Batch.IndexDir)
	viper.SetDefault("todo_symbols.undone", defaults.TodoSymbols.Undone)
	viper.SetDefault("todo_symbols.done", defaults.TodoSymbols.Done)
	viper.SetDefault("todo_symbols.pending", defaults.TodoSymbols.Pending)
	viper.SetDefault("todo_symbols.cancelled", defaults.TodoSymbols.Cancelled)
	viper.SetDefault("todo_symbols.on_hold", defaults.TodoSymbols.OnHold)
	viper.SetDefault("todo_symbols.recurring", defaults.TodoSymbols.Recurring)
	viper.SetDefault("todo_symbols.uncertain", defaults.TodoSymbols.Uncertain)
	viper.SetDefault("todo_symbols.urgent", defaults.TodoSymbols.Urgent)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// converterConfig builds the effective configuration from config file,
// environment, and defaults.
func converterConfig() types.ConverterConfig {
	return types.ConverterConfig{
		TodoSymbols: types.TodoSymbols{
			Undone:    viper.GetString("todo_symbols.undone"),
			Done:      viper.GetString("todo_symbols.done"),
			Pending:   viper.GetString("todo_symbols.pending"),
			Cancelled: viper.GetString("todo_symbols.cancelled"),
			OnHold:    viper.GetString("todo_symbols.on_hold"),
			Recurring: viper.GetString("todo_symbols.recurring"),
			Uncertain: viper.GetString("todo_symbols.uncertain"),
			Urgent:    viper.GetString("todo_symbols.urgent"),
		},
		Pretty: viper.GetBool("pretty"),
		Batch: types.BatchConfig{
			OutDir:   viper.GetString("batch.out_dir"),
			IndexDir: viper.GetString("batch.index_dir"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
