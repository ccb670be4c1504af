// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/norg-pandoc/internal/index"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Convert every .norg file under a directory",
	Long: `Batch walks a directory tree, converts each .norg file to Pandoc
JSON under --out-dir mirroring the source layout, and records content
hashes in a SQLite index so unchanged files are skipped on later runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	srcDir := "."
	if len(args) > 0 {
		srcDir = args[0]
	}

	cfg := converterConfig()
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		cfg.Pretty = true
	}
	if outDir, _ := cmd.Flags().GetString("out-dir"); outDir != "" {
		cfg.Batch.OutDir = outDir
	}
	if indexDir, _ := cmd.Flags().GetString("index-dir"); indexDir != "" {
		cfg.Batch.IndexDir = indexDir
	}

	store, err := index.Open(cfg.Batch.IndexDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := index.NewRunner(cfg, store)
	runner.Force, _ = cmd.Flags().GetBool("force")

	summary, err := runner.Run(context.Background(), srcDir, cfg.Batch.OutDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed conversion", summary.Failed)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("out-dir", "", "output directory for converted JSON")
	batchCmd.Flags().String("index-dir", "", "directory for the conversion index database")
	batchCmd.Flags().Bool("force", false, "convert every file regardless of the index")
	batchCmd.Flags().Bool("pretty", false, "indent the JSON output")

	rootCmd.AddCommand(batchCmd)
}
