// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/norg-pandoc/internal/convert"
	"github.com/pdiddy/norg-pandoc/internal/pandoc"
	"github.com/pdiddy/norg-pandoc/pkg/types"
)

// Summary holds counts from a batch conversion run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of source files processed.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// Runner converts a tree of Neorg sources into Pandoc JSON files,
// consulting the index to skip unchanged sources.
type Runner struct {
	cfg   types.ConverterConfig
	store *Store
	// Force converts every source regardless of the index.
	Force bool
}

// NewRunner creates a batch runner backed by store.
func NewRunner(cfg types.ConverterConfig, store *Store) *Runner {
	return &Runner{cfg: cfg, store: store}
}

// Run walks srcDir for .norg files, converts each into outDir mirroring
// the source layout, and writes one status line per file to w.
func (r *Runner) Run(ctx context.Context, srcDir, outDir string, w io.Writer) (Summary, error) {
	var summary Summary

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".norg") {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		switch status, convErr := r.convertFile(ctx, path, rel, outDir); {
		case convErr != nil:
			fmt.Fprintf(w, "failed    %s: %v\n", rel, convErr)
			summary.Failed++
		case status == statusSkipped:
			fmt.Fprintf(w, "skipped   %s\n", rel)
			summary.Skipped++
		default:
			fmt.Fprintf(w, "converted %s\n", rel)
			summary.Converted++
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "\nconverted: %d, skipped: %d, failed: %d\n",
		summary.Converted, summary.Skipped, summary.Failed)
	return summary, nil
}

type fileStatus int

const (
	statusConverted fileStatus = iota
	statusSkipped
)

func (r *Runner) convertFile(ctx context.Context, path, rel, outDir string) (fileStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return statusConverted, err
	}
	hash := Hash(data)

	outPath := filepath.Join(outDir, strings.TrimSuffix(rel, ".norg")+".json")

	if !r.Force {
		upToDate, err := r.store.UpToDate(ctx, path, hash)
		if err != nil {
			return statusConverted, err
		}
		if upToDate {
			return statusSkipped, nil
		}
	}

	// A fresh converter per file keeps heading identifiers scoped to
	// their own document.
	doc := convert.New(r.cfg).Source(string(data))

	var out []byte
	if r.cfg.Pretty {
		out, err = pandoc.MarshalIndent(doc)
	} else {
		out, err = pandoc.Marshal(doc)
	}
	if err != nil {
		return statusConverted, err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return statusConverted, err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return statusConverted, err
	}

	if err := r.store.Record(ctx, path, hash, outPath); err != nil {
		return statusConverted, err
	}
	return statusConverted, nil
}
