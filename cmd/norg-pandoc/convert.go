// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/norg-pandoc/internal/ast"
	"github.com/pdiddy/norg-pandoc/internal/convert"
	"github.com/pdiddy/norg-pandoc/internal/pandoc"
	"github.com/pdiddy/norg-pandoc/internal/parser"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert one Neorg document to Pandoc JSON",
	Long: `Convert reads a single .norg file (or standard input when the
argument is "-" or omitted) and writes the Pandoc JSON document to
standard output or to --output.

Metadata from a --metadata-file YAML file is merged into the document
metadata; keys set by an in-document @document.meta block win.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	doc, diags := parser.ParseWithDiagnostics(string(source))
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}

	metaFile, _ := cmd.Flags().GetString("metadata-file")
	if metaFile != "" {
		extra, err := loadMetadataFile(metaFile)
		if err != nil {
			return err
		}
		// Document metadata wins over the external file.
		for _, e := range extra {
			if doc.Meta.Get(e.Key) == nil {
				doc.Meta.Set(e.Key, e.Value)
			}
		}
	}

	cfg := converterConfig()
	result := convert.New(cfg).Convert(doc)

	pretty, _ := cmd.Flags().GetBool("pretty")
	var out []byte
	if pretty || cfg.Pretty {
		out, err = pandoc.MarshalIndent(result)
	} else {
		out, err = pandoc.Marshal(result)
	}
	if err != nil {
		return err
	}
	out = append(out, '\n')

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" || outPath == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}

// loadMetadataFile parses a YAML mapping into document metadata, keeping
// the file's key order.
func loadMetadataFile(path string) (ast.MetaMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing metadata file %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("metadata file %s: top level must be a mapping", path)
	}

	m, ok := metaFromYAML(node).(ast.MetaMap)
	if !ok {
		return nil, fmt.Errorf("metadata file %s: top level must be a mapping", path)
	}
	return m, nil
}

func metaFromYAML(node *yaml.Node) ast.MetaValue {
	switch node.Kind {
	case yaml.MappingNode:
		var m ast.MetaMap
		for i := 0; i+1 < len(node.Content); i += 2 {
			m.Set(node.Content[i].Value, metaFromYAML(node.Content[i+1]))
		}
		return m
	case yaml.SequenceNode:
		var list ast.MetaList
		for _, c := range node.Content {
			list = append(list, metaFromYAML(c))
		}
		return list
	default:
		return ast.MetaString(node.Value)
	}
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file (default: standard output)")
	convertCmd.Flags().Bool("pretty", false, "indent the JSON output")
	convertCmd.Flags().String("metadata-file", "", "YAML file with additional document metadata")

	rootCmd.AddCommand(convertCmd)
}
