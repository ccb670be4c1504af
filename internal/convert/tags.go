// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/norg-pandoc/internal/ast"
	"github.com/pdiddy/norg-pandoc/internal/pandoc"
)

// imageSuffixes recognizes embed payloads that render as images.
var imageSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}

func (c *Converter) convertTag(t *ast.Tag, ids map[*ast.Heading]string) []pandoc.Block {
	switch t.Kind {
	case ast.TagComment:
		return nil

	case ast.TagCode:
		attr := pandoc.Attr{Classes: t.Params}
		return []pandoc.Block{&pandoc.CodeBlock{Attr: attr, Text: t.Raw}}

	case ast.TagMath:
		return []pandoc.Block{&pandoc.Para{Inlines: []pandoc.Inline{
			&pandoc.Math{MathType: pandoc.DisplayMath, Text: t.Raw},
		}}}

	case ast.TagExample:
		// The parser already re-parsed the payload.
		return c.convertBlocks(t.Blocks, ids)

	case ast.TagEmbed:
		return c.convertEmbed(t)

	case ast.TagTable:
		return []pandoc.Block{c.convertTable(t)}

	case ast.TagMeta:
		// Merged into document metadata by the parser; nothing remains
		// at block level.
		return nil
	}

	// Unknown verbatim tags keep their payload as a code block tagged
	// with the tag name so no content silently disappears.
	attr := pandoc.Attr{Classes: append([]string{t.Name}, t.Params...)}
	return []pandoc.Block{&pandoc.CodeBlock{Attr: attr, Text: t.Raw}}
}

// convertEmbed maps `@embed image` payloads to an image node; any other
// embed format passes through as a raw block in that format.
func (c *Converter) convertEmbed(t *ast.Tag) []pandoc.Block {
	format := ""
	if len(t.Params) > 0 {
		format = t.Params[0]
	}

	if format == "image" || isImagePath(t.Raw) {
		url := strings.TrimSpace(t.Raw)
		return []pandoc.Block{&pandoc.Plain{Inlines: []pandoc.Inline{
			&pandoc.Image{Target: pandoc.Target{Url: url}},
		}}}
	}

	return []pandoc.Block{&pandoc.RawBlock{Format: format, Text: t.Raw}}
}

func isImagePath(raw string) bool {
	path := strings.ToLower(strings.TrimSpace(raw))
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// convertTable parses a pipe-delimited payload into a Pandoc table. The
// first row becomes the header; short rows pad with empty cells to the
// widest row.
func (c *Converter) convertTable(t *ast.Tag) pandoc.Block {
	var rows [][]string
	cols := 0

	for _, line := range strings.Split(t.Raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "|")
		line = strings.TrimSuffix(line, "|")

		var cells []string
		for _, cell := range strings.Split(line, "|") {
			cells = append(cells, strings.TrimSpace(cell))
		}
		if len(cells) > cols {
			cols = len(cells)
		}
		rows = append(rows, cells)
	}

	table := &pandoc.Table{Cols: cols}
	for i, cells := range rows {
		row := pandoc.TableRow{}
		for j := 0; j < cols; j++ {
			text := ""
			if j < len(cells) {
				text = cells[j]
			}
			cell := pandoc.TableCell{}
			if text != "" {
				cell.Blocks = []pandoc.Block{&pandoc.Plain{Inlines: splitText(text)}}
			}
			row.Cells = append(row.Cells, cell)
		}
		if i == 0 {
			table.Head = append(table.Head, row)
		} else {
			table.Body = append(table.Body, row)
		}
	}
	return table
}
