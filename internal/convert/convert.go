// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert maps the Neorg document tree to the Pandoc model.
// Implements: prd004-conversion (R1-R5); docs/ARCHITECTURE § Conversion.
//
// Conversion is total: every Neorg node maps to zero or more Pandoc nodes,
// with documented lossy fallbacks for constructs Pandoc has no equivalent
// for (TODO statuses become text markers, free-form spans lose their
// styling). The converter only reads the source tree and never mutates it.
package convert

import (
	"fmt"
	"strings"

	"github.com/pdiddy/norg-pandoc/internal/ast"
	"github.com/pdiddy/norg-pandoc/internal/pandoc"
	"github.com/pdiddy/norg-pandoc/internal/parser"
	"github.com/pdiddy/norg-pandoc/pkg/types"
)

// maxHeadingLevel is Pandoc's deepest section heading; Neorg levels beyond
// it clamp.
const maxHeadingLevel = 6

// Converter turns parsed Neorg documents into Pandoc documents. Reuse one
// Converter across documents destined for the same output so heading
// identifiers stay unique between them.
type Converter struct {
	cfg types.ConverterConfig

	// identifiers counts how often each base identifier was handed out.
	identifiers map[string]int
	// anchors maps heading title text to its generated identifier, for
	// {* Heading} links. First occurrence wins.
	anchors map[string]string
}

// New creates a Converter with the given configuration.
func New(cfg types.ConverterConfig) *Converter {
	return &Converter{
		cfg:         cfg,
		identifiers: make(map[string]int),
		anchors:     make(map[string]string),
	}
}

// Source parses Neorg source text and converts it in one call.
func (c *Converter) Source(source string) *pandoc.Pandoc {
	return c.Convert(parser.Parse(source))
}

// Convert maps a parsed document to its Pandoc representation.
func (c *Converter) Convert(doc *ast.Document) *pandoc.Pandoc {
	// Heading identifiers are assigned up front so links can point
	// forward as well as backward.
	ids := c.assignIdentifiers(doc.Blocks, make(map[*ast.Heading]string))

	out := &pandoc.Pandoc{}
	for _, e := range doc.Meta {
		out.Meta.Set(e.Key, convertMetaValue(e.Value))
	}
	out.Blocks = c.convertBlocks(doc.Blocks, ids)
	return out
}

// assignIdentifiers walks the heading tree in document order and generates
// a unique identifier per heading.
func (c *Converter) assignIdentifiers(blocks []ast.Block, ids map[*ast.Heading]string) map[*ast.Heading]string {
	for _, b := range blocks {
		h, ok := b.(*ast.Heading)
		if !ok {
			continue
		}
		title := inlineText(h.Title)
		id := c.generateID(title)
		ids[h] = id
		if _, seen := c.anchors[title]; !seen {
			c.anchors[title] = id
		}
		c.assignIdentifiers(h.Children, ids)
	}
	return ids
}

// generateID derives a valid HTML id from the heading text: whitespace and
// tildes become hyphens, and repeats get a `~N` counter suffix so ids stay
// unique for the lifetime of the Converter.
func (c *Converter) generateID(text string) string {
	base := strings.NewReplacer(" ", "-", "~", "-", "\t", "-", "\n", "-").Replace(text)

	if n, seen := c.identifiers[base]; seen {
		c.identifiers[base] = n + 1
		return fmt.Sprintf("%s~%d", base, n)
	}
	c.identifiers[base] = 0
	return base
}

func (c *Converter) convertBlocks(blocks []ast.Block, ids map[*ast.Heading]string) []pandoc.Block {
	var out []pandoc.Block

	for i := 0; i < len(blocks); i++ {
		switch b := blocks[i].(type) {
		case *ast.Heading:
			out = append(out, c.convertHeading(b, ids)...)

		case *ast.Paragraph:
			out = append(out, &pandoc.Para{Inlines: c.convertInlines(b.Content)})

		case *ast.List:
			out = append(out, c.convertList(b, ids))

		case *ast.Quote:
			// A run of adjacent quote lines folds into one nested
			// blockquote structure.
			run := []*ast.Quote{b}
			for i+1 < len(blocks) {
				q, ok := blocks[i+1].(*ast.Quote)
				if !ok {
					break
				}
				run = append(run, q)
				i++
			}
			out = append(out, c.foldQuotes(run))

		case *ast.DefinitionList:
			out = append(out, c.convertDefinitions(b, ids))

		case *ast.Tag:
			out = append(out, c.convertTag(b, ids)...)
		}
	}
	return out
}

// convertHeading flattens Neorg's owned-children model into Pandoc's flat
// header-plus-following-blocks convention.
func (c *Converter) convertHeading(h *ast.Heading, ids map[*ast.Heading]string) []pandoc.Block {
	level := h.Level
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}

	inlines := c.convertInlines(h.Title)
	if sym := c.statusSymbol(h.Status); sym != "" {
		inlines = append([]pandoc.Inline{&pandoc.Str{Text: sym}, &pandoc.Space{}}, inlines...)
	}

	out := []pandoc.Block{&pandoc.Header{
		Level:   level,
		Attr:    pandoc.Attr{Id: ids[h]},
		Inlines: inlines,
	}}
	return append(out, c.convertBlocks(h.Children, ids)...)
}

func (c *Converter) convertList(l *ast.List, ids map[*ast.Heading]string) pandoc.Block {
	items := make([][]pandoc.Block, 0, len(l.Items))
	for _, item := range l.Items {
		var blocks []pandoc.Block

		inlines := c.convertInlines(item.Content)
		if sym := c.statusSymbol(item.Status); sym != "" {
			inlines = append([]pandoc.Inline{&pandoc.Str{Text: sym}, &pandoc.Space{}}, inlines...)
		}
		if len(inlines) > 0 {
			blocks = append(blocks, &pandoc.Para{Inlines: inlines})
		}

		blocks = append(blocks, c.convertBlocks(item.Children, ids)...)
		items = append(items, blocks)
	}

	if l.Ordered {
		return &pandoc.OrderedList{Items: items}
	}
	return &pandoc.BulletList{Items: items}
}

// foldQuotes nests a run of quote lines by depth: each line lands inside
// depth-many levels of blockquote, and deeper runs fold into the
// enclosing level when the depth drops back.
func (c *Converter) foldQuotes(run []*ast.Quote) pandoc.Block {
	// levels[d] accumulates the blocks open at depth d+1.
	var levels [][]pandoc.Block
	last := 0

	ensure := func(depth int) {
		for len(levels) < depth {
			levels = append(levels, nil)
		}
	}
	// merge folds every level deeper than depth into its parent.
	merge := func(depth int) {
		for i := len(levels); i > depth && i > 1; i-- {
			inner := levels[i-1]
			levels = levels[:i-1]
			levels[i-2] = append(levels[i-2], &pandoc.BlockQuote{Blocks: inner})
		}
	}

	for _, q := range run {
		depth := q.Depth
		if depth < 1 {
			depth = 1
		}
		if depth < last {
			merge(depth)
		}
		ensure(depth)
		levels[depth-1] = append(levels[depth-1], &pandoc.Para{Inlines: c.convertInlines(q.Content)})
		last = depth
	}
	merge(1)

	if len(levels) == 0 {
		return &pandoc.BlockQuote{}
	}
	return &pandoc.BlockQuote{Blocks: levels[0]}
}

func (c *Converter) convertDefinitions(dl *ast.DefinitionList, ids map[*ast.Heading]string) pandoc.Block {
	out := &pandoc.DefinitionList{}
	for _, d := range dl.Items {
		out.Items = append(out.Items, pandoc.Definition{
			Term:        c.convertInlines(d.Term),
			Definitions: [][]pandoc.Block{c.convertBlocks(d.Body, ids)},
		})
	}
	return out
}

func (c *Converter) statusSymbol(s ast.TodoStatus) string {
	sym := c.cfg.TodoSymbols
	switch s {
	case ast.StatusUndone:
		return sym.Undone
	case ast.StatusDone:
		return sym.Done
	case ast.StatusPending:
		return sym.Pending
	case ast.StatusCancelled:
		return sym.Cancelled
	case ast.StatusOnHold:
		return sym.OnHold
	case ast.StatusRecurring:
		return sym.Recurring
	case ast.StatusUncertain:
		return sym.Uncertain
	case ast.StatusUrgent:
		return sym.Urgent
	}
	return ""
}

func (c *Converter) convertInlines(ins []ast.Inline) []pandoc.Inline {
	var out []pandoc.Inline

	for _, in := range ins {
		switch in := in.(type) {
		case *ast.Text:
			out = append(out, splitText(in.Text)...)

		case *ast.SoftBreak:
			out = append(out, &pandoc.SoftBreak{})

		case *ast.Styled:
			out = append(out, c.convertStyled(in)...)

		case *ast.Link:
			out = append(out, c.convertLink(in))
		}
	}
	return out
}

func (c *Converter) convertStyled(s *ast.Styled) []pandoc.Inline {
	switch s.Kind {
	case ast.Bold:
		return []pandoc.Inline{&pandoc.Strong{Inlines: c.convertInlines(s.Content)}}
	case ast.Italic:
		return []pandoc.Inline{&pandoc.Emph{Inlines: c.convertInlines(s.Content)}}
	case ast.Underline:
		return []pandoc.Inline{&pandoc.Underline{Inlines: c.convertInlines(s.Content)}}
	case ast.Strikethrough:
		return []pandoc.Inline{&pandoc.Strikeout{Inlines: c.convertInlines(s.Content)}}
	case ast.Superscript:
		return []pandoc.Inline{&pandoc.Superscript{Inlines: c.convertInlines(s.Content)}}
	case ast.Subscript:
		return []pandoc.Inline{&pandoc.Subscript{Inlines: c.convertInlines(s.Content)}}
	case ast.Code:
		return []pandoc.Inline{&pandoc.Code{Text: inlineText(s.Content)}}
	case ast.Math:
		return []pandoc.Inline{&pandoc.Math{MathType: pandoc.InlineMath, Text: inlineText(s.Content)}}
	case ast.FreeForm:
		// No Pandoc equivalent: the content survives, the styling does
		// not.
		return c.convertInlines(s.Content)
	}
	return c.convertInlines(s.Content)
}

func (c *Converter) convertLink(l *ast.Link) pandoc.Inline {
	var url string
	switch l.Target.Kind {
	case ast.TargetURL, ast.TargetFile:
		url = l.Target.Target
	case ast.TargetNorgFile:
		url = l.Target.Target + ".norg"
	case ast.TargetHeading:
		// Same-document anchor; unresolvable targets keep an empty URL
		// rather than failing.
		if id, ok := c.anchors[l.Target.Target]; ok {
			url = "#" + id
		}
	}

	inlines := c.convertInlines(l.Description)
	if len(inlines) == 0 {
		inlines = []pandoc.Inline{&pandoc.Str{Text: l.Target.Target}}
	}

	return &pandoc.Link{
		Inlines: inlines,
		Target:  pandoc.Target{Url: url},
	}
}

func convertMetaValue(v ast.MetaValue) pandoc.MetaValue {
	switch v := v.(type) {
	case ast.MetaString:
		return pandoc.MetaString(v)
	case ast.MetaList:
		var list pandoc.MetaList
		for _, e := range v {
			list = append(list, convertMetaValue(e))
		}
		return list
	case ast.MetaMap:
		var m pandoc.Meta
		for _, e := range v {
			m.Set(e.Key, convertMetaValue(e.Value))
		}
		return pandoc.MetaMap(m)
	}
	return pandoc.MetaString("")
}

// splitText breaks a literal text span into Pandoc's word/space
// granularity.
func splitText(text string) []pandoc.Inline {
	var out []pandoc.Inline
	word := strings.Builder{}

	flush := func() {
		if word.Len() > 0 {
			out = append(out, &pandoc.Str{Text: word.String()})
			word.Reset()
		}
	}

	inSpace := false
	for _, r := range text {
		if r == ' ' || r == '\t' {
			if !inSpace {
				flush()
				out = append(out, &pandoc.Space{})
				inSpace = true
			}
			continue
		}
		inSpace = false
		word.WriteRune(r)
	}
	flush()
	return out
}

// inlineText flattens an inline sequence to its plain text.
func inlineText(ins []ast.Inline) string {
	var b strings.Builder
	for _, in := range ins {
		switch in := in.(type) {
		case *ast.Text:
			b.WriteString(in.Text)
		case *ast.SoftBreak:
			b.WriteByte('\n')
		case *ast.Styled:
			b.WriteString(inlineText(in.Content))
		case *ast.Link:
			if in.Description != nil {
				b.WriteString(inlineText(in.Description))
			} else {
				b.WriteString(in.Target.Target)
			}
		}
	}
	return b.String()
}
