// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"strings"

	"github.com/pdiddy/norg-pandoc/internal/ast"
)

// tagKinds is the ranged tag dispatch table. Content interpretation is
// fixed here, at parse time, per tag kind.
var tagKinds = map[string]ast.TagKind{
	"code":          ast.TagCode,
	"math":          ast.TagMath,
	"comment":       ast.TagComment,
	"example":       ast.TagExample,
	"embed":         ast.TagEmbed,
	"table":         ast.TagTable,
	"document.meta": ast.TagMeta,
}

// parseTag consumes a ranged tag region: the @name line, its raw content
// lines, and the @end terminator. A missing terminator closes the tag at
// end of input. The returned block is nil for tags that contribute no
// block (document.meta feeds the document metadata instead).
func (p *parser) parseTag(doc *ast.Document) ast.Block {
	open := p.peek()
	p.pos++

	var rawLines []string
	for {
		ln := p.peek()
		if ln == nil {
			p.diag(open.tag, "ranged tag %q not closed before end of input", open.tag.Name)
			break
		}
		if ln.kind == lineTagEnd {
			p.pos++
			break
		}
		// Inside a tag region the scanner yields only raw lines.
		rawLines = append(rawLines, ln.raw)
		p.pos++
	}

	raw := dedent(rawLines)
	kind, known := tagKinds[open.tag.Name]
	if !known {
		kind = ast.TagOther
		p.diag(open.tag, "unknown ranged tag %q, keeping content verbatim", open.tag.Name)
	}

	tag := &ast.Tag{
		Kind:   kind,
		Name:   open.tag.Name,
		Params: open.tag.Params,
		Raw:    raw,
	}

	switch kind {
	case ast.TagMeta:
		meta := parseMeta(raw)
		for _, e := range meta {
			doc.Meta.Set(e.Key, e.Value)
		}
		return nil

	case ast.TagExample:
		// Example content is itself Neorg text; re-invoke the block
		// parser on the bounded payload.
		sub, diags := ParseWithDiagnostics(raw)
		tag.Blocks = sub.Blocks
		p.diags = append(p.diags, diags...)
	}

	return tag
}

// dedent strips the common leading indentation of the non-blank content
// lines, so tag bodies indented to match their surroundings keep only
// their own structure.
func dedent(lines []string) string {
	minIndent := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		indent := 0
		for _, r := range ln {
			if r != ' ' && r != '\t' {
				break
			}
			indent++
		}
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}

	out := make([]string, len(lines))
	for i, ln := range lines {
		if len(ln) >= minIndent {
			out[i] = ln[minIndent:]
		} else {
			out[i] = strings.TrimLeft(ln, " \t")
		}
	}
	return strings.Join(out, "\n")
}
