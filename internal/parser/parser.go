// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser builds a Neorg document tree from source text.
// Implements: prd002-parsing (R1-R6); docs/ARCHITECTURE § Block Parser,
//
//	§ Inline Parser.
//
// Parsing is error-tolerant by design: malformed syntax degrades to literal
// text or a raw block, never to a failure. Degraded constructs are reported
// as Diagnostics for callers that want them.
package parser

import (
	"fmt"
	"strings"

	"github.com/pdiddy/norg-pandoc/internal/ast"
	"github.com/pdiddy/norg-pandoc/internal/scanner"
)

// Diagnostic reports a degraded or unrecognized construct. Parsing always
// continues past it.
type Diagnostic struct {
	Line    int
	Col     int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Col, d.Message)
}

// Parse converts Neorg source into a Document. It never fails.
func Parse(source string) *ast.Document {
	doc, _ := ParseWithDiagnostics(source)
	return doc
}

// ParseWithDiagnostics is Parse plus the list of degraded constructs
// encountered along the way.
func ParseWithDiagnostics(source string) (*ast.Document, []Diagnostic) {
	p := &parser{lines: splitLines(scanner.New(source).Tokens())}
	doc := &ast.Document{}
	doc.Blocks = p.parseSequence(0, doc)
	return doc, p.diags
}

// line is one logical source line: a classified lead plus its inline tokens.
// Lines joined by the trailing continuation modifier arrive as one line
// because the scanner suppresses the break.
type line struct {
	kind   lineKind
	marker scanner.Token   // valid when kind == lineMarker
	tag    scanner.Token   // valid when kind == lineTagOpen or lineTagEnd
	raw    string          // valid when kind == lineRaw
	toks   []scanner.Token // inline tokens after the marker, if any
}

type lineKind uint8

const (
	lineText lineKind = iota
	lineBlank
	lineMarker
	lineTagOpen
	lineTagEnd
	lineRaw
)

// splitLines groups the flat token stream into logical lines.
func splitLines(toks []scanner.Token) []line {
	var lines []line
	cur := line{}
	flush := func() {
		if cur.kind != lineText || len(cur.toks) > 0 {
			lines = append(lines, cur)
		}
		cur = line{}
	}

	for _, t := range toks {
		switch t.Kind {
		case scanner.EOF:
			flush()
		case scanner.LineBreak:
			flush()
		case scanner.BlankLine:
			flush()
			lines = append(lines, line{kind: lineBlank})
		case scanner.Marker:
			cur.kind = lineMarker
			cur.marker = t
		case scanner.TagOpen:
			lines = append(lines, line{kind: lineTagOpen, tag: t})
		case scanner.TagEnd:
			lines = append(lines, line{kind: lineTagEnd, tag: t})
		case scanner.RawLine:
			lines = append(lines, line{kind: lineRaw, raw: t.Literal})
		default:
			cur.toks = append(cur.toks, t)
		}
	}
	return lines
}

type parser struct {
	lines []line
	pos   int
	diags []Diagnostic
}

func (p *parser) diag(t scanner.Token, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{
		Line:    t.Line,
		Col:     t.Col,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) peek() *line {
	if p.pos >= len(p.lines) {
		return nil
	}
	return &p.lines[p.pos]
}

// parseSequence parses blocks until end of input or a heading at or above
// minLevel, which belongs to an enclosing context. Headings own everything
// after them down to the next heading of equal or lower level; the document
// itself is level 0.
func (p *parser) parseSequence(minLevel int, doc *ast.Document) []ast.Block {
	var blocks []ast.Block

	for {
		ln := p.peek()
		if ln == nil {
			return blocks
		}

		switch ln.kind {
		case lineBlank:
			p.pos++

		case lineMarker:
			switch ln.marker.Literal[0] {
			case '*':
				if ln.marker.Count <= minLevel {
					return blocks
				}
				blocks = append(blocks, p.parseHeading(doc))
			case '-', '~':
				blocks = append(blocks, p.parseList()...)
			case '>':
				blocks = append(blocks, p.parseQuote())
			case '$':
				blocks = append(blocks, p.parseDefinitionList())
			}

		case lineTagOpen:
			if b := p.parseTag(doc); b != nil {
				blocks = append(blocks, b)
			}

		case lineTagEnd:
			p.diag(ln.tag, "stray @end outside a ranged tag")
			p.pos++

		case lineRaw:
			// Raw lines are consumed by parseTag; one here means an
			// internal inconsistency, skip defensively.
			p.pos++

		default:
			blocks = append(blocks, p.parseParagraph())
		}
	}
}

// parseHeading consumes a heading line and everything it owns.
func (p *parser) parseHeading(doc *ast.Document) *ast.Heading {
	ln := p.peek()
	p.pos++

	status, rest := parseStatus(ln.toks)
	h := &ast.Heading{
		Level:  ln.marker.Count,
		Status: status,
		Title:  p.parseInlines(rest),
	}
	h.Children = p.parseSequence(h.Level, doc)
	return h
}

// parseQuote consumes one quote line. Adjacent quote lines become sibling
// Quote blocks; the converter folds them into nested blockquotes.
func (p *parser) parseQuote() *ast.Quote {
	ln := p.peek()
	p.pos++
	return &ast.Quote{
		Depth:   ln.marker.Count,
		Content: p.parseInlines(ln.toks),
	}
}

// parseList consumes a run of list item lines and their continuations,
// tracking open lists with an explicit stack keyed by marker depth. Depth
// comes from marker repetition alone, never from column indentation.
func (p *parser) parseList() []ast.Block {
	type openList struct {
		depth int
		list  *ast.List
	}

	var stack []openList
	var roots []ast.Block
	var curItem *ast.ListItem

	attach := func(l *ast.List, depth int) {
		if len(stack) == 0 {
			// A list at the shallowest open depth is a sibling block; a
			// kind change at the same depth lands here after the pop.
			roots = append(roots, l)
		} else {
			parent := stack[len(stack)-1].list
			if len(parent.Items) == 0 {
				parent.Items = append(parent.Items, &ast.ListItem{})
			}
			item := parent.Items[len(parent.Items)-1]
			item.Children = append(item.Children, l)
		}
		stack = append(stack, openList{depth: depth, list: l})
	}

	for {
		ln := p.peek()
		if ln == nil {
			break
		}

		if ln.kind == lineMarker && (ln.marker.Literal[0] == '-' || ln.marker.Literal[0] == '~') {
			depth := ln.marker.Count
			ordered := ln.marker.Literal[0] == '~'

			for len(stack) > 0 && stack[len(stack)-1].depth > depth {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 && stack[len(stack)-1].depth == depth &&
				stack[len(stack)-1].list.Ordered != ordered {
				// Type mismatch at the same depth starts a sibling list.
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 || stack[len(stack)-1].depth < depth {
				attach(&ast.List{Ordered: ordered}, depth)
			}

			status, rest := parseStatus(ln.toks)
			curItem = &ast.ListItem{
				Status:  status,
				Content: p.parseInlines(rest),
			}
			top := stack[len(stack)-1].list
			top.Items = append(top.Items, curItem)
			p.pos++
			continue
		}

		// Object continuation: an unmarked non-blank line extends the open
		// item's content with a soft break.
		if ln.kind == lineText && curItem != nil {
			curItem.Content = append(curItem.Content, &ast.SoftBreak{})
			curItem.Content = append(curItem.Content, p.parseInlines(ln.toks)...)
			p.pos++
			continue
		}

		break
	}

	return roots
}

// parseDefinitionList consumes consecutive `$ term` entries. Each entry's
// body is the run of unmarked lines directly below it.
func (p *parser) parseDefinitionList() *ast.DefinitionList {
	dl := &ast.DefinitionList{}

	for {
		ln := p.peek()
		if ln == nil || ln.kind != lineMarker || ln.marker.Literal[0] != '$' {
			break
		}
		p.pos++

		def := &ast.Definition{Term: p.parseInlines(ln.toks)}
		if body := p.peek(); body != nil && body.kind == lineText {
			def.Body = append(def.Body, p.parseParagraph())
		}
		dl.Items = append(dl.Items, def)

		// A blank line between entries keeps the list going; anything
		// else ends it.
		for p.peek() != nil && p.peek().kind == lineBlank {
			if next := p.pos + 1; next < len(p.lines) &&
				p.lines[next].kind == lineMarker && p.lines[next].marker.Literal[0] == '$' {
				p.pos++
			} else {
				break
			}
		}
	}
	return dl
}

// parseParagraph merges consecutive unmarked non-blank lines into one
// paragraph, separated by soft breaks.
func (p *parser) parseParagraph() *ast.Paragraph {
	para := &ast.Paragraph{}
	first := true

	for {
		ln := p.peek()
		if ln == nil || ln.kind != lineText {
			break
		}
		if !first {
			para.Content = append(para.Content, &ast.SoftBreak{})
		}
		para.Content = append(para.Content, p.parseInlines(ln.toks)...)
		first = false
		p.pos++
	}
	return para
}

// statusForms maps the bracketed TODO token to its status. The token may
// arrive split across tokens (the scanner treats '-' and '_' as
// delimiters), so matching happens on the reassembled prefix.
var statusForms = map[string]ast.TodoStatus{
	"( )": ast.StatusUndone,
	"(x)": ast.StatusDone,
	"(-)": ast.StatusPending,
	"(_)": ast.StatusCancelled,
	"(=)": ast.StatusOnHold,
	"(+)": ast.StatusRecurring,
	"(?)": ast.StatusUncertain,
	"(!)": ast.StatusUrgent,
}

// parseStatus strips a leading TODO status token from a heading title or
// list item and returns the remaining tokens.
func parseStatus(toks []scanner.Token) (ast.TodoStatus, []scanner.Token) {
	var prefix strings.Builder
	end := 0
	for i := 0; i < len(toks) && i < 3; i++ {
		prefix.WriteString(toks[i].Literal)
		if strings.HasSuffix(toks[i].Literal, ")") {
			end = i + 1
			break
		}
	}
	if end == 0 {
		return ast.StatusNone, toks
	}

	status, ok := statusForms[prefix.String()]
	if !ok {
		return ast.StatusNone, toks
	}

	rest := toks[end:]
	if len(rest) > 0 && rest[0].Kind == scanner.Space {
		rest = rest[1:]
	}
	return status, rest
}
