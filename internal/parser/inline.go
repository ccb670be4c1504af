// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"strings"

	"github.com/pdiddy/norg-pandoc/internal/ast"
	"github.com/pdiddy/norg-pandoc/internal/scanner"
)

// spanKinds maps an attached-modifier delimiter to its span kind.
var spanKinds = map[string]ast.SpanKind{
	"*": ast.Bold,
	"/": ast.Italic,
	"_": ast.Underline,
	"-": ast.Strikethrough,
	"^": ast.Superscript,
	",": ast.Subscript,
	"`": ast.Code,
	"$": ast.Math,
	"|": ast.FreeForm,
}

// verbatimSpan reports whether a span kind keeps its content as literal
// text rather than nested inlines.
func verbatimSpan(k ast.SpanKind) bool {
	return k == ast.Code || k == ast.Math
}

// parseInlines builds the inline node sequence for one bounded token span.
func (p *parser) parseInlines(toks []scanner.Token) []ast.Inline {
	ip := inlineParser{toks: toks}
	return ip.parse()
}

type inlineParser struct {
	toks []scanner.Token
	pos  int
	out  []ast.Inline
}

// parse walks the span left to right. Delimiters that cannot legally open
// or close a styled span degrade to literal text; parsing never fails.
func (ip *inlineParser) parse() []ast.Inline {
	for ip.pos < len(ip.toks) {
		t := ip.toks[ip.pos]

		switch t.Kind {
		case scanner.Word, scanner.Space:
			ip.text(t.Literal)
			ip.pos++

		case scanner.LineBreak:
			// Synthetic break inserted by the block parser between
			// continuation lines.
			ip.out = append(ip.out, &ast.SoftBreak{})
			ip.pos++

		case scanner.Delimiter:
			if !ip.tryStyled() {
				ip.text(t.Literal)
				ip.pos++
			}

		case scanner.LinkOpen:
			if !ip.tryLink() {
				ip.text(t.Literal)
				ip.pos++
			}

		default:
			// Stray description brackets or anything unexpected: literal.
			ip.text(t.Literal)
			ip.pos++
		}
	}
	return ip.out
}

// tryStyled attempts to parse a styled span starting at the current
// delimiter. On success the span (and its closer) are consumed.
func (ip *inlineParser) tryStyled() bool {
	open := ip.toks[ip.pos]
	kind, ok := spanKinds[open.Literal]
	if !ok || !ip.validOpener(ip.pos) {
		return false
	}

	close := ip.findCloser(open.Literal, ip.pos+1)
	if close < 0 {
		return false
	}

	inner := ip.toks[ip.pos+1 : close]
	span := &ast.Styled{Kind: kind}
	if verbatimSpan(kind) {
		span.Content = []ast.Inline{&ast.Text{Text: literalText(inner)}}
	} else {
		sub := inlineParser{toks: inner}
		span.Content = sub.parse()
	}
	ip.out = append(ip.out, span)
	ip.pos = close + 1
	return true
}

// findCloser scans ahead for the nearest valid closing delimiter of the
// same kind. The first valid closer wins, which gives LIFO matching for
// same-kind nesting.
func (ip *inlineParser) findCloser(delim string, from int) int {
	for i := from; i < len(ip.toks); i++ {
		t := ip.toks[i]
		if t.Kind == scanner.Delimiter && t.Literal == delim && ip.validCloser(i) {
			return i
		}
	}
	return -1
}

// validOpener: an opening delimiter must not follow a word character and
// must be followed immediately by non-whitespace.
func (ip *inlineParser) validOpener(pos int) bool {
	if pos+1 >= len(ip.toks) {
		return false
	}
	next := ip.toks[pos+1]
	if next.Kind == scanner.Space || next.Kind == scanner.LineBreak {
		return false
	}
	if pos == 0 {
		return true
	}
	prev := ip.toks[pos-1]
	if prev.Kind == scanner.Space || prev.Kind == scanner.LineBreak {
		return true
	}
	lit := prev.Literal
	if lit == "" {
		return true
	}
	r := []rune(lit)
	return !scanner.IsWordChar(r[len(r)-1])
}

// validCloser: a closing delimiter must follow non-whitespace and must not
// run straight into a word character.
func (ip *inlineParser) validCloser(pos int) bool {
	if pos == 0 {
		return false
	}
	prev := ip.toks[pos-1]
	if prev.Kind == scanner.Space || prev.Kind == scanner.LineBreak {
		return false
	}
	if pos+1 >= len(ip.toks) {
		return true
	}
	next := ip.toks[pos+1]
	if next.Kind == scanner.Space || next.Kind == scanner.LineBreak {
		return true
	}
	lit := next.Literal
	if lit == "" {
		return true
	}
	return !scanner.IsWordChar([]rune(lit)[0])
}

// tryLink parses {target} with an optional immediate [description].
func (ip *inlineParser) tryLink() bool {
	close := -1
	for i := ip.pos + 1; i < len(ip.toks); i++ {
		if ip.toks[i].Kind == scanner.LinkClose {
			close = i
			break
		}
	}
	if close < 0 {
		return false
	}

	target := parseLinkTarget(literalText(ip.toks[ip.pos+1 : close]))
	link := &ast.Link{Target: target}
	ip.pos = close + 1

	if ip.pos < len(ip.toks) && ip.toks[ip.pos].Kind == scanner.DescOpen {
		descClose := -1
		for i := ip.pos + 1; i < len(ip.toks); i++ {
			if ip.toks[i].Kind == scanner.DescClose {
				descClose = i
				break
			}
		}
		if descClose >= 0 {
			sub := inlineParser{toks: ip.toks[ip.pos+1 : descClose]}
			link.Description = sub.parse()
			ip.pos = descClose + 1
		}
	}

	ip.out = append(ip.out, link)
	return true
}

// parseLinkTarget classifies the raw target text into one of the supported
// linkable variants. Anything unrecognized degrades to a URL target with
// the raw text, never an error.
func parseLinkTarget(raw string) ast.LinkTarget {
	text := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(text, "*"):
		level := 0
		for level < len(text) && text[level] == '*' {
			level++
		}
		return ast.LinkTarget{
			Kind:   ast.TargetHeading,
			Target: strings.TrimSpace(text[level:]),
			Level:  level,
		}

	case strings.HasPrefix(text, ":") && strings.HasSuffix(text, ":") && len(text) > 1:
		return ast.LinkTarget{
			Kind:   ast.TargetNorgFile,
			Target: strings.Trim(text, ":"),
		}

	case strings.HasPrefix(text, "/"):
		return ast.LinkTarget{
			Kind:   ast.TargetFile,
			Target: strings.TrimSpace(strings.TrimPrefix(text, "/")),
		}
	}

	return ast.LinkTarget{Kind: ast.TargetURL, Target: text}
}

// text appends literal text, coalescing with a preceding Text node so
// degraded delimiters melt back into their surroundings.
func (ip *inlineParser) text(s string) {
	if s == "" {
		return
	}
	if n := len(ip.out); n > 0 {
		if t, ok := ip.out[n-1].(*ast.Text); ok {
			t.Text += s
			return
		}
	}
	ip.out = append(ip.out, &ast.Text{Text: s})
}

// literalText reassembles the exact source text of a token run.
func literalText(toks []scanner.Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == scanner.LineBreak {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(t.Literal)
	}
	return b.String()
}
