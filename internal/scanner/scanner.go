// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scanner tokenizes Neorg source text.
// Implements: prd001-scanning (R1-R4); docs/ARCHITECTURE § Scanner.
//
// The scanner is total: any byte sequence produces a token stream ending in
// EOF. Characters with no structural meaning become Word tokens. Structural
// decisions that need context (whether a delimiter opens or closes a span,
// what a tag's content means) are left to the parsers.
package scanner

import (
	"strings"
	"unicode"
)

// delimiterChars are the attached-modifier characters. The free-form pair
// uses '|'.
const delimiterChars = "*/_-^,`$|"

// markerChars are the detached-modifier characters recognized at the start
// of a line when repeated and followed by whitespace.
const markerChars = "*-~>$"

// Scanner walks Neorg source text and produces tokens. It scans the whole
// buffered input; restarting means creating a new Scanner.
type Scanner struct {
	src   []rune
	pos   int
	line  int
	col   int
	atBOL bool
	inTag bool
}

// New creates a Scanner over source. Line endings are normalized to \n.
func New(source string) *Scanner {
	source = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(source)
	return &Scanner{
		src:   []rune(source),
		line:  1,
		col:   1,
		atBOL: true,
	}
}

// Tokens scans the entire input and returns the token sequence, ending with
// a single EOF token.
func (s *Scanner) Tokens() []Token {
	var toks []Token
	for {
		t := s.Next()
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks
		}
	}
}

// Next returns the next token.
func (s *Scanner) Next() Token {
	if s.atBOL {
		if t, ok := s.scanLineStart(); ok {
			return t
		}
	}
	return s.scanInline()
}

// scanLineStart classifies the current line's lead: blank line, raw tag
// content, tag open/close, or a detached modifier marker. Returns ok=false
// when the line starts with ordinary inline content.
func (s *Scanner) scanLineStart() (Token, bool) {
	if s.eof() {
		return s.token(EOF, ""), true
	}

	if s.inTag {
		return s.scanTagLine(), true
	}

	// Peek past leading indentation without consuming it yet.
	i := s.pos
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}

	if i >= len(s.src) {
		s.advanceTo(i)
		return s.token(EOF, ""), true
	}

	if s.src[i] == '\n' {
		t := s.token(BlankLine, "")
		s.advanceTo(i + 1)
		return t, true
	}

	if s.src[i] == '@' {
		s.advanceTo(i)
		return s.scanTagOpen(), true
	}

	ch := s.src[i]
	if strings.ContainsRune(markerChars, ch) {
		n := i
		for n < len(s.src) && s.src[n] == ch {
			n++
		}
		if n < len(s.src) && (s.src[n] == ' ' || s.src[n] == '\t') {
			s.advanceTo(i)
			t := s.token(Marker, string(s.src[i:n]))
			t.Count = n - i
			s.advanceTo(n)
			// The marker's trailing whitespace is structural, not content.
			s.skipSpaces()
			s.atBOL = false
			return t, true
		}
	}

	s.advanceTo(i)
	s.atBOL = false
	return Token{}, false
}

// scanTagLine handles one line inside a ranged tag region: either the @end
// terminator or a verbatim RawLine kept byte-for-byte (indentation matters
// for code content).
func (s *Scanner) scanTagLine() Token {
	start := s.pos
	end := start
	for end < len(s.src) && s.src[end] != '\n' {
		end++
	}
	lineText := string(s.src[start:end])

	if strings.TrimSpace(lineText) == "@end" {
		t := s.token(TagEnd, "@end")
		s.advanceTo(min(end+1, len(s.src)))
		s.inTag = false
		return t
	}

	t := s.token(RawLine, lineText)
	s.advanceTo(min(end+1, len(s.src)))
	return t
}

// scanTagOpen lexes a @name parameter... line. A bare "@end" outside a tag
// region is still reported as TagEnd; the parser decides what a stray
// terminator means.
func (s *Scanner) scanTagOpen() Token {
	start := s.pos
	end := start
	for end < len(s.src) && s.src[end] != '\n' {
		end++
	}
	fields := strings.Fields(string(s.src[start:end]))

	name := strings.TrimPrefix(fields[0], "@")
	t := s.token(TagOpen, string(s.src[start:end]))
	if name == "end" {
		t.Kind = TagEnd
		t.Literal = "@end"
	} else {
		t.Name = name
		t.Params = fields[1:]
		s.inTag = true
	}
	s.advanceTo(min(end+1, len(s.src)))
	return t
}

// scanInline lexes tokens within a line: words, spaces, delimiters, link
// braces, escapes, line breaks and the trailing continuation modifier.
func (s *Scanner) scanInline() Token {
	if s.eof() {
		return s.token(EOF, "")
	}

	ch := s.src[s.pos]
	switch {
	case ch == '\n':
		t := s.token(LineBreak, "\n")
		s.advance()
		s.atBOL = true
		return t

	case ch == ' ' || ch == '\t':
		start := s.pos
		for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
			s.advance()
		}
		return s.tokenAt(Space, string(s.src[start:s.pos]), start)

	case ch == '\\':
		// Escape: the next character is literal; the backslash vanishes.
		s.advance()
		if s.eof() || s.src[s.pos] == '\n' {
			return s.token(Word, "\\")
		}
		lit := string(s.src[s.pos])
		s.advance()
		return s.token(Word, lit)

	case ch == '~' && s.peekIsNewline():
		// Trailing modifier: the line break is suppressed and the next
		// line continues this one.
		s.advance()
		if !s.eof() {
			s.advance() // the newline
		}
		return s.scanInline()

	case ch == '{':
		t := s.token(LinkOpen, "{")
		s.advance()
		return t
	case ch == '}':
		t := s.token(LinkClose, "}")
		s.advance()
		return t
	case ch == '[':
		t := s.token(DescOpen, "[")
		s.advance()
		return t
	case ch == ']':
		t := s.token(DescClose, "]")
		s.advance()
		return t

	case strings.ContainsRune(delimiterChars, ch):
		t := s.token(Delimiter, string(ch))
		s.advance()
		return t
	}

	return s.scanWord()
}

func (s *Scanner) scanWord() Token {
	start := s.pos
	for !s.eof() {
		ch := s.src[s.pos]
		if ch == '\n' || ch == ' ' || ch == '\t' || ch == '\\' ||
			strings.ContainsRune("{}[]", ch) ||
			strings.ContainsRune(delimiterChars, ch) {
			break
		}
		if ch == '~' && s.peekIsNewline() {
			break
		}
		s.advance()
	}
	return s.tokenAt(Word, string(s.src[start:s.pos]), start)
}

func (s *Scanner) skipSpaces() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.advance()
	}
}

func (s *Scanner) eof() bool { return s.pos >= len(s.src) }

func (s *Scanner) peekIsNewline() bool {
	return s.pos+1 >= len(s.src) || s.src[s.pos+1] == '\n'
}

func (s *Scanner) advance() {
	if s.eof() {
		return
	}
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

func (s *Scanner) advanceTo(pos int) {
	for s.pos < pos {
		s.advance()
	}
}

func (s *Scanner) token(k Kind, lit string) Token {
	return Token{Kind: k, Literal: lit, Line: s.line, Col: s.col}
}

// tokenAt builds a token whose literal started at an earlier position. The
// column is reconstructed from the current column and the literal length,
// which is safe because literals never span lines.
func (s *Scanner) tokenAt(k Kind, lit string, start int) Token {
	col := s.col - (s.pos - start)
	return Token{Kind: k, Literal: lit, Line: s.line, Col: col}
}

// IsWordChar reports whether r continues a word: letters, digits and marks.
// Used by the inline parser to judge delimiter open/close positions.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
