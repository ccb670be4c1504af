// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scanner

import "fmt"

// Kind classifies a lexical unit.
type Kind uint8

const (
	EOF Kind = iota

	// Word is a run of literal text with no spaces or structural characters.
	Word
	// Space is a run of spaces or tabs.
	Space
	// Delimiter is a single attached-modifier character (one of bold,
	// italic, underline, strikethrough, superscript, subscript, verbatim,
	// math or free-form). Whether it opens or closes a span is decided by
	// the inline parser, not the scanner.
	Delimiter
	// LinkOpen and LinkClose delimit a link target: { ... }.
	LinkOpen
	LinkClose
	// DescOpen and DescClose delimit a link description: [ ... ].
	DescOpen
	DescClose
	// Marker is a line-start detached modifier run (heading, list, quote,
	// definition). Count holds the repetition count.
	Marker
	// TagOpen is a ranged tag opener line: @name param1 param2.
	TagOpen
	// TagEnd is the ranged tag terminator line: @end.
	TagEnd
	// RawLine is one verbatim line between TagOpen and TagEnd. Ranged tag
	// content is never tokenized; interpretation is the parser's call.
	RawLine
	// LineBreak separates two lines of the same paragraph.
	LineBreak
	// BlankLine is a line holding nothing but whitespace.
	BlankLine
)

var kindNames = map[Kind]string{
	EOF:       "EOF",
	Word:      "Word",
	Space:     "Space",
	Delimiter: "Delimiter",
	LinkOpen:  "LinkOpen",
	LinkClose: "LinkClose",
	DescOpen:  "DescOpen",
	DescClose: "DescClose",
	Marker:    "Marker",
	TagOpen:   "TagOpen",
	TagEnd:    "TagEnd",
	RawLine:   "RawLine",
	LineBreak: "LineBreak",
	BlankLine: "BlankLine",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Token is one lexical unit produced by the Scanner.
type Token struct {
	Kind    Kind
	Literal string   // exact source text (Word, Space, Delimiter, Marker, RawLine)
	Count   int      // marker repetition count
	Name    string   // tag name for TagOpen
	Params  []string // tag parameters for TagOpen
	Line    int      // 1-based source line
	Col     int      // 1-based source column
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Kind, t.Literal)
}
