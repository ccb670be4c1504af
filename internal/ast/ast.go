// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ast defines the Neorg document tree produced by the parser.
// Implements: prd002-parsing (R1); docs/ARCHITECTURE § Document Model.
//
// Both node families are closed tagged variants: Block and Inline are sealed
// interfaces and every variant lives in this package. The tree is strictly
// hierarchical; every node is owned by exactly one parent and the Document
// owns the top-level sequence.
package ast

// Inline is a node within one logical line of text.
type Inline interface{ inline() }

// Text is a literal text span. It may contain spaces; the converter splits
// it into the target model's word/space granularity.
type Text struct {
	Text string
}

// SoftBreak separates two source lines merged into the same paragraph.
type SoftBreak struct{}

// SpanKind enumerates attached modifier styles.
type SpanKind uint8

const (
	Bold SpanKind = iota
	Italic
	Underline
	Strikethrough
	Superscript
	Subscript
	Code     // verbatim; content is a single Text node
	Math     // verbatim; content is a single Text node
	FreeForm // free-form attached modifier; no target equivalent
)

// Styled is an attached-modifier span wrapping nested inline content.
type Styled struct {
	Kind    SpanKind
	Content []Inline
}

// TargetKind enumerates link target syntaxes.
type TargetKind uint8

const (
	TargetURL      TargetKind = iota // {https://...}
	TargetFile                       // {/ path}
	TargetNorgFile                   // {:path:}
	TargetHeading                    // {* Heading Title}
)

// LinkTarget describes where a link points.
type LinkTarget struct {
	Kind TargetKind
	// Target is the raw target text: URL, path, or heading title.
	Target string
	// Level is the heading level for TargetHeading (0 for "any level").
	Level int
}

// Link is a {target}[description] construct. A nil Description means the
// target text doubles as the display text.
type Link struct {
	Target      LinkTarget
	Description []Inline
}

func (*Text) inline()      {}
func (*SoftBreak) inline() {}
func (*Styled) inline()    {}
func (*Link) inline()      {}

// TodoStatus is the detached-modifier TODO extension on list items and
// headings.
type TodoStatus uint8

const (
	StatusNone TodoStatus = iota
	StatusUndone
	StatusDone
	StatusPending
	StatusCancelled
	StatusOnHold
	StatusRecurring
	StatusUncertain
	StatusUrgent
)

// Block is a block-level node.
type Block interface{ block() }

// Heading owns the blocks nested under it. Children that are themselves
// headings always have a strictly greater level.
type Heading struct {
	Level    int
	Status   TodoStatus
	Title    []Inline
	Children []Block
}

// ListItem is one entry of a List. Content is the item's first logical
// line; Children holds nested lists and continuation blocks.
type ListItem struct {
	Status   TodoStatus
	Content  []Inline
	Children []Block
}

// List groups consecutive list items of the same kind and depth.
type List struct {
	Ordered bool
	Items   []*ListItem
}

// Quote is a single quote line. Depth is the marker repetition count;
// consecutive quotes are folded into nested blockquotes at conversion time.
type Quote struct {
	Depth   int
	Content []Inline
}

// TagKind fixes how a ranged tag's content is interpreted. The mapping from
// name to kind is decided once, at parse time, and never inferred from the
// content.
type TagKind uint8

const (
	TagCode    TagKind = iota // raw payload, language parameter
	TagMath                   // raw payload
	TagComment                // raw payload, dropped at conversion
	TagExample                // content recursively parsed as Neorg
	TagEmbed                  // raw payload, media reference
	TagTable                  // raw payload, '|'-separated rows
	TagMeta                   // raw payload, document.meta syntax
	TagOther                  // unrecognized name; raw payload, kept verbatim
)

// Tag is a ranged @name ... @end block. Raw carries the verbatim payload;
// Blocks is populated only for TagExample.
type Tag struct {
	Kind   TagKind
	Name   string
	Params []string
	Raw    string
	Blocks []Block
}

// Paragraph is the fallback block: consecutive non-blank lines not claimed
// by any other block type, merged with soft breaks.
type Paragraph struct {
	Content []Inline
}

// Definition is one `$ term` entry with its following body blocks.
type Definition struct {
	Term []Inline
	Body []Block
}

// DefinitionList groups consecutive definitions.
type DefinitionList struct {
	Items []*Definition
}

func (*Heading) block()        {}
func (*List) block()           {}
func (*Quote) block()          {}
func (*Tag) block()            {}
func (*Paragraph) block()      {}
func (*DefinitionList) block() {}

// MetaValue is a value parsed from a @document.meta tag: a string, a list,
// or an ordered map. Ordering is preserved so serialization is
// deterministic.
type MetaValue interface{ metaValue() }

// MetaString is a scalar metadata value.
type MetaString string

// MetaList is an ordered metadata list.
type MetaList []MetaValue

// MetaEntry is one key/value pair of a MetaMap.
type MetaEntry struct {
	Key   string
	Value MetaValue
}

// MetaMap is an ordered metadata mapping.
type MetaMap []MetaEntry

func (MetaString) metaValue() {}
func (MetaList) metaValue()   {}
func (MetaMap) metaValue()    {}

// Get returns the value for key, or nil.
func (m MetaMap) Get(key string) MetaValue {
	for _, e := range m {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Set replaces the value for key or appends a new entry.
func (m *MetaMap) Set(key string, value MetaValue) {
	for i, e := range *m {
		if e.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, MetaEntry{Key: key, Value: value})
}

// Document is the parse result: the top-level block sequence plus metadata
// collected from @document.meta tags.
type Document struct {
	Meta   MetaMap
	Blocks []Block
}
