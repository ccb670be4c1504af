// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc implements the subset of the Pandoc AST this converter
// emits, plus its exact JSON interchange encoding.
// Implements: prd003-pandoc-model (R1-R3); docs/ARCHITECTURE § Target Model.
//
// The vocabulary and payload shapes follow pandoc-types 1.23: every element
// is a tagged object {"t": <tag>, "c": <payload>} and the top-level envelope
// carries the api version, metadata and block sequence.
package pandoc

// APIVersion is the pandoc-types version encoded in the envelope.
var APIVersion = []int{1, 23, 1}

// Tag is a Pandoc AST constructor tag.
type Tag string

// Inline is a Pandoc inline element.
type Inline interface {
	Tag() Tag
	inline()
}

// Block is a Pandoc block element.
type Block interface {
	Tag() Tag
	block()
}

// MetaValue is a Pandoc document metadata value.
type MetaValue interface {
	Tag() Tag
	meta()
}

// Pandoc is a complete document: metadata plus the ordered block sequence.
type Pandoc struct {
	Meta   Meta
	Blocks []Block
}

// MetaEntry is one metadata key/value pair.
type MetaEntry struct {
	Key   string
	Value MetaValue
}

// Meta is the document metadata mapping. Entries keep insertion order so
// serialization is deterministic.
type Meta []MetaEntry

// Get returns the value for key, or nil.
func (m Meta) Get(key string) MetaValue {
	for _, e := range m {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Set replaces the value for key or appends a new entry.
func (m *Meta) Set(key string, value MetaValue) {
	for i, e := range *m {
		if e.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, MetaEntry{Key: key, Value: value})
}

// MetaString is a scalar metadata value.
type MetaString string

func (MetaString) Tag() Tag { return "MetaString" }
func (MetaString) meta()    {}

// MetaList is an ordered metadata list.
type MetaList []MetaValue

func (MetaList) Tag() Tag { return "MetaList" }
func (MetaList) meta()    {}

// MetaMap is a nested metadata mapping.
type MetaMap Meta

func (MetaMap) Tag() Tag { return "MetaMap" }
func (MetaMap) meta()    {}

// Attr is the [identifier, classes, key-value pairs] attribute triple.
type Attr struct {
	Id      string
	Classes []string
	KVs     [][2]string
}

// Target is a link or image destination.
type Target struct {
	Url   string
	Title string
}

// --- inlines ---

// Str is a text run without spaces.
type Str struct {
	Text string
}

func (*Str) Tag() Tag { return "Str" }
func (*Str) inline()  {}

// Space is an inter-word space.
type Space struct{}

func (*Space) Tag() Tag { return "Space" }
func (*Space) inline()  {}

// SoftBreak is a soft line break.
type SoftBreak struct{}

func (*SoftBreak) Tag() Tag { return "SoftBreak" }
func (*SoftBreak) inline()  {}

// Emph is emphasized text.
type Emph struct {
	Inlines []Inline
}

func (*Emph) Tag() Tag { return "Emph" }
func (*Emph) inline()  {}

// Strong is strongly emphasized text.
type Strong struct {
	Inlines []Inline
}

func (*Strong) Tag() Tag { return "Strong" }
func (*Strong) inline()  {}

// Underline is underlined text.
type Underline struct {
	Inlines []Inline
}

func (*Underline) Tag() Tag { return "Underline" }
func (*Underline) inline()  {}

// Strikeout is struck-out text.
type Strikeout struct {
	Inlines []Inline
}

func (*Strikeout) Tag() Tag { return "Strikeout" }
func (*Strikeout) inline()  {}

// Superscript is superscripted text.
type Superscript struct {
	Inlines []Inline
}

func (*Superscript) Tag() Tag { return "Superscript" }
func (*Superscript) inline()  {}

// Subscript is subscripted text.
type Subscript struct {
	Inlines []Inline
}

func (*Subscript) Tag() Tag { return "Subscript" }
func (*Subscript) inline()  {}

// Code is inline code.
type Code struct {
	Attr Attr
	Text string
}

func (*Code) Tag() Tag { return "Code" }
func (*Code) inline()  {}

// MathType distinguishes inline from display math.
type MathType Tag

const (
	InlineMath  MathType = "InlineMath"
	DisplayMath MathType = "DisplayMath"
)

// Math is TeX math.
type Math struct {
	MathType MathType
	Text     string
}

func (*Math) Tag() Tag { return "Math" }
func (*Math) inline()  {}

// Link is a hyperlink with alt text.
type Link struct {
	Attr    Attr
	Inlines []Inline
	Target  Target
}

func (*Link) Tag() Tag { return "Link" }
func (*Link) inline()  {}

// Image is an image with alt text.
type Image struct {
	Attr    Attr
	Inlines []Inline
	Target  Target
}

func (*Image) Tag() Tag { return "Image" }
func (*Image) inline()  {}

// --- blocks ---

// Plain is text without paragraph spacing.
type Plain struct {
	Inlines []Inline
}

func (*Plain) Tag() Tag { return "Plain" }
func (*Plain) block()   {}

// Para is a paragraph.
type Para struct {
	Inlines []Inline
}

func (*Para) Tag() Tag { return "Para" }
func (*Para) block()   {}

// Header is a section heading.
type Header struct {
	Level   int
	Attr    Attr
	Inlines []Inline
}

func (*Header) Tag() Tag { return "Header" }
func (*Header) block()   {}

// BlockQuote is a quoted block sequence.
type BlockQuote struct {
	Blocks []Block
}

func (*BlockQuote) Tag() Tag { return "BlockQuote" }
func (*BlockQuote) block()   {}

// CodeBlock is a literal code block.
type CodeBlock struct {
	Attr Attr
	Text string
}

func (*CodeBlock) Tag() Tag { return "CodeBlock" }
func (*CodeBlock) block()   {}

// RawBlock is raw content in a named format.
type RawBlock struct {
	Format string
	Text   string
}

func (*RawBlock) Tag() Tag { return "RawBlock" }
func (*RawBlock) block()   {}

// BulletList is an unordered list; each item is a block sequence.
type BulletList struct {
	Items [][]Block
}

func (*BulletList) Tag() Tag { return "BulletList" }
func (*BulletList) block()   {}

// OrderedList is an ordered list with default numbering attributes.
type OrderedList struct {
	Items [][]Block
}

func (*OrderedList) Tag() Tag { return "OrderedList" }
func (*OrderedList) block()   {}

// Definition is one term plus its definitions.
type Definition struct {
	Term        []Inline
	Definitions [][]Block
}

// DefinitionList is a list of term/definition pairs.
type DefinitionList struct {
	Items []Definition
}

func (*DefinitionList) Tag() Tag { return "DefinitionList" }
func (*DefinitionList) block()   {}

// TableCell is one cell holding a block sequence.
type TableCell struct {
	Blocks []Block
}

// TableRow is one row of cells.
type TableRow struct {
	Cells []TableCell
}

// Table is a simple table: one header row and body rows, default column
// specs and alignment throughout.
type Table struct {
	Cols int
	Head []TableRow
	Body []TableRow
}

func (*Table) Tag() Tag { return "Table" }
func (*Table) block()   {}
