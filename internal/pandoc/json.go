// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes the document as compact Pandoc JSON. Serialization is
// deterministic: the same document always yields the same bytes.
func Marshal(doc *Pandoc) ([]byte, error) {
	return json.Marshal(envelopeOf(doc))
}

// MarshalIndent encodes the document as indented Pandoc JSON.
func MarshalIndent(doc *Pandoc) ([]byte, error) {
	return json.MarshalIndent(envelopeOf(doc), "", "  ")
}

// envelope is the top-level JSON object. Field order matches pandoc's own
// output.
type envelope struct {
	Version []int      `json:"pandoc-api-version"`
	Meta    orderedMap `json:"meta"`
	Blocks  []any      `json:"blocks"`
}

func envelopeOf(doc *Pandoc) envelope {
	return envelope{
		Version: APIVersion,
		Meta:    orderedMap(doc.Meta),
		Blocks:  encBlocks(doc.Blocks),
	}
}

// taggedNode is an AST constructor with a payload: {"t": ..., "c": ...}.
type taggedNode struct {
	T Tag `json:"t"`
	C any `json:"c"`
}

// bareNode is a payload-free constructor: {"t": ...}.
type bareNode struct {
	T Tag `json:"t"`
}

// orderedMap marshals metadata entries as a JSON object in insertion
// order. encoding/json would sort a Go map's keys; metadata order should
// instead survive the round trip untouched.
type orderedMap []MetaEntry

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(encMetaValue(e.Value))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encMetaValue(v MetaValue) any {
	switch v := v.(type) {
	case MetaString:
		return taggedNode{v.Tag(), string(v)}
	case MetaList:
		items := make([]any, 0, len(v))
		for _, e := range v {
			items = append(items, encMetaValue(e))
		}
		return taggedNode{v.Tag(), items}
	case MetaMap:
		return taggedNode{v.Tag(), orderedMap(v)}
	}
	return bareNode{v.Tag()}
}

func encInlines(ins []Inline) []any {
	out := make([]any, 0, len(ins))
	for _, i := range ins {
		out = append(out, encInline(i))
	}
	return out
}

func encInline(i Inline) any {
	switch i := i.(type) {
	case *Str:
		return taggedNode{i.Tag(), i.Text}
	case *Space, *SoftBreak:
		return bareNode{i.Tag()}
	case *Emph:
		return taggedNode{i.Tag(), encInlines(i.Inlines)}
	case *Strong:
		return taggedNode{i.Tag(), encInlines(i.Inlines)}
	case *Underline:
		return taggedNode{i.Tag(), encInlines(i.Inlines)}
	case *Strikeout:
		return taggedNode{i.Tag(), encInlines(i.Inlines)}
	case *Superscript:
		return taggedNode{i.Tag(), encInlines(i.Inlines)}
	case *Subscript:
		return taggedNode{i.Tag(), encInlines(i.Inlines)}
	case *Code:
		return taggedNode{i.Tag(), []any{encAttr(i.Attr), i.Text}}
	case *Math:
		return taggedNode{i.Tag(), []any{bareNode{Tag(i.MathType)}, i.Text}}
	case *Link:
		return taggedNode{i.Tag(), []any{
			encAttr(i.Attr), encInlines(i.Inlines), encTarget(i.Target),
		}}
	case *Image:
		return taggedNode{i.Tag(), []any{
			encAttr(i.Attr), encInlines(i.Inlines), encTarget(i.Target),
		}}
	}
	return bareNode{i.Tag()}
}

func encBlocks(blocks []Block) []any {
	out := make([]any, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, encBlock(b))
	}
	return out
}

func encBlock(b Block) any {
	switch b := b.(type) {
	case *Plain:
		return taggedNode{b.Tag(), encInlines(b.Inlines)}
	case *Para:
		return taggedNode{b.Tag(), encInlines(b.Inlines)}
	case *Header:
		return taggedNode{b.Tag(), []any{b.Level, encAttr(b.Attr), encInlines(b.Inlines)}}
	case *BlockQuote:
		return taggedNode{b.Tag(), encBlocks(b.Blocks)}
	case *CodeBlock:
		return taggedNode{b.Tag(), []any{encAttr(b.Attr), b.Text}}
	case *RawBlock:
		return taggedNode{b.Tag(), []any{b.Format, b.Text}}
	case *BulletList:
		return taggedNode{b.Tag(), encItems(b.Items)}
	case *OrderedList:
		// Default numbering: start at 1, default style and delimiter.
		attrs := []any{1, bareNode{"DefaultStyle"}, bareNode{"DefaultDelim"}}
		return taggedNode{b.Tag(), []any{attrs, encItems(b.Items)}}
	case *DefinitionList:
		items := make([]any, 0, len(b.Items))
		for _, d := range b.Items {
			defs := make([]any, 0, len(d.Definitions))
			for _, blocks := range d.Definitions {
				defs = append(defs, encBlocks(blocks))
			}
			items = append(items, []any{encInlines(d.Term), defs})
		}
		return taggedNode{b.Tag(), items}
	case *Table:
		return taggedNode{b.Tag(), encTable(b)}
	}
	return bareNode{b.Tag()}
}

func encItems(items [][]Block) []any {
	out := make([]any, 0, len(items))
	for _, blocks := range items {
		out = append(out, encBlocks(blocks))
	}
	return out
}

func encAttr(a Attr) []any {
	classes := make([]string, 0, len(a.Classes))
	classes = append(classes, a.Classes...)
	kvs := make([]any, 0, len(a.KVs))
	for _, kv := range a.KVs {
		kvs = append(kvs, []any{kv[0], kv[1]})
	}
	return []any{a.Id, classes, kvs}
}

func encTarget(t Target) []any {
	return []any{t.Url, t.Title}
}

// encTable lays out the pandoc-types 1.23 table payload: attr, caption,
// column specs, head, bodies, foot. Cells carry default alignment and
// 1x1 spans.
func encTable(t *Table) []any {
	emptyAttr := encAttr(Attr{})

	colspecs := make([]any, 0, t.Cols)
	for i := 0; i < t.Cols; i++ {
		colspecs = append(colspecs, []any{
			bareNode{"AlignDefault"}, bareNode{"ColWidthDefault"},
		})
	}

	encRow := func(r TableRow) []any {
		cells := make([]any, 0, len(r.Cells))
		for _, c := range r.Cells {
			cells = append(cells, []any{
				encAttr(Attr{}), bareNode{"AlignDefault"}, 1, 1, encBlocks(c.Blocks),
			})
		}
		return []any{encAttr(Attr{}), cells}
	}
	encRows := func(rows []TableRow) []any {
		out := make([]any, 0, len(rows))
		for _, r := range rows {
			out = append(out, encRow(r))
		}
		return out
	}

	caption := []any{nil, []any{}}
	head := []any{emptyAttr, encRows(t.Head)}
	body := []any{emptyAttr, 0, []any{}, encRows(t.Body)}
	foot := []any{emptyAttr, []any{}}

	return []any{emptyAttr, caption, colspecs, head, []any{body}, foot}
}
