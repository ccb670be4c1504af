// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeShape(t *testing.T) {
	doc := &Pandoc{
		Blocks: []Block{&Para{Inlines: []Inline{&Str{Text: "hi"}}}},
	}

	out, err := Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "pandoc-api-version")
	assert.Contains(t, decoded, "meta")
	assert.Contains(t, decoded, "blocks")

	var version []int
	require.NoError(t, json.Unmarshal(decoded["pandoc-api-version"], &version))
	assert.Equal(t, APIVersion, version)
}

func TestEmptyDocument(t *testing.T) {
	out, err := Marshal(&Pandoc{})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[]}`,
		string(out))
}

func TestParaWithFormatting(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&Para{Inlines: []Inline{
			&Str{Text: "see"},
			&Space{},
			&Strong{Inlines: []Inline{&Str{Text: "this"}}},
		}},
	}}

	out, err := Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"pandoc-api-version":[1,23,1],
		"meta":{},
		"blocks":[{"t":"Para","c":[
			{"t":"Str","c":"see"},
			{"t":"Space"},
			{"t":"Strong","c":[{"t":"Str","c":"this"}]}
		]}]
	}`, string(out))
}

func TestHeaderPayload(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&Header{
			Level:   2,
			Attr:    Attr{Id: "my-section"},
			Inlines: []Inline{&Str{Text: "Title"}},
		},
	}}

	out, err := Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(out),
		`{"t":"Header","c":[2,["my-section",[],[]],[{"t":"Str","c":"Title"}]]}`)
}

func TestCodeBlockAttr(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&CodeBlock{Attr: Attr{Classes: []string{"go"}}, Text: "x := 1"},
	}}

	out, err := Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(out), `{"t":"CodeBlock","c":[["",["go"],[]],"x := 1"]}`)
}

func TestOrderedListAttrs(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&OrderedList{Items: [][]Block{
			{&Plain{Inlines: []Inline{&Str{Text: "one"}}}},
		}},
	}}

	out, err := Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(out),
		`{"t":"OrderedList","c":[[1,{"t":"DefaultStyle"},{"t":"DefaultDelim"}],`)
}

func TestMathPayload(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&Para{Inlines: []Inline{&Math{MathType: InlineMath, Text: "e^x"}}},
	}}

	out, err := Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(out), `{"t":"Math","c":[{"t":"InlineMath"},"e^x"]}`)
}

func TestLinkPayload(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&Para{Inlines: []Inline{
			&Link{
				Inlines: []Inline{&Str{Text: "site"}},
				Target:  Target{Url: "https://example.org"},
			},
		}},
	}}

	out, err := Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(out),
		`{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"site"}],["https://example.org",""]]}`)
}

func TestMetaOrderPreserved(t *testing.T) {
	doc := &Pandoc{}
	doc.Meta.Set("zeta", MetaString("1"))
	doc.Meta.Set("alpha", MetaString("2"))

	out, err := Marshal(doc)
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "zeta"), strings.Index(text, "alpha"))
}

func TestMetaNestedValues(t *testing.T) {
	doc := &Pandoc{}
	doc.Meta.Set("title", MetaString("T"))
	doc.Meta.Set("tags", MetaList{MetaString("a"), MetaString("b")})

	out, err := Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(out), `"title":{"t":"MetaString","c":"T"}`)
	assert.Contains(t, string(out),
		`"tags":{"t":"MetaList","c":[{"t":"MetaString","c":"a"},{"t":"MetaString","c":"b"}]}`)
}

func TestDeterministicOutput(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&Para{Inlines: []Inline{&Str{Text: "same"}}},
	}}
	doc.Meta.Set("a", MetaString("1"))
	doc.Meta.Set("b", MetaMap{{Key: "k", Value: MetaString("v")}})

	first, err := Marshal(doc)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Marshal(doc)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestTablePayloadShape(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&Table{
			Cols: 2,
			Head: []TableRow{{Cells: []TableCell{
				{Blocks: []Block{&Plain{Inlines: []Inline{&Str{Text: "a"}}}}},
				{Blocks: []Block{&Plain{Inlines: []Inline{&Str{Text: "b"}}}}},
			}}},
			Body: []TableRow{{Cells: []TableCell{
				{Blocks: []Block{&Plain{Inlines: []Inline{&Str{Text: "1"}}}}},
				{Blocks: []Block{&Plain{Inlines: []Inline{&Str{Text: "2"}}}}},
			}}},
		},
	}}

	out, err := Marshal(doc)
	require.NoError(t, err)

	// The payload is deeply positional; decode it and spot-check the
	// landmarks pandoc requires.
	var decoded struct {
		Blocks []struct {
			T string          `json:"t"`
			C json.RawMessage `json:"c"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Blocks, 1)
	assert.Equal(t, "Table", decoded.Blocks[0].T)

	var payload []json.RawMessage
	require.NoError(t, json.Unmarshal(decoded.Blocks[0].C, &payload))
	// attr, caption, colspecs, head, bodies, foot.
	require.Len(t, payload, 6)

	var colspecs []json.RawMessage
	require.NoError(t, json.Unmarshal(payload[2], &colspecs))
	assert.Len(t, colspecs, 2)

	assert.Contains(t, string(payload[3]), `"AlignDefault"`)
	assert.Contains(t, string(out), `{"t":"Str","c":"2"}`)
}

func TestIndentedOutput(t *testing.T) {
	doc := &Pandoc{Blocks: []Block{
		&Para{Inlines: []Inline{&Str{Text: "x"}}},
	}}

	compact, err := Marshal(doc)
	require.NoError(t, err)
	pretty, err := MarshalIndent(doc)
	require.NoError(t, err)

	assert.NotContains(t, string(compact), "\n")
	assert.Contains(t, string(pretty), "\n")
	assert.JSONEq(t, string(compact), string(pretty))
}
