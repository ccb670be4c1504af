// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kinds extracts the kind sequence of a token slice.
func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestPlainWordsAndSpaces(t *testing.T) {
	toks := New("hello neorg world").Tokens()

	assert.Equal(t, []Kind{Word, Space, Word, Space, Word, EOF}, kinds(toks))
	assert.Equal(t, "hello", toks[0].Literal)
	assert.Equal(t, "world", toks[4].Literal)
}

func TestDelimitersSplitWords(t *testing.T) {
	toks := New("*bold* and `code`").Tokens()

	assert.Equal(t, []Kind{
		Delimiter, Word, Delimiter, Space, Word, Space,
		Delimiter, Word, Delimiter, EOF,
	}, kinds(toks))
	assert.Equal(t, "*", toks[0].Literal)
	assert.Equal(t, "`", toks[6].Literal)
}

func TestHeadingMarker(t *testing.T) {
	toks := New("** Section title").Tokens()

	require.Equal(t, Marker, toks[0].Kind)
	assert.Equal(t, "**", toks[0].Literal)
	assert.Equal(t, 2, toks[0].Count)
	// The trailing space after the marker is structural and consumed.
	assert.Equal(t, Word, toks[1].Kind)
	assert.Equal(t, "Section", toks[1].Literal)
}

func TestMarkerRequiresTrailingSpace(t *testing.T) {
	// No whitespace after the run: this is an attached modifier, not a
	// heading.
	toks := New("*bold*").Tokens()

	assert.Equal(t, []Kind{Delimiter, Word, Delimiter, EOF}, kinds(toks))
}

func TestIndentedMarker(t *testing.T) {
	toks := New("   - item").Tokens()

	require.Equal(t, Marker, toks[0].Kind)
	assert.Equal(t, 1, toks[0].Count)
	assert.Equal(t, "-", toks[0].Literal)
}

func TestBlankLines(t *testing.T) {
	toks := New("one\n\ntwo").Tokens()

	assert.Equal(t, []Kind{Word, LineBreak, BlankLine, Word, EOF}, kinds(toks))
}

func TestWhitespaceOnlyLineIsBlank(t *testing.T) {
	toks := New("one\n   \ntwo").Tokens()

	assert.Equal(t, []Kind{Word, LineBreak, BlankLine, Word, EOF}, kinds(toks))
}

func TestEscapeMakesLiteral(t *testing.T) {
	toks := New(`\*not bold`).Tokens()

	require.Equal(t, Word, toks[0].Kind)
	assert.Equal(t, "*", toks[0].Literal)
	assert.Equal(t, Word, toks[1].Kind)
	assert.Equal(t, "not", toks[1].Literal)
}

func TestTrailingContinuationSuppressesBreak(t *testing.T) {
	toks := New("first~\nsecond").Tokens()

	// No LineBreak token appears between the two words.
	assert.Equal(t, []Kind{Word, Word, EOF}, kinds(toks))
	assert.Equal(t, "first", toks[0].Literal)
	assert.Equal(t, "second", toks[1].Literal)
}

func TestLinkBraces(t *testing.T) {
	toks := New("{https://example.org}[site]").Tokens()

	require.Equal(t, LinkOpen, toks[0].Kind)
	i := len(toks) - 1
	assert.Equal(t, EOF, toks[i].Kind)
	assert.Equal(t, DescClose, toks[i-1].Kind)
	assert.Equal(t, Word, toks[i-2].Kind)
	assert.Equal(t, "site", toks[i-2].Literal)
}

func TestRangedTagRegion(t *testing.T) {
	toks := New("@code go\nfunc main() {}\n@end").Tokens()

	require.Equal(t, TagOpen, toks[0].Kind)
	assert.Equal(t, "code", toks[0].Name)
	assert.Equal(t, []string{"go"}, toks[0].Params)

	require.Equal(t, RawLine, toks[1].Kind)
	assert.Equal(t, "func main() {}", toks[1].Literal)

	assert.Equal(t, TagEnd, toks[2].Kind)
	assert.Equal(t, EOF, toks[3].Kind)
}

func TestTagContentIsVerbatim(t *testing.T) {
	// Structural characters inside a tag region stay untouched.
	toks := New("@code\n* not a heading\n{not a link}\n@end").Tokens()

	require.Equal(t, RawLine, toks[1].Kind)
	assert.Equal(t, "* not a heading", toks[1].Literal)
	require.Equal(t, RawLine, toks[2].Kind)
	assert.Equal(t, "{not a link}", toks[2].Literal)
}

func TestUnclosedTagRunsToEOF(t *testing.T) {
	toks := New("@code\nline one\nline two").Tokens()

	assert.Equal(t, []Kind{TagOpen, RawLine, RawLine, EOF}, kinds(toks))
}

func TestStrayEndToken(t *testing.T) {
	toks := New("@end").Tokens()

	assert.Equal(t, []Kind{TagEnd, EOF}, kinds(toks))
}

func TestCRLFNormalized(t *testing.T) {
	toks := New("one\r\ntwo").Tokens()

	assert.Equal(t, []Kind{Word, LineBreak, Word, EOF}, kinds(toks))
}

func TestPositions(t *testing.T) {
	toks := New("ab cd\nef").Tokens()

	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Col)
	assert.Equal(t, 4, toks[2].Col) // "cd"
	assert.Equal(t, 2, toks[4].Line)
	assert.Equal(t, 1, toks[4].Col) // "ef"
}

func TestEmptyInput(t *testing.T) {
	toks := New("").Tokens()

	require.Len(t, toks, 1)
	assert.Equal(t, EOF, toks[0].Kind)
}
