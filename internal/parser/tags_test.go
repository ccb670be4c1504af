// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/norg-pandoc/internal/ast"
)

func TestCodeTag(t *testing.T) {
	doc := Parse("@code go\nfunc main() {\n\tprintln(\"hi\")\n}\n@end")

	require.Len(t, doc.Blocks, 1)
	tag := doc.Blocks[0].(*ast.Tag)
	assert.Equal(t, ast.TagCode, tag.Kind)
	assert.Equal(t, "code", tag.Name)
	assert.Equal(t, []string{"go"}, tag.Params)
	assert.Equal(t, "func main() {\n\tprintln(\"hi\")\n}", tag.Raw)
}

func TestCodeTagDedent(t *testing.T) {
	doc := Parse("@code\n    if x {\n        y()\n    }\n@end")

	tag := doc.Blocks[0].(*ast.Tag)
	assert.Equal(t, "if x {\n    y()\n}", tag.Raw)
}

func TestCommentTag(t *testing.T) {
	doc := Parse("@comment\nnever shown\n@end")

	tag := doc.Blocks[0].(*ast.Tag)
	assert.Equal(t, ast.TagComment, tag.Kind)
	assert.Equal(t, "never shown", tag.Raw)
}

func TestMathTag(t *testing.T) {
	doc := Parse("@math\nE = mc^2\n@end")

	tag := doc.Blocks[0].(*ast.Tag)
	assert.Equal(t, ast.TagMath, tag.Kind)
	// The caret inside is never treated as an attached modifier.
	assert.Equal(t, "E = mc^2", tag.Raw)
}

func TestExampleTagParsesContent(t *testing.T) {
	doc := Parse("@example\n* Heading\nwith text\n@end")

	tag := doc.Blocks[0].(*ast.Tag)
	require.Equal(t, ast.TagExample, tag.Kind)
	require.Len(t, tag.Blocks, 1)

	h := tag.Blocks[0].(*ast.Heading)
	assert.Equal(t, "Heading", plainText(h.Title))
	require.Len(t, h.Children, 1)
}

func TestUnknownTagKeptVerbatim(t *testing.T) {
	doc, diags := ParseWithDiagnostics("@mystery arg\npayload line\n@end")

	tag := doc.Blocks[0].(*ast.Tag)
	assert.Equal(t, ast.TagOther, tag.Kind)
	assert.Equal(t, "mystery", tag.Name)
	assert.Equal(t, []string{"arg"}, tag.Params)
	assert.Equal(t, "payload line", tag.Raw)

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "mystery")
}

func TestUnclosedTagReported(t *testing.T) {
	doc, diags := ParseWithDiagnostics("@code\nno terminator")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "no terminator", doc.Blocks[0].(*ast.Tag).Raw)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "not closed")
}

func TestDocumentMetaFeedsDocument(t *testing.T) {
	doc := Parse("@document.meta\ntitle: My Document\nauthors: [\nalice\nbob\n]\n@end\nbody text")

	// The meta tag contributes no block.
	require.Len(t, doc.Blocks, 1)
	_, isPara := doc.Blocks[0].(*ast.Paragraph)
	assert.True(t, isPara)

	assert.Equal(t, ast.MetaString("My Document"), doc.Meta.Get("title"))
	authors, ok := doc.Meta.Get("authors").(ast.MetaList)
	require.True(t, ok)
	require.Len(t, authors, 2)
	assert.Equal(t, ast.MetaString("alice"), authors[0])
}

func TestTableTagRawPayload(t *testing.T) {
	doc := Parse("@table\na | b\n1 | 2\n@end")

	tag := doc.Blocks[0].(*ast.Tag)
	assert.Equal(t, ast.TagTable, tag.Kind)
	assert.Equal(t, "a | b\n1 | 2", tag.Raw)
}
