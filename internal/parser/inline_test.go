// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/norg-pandoc/internal/ast"
)

// firstParagraph parses source and returns the inline content of its first
// block, which must be a paragraph.
func firstParagraph(t *testing.T, source string) []ast.Inline {
	t.Helper()
	doc := Parse(source)
	require.NotEmpty(t, doc.Blocks)
	para, ok := doc.Blocks[0].(*ast.Paragraph)
	require.True(t, ok, "expected paragraph, got %T", doc.Blocks[0])
	return para.Content
}

func TestBoldSpan(t *testing.T) {
	ins := firstParagraph(t, "some *bold* text")

	require.Len(t, ins, 3)
	assert.Equal(t, "some ", ins[0].(*ast.Text).Text)

	span := ins[1].(*ast.Styled)
	assert.Equal(t, ast.Bold, span.Kind)
	assert.Equal(t, "bold", plainText(span.Content))

	assert.Equal(t, " text", ins[2].(*ast.Text).Text)
}

func TestAllSpanKinds(t *testing.T) {
	cases := []struct {
		source string
		kind   ast.SpanKind
	}{
		{"*b*", ast.Bold},
		{"/i/", ast.Italic},
		{"_u_", ast.Underline},
		{"-s-", ast.Strikethrough},
		{"^x^", ast.Superscript},
		{",x,", ast.Subscript},
		{"`c`", ast.Code},
		{"$m$", ast.Math},
		{"|f|", ast.FreeForm},
	}

	for _, tc := range cases {
		ins := firstParagraph(t, tc.source)
		require.Len(t, ins, 1, "source %q", tc.source)
		span, ok := ins[0].(*ast.Styled)
		require.True(t, ok, "source %q", tc.source)
		assert.Equal(t, tc.kind, span.Kind, "source %q", tc.source)
	}
}

func TestNestedSpans(t *testing.T) {
	ins := firstParagraph(t, "*bold /and italic/*")

	span := ins[0].(*ast.Styled)
	require.Equal(t, ast.Bold, span.Kind)
	require.Len(t, span.Content, 2)

	inner := span.Content[1].(*ast.Styled)
	assert.Equal(t, ast.Italic, inner.Kind)
	assert.Equal(t, "and italic", plainText(inner.Content))
}

func TestVerbatimSpanKeepsLiteralContent(t *testing.T) {
	ins := firstParagraph(t, "`*not bold*`")

	span := ins[0].(*ast.Styled)
	require.Equal(t, ast.Code, span.Kind)
	require.Len(t, span.Content, 1)
	assert.Equal(t, "*not bold*", span.Content[0].(*ast.Text).Text)
}

func TestUnmatchedDelimiterIsLiteral(t *testing.T) {
	ins := firstParagraph(t, "a *dangling delimiter")

	require.Len(t, ins, 1)
	assert.Equal(t, "a *dangling delimiter", ins[0].(*ast.Text).Text)
}

func TestDelimiterInsideWordIsLiteral(t *testing.T) {
	// Surrounded by word characters on both sides: no span.
	ins := firstParagraph(t, "intra*word*stars here")

	require.Len(t, ins, 1)
	assert.Equal(t, "intra*word*stars here", ins[0].(*ast.Text).Text)
}

func TestOpenerNeedsFollowingContent(t *testing.T) {
	// A delimiter followed by whitespace never opens a span.
	ins := firstParagraph(t, "x * spaced * y")

	require.Len(t, ins, 1)
	assert.Equal(t, "x * spaced * y", ins[0].(*ast.Text).Text)
}

func TestEscapedDelimiter(t *testing.T) {
	ins := firstParagraph(t, `\*literal\* stars`)

	require.Len(t, ins, 1)
	assert.Equal(t, "*literal* stars", ins[0].(*ast.Text).Text)
}

func TestURLLink(t *testing.T) {
	ins := firstParagraph(t, "{https://example.org}")

	require.Len(t, ins, 1)
	link := ins[0].(*ast.Link)
	assert.Equal(t, ast.TargetURL, link.Target.Kind)
	assert.Equal(t, "https://example.org", link.Target.Target)
	assert.Nil(t, link.Description)
}

func TestLinkWithDescription(t *testing.T) {
	ins := firstParagraph(t, "{https://example.org}[the /example/ site]")

	link := ins[0].(*ast.Link)
	require.Len(t, link.Description, 3)
	assert.Equal(t, "the ", link.Description[0].(*ast.Text).Text)
	assert.Equal(t, ast.Italic, link.Description[1].(*ast.Styled).Kind)
}

func TestHeadingLink(t *testing.T) {
	ins := firstParagraph(t, "see {** Some Section}")

	link := ins[1].(*ast.Link)
	assert.Equal(t, ast.TargetHeading, link.Target.Kind)
	assert.Equal(t, "Some Section", link.Target.Target)
	assert.Equal(t, 2, link.Target.Level)
}

func TestFileLink(t *testing.T) {
	ins := firstParagraph(t, "{/ path/to/file.txt}")

	link := ins[0].(*ast.Link)
	assert.Equal(t, ast.TargetFile, link.Target.Kind)
	assert.Equal(t, "path/to/file.txt", link.Target.Target)
}

func TestNorgFileLink(t *testing.T) {
	ins := firstParagraph(t, "{:notes/index:}")

	link := ins[0].(*ast.Link)
	assert.Equal(t, ast.TargetNorgFile, link.Target.Kind)
	assert.Equal(t, "notes/index", link.Target.Target)
}

func TestUnclosedLinkIsLiteral(t *testing.T) {
	ins := firstParagraph(t, "{never closed")

	require.Len(t, ins, 1)
	assert.Equal(t, "{never closed", ins[0].(*ast.Text).Text)
}

func TestContinuationJoinsLines(t *testing.T) {
	ins := firstParagraph(t, "joined~\ntogether")

	require.Len(t, ins, 1)
	assert.Equal(t, "joinedtogether", ins[0].(*ast.Text).Text)
}

func TestSpanAcrossContinuation(t *testing.T) {
	// The continuation removes the break, so the span closes on what was
	// the next physical line.
	ins := firstParagraph(t, "*bold~\nacross*")

	span, ok := ins[0].(*ast.Styled)
	require.True(t, ok)
	assert.Equal(t, ast.Bold, span.Kind)
	assert.Equal(t, "boldacross", plainText(span.Content))
}
