// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"strings"

	"github.com/pdiddy/norg-pandoc/internal/ast"
)

// parseMeta parses the body of a @document.meta tag. The format is Norg's
// own: `key: value` entries, `{...}` nested maps, `[...]` lists (newline
// separated, not whitespace sensitive), and bare strings for everything
// else. Malformed input degrades to string values; parsing never fails.
func parseMeta(text string) ast.MetaMap {
	meta, _ := parseMetaObject(text)
	return meta
}

func parseMetaObject(text string) (ast.MetaMap, string) {
	var m ast.MetaMap

	for {
		text = skipMetaSpace(text)
		if text == "" || text[0] == '}' {
			return m, text
		}

		key, rest := parseMetaString(text)
		text = rest

		if text == "" || text[0] != ':' {
			// No colon: keep the stray text as a key with an empty value
			// rather than dropping user content. Consume one structural
			// character when there is no key so the loop always advances.
			if key != "" {
				m.Set(key, ast.MetaString(""))
			} else if text != "" {
				text = text[1:]
			}
			continue
		}
		text = skipMetaSpace(text[1:])

		value, rest := parseMetaValue(text)
		m.Set(key, value)
		text = rest
	}
}

func parseMetaValue(text string) (ast.MetaValue, string) {
	if text == "" {
		return ast.MetaString(""), text
	}

	switch text[0] {
	case '{':
		obj, rest := parseMetaObject(text[1:])
		rest = skipMetaSpace(rest)
		if strings.HasPrefix(rest, "}") {
			rest = rest[1:]
		}
		return obj, rest

	case '[':
		var list ast.MetaList
		rest := text[1:]
		for {
			rest = skipMetaSpace(rest)
			if rest == "" {
				break
			}
			if rest[0] == ']' {
				rest = rest[1:]
				break
			}
			var v ast.MetaValue
			v, rest = parseMetaValue(rest)
			list = append(list, v)
		}
		return list, rest
	}

	s, rest := parseMetaString(text)
	return ast.MetaString(s), rest
}

// parseMetaString reads up to the next structural character and trims the
// result.
func parseMetaString(text string) (string, string) {
	stop := strings.IndexAny(text, "[]{}:\n")
	if stop < 0 {
		stop = len(text)
	}
	return strings.TrimSpace(text[:stop]), text[stop:]
}

func skipMetaSpace(text string) string {
	return strings.TrimLeft(text, " \t\n\r")
}
