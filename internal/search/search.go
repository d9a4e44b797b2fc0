// Package search filters the symbol table by kind, exact name, and
// case-insensitive substring.
package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/apidex-dev/apidex/internal/symbol"
)

// Query narrows a table scan. Zero-valued fields match everything.
type Query struct {
	Kind    string // "fn", "fn_proto", "fn_def", "struct", "typedef_struct"
	Name    string // exact name match
	Pattern string // case-insensitive substring over name or snippet
}

// Filter returns the table's symbols matching q, in table order.
func Filter(table *symbol.Table, q Query) []symbol.Symbol {
	var out []symbol.Symbol
	for _, s := range table.Symbols() {
		if !kindMatches(s.Kind, q.Kind) {
			continue
		}
		if q.Name != "" && s.Name != q.Name {
			continue
		}
		if q.Pattern != "" && !containsFold(s.Name, q.Pattern) && !containsFold(s.Snippet, q.Pattern) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// kindMatches maps the query kind onto symbol kinds: "fn" covers both
// function kinds and "struct" covers both struct kinds. Empty or unknown
// kinds match everything.
func kindMatches(k symbol.Kind, kind string) bool {
	switch kind {
	case "fn":
		return k == symbol.KindFunctionPrototype || k == symbol.KindFunctionDefinition
	case "fn_proto":
		return k == symbol.KindFunctionPrototype
	case "fn_def":
		return k == symbol.KindFunctionDefinition
	case "struct":
		return k == symbol.KindStruct || k == symbol.KindTypedefStruct
	case "typedef_struct":
		return k == symbol.KindTypedefStruct
	default:
		return true
	}
}

func containsFold(hay, needle string) bool {
	return strings.Contains(strings.ToLower(hay), strings.ToLower(needle))
}

// Print renders matches in the standard result layout.
func Print(w io.Writer, matches []symbol.Symbol) {
	for _, s := range matches {
		fmt.Fprintf(w, "\n== %s/%s: %s  (%s:%d-%d) ==\n", s.Vis, s.Kind, s.Name, s.File, s.LineStart, s.LineEnd)
		fmt.Fprintln(w, s.Snippet)
	}
}
