// Package scan turns C-like source text into symbol records using
// line-oriented heuristics. It is deliberately not a C parser: pattern
// matching runs over comment-stripped text, a function signature must fit
// on one physical line, and brace blocks are matched by depth counting.
package scan

import (
	"os"
	"regexp"
	"strings"

	"github.com/apidex-dev/apidex/internal/symbol"
)

// anonTypedefName is recorded for typedef-structs whose declared alias
// cannot be located; the record is kept rather than dropped.
const anonTypedefName = "ANON_TYPEDEF_STRUCT"

var (
	// Entire prototype or definition signature on one physical line:
	// return-type tokens, the function name, a parameter list free of
	// ";", "{", "}", then ";" or "{" at end of line.
	fnLineRe = regexp.MustCompile(`^[ \t]*[A-Za-z_][A-Za-z0-9_ \t*]*[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*\([^;{}]*\)[ \t]*([;{])[ \t]*$`)

	typedefStructRe = regexp.MustCompile(`(?m)^[ \t]*typedef\s+struct(\s+[A-Za-z_][A-Za-z0-9_]*)?\s*\{`)

	structRe = regexp.MustCompile(`(?m)^[ \t]*struct\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)
)

// ScanFile reads path and appends the symbols extracted from it to table.
// An unreadable file is skipped silently; per-file failures never abort a
// tree scan. rel is the slash-separated path relative to the scan root.
func ScanFile(path, rel string, table *symbol.Table) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, s := range ScanSource(rel, string(raw)) {
		table.Append(s)
	}
}

// ScanSource extracts symbols from one file's contents. Pass order is
// typedef-structs, then plain structs, then a single top-to-bottom line
// scan for function prototypes and definitions; each pass advances
// strictly forward past the last consumed region.
func ScanSource(rel, raw string) []symbol.Symbol {
	text := StripComments(raw)
	rawLines := strings.Split(raw, "\n")
	pathDefault := DefaultVisibility(rel)

	var syms []symbol.Symbol
	syms = append(syms, scanTypedefStructs(rel, raw, text, rawLines, pathDefault)...)
	syms = append(syms, scanStructs(rel, raw, text, rawLines, pathDefault)...)
	syms = append(syms, scanFunctions(rel, raw, text, rawLines, pathDefault)...)
	return syms
}

func scanTypedefStructs(rel, raw, text string, rawLines []string, pathDefault symbol.Visibility) []symbol.Symbol {
	var syms []symbol.Symbol
	for pos := 0; pos < len(text); {
		loc := typedefStructRe.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		_, blockEnd, ok := BraceBlock(text, start)
		if !ok {
			pos = start + 1
			continue
		}

		// The declared alias is the last identifier before the first ";"
		// after the closing brace.
		name := anonTypedefName
		endOff := blockEnd
		if semi := strings.IndexByte(text[blockEnd:], ';'); semi >= 0 {
			if id := lastIdentBefore(text, blockEnd, blockEnd+semi); id != "" {
				name = id
			}
			endOff = blockEnd + semi + 1
		}

		lineStart := LineAt(text, start)
		lineEnd := LineAt(text, endOff)
		syms = append(syms, symbol.Symbol{
			Kind:      symbol.KindTypedefStruct,
			Vis:       resolveVisibility(rawLines, lineStart, pathDefault),
			Name:      name,
			File:      rel,
			LineStart: lineStart,
			LineEnd:   lineEnd,
			Snippet:   SliceLines(raw, lineStart, lineEnd),
		})
		pos = endOff
	}
	return syms
}

func scanStructs(rel, raw, text string, rawLines []string, pathDefault symbol.Visibility) []symbol.Symbol {
	var syms []symbol.Symbol
	for pos := 0; pos < len(text); {
		m := structRe.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start := pos + m[0]
		tag := text[pos+m[2] : pos+m[3]]

		_, blockEnd, ok := BraceBlock(text, start)
		if !ok {
			pos = start + 1
			continue
		}

		// A declaration ends at ";" after the closing brace; otherwise the
		// block itself ends the symbol.
		endOff := blockEnd
		k := blockEnd
		for k < len(text) && isSpace(text[k]) {
			k++
		}
		if k < len(text) && text[k] == ';' {
			endOff = k + 1
		}

		lineStart := LineAt(text, start)
		lineEnd := LineAt(text, endOff)
		syms = append(syms, symbol.Symbol{
			Kind:      symbol.KindStruct,
			Vis:       resolveVisibility(rawLines, lineStart, pathDefault),
			Name:      tag,
			File:      rel,
			LineStart: lineStart,
			LineEnd:   lineEnd,
			Snippet:   SliceLines(raw, lineStart, lineEnd),
		})
		pos = endOff
	}
	return syms
}

func scanFunctions(rel, raw, text string, rawLines []string, pathDefault symbol.Visibility) []symbol.Symbol {
	var syms []symbol.Symbol
	line := 1
	base := 0
	for base <= len(text) {
		nl := strings.IndexByte(text[base:], '\n')
		ln := text[base:]
		if nl >= 0 {
			ln = text[base : base+nl]
		}

		if m := fnLineRe.FindStringSubmatch(ln); m != nil {
			name := m[1]
			tail := m[2]

			vis := resolveVisibility(rawLines, line, pathDefault)
			switch tail {
			case ";":
				snippet := SliceLines(raw, line, line)
				syms = append(syms, symbol.Symbol{
					Kind:      symbol.KindFunctionPrototype,
					Vis:       vis,
					Name:      name,
					File:      rel,
					LineStart: line,
					LineEnd:   line,
					Snippet:   snippet,
					Signature: NormalizeSignature(snippet),
				})
			case "{":
				if _, blockEnd, ok := BraceBlock(text, base); ok {
					lineEnd := LineAt(text, blockEnd)
					snippet := SliceLines(raw, line, lineEnd)
					syms = append(syms, symbol.Symbol{
						Kind:      symbol.KindFunctionDefinition,
						Vis:       vis,
						Name:      name,
						File:      rel,
						LineStart: line,
						LineEnd:   lineEnd,
						Snippet:   snippet,
						Signature: NormalizeSignature(snippet),
					})
				}
			}
		}

		if nl < 0 {
			break
		}
		base += nl + 1
		line++
	}
	return syms
}

// NormalizeSignature collapses whitespace runs in the first snippet line to
// single spaces and strips a trailing ";" or "{". The result keeps the
// function name as a token immediately followed by "(".
func NormalizeSignature(snippet string) string {
	first := snippet
	if nl := strings.IndexByte(first, '\n'); nl >= 0 {
		first = first[:nl]
	}
	sig := strings.Join(strings.Fields(first), " ")
	for len(sig) > 0 {
		last := sig[len(sig)-1]
		if last == ';' || last == '{' || last == ' ' {
			sig = sig[:len(sig)-1]
			continue
		}
		break
	}
	return sig
}
