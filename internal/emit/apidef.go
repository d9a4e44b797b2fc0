package emit

import (
	"fmt"
	"strings"

	"github.com/apidex-dev/apidex/internal/fileutil"
	"github.com/apidex-dev/apidex/internal/symbol"
)

// WriteAPIDef writes the X-macro API definition file: an API_TYPE block per
// struct/typedef-struct with an extractable body and an API_FN line per
// function prototype passing the optional name prefix filter. Duplicate
// records sharing a name emit duplicate entries; the consumer of the .def
// file owns deduplication if it wants any.
func WriteAPIDef(path string, table *symbol.Table, fnPrefix string) error {
	return fileutil.WriteFile(path, MarshalAPIDef(table, fnPrefix))
}

// MarshalAPIDef renders the .def bytes.
func MarshalAPIDef(table *symbol.Table, fnPrefix string) []byte {
	var b strings.Builder
	b.WriteString("/* AUTO-GENERATED: do not edit by hand */\n")
	b.WriteString("/* Generated by apidex */\n\n")

	b.WriteString("/* TYPES */\n")
	for _, s := range table.Symbols() {
		if !s.IsType() {
			continue
		}
		writeTypeBlock(&b, s)
	}

	b.WriteString("/* FUNCTIONS (prototypes) */\n")
	for _, s := range table.Symbols() {
		if s.Kind != symbol.KindFunctionPrototype {
			continue
		}
		if fnPrefix != "" && !strings.HasPrefix(s.Name, fnPrefix) {
			continue
		}
		writeFnLine(&b, s)
	}
	return []byte(b.String())
}

// writeTypeBlock emits API_TYPE(VIS, Name, <fields>) with the body lines
// taken verbatim from between the snippet's first "{" and last "}",
// right-trimmed and re-indented by two spaces. Symbols without a matched
// brace pair are skipped silently.
func writeTypeBlock(b *strings.Builder, s symbol.Symbol) {
	lb := strings.IndexByte(s.Snippet, '{')
	rb := strings.LastIndexByte(s.Snippet, '}')
	if lb < 0 || rb < 0 || rb <= lb {
		return
	}

	fmt.Fprintf(b, "API_TYPE(%s, %s,\n", s.Vis, s.Name)
	p := lb + 1
	for p < rb {
		lineEnd := rb
		if nl := strings.IndexByte(s.Snippet[p:rb], '\n'); nl >= 0 {
			lineEnd = p + nl
		}
		b.WriteString("  ")
		b.WriteString(strings.TrimRight(s.Snippet[p:lineEnd], " \t\r"))
		b.WriteByte('\n')
		if lineEnd == rb {
			break
		}
		p = lineEnd + 1
	}
	b.WriteString(")\n\n")
}

// writeFnLine emits API_FN(VIS, Ret, Name, (Params)). The return type is
// everything in the normalized signature before the identifier that
// precedes the parameter list's "(". Prototypes without a parseable "(" are
// skipped.
func writeFnLine(b *strings.Builder, s symbol.Symbol) {
	sig := s.Signature
	if sig == "" {
		return
	}
	lp := strings.IndexByte(sig, '(')
	if lp < 0 {
		return
	}

	q := lp
	for q > 0 && (sig[q-1] == ' ' || sig[q-1] == '\t') {
		q--
	}
	for q > 0 && isIdentByte(sig[q-1]) {
		q--
	}
	ret := strings.TrimRight(sig[:q], " \t")

	fmt.Fprintf(b, "API_FN(%s, %s, %s, %s)\n", s.Vis, ret, s.Name, sig[lp:])
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
