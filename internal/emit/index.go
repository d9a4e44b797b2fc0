// Package emit serializes a symbol table into its three output artifacts:
// the JSON index, the X-macro API definition file, and the selective-import
// header.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apidex-dev/apidex/internal/fileutil"
	"github.com/apidex-dev/apidex/internal/symbol"
)

// WriteIndex writes the machine-readable index: a JSON array with one
// object per symbol in table order.
func WriteIndex(path string, table *symbol.Table) error {
	data, err := MarshalIndex(table)
	if err != nil {
		return err
	}
	return fileutil.WriteFile(path, data)
}

// MarshalIndex renders the index bytes: one object per line, two-space
// indented, no HTML escaping.
func MarshalIndex(table *symbol.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, s := range table.Symbols() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		rec, err := marshalNoHTMLEscape(s)
		if err != nil {
			return nil, fmt.Errorf("failed to encode symbol %s: %w", s.Name, err)
		}
		buf.Write(rec)
	}
	buf.WriteString("\n]\n")
	return buf.Bytes(), nil
}

func marshalNoHTMLEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ReadIndex parses an emitted index back into symbol records. The index is
// only ever an output of a scan run, never an input to one; this exists for
// consumers of the index format and for round-trip verification.
func ReadIndex(path string) ([]symbol.Symbol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s: %w", path, err)
	}
	var syms []symbol.Symbol
	if err := json.Unmarshal(data, &syms); err != nil {
		return nil, fmt.Errorf("failed to parse index %s: %w", path, err)
	}
	return syms, nil
}
