package emit

import (
	"fmt"
	"strings"

	"github.com/apidex-dev/apidex/internal/fileutil"
	"github.com/apidex-dev/apidex/internal/strset"
	"github.com/apidex-dev/apidex/internal/symbol"
)

// WriteImportHeader writes the selective-import header for one consumer:
// an include guard, the selection-mode defines, one IMPORT_<Name> marker
// per selected visibility-permitted name, and the inclusion of the base API
// header. Visibility is re-checked here because the dependency closure can
// add names that never passed the seeding filter.
func WriteImportHeader(path string, table *symbol.Table, selected *strset.Set, includePrivate bool, apiHeader string) error {
	return fileutil.WriteFile(path, MarshalImportHeader(table, selected, includePrivate, apiHeader))
}

// MarshalImportHeader renders the header bytes. Directives follow table
// order with duplicates by name collapsed to a single define.
func MarshalImportHeader(table *symbol.Table, selected *strset.Set, includePrivate bool, apiHeader string) []byte {
	var b strings.Builder
	b.WriteString("#pragma once\n")
	b.WriteString("#define API_SELECTIVE 1\n")
	if includePrivate {
		b.WriteString("#define API_VIS_PRIVATE_TOO 1\n")
	} else {
		b.WriteString("#define API_VIS_PRIVATE_TOO 0\n")
	}
	b.WriteByte('\n')

	emitted := strset.New(selected.Len())
	for _, s := range table.Symbols() {
		if !selected.Has(s.Name) || emitted.Has(s.Name) {
			continue
		}
		if !includePrivate && s.Vis != symbol.VisPublic {
			continue
		}
		emitted.Add(s.Name)
		fmt.Fprintf(&b, "#define IMPORT_%s 1\n", s.Name)
	}

	b.WriteByte('\n')
	fmt.Fprintf(&b, "#include %q\n", apiHeader)
	return []byte(b.String())
}
