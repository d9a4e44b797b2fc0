// Package needs computes the minimal transitive set of API symbol names a
// consumer source file uses, so a selective-import header can gate which
// declarations the shared API header emits.
package needs

import (
	"fmt"
	"os/exec"

	"github.com/apidex-dev/apidex/internal/strset"
	"github.com/apidex-dev/apidex/internal/symbol"
)

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// CollectIdents adds every identifier token in text to the set. This is a
// plain token scan: no keyword filtering, no macro awareness. It works on
// preprocessed and raw text alike, which is what lets usage scanning see
// multi-line prototypes that extraction cannot.
func CollectIdents(text string, into *strset.Set) {
	for i := 0; i < len(text); {
		if !isIdentStart(text[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(text) && isIdentChar(text[j]) {
			j++
		}
		into.Add(text[i:j])
		i = j
	}
}

// Closure expands selected to its dependency fixpoint: for every symbol
// whose name is selected, every type name appearing as an identifier token
// in its signature or snippet is selected too, repeated until a full pass
// adds nothing. Membership is textual, so an unrelated type name occurring
// as a token still pulls that type in; over-inclusion is accepted in
// exchange for a self-contained result.
func Closure(table *symbol.Table, typeNames, selected *strset.Set) {
	changed := true
	for changed {
		changed = false
		for _, s := range table.Symbols() {
			if !selected.Has(s.Name) {
				continue
			}
			ids := strset.New(64)
			if s.Signature != "" {
				CollectIdents(s.Signature, ids)
			}
			CollectIdents(s.Snippet, ids)
			for _, id := range ids.Keys() {
				if typeNames.Has(id) && !selected.Has(id) {
					selected.Add(id)
					changed = true
				}
			}
		}
	}
}

// Select seeds the selection with every visibility-permitted symbol whose
// name occurs as an identifier token in entryText, then runs the dependency
// closure over the table's type names. Selection operates on names: once a
// name is in, every record bearing it counts as selected. The closure may
// add names whose symbols are not visibility-permitted; emission re-checks
// visibility. An entry with no matching identifiers yields an empty set.
func Select(table *symbol.Table, includePrivate bool, entryText string) *strset.Set {
	sets := symbol.BuildNameSets(table)

	used := strset.New(1024)
	CollectIdents(entryText, used)

	selected := strset.New(256)
	for _, s := range table.Symbols() {
		if !includePrivate && s.Vis != symbol.VisPublic {
			continue
		}
		if used.Has(s.Name) {
			selected.Add(s.Name)
		}
	}

	Closure(table, sets.Types, selected)
	return selected
}

// Preprocess runs command through the shell and returns its entire standard
// output. Launch failure or a non-zero exit is fatal for the invocation.
func Preprocess(command string) (string, error) {
	out, err := exec.Command("sh", "-c", command).Output()
	if err != nil {
		return "", fmt.Errorf("failed to run preprocess command %q: %w", command, err)
	}
	return string(out), nil
}
