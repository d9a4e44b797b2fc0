package symbol

import "github.com/apidex-dev/apidex/internal/strset"

// Table is the append-only ordered collection of symbols for one scan run.
// Order is file visitation order, then occurrence order within a file.
// A Table is rebuilt from scratch on every invocation; it is never loaded
// from disk.
type Table struct {
	symbols []Symbol
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Append adds a symbol record. Records are never mutated or removed.
func (t *Table) Append(s Symbol) {
	t.symbols = append(t.symbols, s)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Symbols returns the records in table order. Callers must treat the
// returned slice as read-only.
func (t *Table) Symbols() []Symbol {
	return t.symbols
}

// NameSets partitions the table's symbol names for fast membership tests.
// The sets are derived data: rebuild them whenever the table changes.
type NameSets struct {
	All       *strset.Set
	Types     *strset.Set // struct and typedef-struct names
	Functions *strset.Set // prototype and definition names
}

// BuildNameSets derives the name sets from the table.
func BuildNameSets(t *Table) NameSets {
	sets := NameSets{
		All:       strset.New(t.Len()),
		Types:     strset.New(t.Len()),
		Functions: strset.New(t.Len()),
	}
	for _, s := range t.symbols {
		sets.All.Add(s.Name)
		if s.IsFunction() {
			sets.Functions.Add(s.Name)
		}
		if s.IsType() {
			sets.Types.Add(s.Name)
		}
	}
	return sets
}
