package nid

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an identifier or encoded symbol is not known.
var ErrNotFound = errors.New("not found")

// Lookuper maps a module or library identifier to its name.
type Lookuper interface {
	Lookup(id uint64) (string, error)
}

// Entry is one module or library referenced by a module image.
type Entry struct {
	ID   uint64 `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Table is an ordered list of entries queried by identifier.
// Identifiers are expected, not enforced, to be unique; the first match wins.
type Table struct {
	entries []Entry
}

// NewTable returns a table holding a copy of entries in their given order.
func NewTable(entries ...Entry) *Table {
	t := &Table{entries: make([]Entry, len(entries))}
	copy(t.entries, entries)
	return t
}

// Lookup returns the name of the first entry with the given id.
func (t *Table) Lookup(id uint64) (string, error) {
	if t != nil {
		for _, e := range t.entries {
			if e.ID == id {
				return e.Name, nil
			}
		}
	}
	return "", fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the table entries in insertion order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
