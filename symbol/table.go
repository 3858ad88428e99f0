// Package symbol implements the process-wide interned-string table that
// the object model and invocation engine key member/parameter names with
// (spec.md §3.2, §4.1).
package symbol

import (
	"fmt"
	"sync"
)

// ID is an opaque, process-stable symbol identifier. The zero ID never
// names a string; Table.Intern never returns it.
type ID uint64

// UnknownSymbolError reports that an ID was asked for its name but did not
// originate from the Table it was looked up in (spec.md §4.1).
type UnknownSymbolError struct{ ID ID }

func (err UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown-symbol: %v", uint64(err.ID))
}

// Table is a process-wide intern table: same string always maps to the
// same ID within one Table's lifetime, and reverse lookup is O(1). The
// zero Table is ready to use. Safe for concurrent use by multiple
// goroutines (spec.md §4.1: "Safe under concurrent mutators (single
// internal lock)"), grounded on gothird's symbols type (core.go) with a
// sync.Mutex added around the two parallel maps.
type Table struct {
	mu      sync.Mutex
	strings []string
	ids     map[string]ID
}

// Intern returns s's ID, assigning the next one if s has not been seen
// before by this Table.
func (t *Table) Intern(s string) ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.ids[s]; ok {
		return id
	}
	if t.ids == nil {
		t.ids = make(map[string]ID)
	}
	id := ID(len(t.strings) + 1)
	t.strings = append(t.strings, s)
	t.ids[s] = id
	return id
}

// Name returns the string s such that Intern(s) == id, or fails with
// UnknownSymbolError if id did not originate from this Table.
func (t *Table) Name(id ID) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := int(id) - 1
	if i < 0 || i >= len(t.strings) {
		return "", UnknownSymbolError{id}
	}
	return t.strings[i], nil
}

// Lookup is like Intern but never assigns a new ID: it reports whether s
// has already been interned. Used by vm.GetGlobal to avoid interning
// throwaway lookup keys.
func (t *Table) Lookup(s string) (ID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.ids[s]
	return id, ok
}
