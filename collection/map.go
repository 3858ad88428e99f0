package collection

import "github.com/jcorbin/snow/value"

// KeyMode selects whether a Map accepts arbitrary value.Value keys (which
// may require calling a user-defined hash method on an object key) or only
// "immediate" keys (nil/bool/int/float/symbol), whose bit pattern can be
// used directly as the hash with no user code invoked (spec.md §3.4).
type KeyMode uint8

const (
	// ArbitraryKey accepts any value.Value as a key, including object
	// references.
	ArbitraryKey KeyMode = iota
	// ImmediateKey accepts only non-object values as keys.
	ImmediateKey
)

// Order selects whether Each iterates a Map in insertion order or in
// whatever order the underlying hash table happens to produce.
type Order uint8

const (
	// Hashed means iteration order is unspecified.
	Hashed Order = iota
	// InsertionOrdered means iteration order follows first-insertion
	// order, like Go's own map literals do not guarantee but many
	// scripting languages' maps do.
	InsertionOrdered
)

// HashFunc computes the table bucket key for a Map entry's key Value. For
// ImmediateKey maps this is always identityHash (the Value's own bit
// pattern); ArbitraryKey maps may in principle delegate to a user-defined
// hash method on an object key, but since hash-method dispatch lives in
// the object model (a higher layer than this package), the default here
// is identity on the object handle, which is always available and is what
// spec.md's own testable properties exercise (object keys compare by
// reference unless the caller supplies a richer HashFunc).
type HashFunc func(value.Value) uint64

func identityHash(v value.Value) uint64 { return uint64(v) }

// NotImmediateError reports an object-kind key passed to an ImmediateKey
// map (spec.md §7 wrong-type, applied to collection keys).
type NotImmediateError struct{ Key value.Value }

func (err NotImmediateError) Error() string { return "wrong-type: key is not an immediate value" }

// Map is a hash map from value.Value to value.Value, in any of the four
// variants spec.md §3.4 names: {arbitrary-key | immediate-key-only} ×
// {hashed | insertion-ordered}. The insertion-ordered variants are
// grounded on gothird's own symbols type (core.go): a parallel
// slice-of-keys alongside the hash index, so order survives without a
// second lookup structure.
type Map struct {
	mode  KeyMode
	order Order
	hash  HashFunc

	index map[uint64]int // hash -> index into entries
	keys  []value.Value  // insertion order, parallel to entries
	vals  []value.Value
	live  []bool // tombstone flags, parallel to keys/vals
}

// NewMap constructs a Map with the given key mode and iteration order.
func NewMap(mode KeyMode, order Order) *Map {
	return &Map{
		mode:  mode,
		order: order,
		hash:  identityHash,
		index: make(map[uint64]int),
	}
}

// WithHash overrides the hash function used for ArbitraryKey maps (e.g. to
// delegate to an object's user-defined hash method, once the object model
// is wired in by the call site).
func (m *Map) WithHash(h HashFunc) *Map {
	m.hash = h
	return m
}

func (m *Map) checkKey(k value.Value) error {
	if m.mode == ImmediateKey && k.Kind() == value.KindObject && !k.IsUndefined() {
		return NotImmediateError{k}
	}
	return nil
}

// Get returns the value stored under k, or Nil if absent.
func (m *Map) Get(k value.Value) value.Value {
	if err := m.checkKey(k); err != nil {
		return value.Nil
	}
	if i, ok := m.index[m.hash(k)]; ok && m.live[i] {
		return m.vals[i]
	}
	return value.Nil
}

// Has reports whether k is present in the map.
func (m *Map) Has(k value.Value) bool {
	if err := m.checkKey(k); err != nil {
		return false
	}
	i, ok := m.index[m.hash(k)]
	return ok && m.live[i]
}

// Set stores v under k, overwriting any existing entry for k.
func (m *Map) Set(k, v value.Value) error {
	if err := m.checkKey(k); err != nil {
		return err
	}
	h := m.hash(k)
	if i, ok := m.index[h]; ok && m.live[i] {
		m.keys[i], m.vals[i] = k, v
		return nil
	}
	i := len(m.keys)
	m.index[h] = i
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
	m.live = append(m.live, true)
	return nil
}

// Delete removes k from the map, if present.
func (m *Map) Delete(k value.Value) {
	h := m.hash(k)
	if i, ok := m.index[h]; ok {
		m.live[i] = false
		delete(m.index, h)
	}
}

// Len returns the number of live entries.
func (m *Map) Len() int {
	n := 0
	for _, live := range m.live {
		if live {
			n++
		}
	}
	return n
}

// Each calls f for every live (key, value) pair, stopping early if f
// returns false. For an InsertionOrdered map, pairs are visited in the
// order they were first inserted; for a Hashed map, order is unspecified
// (it happens to also be insertion order here, since both variants share
// this package's underlying representation, but callers must not depend
// on that for a Hashed map).
func (m *Map) Each(f func(k, v value.Value) bool) {
	for i, live := range m.live {
		if !live {
			continue
		}
		if !f(m.keys[i], m.vals[i]) {
			return
		}
	}
}

// Pairs materializes the map's live entries as parallel key/value slices,
// in Each's iteration order, for splatting into call arguments (spec.md
// §4.3.3).
func (m *Map) Pairs() (keys, vals []value.Value) {
	m.Each(func(k, v value.Value) bool {
		keys = append(keys, k)
		vals = append(vals, v)
		return true
	})
	return keys, vals
}
