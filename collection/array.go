// Package collection implements the ordered array and keyed map containers
// the object model depends on (spec.md §3.4).
package collection

import (
	"github.com/jcorbin/snow/internal/mem"
	"github.com/jcorbin/snow/value"
)

// Array is an ordered, dynamically-growing sequence of value.Value,
// backed by the same paged cell store as the object model's properties
// table (internal/mem.Cells), generalized from gothird's integer memory
// core. Negative indices count from the end; reads past either end return
// Nil, writes past the end extend with Nil (spec.md §3.4).
type Array struct {
	cells  mem.Cells[value.Value]
	length uint
}

// NewArray returns an empty Array.
func NewArray() *Array { return &Array{} }

// Len returns the number of elements currently in the array.
func (a *Array) Len() int { return int(a.length) }

// normalize adjusts a possibly-negative index by the array's length,
// returning ok=false if the result is still negative (spec.md §7
// index-out-of-range, for the write path; reads of an out-of-range index
// simply return Nil per spec.md §3.4).
func (a *Array) normalize(i int) (uint, bool) {
	if i < 0 {
		i += int(a.length)
	}
	if i < 0 {
		return 0, false
	}
	return uint(i), true
}

// Get returns the element at index i (negative indices count from the
// end). Returns Nil for any out-of-range index, matching spec.md §3.4's
// "out-of-range read returns nil".
func (a *Array) Get(i int) value.Value {
	addr, ok := a.normalize(i)
	if !ok || addr >= a.length {
		return value.Nil
	}
	v, _ := a.cells.Load(addr)
	return v
}

// IndexOutOfRangeError reports a negative index that remains negative
// after length adjustment (spec.md §7).
type IndexOutOfRangeError struct{ Index int }

func (err IndexOutOfRangeError) Error() string {
	return "index-out-of-range"
}

// Set stores v at index i (negative indices count from the end),
// extending the array with Nil as needed. Fails with
// IndexOutOfRangeError if i is negative and remains so after length
// adjustment (spec.md §3.4: "out-of-range write extends with nils").
func (a *Array) Set(i int, v value.Value) error {
	addr, ok := a.normalize(i)
	if !ok {
		return IndexOutOfRangeError{i}
	}
	if addr > a.length {
		gap := make([]value.Value, addr-a.length)
		for j := range gap {
			gap[j] = value.Nil
		}
		if err := a.cells.Stor(a.length, gap...); err != nil {
			return err
		}
	}
	if err := a.cells.Stor(addr, v); err != nil {
		return err
	}
	if end := addr + 1; end > a.length {
		a.length = end
	}
	return nil
}

// Push appends v to the end of the array; amortized O(1).
func (a *Array) Push(v value.Value) {
	_ = a.cells.Stor(a.length, v)
	a.length++
}

// Pop removes and returns the last element, or Nil if the array is empty.
func (a *Array) Pop() value.Value {
	if a.length == 0 {
		return value.Nil
	}
	a.length--
	v, _ := a.cells.Load(a.length)
	a.cells.Truncate(a.length)
	return v
}

// Each calls f for every element in order, stopping early if f returns
// false.
func (a *Array) Each(f func(i int, v value.Value) bool) {
	for i := uint(0); i < a.length; i++ {
		v, _ := a.cells.Load(i)
		if !f(int(i), v) {
			return
		}
	}
}

// Slice materializes the array's elements as a plain Go slice, for
// splatting into call arguments (spec.md §4.3.3) or diagnostics.
func (a *Array) Slice() []value.Value {
	out := make([]value.Value, a.length)
	_ = a.cells.LoadInto(0, out)
	return out
}

// Reverse reverses the array's elements in place, matching the original
// runtime's array reverse (snow/runtime/array.c, SPEC_FULL §11).
func (a *Array) Reverse() {
	s := a.Slice()
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	_ = a.cells.Stor(0, s...)
}

// FromSlice builds an Array containing the given values in order.
func FromSlice(vs []value.Value) *Array {
	a := NewArray()
	for _, v := range vs {
		a.Push(v)
	}
	return a
}
