package vm

import "github.com/jcorbin/snow/value"

// GetGlobal reads a binding from the global module (spec.md §6), returning
// value.Nil if unbound.
func (v *VM) GetGlobal(name string) value.Value {
	id, ok := v.Symbols.Lookup(name)
	if !ok {
		return value.Nil
	}
	return v.globals.Get(value.FromSymbol(uint64(id)))
}

// SetGlobal writes a binding in the global module (spec.md §6).
func (v *VM) SetGlobal(name string, val value.Value) {
	id := v.Symbols.Intern(name)
	_ = v.globals.Set(value.FromSymbol(uint64(id)), val)
}
