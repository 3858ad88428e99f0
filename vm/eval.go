package vm

import (
	"github.com/jcorbin/snow/internal/compiler"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/value"
)

// functionValue wraps a compiled *invoke.Function as a directly-callable
// heap value, the same representation nativeFunction produces for
// built-in methods.
func (v *VM) functionValue(fn *invoke.Function) value.Value {
	h, obj := v.Heap.New()
	obj.SetNative(fn)
	return value.FromHandle(h)
}

// Compile parses src into a callable value.Value without running it
// (SPEC_FULL §6).
func (v *VM) Compile(src string) (value.Value, error) {
	fn, err := compiler.Compile(v, src)
	if err != nil {
		return value.Nil, err
	}
	return v.functionValue(fn), nil
}

// Eval compiles and immediately calls src with no arguments, returning
// its result (SPEC_FULL §6).
func (v *VM) Eval(src string) (value.Value, error) {
	fn, err := v.Compile(src)
	if err != nil {
		return value.Nil, err
	}
	return v.Engine.Invoke(fn, value.Nil, nil)
}

// Call invokes fn (a value.Value produced by Compile, a closure literal,
// or a native function) with self=value.Nil and the given positional
// arguments.
func (v *VM) Call(fn value.Value, args ...value.Value) (value.Value, error) {
	return v.Engine.Invoke(fn, value.Nil, args)
}

// CallMethod dispatches name on receiver through the ordinary member
// lookup/invoke path (spec.md §4.2.4), interning name on demand.
func (v *VM) CallMethod(receiver value.Value, name string, args ...value.Value) (value.Value, error) {
	id := v.Symbols.Intern(name)
	return object.CallMethod(v.Heap, v.Registry, v.Engine, receiver, id, args)
}
