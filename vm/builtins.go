package vm

import (
	"github.com/jcorbin/snow/internal/runeio"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/raise"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// installBuiltins registers the handful of global constructor functions
// the front end compiles object/array/fiber literal forms down to
// (SPEC_FULL §11). Routing them through ordinary globals, rather than
// special-casing their names in internal/compiler, keeps call dispatch
// uniform: a call to "__make_object__" is just a global lookup followed
// by an ordinary Engine.Invoke, same as any user-defined function.
func (v *VM) installBuiltins() {
	body := v.Symbols.Intern("__body__")

	v.SetGlobal("__make_object__", v.nativeFunction(&invoke.Descriptor{}, func(_ *invoke.Frame, _, _ value.Value) (value.Value, error) {
		return v.NewObjectValue(), nil
	}))

	v.SetGlobal("__make_array__", v.nativeFunction(&invoke.Descriptor{}, func(_ *invoke.Frame, _, _ value.Value) (value.Value, error) {
		return v.NewArrayValue(), nil
	}))

	v.SetGlobal("__make_fiber__", v.nativeFunction(
		&invoke.Descriptor{Params: []symbol.ID{body}, Locals: []symbol.ID{body}},
		func(frame *invoke.Frame, _, _ value.Value) (value.Value, error) {
			return v.NewFiberValue(frame.GetLocal(0)), nil
		},
	))

	raised := v.Symbols.Intern("__raised__")
	v.SetGlobal("__raise__", v.nativeFunction(
		&invoke.Descriptor{Params: []symbol.ID{raised}, Locals: []symbol.ID{raised}},
		func(frame *invoke.Frame, _, _ value.Value) (value.Value, error) {
			return value.Nil, raise.Raise(frame.GetLocal(0))
		},
	))

	codepoint := v.Symbols.Intern("__codepoint__")
	v.SetGlobal("__echo__", v.nativeFunction(
		&invoke.Descriptor{Params: []symbol.ID{codepoint}, Locals: []symbol.ID{codepoint}},
		func(frame *invoke.Frame, _, _ value.Value) (value.Value, error) {
			arg := frame.GetLocal(0)
			n, ok := arg.Int()
			if !ok {
				return value.Nil, value.WrongTypeError{Op: "__echo__", Kind: arg.Kind()}
			}
			if _, err := runeio.WriteANSIRune(v.out, rune(n)); err != nil {
				return value.Nil, err
			}
			if err := v.out.Flush(); err != nil {
				return value.Nil, err
			}
			return value.Nil, nil
		},
	))
}
