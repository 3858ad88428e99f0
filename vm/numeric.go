package vm

import (
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// binaryOp wraps a value.Value arithmetic/comparison function as a native
// method taking one argument, the right-hand operand (SPEC_FULL §11:
// snow/runtime/numeric.c's methods, spec.md §6's "arithmetic inlining"
// contract, Testable Property #9).
func binaryOp(fn func(a, b value.Value) (value.Value, error)) invoke.NativeFunc {
	return func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		return fn(self, frame.GetLocal(0))
	}
}

func comparisonOp(want int) invoke.NativeFunc {
	return func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		c, err := value.Compare(self, frame.GetLocal(0))
		if err != nil {
			return value.Undefined, err
		}
		if c == want {
			return value.True, nil
		}
		return value.False, nil
	}
}

// installNumericMethods wires "+", "-", "*", "/", "%", "<", ">", "==" onto
// the integer and float prototypes ("%" integer-only, matching the
// original runtime's numeric.c).
func (v *VM) installNumericMethods() {
	other := v.Symbols.Intern("__other__")
	desc := func() *invoke.Descriptor {
		return &invoke.Descriptor{Params: []symbol.ID{other}, Locals: []symbol.ID{other}}
	}

	plus, minus, star, slash, pct := v.Symbols.Intern("+"), v.Symbols.Intern("-"), v.Symbols.Intern("*"), v.Symbols.Intern("/"), v.Symbols.Intern("%")
	lt, gt, eq := v.Symbols.Intern("<"), v.Symbols.Intern(">"), v.Symbols.Intern("==")

	for _, kind := range []value.Kind{value.KindInt, value.KindFloat} {
		proto := v.Registry.PrototypeFor(kind)
		v.defineMethod(proto, plus, desc(), binaryOp(value.Add))
		v.defineMethod(proto, minus, desc(), binaryOp(value.Sub))
		v.defineMethod(proto, star, desc(), binaryOp(value.Mul))
		v.defineMethod(proto, slash, desc(), binaryOp(value.Div))
		v.defineMethod(proto, lt, desc(), comparisonOp(-1))
		v.defineMethod(proto, gt, desc(), comparisonOp(1))
		v.defineMethod(proto, eq, desc(), comparisonOp(0))
	}

	intProto := v.Registry.PrototypeFor(value.KindInt)
	v.defineMethod(intProto, pct, desc(), binaryOp(value.Mod))
}
