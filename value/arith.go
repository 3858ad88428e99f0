package value

import "fmt"

// WrongTypeError reports an arithmetic or comparison operation applied to a
// Value kind it does not support (spec.md §7 wrong-type).
type WrongTypeError struct {
	Op   string
	Kind Kind
}

func (err WrongTypeError) Error() string {
	return fmt.Sprintf("wrong-type: %v does not apply to %v", err.Op, err.Kind)
}

// OverflowError reports an integer arithmetic result outside the encodable
// range (DESIGN.md Open Question decision #3: overflow raises, rather than
// promoting to a big integer).
type OverflowError struct{ Op string }

func (err OverflowError) Error() string {
	return fmt.Sprintf("wrong-type: integer overflow in %v", err.Op)
}

func numeric(op string, a, b Value) (ai, bi int64, af, bf float32, isFloat bool, err error) {
	if n, ok := a.Int(); ok {
		ai = n
	} else if f, ok := a.Float(); ok {
		af, isFloat = f, true
	} else {
		return 0, 0, 0, 0, false, WrongTypeError{op, a.Kind()}
	}
	if n, ok := b.Int(); ok {
		bi = n
		if isFloat {
			bf = float32(n)
		}
	} else if f, ok := b.Float(); ok {
		if !isFloat {
			af = float32(ai)
		}
		bf, isFloat = f, true
	} else {
		return 0, 0, 0, 0, false, WrongTypeError{op, b.Kind()}
	}
	return ai, bi, af, bf, isFloat, nil
}

// Add implements the integer/float prototypes' "+" method.
func Add(a, b Value) (Value, error) {
	ai, bi, af, bf, isFloat, err := numeric("+", a, b)
	if err != nil {
		return Undefined, err
	}
	if isFloat {
		return FromFloat(af + bf), nil
	}
	v, ok := FromInt(ai + bi)
	if !ok {
		return Undefined, OverflowError{"+"}
	}
	return v, nil
}

// Sub implements the integer/float prototypes' "-" method.
func Sub(a, b Value) (Value, error) {
	ai, bi, af, bf, isFloat, err := numeric("-", a, b)
	if err != nil {
		return Undefined, err
	}
	if isFloat {
		return FromFloat(af - bf), nil
	}
	v, ok := FromInt(ai - bi)
	if !ok {
		return Undefined, OverflowError{"-"}
	}
	return v, nil
}

// Mul implements the integer/float prototypes' "*" method.
func Mul(a, b Value) (Value, error) {
	ai, bi, af, bf, isFloat, err := numeric("*", a, b)
	if err != nil {
		return Undefined, err
	}
	if isFloat {
		return FromFloat(af * bf), nil
	}
	p := ai * bi
	if ai != 0 && p/ai != bi {
		return Undefined, OverflowError{"*"}
	}
	v, ok := FromInt(p)
	if !ok {
		return Undefined, OverflowError{"*"}
	}
	return v, nil
}

// Div implements the integer/float prototypes' "/" method.
func Div(a, b Value) (Value, error) {
	ai, bi, af, bf, isFloat, err := numeric("/", a, b)
	if err != nil {
		return Undefined, err
	}
	if isFloat {
		return FromFloat(af / bf), nil
	}
	if bi == 0 {
		return Undefined, WrongTypeError{"/", KindInt}
	}
	v, ok := FromInt(ai / bi)
	if !ok {
		return Undefined, OverflowError{"/"}
	}
	return v, nil
}

// Mod implements the integer prototype's "%" method. Unlike the other
// arithmetic operators this has no float form, matching the original
// runtime's integer-only modulo (snow/runtime/numeric.c).
func Mod(a, b Value) (Value, error) {
	ai, ok := a.Int()
	if !ok {
		return Undefined, WrongTypeError{"%", a.Kind()}
	}
	bi, ok := b.Int()
	if !ok {
		return Undefined, WrongTypeError{"%", b.Kind()}
	}
	if bi == 0 {
		return Undefined, WrongTypeError{"%", KindInt}
	}
	v, ok := FromInt(ai % bi)
	if !ok {
		return Undefined, OverflowError{"%"}
	}
	return v, nil
}

// Compare implements the integer/float prototypes' ordering methods,
// returning -1, 0, or 1.
func Compare(a, b Value) (int, error) {
	ai, bi, af, bf, isFloat, err := numeric("compare", a, b)
	if err != nil {
		return 0, err
	}
	if isFloat {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	switch {
	case ai < bi:
		return -1, nil
	case ai > bi:
		return 1, nil
	default:
		return 0, nil
	}
}
