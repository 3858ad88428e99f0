package invoke

import (
	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// NotSplattableError reports a splat (*expr) argument whose value is
// neither an array, a map, nor another Arguments (spec.md §4.3.3).
type NotSplattableError struct{ Value value.Value }

func (e NotSplattableError) Error() string { return "value is not splattable" }

// ExpandSplat appends the contents of v into args, implementing spec.md
// §4.3.3: an array's elements become additional positional arguments in
// order; a map's pairs become named arguments when the key is a symbol,
// and additional positional arguments otherwise (a decision the source
// specification leaves open — see the splat section of the design
// ledger); another Arguments value's positional and named entries are
// appended directly. args.Named is re-sorted on return so Bind's
// merge-walk invariant still holds.
func ExpandSplat(heap *object.Heap, args *Arguments, v value.Value) error {
	if v.Kind() != value.KindObject {
		return NotSplattableError{v}
	}
	obj := heap.Resolve(v.Handle())
	if obj == nil {
		return NotSplattableError{v}
	}
	native, ok := obj.Native()
	if !ok {
		return NotSplattableError{v}
	}

	switch n := native.(type) {
	case *collection.Array:
		n.Each(func(_ int, elem value.Value) bool {
			args.Positional = append(args.Positional, elem)
			return true
		})

	case *collection.Map:
		keys, vals := n.Pairs()
		for i, k := range keys {
			if k.Kind() == value.KindSymbol {
				sym, _ := k.Symbol()
				args.Named = append(args.Named, NamedArg{Name: symbol.ID(sym), Value: vals[i]})
			} else {
				// Non-symbol keys have no named-argument slot to fill;
				// both halves of the pair are kept, as positional
				// arguments, rather than silently dropping the key.
				args.Positional = append(args.Positional, k, vals[i])
			}
		}
		args.SortNamed()

	case *Arguments:
		args.Positional = append(args.Positional, n.Positional...)
		args.Named = append(args.Named, n.Named...)
		args.SortNamed()

	default:
		return NotSplattableError{v}
	}

	return nil
}
