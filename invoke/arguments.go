package invoke

import (
	"sort"

	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// NamedArg is one name=value pair passed at a call site.
type NamedArg struct {
	Name  symbol.ID
	Value value.Value
}

// Arguments is the materialized argument list for one call, before binding
// to a particular Descriptor's parameter slots (spec.md §3.5, §4.3.1).
// Named is expected sorted by Name; SortNamed restores that invariant after
// splat expansion appends more pairs.
type Arguments struct {
	Positional []value.Value
	Named      []NamedArg
}

// SortNamed restores Arguments' "Named sorted by symbol id" invariant,
// required by the merge-walk in Bind.
func (a *Arguments) SortNamed() {
	sort.Slice(a.Named, func(i, j int) bool { return a.Named[i].Name < a.Named[j].Name })
}

// ExtraNamedArgError reports a named argument with no matching parameter
// (spec.md §4.3.1: "named arguments with no matching parameter become
// extras").
type ExtraNamedArgError struct{ Name symbol.ID }

func (e ExtraNamedArgError) Error() string { return "extra named argument" }

// Bind implements spec.md §4.3.1's argument-binding merge-walk: two sorted
// cursors, one over desc.Params (already sorted by the compiler) and one
// over args.Named (sorted by SortNamed), are walked in lockstep. A named
// argument whose name matches the cursor's current parameter fills that
// parameter's slot directly; a named argument with no matching parameter is
// appended to extras, in encounter order. Every parameter slot left
// unfilled by a named argument then consumes the next unclaimed positional
// argument, in desc.Params order (sorted by symbol id). "it" is
// args.Positional's first element
// before any consumption, or value.Nil if there were no positional
// arguments at all.
func Bind(desc *Descriptor, args Arguments) (locals []value.Value, it value.Value, extras []NamedArg, err error) {
	locals = make([]value.Value, desc.NumLocals())
	for i := range locals {
		locals[i] = value.Nil
	}

	it = value.Nil
	if len(args.Positional) > 0 {
		it = args.Positional[0]
	}

	filled := make([]bool, len(desc.Params))

	pi, ni := 0, 0
	for pi < len(desc.Params) && ni < len(args.Named) {
		p := desc.Params[pi]
		n := args.Named[ni]
		switch {
		case n.Name < p:
			extras = append(extras, n)
			ni++
		case n.Name > p:
			pi++
		default:
			locals[pi] = n.Value
			filled[pi] = true
			pi++
			ni++
		}
	}
	for ; ni < len(args.Named); ni++ {
		extras = append(extras, args.Named[ni])
	}

	posIdx := 0
	for i, p := range desc.Params {
		if filled[i] {
			continue
		}
		if posIdx < len(args.Positional) {
			locals[i] = args.Positional[posIdx]
			posIdx++
			filled[i] = true
		}
		_ = p
	}

	return locals, it, extras, nil
}
