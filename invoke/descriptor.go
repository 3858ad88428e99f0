// Package invoke implements the method/function invocation protocol:
// function descriptors, call frames, argument binding, and local/upvalue
// resolution (spec.md §3.5, §4.3).
package invoke

import (
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// UpvalueRef names a captured non-local variable as "go level definition
// contexts outward, then read local slot index" (spec.md §4.3.2).
type UpvalueRef struct {
	Level int
	Index int
}

// Descriptor is immutable once emitted by the (out-of-scope) compiler; it
// carries everything the invocation engine needs to bind arguments and
// resolve locals for one function (spec.md §3.5).
type Descriptor struct {
	Name symbol.ID

	// Params holds the declared parameter names, sorted by symbol id, as
	// spec.md §4.3.1 requires for the merge-walk against sorted named
	// arguments.
	Params []symbol.ID

	// ItIndex is the position, after sorting, of the first unnamed
	// parameter (spec.md §3.5); -1 if the descriptor declares no
	// parameters at all.
	ItIndex int

	// Locals names every local slot, parameters first (in the same sorted
	// order as Params) followed by the function body's own locals.
	Locals []symbol.ID

	// Upvalues gives, for each name the compiler resolved as a capture of
	// an enclosing definition context, the (level, index) reference to
	// read it by (spec.md §4.3.2).
	Upvalues map[symbol.ID]UpvalueRef

	// NeedsContext is false for natives of fixed arity <= 1 whose frame
	// takes the calling frame as its definition context instead of the
	// function's own; a fresh frame is still allocated for each call.
	NeedsContext bool
}

// NumLocals returns the number of local variable slots this descriptor's
// frames must allocate.
func (d *Descriptor) NumLocals() int { return len(d.Locals) }

// NativeFunc is the call contract every compiled function body (or native
// method) implements: it receives its own frame, the bound self, and the
// "it" value, and returns a result or an error (spec.md §6: "Each compiled
// function body takes parameters (frame, self, it) and returns a value").
type NativeFunc func(frame *Frame, self, it value.Value) (value.Value, error)

// Function couples a Descriptor with the call frame it was instantiated
// in (its DefinitionContext, the root of its upvalue chain), per spec.md
// §3.5. DefinitionContext is nil for top-level and native functions.
type Function struct {
	Descriptor        *Descriptor
	Entry             NativeFunc
	DefinitionContext *Frame
}
