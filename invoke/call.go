package invoke

import (
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// NotCallableError reports a value.Value that is neither a Function itself
// nor an object providing one level of __call__ indirection (spec.md
// §4.3.4).
type NotCallableError struct{ Value value.Value }

func (e NotCallableError) Error() string { return "not-callable" }

// Engine drives the call path (spec.md §4.3.4): resolving a callee value to
// a Function, binding its arguments, and running its body. It implements
// object.Invoker so the object package can call back into it for
// getter/setter/method dispatch without importing this package.
type Engine struct {
	Heap       *object.Heap
	Registry   *object.Registry
	CallSymbol symbol.ID // interned "__call__", used for one-level callee indirection
}

// NewEngine constructs an Engine over the given heap and prototype
// registry. callSym must already be interned for "__call__" by the caller
// (typically the process-wide symbol table owned by package vm).
func NewEngine(heap *object.Heap, reg *object.Registry, callSym symbol.ID) *Engine {
	return &Engine{Heap: heap, Registry: reg, CallSymbol: callSym}
}

// asFunction returns the *Function a value directly wraps, i.e. an object
// whose native payload (object.Object.Native) is a *Function, as installed
// by whatever constructs function objects (the compiler's function
// literals, or native builtins registered by package vm).
func (e *Engine) asFunction(v value.Value) (*Function, bool) {
	if v.Kind() != value.KindObject {
		return nil, false
	}
	obj := e.Heap.Resolve(v.Handle())
	if obj == nil {
		return nil, false
	}
	native, ok := obj.Native()
	if !ok {
		return nil, false
	}
	fn, ok := native.(*Function)
	return fn, ok
}

// resolveCallable implements spec.md §4.3.4 step 1: a callee is either
// directly a Function, or an object providing exactly one level of
// __call__ indirection (a "callable object"); no further chasing is
// attempted beyond that one level.
func (e *Engine) resolveCallable(v value.Value) (*Function, error) {
	if fn, ok := e.asFunction(v); ok {
		return fn, nil
	}

	start := e.Registry.NearestObject(v)
	callee, err := object.GetMember(e.Heap, e.Registry, e, start, v, e.CallSymbol)
	if err != nil {
		return nil, err
	}
	if callee == value.Nil {
		return nil, NotCallableError{v}
	}
	if fn, ok := e.asFunction(callee); ok {
		return fn, nil
	}
	return nil, NotCallableError{v}
}

// Call implements the full call path (spec.md §4.3.4): resolve fn to a
// Function, bind args against its Descriptor, build a Frame, and run the
// body. A new Frame is allocated for every call; for a NeedsContext-false
// function, that Frame's DefinitionContext is the caller frame rather than
// the function's own.
func (e *Engine) Call(fn value.Value, self value.Value, args Arguments, caller *Frame) (value.Value, error) {
	f, err := e.resolveCallable(fn)
	if err != nil {
		return value.Nil, err
	}

	locals, it, extras, err := Bind(f.Descriptor, args)
	if err != nil {
		return value.Nil, err
	}

	frame := NewFrame(f, self, it, locals, extras, caller)
	if !f.Descriptor.NeedsContext && caller != nil {
		// Fixed low-arity natives don't need their own closure context;
		// the caller frame stands in as the definition context. The
		// frame itself is still allocated above.
		frame.DefinitionContext = caller
	}
	if caller != nil {
		frame.FiberContext = caller.FiberContext
	}

	return f.Entry(frame, self, it)
}

// Invoke implements object.Invoker: a plain positional call with no
// caller frame, used when the object package calls back in to run a
// getter, setter, or method body.
func (e *Engine) Invoke(fn value.Value, self value.Value, args []value.Value) (value.Value, error) {
	return e.Call(fn, self, Arguments{Positional: args}, nil)
}

// InvokeInFiberContext runs fn the same way Invoke does, but stamps
// fiberCtx onto a synthetic root frame ahead of fn's own — so fn's call
// and every call it makes, however deeply nested, can recover fiberCtx
// through its frame's FiberContext field. Package vm calls this once,
// each time a fiber's body is (re)entered, passing the *fiber.Fiber
// itself as fiberCtx; the synthetic root frame is otherwise inert (no
// Descriptor, no locals) and never reached by upvalue resolution since
// fn's own DefinitionContext was already fixed at closure-creation time.
func (e *Engine) InvokeInFiberContext(fn value.Value, self value.Value, args []value.Value, fiberCtx interface{}) (value.Value, error) {
	root := &Frame{FiberContext: fiberCtx}
	return e.Call(fn, self, Arguments{Positional: args}, root)
}
