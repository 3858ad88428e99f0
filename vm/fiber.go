package vm

import (
	"context"

	"github.com/jcorbin/snow/fiber"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// NewFiber wraps body (a callable value.Value, typically a closure
// literal) in a fiber.Fiber and returns the heap Object that represents
// it to script code: its native payload is the *fiber.Fiber itself, and
// "resume" is its one installed method (spec.md §4.4).
//
// body is invoked once, on the fiber's first resume, with two positional
// arguments: the value.Value wrapping the fiber that resumed it (spec.md
// §4.4.1's "caller" — nil if resumed from outside any fiber body, per
// fiber.Fiber.Link), and that first Resume's argument; later resumes
// continue the body from its pending yield. The whole call is run
// through InvokeInFiberContext so that any nested native call made from
// deep within body, however many frames down, can recover this fiber's own
// identity via its frame's FiberContext field — see fiberResumeEntry.
func (v *VM) NewFiber(body value.Value) value.Value {
	h, obj := v.Heap.New()
	obj.SetPrototype(v.fiberProto)
	self := value.FromHandle(h)

	fib := v.Scheduler.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) {
		caller := value.Nil
		if link := f.Link(); link != nil {
			caller = link.Self
		}
		return v.Engine.InvokeInFiberContext(body, value.Nil, []value.Value{caller, initial}, f)
	})
	fib.Self = self
	obj.SetNative(fib)
	return self
}

func asFiber(v *VM, self value.Value) (*fiber.Fiber, bool) {
	if self.Kind() != value.KindObject {
		return nil, false
	}
	obj := v.Heap.Resolve(self.Handle())
	if obj == nil {
		return nil, false
	}
	native, ok := obj.Native()
	if !ok {
		return nil, false
	}
	fib, ok := native.(*fiber.Fiber)
	return fib, ok
}

// installFiberMethods wires "resume" onto a dedicated fiber prototype
// (SPEC_FULL §11, snow/runtime/fiber.c; spec.md §4.4's scenario S5).
//
// A fiber's resume method serves two distinct roles depending on who
// calls it, disambiguated entirely by fiber.Fiber.Status(): when the
// receiver is Running, the call can only be happening from inside the
// receiver's own still-executing body (cooperative scheduling admits no
// other possibility, since at most one fiber computes at a time), so it
// means "yield back to whoever is resuming me"; any other status means
// an external caller is resuming a NotStarted or Suspended fiber. Which
// fiber "whoever" actually is comes from frame.FiberContext, not from the
// receiver — see fiberResumeEntry and NewFiber's InvokeInFiberContext call.
func (v *VM) installFiberMethods() {
	root := v.Registry.PrototypeFor(value.KindObject)
	h, obj := v.Heap.New()
	obj.SetPrototype(root)
	v.fiberProto = h

	arg := v.Symbols.Intern("__arg__")
	desc := &invoke.Descriptor{Params: []symbol.ID{arg}, Locals: []symbol.ID{arg}}

	v.defineMethod(h, v.Symbols.Intern("resume"), desc, v.fiberResumeEntry)
}

func (v *VM) fiberResumeEntry(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
	fib, ok := asFiber(v, self)
	if !ok {
		return value.Nil, NotAFiberError{self}
	}
	sent := frame.GetLocal(0)
	if fib.Status() == fiber.Running {
		return fib.Yield(sent), nil
	}
	by, _ := frame.FiberContext.(*fiber.Fiber)
	return fib.Resume(context.Background(), by, sent)
}

// NotAFiberError reports a "resume" call on a non-fiber receiver.
type NotAFiberError struct{ Value value.Value }

func (err NotAFiberError) Error() string { return "resume called on a non-fiber value" }
