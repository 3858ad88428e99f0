// Package fiber implements the cooperative fiber scheduler (spec.md §4.4):
// fiber states, create/resume/yield, and the "exactly one fiber computes
// at a time" contract.
package fiber

import (
	"context"
	"sync"

	"github.com/jcorbin/snow/internal/panicerr"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/raise"
	"github.com/jcorbin/snow/value"
)

// State is one of a fiber's lifecycle states (spec.md §4.4.1).
type State int

const (
	NotStarted State = iota
	Suspended
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Body is a fiber's entry point. It runs in its own goroutine once
// started, and may call f.Yield any number of times before returning its
// final result.
type Body func(f *Fiber, initial value.Value) (value.Value, error)

type yieldResult struct {
	value value.Value
	err   error
	done  bool
}

// Fiber is one cooperatively-scheduled, single-threaded-by-contract
// execution context (spec.md §4.4.1). Fibers are never run truly
// concurrently with one another: Resume blocks the caller until the
// target fiber yields or finishes, and Scheduler's baton ensures at most
// one fiber's body goroutine is ever actively executing script code.
type Fiber struct {
	scheduler *Scheduler
	body      Body

	mu      sync.Mutex
	state   State
	started bool

	resumeCh chan value.Value
	yieldCh  chan yieldResult

	// link is the fiber that most recently resumed this one (nil if it
	// was resumed from outside any fiber body). It is the real identity
	// spec.md §4.4's "caller" scenarios need — e.g. so a fiber can yield
	// specifically back to its actual resumer rather than an arbitrary
	// other fiber — updated on every Resume, not just the first.
	link *Fiber

	// Self is the host-level value representing this fiber to script
	// code. It is opaque bookkeeping from this package's point of view
	// (fiber does not otherwise know how its values are represented);
	// package vm sets it once, right after constructing the Fiber, so
	// that a Body can turn another *Fiber (e.g. the one Link returns)
	// back into a value its own script code can call methods on.
	Self value.Value

	// Frame is the fiber's currently active top call frame. It exists
	// purely as the anchor a tracing collector would walk from to find
	// this fiber's GC roots (spec.md §4.4.3); this runtime has no tracing
	// collector (spec.md §5 scopes that out), so Frame is bookkeeping
	// only — nothing here reads it to make a collection decision.
	Frame *invoke.Frame
}

// New allocates a not-yet-started fiber on s, running body once first
// resumed.
func (s *Scheduler) New(body Body) *Fiber {
	return &Fiber{scheduler: s, body: body}
}

// Status returns the fiber's current lifecycle state.
func (f *Fiber) Status() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Link returns the fiber that most recently resumed f, or nil if f was
// resumed from outside any fiber body (spec.md §4.4.1's "caller").
func (f *Fiber) Link() *Fiber {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.link
}

// Resume implements spec.md §4.4.2: starts f if it has not yet run, or
// sends arg as the result of f's pending Yield call otherwise, and blocks
// until f yields again or returns. by identifies the fiber making this
// call — nil if it originates outside any fiber body — and is recorded as
// f.link for the duration of this resumption. Resuming a Finished fiber
// fails with raise.FiberFinishedError; resuming a fiber that is already
// Running (itself, or reached through a cycle of fibers resuming each
// other) fails with raise.FiberSelfResumeError, without ever touching the
// baton.
//
// When by is non-nil, this call is necessarily happening synchronously
// from within by's own body — by's own call into Resume (or the original
// top-level Resume that started the chain) already holds the baton for
// the whole chain's duration, so this nested call skips acquiring it
// again; only a fresh, outside-any-fiber resumption (by == nil) actually
// contends for the baton, which is exactly the case the baton exists to
// serialize against other, unrelated top-level resumptions.
func (f *Fiber) Resume(ctx context.Context, by *Fiber, arg value.Value) (value.Value, error) {
	f.mu.Lock()
	switch f.state {
	case Finished:
		f.mu.Unlock()
		return value.Nil, raise.FiberFinishedError{}
	case Running:
		f.mu.Unlock()
		return value.Nil, raise.FiberSelfResumeError{}
	}
	f.mu.Unlock()

	if by == nil {
		if err := f.scheduler.baton.Acquire(ctx, 1); err != nil {
			return value.Nil, err
		}
		defer f.scheduler.baton.Release(1)
	}

	f.mu.Lock()
	f.state = Running
	f.link = by
	notStarted := !f.started
	f.started = true
	f.mu.Unlock()

	if notStarted {
		f.resumeCh = make(chan value.Value)
		f.yieldCh = make(chan yieldResult, 1)
		go f.run(arg)
	} else {
		f.resumeCh <- arg
	}

	res := <-f.yieldCh

	f.mu.Lock()
	if res.done {
		f.state = Finished
	} else {
		f.state = Suspended
	}
	f.mu.Unlock()

	return res.value, res.err
}

// run executes f's body to completion in its own goroutine, isolating any
// host-level panic or runtime.Goexit the way every other long-running
// worker in this runtime does (internal/panicerr, SPEC_FULL §9).
func (f *Fiber) run(initial value.Value) {
	var v value.Value
	err := panicerr.Recover("fiber", func() error {
		var bodyErr error
		v, bodyErr = f.body(f, initial)
		return bodyErr
	})
	f.yieldCh <- yieldResult{value: v, err: err, done: true}
}

// Yield suspends f, handing v back to whichever goroutine called Resume,
// and blocks until the next Resume call supplies this call's return value
// (spec.md §4.4.1: "suspended — can be resumed later").  Yield must only
// ever be called from f's own body goroutine.
func (f *Fiber) Yield(v value.Value) value.Value {
	f.yieldCh <- yieldResult{value: v, done: false}
	return <-f.resumeCh
}
