package object

import (
	"sync"

	"github.com/jcorbin/snow/value"
)

// Heap owns the process's live Objects and hands out stable Handles for
// them. Per spec.md §9 Design Notes ("heap objects addressed by
// collector-managed handles; prototype and members fields are handles,
// never owning pointers"), an Object never stores a Go pointer to another
// Object directly — only a value.Handle, resolved back to a *Object
// through a Heap. This sidesteps unsafe pointer tagging entirely (the
// spec's C ancestor packs a raw aligned pointer into the tag word; Go
// instead indexes a slice), while still satisfying the same contract: a
// Handle is opaque, stable for the object's lifetime, and safe to store in
// cyclic prototype/module graphs.
//
// The tracing/marking collector itself is out of scope (spec.md §1); Heap
// is a grow-only table, and Destroy is a manual, host-invoked release
// rather than an automatic unreachability sweep — it exists so the
// lifecycle's finalizer contract (spec.md §3.3) is exercisable.
type Heap struct {
	mu      sync.Mutex
	objects []*Object
}

// New allocates a fresh Object with no prototype and no members, and
// returns its Handle alongside a pointer to it for immediate use.
func (h *Heap) New() (value.Handle, *Object) {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj := &Object{}
	if len(h.objects) == 0 {
		// Slot 0 stays empty: handle 0 would read as value.Undefined.
		h.objects = append(h.objects, nil)
	}
	idx := uint64(len(h.objects))
	h.objects = append(h.objects, obj)
	// Shift left 4 so the low nibble (the tag) reads as tagObject (0000),
	// matching value.Value's encoding.
	handle := value.Handle(idx << 4)
	return handle, obj
}

// Resolve returns the Object a Handle refers to, or nil if the handle is
// out of range (a programmer error at the host boundary, not a script
// error).
func (h *Heap) Resolve(handle value.Handle) *Object {
	idx := uint64(handle) >> 4
	h.mu.Lock()
	defer h.mu.Unlock()
	if idx >= uint64(len(h.objects)) {
		return nil
	}
	return h.objects[idx]
}

// Destroy runs obj's finalizer, if any, and drops the heap's reference to
// it. Scripts never call this directly; it models the collector's
// mutator-visible finalization contract (spec.md §3.3) for hosts that want
// deterministic cleanup in tests, since this package does not implement
// tracing GC.
func (h *Heap) Destroy(handle value.Handle) {
	obj := h.Resolve(handle)
	if obj == nil {
		return
	}
	obj.mu.Lock()
	fin := obj.finalizer
	obj.mu.Unlock()
	if fin != nil {
		fin(obj)
	}
	h.mu.Lock()
	h.objects[uint64(handle)>>4] = nil
	h.mu.Unlock()
}
