package object

import (
	"sync"

	"github.com/jcorbin/snow/value"
)

// Registry is the process-wide map from primitive kind to its
// lazily-constructed prototype object (spec.md §4.2.5). "ObjectProto" is
// the root of the chain: every other kind's prototype, and every plain
// object with no prototype of its own, ultimately bottoms out there.
type Registry struct {
	mu         sync.Mutex
	heap       *Heap
	objectRoot value.Handle
	hasRoot    bool
	byKind     map[value.Kind]value.Handle
}

// NewRegistry creates a Registry backed by heap. The root Object prototype
// is allocated lazily, on first use.
func NewRegistry(heap *Heap) *Registry {
	return &Registry{heap: heap, byKind: make(map[value.Kind]value.Handle)}
}

// ObjectRoot returns the global Object prototype, allocating it on first
// call.
func (r *Registry) ObjectRoot() value.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasRoot {
		r.objectRoot, _ = r.heap.New()
		r.hasRoot = true
	}
	return r.objectRoot
}

// PrototypeFor returns the lazily-constructed prototype object for kind,
// allocating it (with its own prototype set to ObjectRoot) on first call.
// KindObject has no kind-specific prototype; callers dispatch on the
// object itself for that kind (see NearestObject).
func (r *Registry) PrototypeFor(kind value.Kind) value.Handle {
	if kind == value.KindObject {
		return r.ObjectRoot()
	}

	r.mu.Lock()
	if h, ok := r.byKind[kind]; ok {
		r.mu.Unlock()
		return h
	}
	r.mu.Unlock()

	root := r.ObjectRoot()
	h, obj := r.heap.New()
	obj.SetPrototype(root)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byKind[kind]; ok {
		return existing
	}
	r.byKind[kind] = h
	return h
}

// IsObjectRoot reports whether handle is the registry's root Object
// prototype, the chain-termination sentinel for GetMember/SetMember
// (spec.md §4.2.1 step 3).
func (r *Registry) IsObjectRoot(handle value.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasRoot && handle == r.objectRoot
}

// NearestObject returns the starting node for member dispatch on v
// (spec.md §4.2.5): v itself if v is an object reference, or the
// appropriate kind prototype for an immediate value. This is the one
// place receiver dispatch branches on tag; no heap allocation happens on
// this path beyond the registry's own lazy prototype construction.
func (r *Registry) NearestObject(v value.Value) value.Handle {
	if v.Kind() == value.KindObject {
		return v.Handle()
	}
	return r.PrototypeFor(v.Kind())
}
