package object

import (
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// Invoker calls a function value as a getter or setter. Package object
// depends only on value/symbol/collection; invoking a property accessor
// means calling back up into the invocation engine (package invoke), so
// that capability is injected rather than imported, avoiding an import
// cycle (invoke already depends on object for member lookup).
type Invoker interface {
	Invoke(fn value.Value, self value.Value, args []value.Value) (value.Value, error)
}

// GetMember implements spec.md §4.2.1's member lookup algorithm: walk the
// prototype chain starting at start, preferring (in order at each node)
// own members, then properties (invoking a getter if present, failing
// with PropertyWriteOnlyError if the property has none), then each
// included module in order. receiver is threaded through unchanged so
// that a getter discovered via the prototype chain still sees the
// original receiver as self (spec.md's stated rationale). Returns
// value.Nil if no match is found anywhere in the chain — including when a
// matched module lookup itself returned Nil, per spec.md's literal
// "first non-nil wins" wording for module search (a module-provided
// member whose value is itself Nil is therefore indistinguishable from
// "absent"; this mirrors the source specification, not an implementation
// gap).
func GetMember(heap *Heap, reg *Registry, inv Invoker, start value.Handle, receiver value.Value, name symbol.ID) (value.Value, error) {
	node := start
	for {
		obj := heap.Resolve(node)
		if obj == nil {
			return value.Nil, nil
		}

		if v, ok := obj.ownMember(name); ok {
			return v, nil
		}

		if prop, ok := obj.property(name); ok {
			if prop.getter.IsUndefined() {
				return value.Nil, PropertyWriteOnlyError{name}
			}
			return inv.Invoke(prop.getter, receiver, nil)
		}

		for _, mod := range obj.IncludedModules() {
			v, err := GetMember(heap, reg, inv, mod, receiver, name)
			if err != nil {
				return value.Nil, err
			}
			if v != value.Nil {
				return v, nil
			}
		}

		if reg.IsObjectRoot(node) {
			return value.Nil, nil
		}
		if proto, ok := obj.Prototype(); ok {
			node = proto
		} else {
			node = reg.ObjectRoot()
		}
	}
}

// SetMember implements spec.md §4.2.2's member assignment algorithm: walk
// the prototype chain searching only properties for name; if a setter is
// found, invoke it with receiver as self and value as the sole argument,
// failing with PropertyReadOnlyError if the matched property has none.
// Otherwise, once the whole chain has been searched without a property
// match, store name -> v directly in object's own members map.
func SetMember(heap *Heap, reg *Registry, inv Invoker, object value.Handle, receiver value.Value, name symbol.ID, v value.Value) error {
	node := object
	for {
		obj := heap.Resolve(node)
		if obj == nil {
			break
		}

		if prop, ok := obj.property(name); ok {
			if prop.setter.IsUndefined() {
				return PropertyReadOnlyError{name}
			}
			_, err := inv.Invoke(prop.setter, receiver, []value.Value{v})
			return err
		}

		if reg.IsObjectRoot(node) {
			break
		}
		if proto, ok := obj.Prototype(); ok {
			node = proto
		} else {
			node = reg.ObjectRoot()
		}
	}

	root := heap.Resolve(object)
	if root != nil {
		root.setOwnMember(name, v)
	}
	return nil
}

// CallMethod implements spec.md §4.2.4: look up name on receiver (with
// receiver itself as both the search start and the receiver threaded
// through getters) and, if found, invoke it with self=receiver.
func CallMethod(heap *Heap, reg *Registry, inv Invoker, receiver value.Value, name symbol.ID, args []value.Value) (value.Value, error) {
	start := reg.NearestObject(receiver)
	m, err := GetMember(heap, reg, inv, start, receiver, name)
	if err != nil {
		return value.Nil, err
	}
	if m == value.Nil {
		return value.Nil, NoMethodError{receiver, name}
	}
	return inv.Invoke(m, receiver, args)
}
