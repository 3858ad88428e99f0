package vm

import (
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/value"
)

// installObjectMethods wires "clone" and "class_name" onto the root object
// prototype (SPEC_FULL §11, include/snow/class.h's snow_class_get_name and
// runtime/object.c's snow_create_object), so every value that is an object —
// not just arrays and fibers, which have their own dedicated prototypes
// below the root — gets them.
func (v *VM) installObjectMethods() {
	root := v.Registry.PrototypeFor(value.KindObject)

	v.defineMethod(root, v.Symbols.Intern("clone"), &invoke.Descriptor{}, func(_ *invoke.Frame, self, _ value.Value) (value.Value, error) {
		if self.Kind() != value.KindObject {
			return value.Nil, NotAnObjectError{self}
		}
		h := object.Clone(v.Heap, self.Handle())
		return value.FromHandle(h), nil
	})

	v.defineMethod(root, v.Symbols.Intern("class_name"), &invoke.Descriptor{}, func(_ *invoke.Frame, self, _ value.Value) (value.Value, error) {
		if self.Kind() != value.KindObject {
			return value.Nil, NotAnObjectError{self}
		}
		name, ok := object.ClassName(v.Heap, self.Handle())
		if !ok {
			return value.Nil, nil
		}
		return value.FromSymbol(uint64(name)), nil
	})
}

// NotAnObjectError reports "clone" or "class_name" called on a receiver
// that isn't an object value.
type NotAnObjectError struct{ Value value.Value }

func (err NotAnObjectError) Error() string { return "called on a non-object value" }
