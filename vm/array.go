package vm

import (
	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// NewArray allocates a new array object: a heap Object whose native
// payload is a *collection.Array, the representation
// invoke.ExpandSplat's type switch expects (spec.md §3.4, §4.3.3).
func (v *VM) NewArray() value.Value {
	h, obj := v.Heap.New()
	obj.SetPrototype(v.arrayProto)
	obj.SetNative(collection.NewArray())
	return value.FromHandle(h)
}

func asArray(v *VM, self value.Value) (*collection.Array, bool) {
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
	arr, ok := native.(*collection.Array)
	return arr, ok
}

// installArrayMethods wires "push", "pop", "get", "set", "size", "each",
// "reverse" onto a dedicated array prototype (SPEC_FULL §11,
// snow/runtime/array.c), grounded on collection.Array.
func (v *VM) installArrayMethods() {
	root := v.Registry.PrototypeFor(value.KindObject)
	h, obj := v.Heap.New()
	obj.SetPrototype(root)
	v.arrayProto = h

	index := v.Symbols.Intern("__index__")
	elem := v.Symbols.Intern("__elem__")
	oneArg := func() *invoke.Descriptor {
		return &invoke.Descriptor{Params: []symbol.ID{index}, Locals: []symbol.ID{index}}
	}
	twoArg := func() *invoke.Descriptor {
		p := []symbol.ID{index, elem}
		if index > elem {
			p = []symbol.ID{elem, index}
		}
		return &invoke.Descriptor{Params: p, Locals: p}
	}

	v.defineMethod(h, v.Symbols.Intern("push"), oneArg(), func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		arr, _ := asArray(v, self)
		arr.Push(frame.GetLocal(0))
		return self, nil
	})
	v.defineMethod(h, v.Symbols.Intern("pop"), &invoke.Descriptor{}, func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		arr, _ := asArray(v, self)
		return arr.Pop(), nil
	})
	v.defineMethod(h, v.Symbols.Intern("size"), &invoke.Descriptor{}, func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		arr, _ := asArray(v, self)
		n, _ := value.FromInt(int64(arr.Len()))
		return n, nil
	})
	v.defineMethod(h, v.Symbols.Intern("get"), oneArg(), func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		arr, _ := asArray(v, self)
		i, _ := frame.GetLocal(0).Int()
		return arr.Get(int(i)), nil
	})
	v.defineMethod(h, v.Symbols.Intern("set"), twoArg(), func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		arr, _ := asArray(v, self)
		i, _ := frame.GetLocal(0).Int()
		return self, arr.Set(int(i), frame.GetLocal(1))
	})
	v.defineMethod(h, v.Symbols.Intern("reverse"), &invoke.Descriptor{}, func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		arr, _ := asArray(v, self)
		arr.Reverse()
		return self, nil
	})
	v.defineMethod(h, v.Symbols.Intern("each"), oneArg(), func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		arr, _ := asArray(v, self)
		fn := frame.GetLocal(0)
		var callErr error
		arr.Each(func(i int, elemV value.Value) bool {
			_, err := v.Engine.Invoke(fn, value.Nil, []value.Value{elemV})
			if err != nil {
				callErr = err
				return false
			}
			return true
		})
		return self, callErr
	})
}
