// Package vm ties every lower layer together into the process/thread-level
// host surface spec.md §6 describes: construction, initialization of the
// built-in type prototypes, and the Eval/Call/Require/global-variable entry
// points a host embedding this runtime calls.
package vm

import (
	"io"

	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/fiber"
	"github.com/jcorbin/snow/internal/flushio"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// VM is one process-wide runtime instance: one symbol table, one object
// heap, one prototype registry, one invocation engine, one fiber
// scheduler, and one global module (spec.md §6).
type VM struct {
	Symbols  *symbol.Table
	Heap     *object.Heap
	Registry *object.Registry
	Engine   *invoke.Engine
	Scheduler *fiber.Scheduler

	globals *collection.Map // symbol (as value.Value) -> value.Value

	callSym    symbol.ID
	arrayProto value.Handle
	fiberProto value.Handle

	in             io.Reader
	out            flushio.WriteFlusher
	logf           func(mess string, args ...interface{})
	memLimit       uint
	fiberStackSize int
	requires       []string

	required map[string]bool // path -> done, guards re-Require (idempotent)
}

// New constructs a VM, applying opts over gothird-style defaults (discard
// output, empty input).
func New(opts ...Option) *VM {
	v := &VM{
		globals:  collection.NewMap(collection.ImmediateKey, collection.InsertionOrdered),
		required: make(map[string]bool),
	}
	Options(defaultOptions, Options(opts...)).apply(v)

	v.Symbols = &symbol.Table{}
	v.Heap = &object.Heap{}
	v.Registry = object.NewRegistry(v.Heap)
	v.callSym = v.Symbols.Intern("__call__")
	v.Engine = invoke.NewEngine(v.Heap, v.Registry, v.callSym)
	v.Scheduler = fiber.NewScheduler()

	return v
}

func (v *VM) tracef(mess string, args ...interface{}) {
	if v.logf != nil {
		v.logf(mess, args...)
	}
}

// Init wires the built-in type prototypes' native methods (arithmetic,
// comparison, array protocol; SPEC_FULL §11) and processes any paths
// registered by WithRequire, in order. It must be called once before Eval
// or Call.
func (v *VM) Init() error {
	v.installObjectMethods()
	v.installNumericMethods()
	v.installArrayMethods()
	v.installFiberMethods()
	v.installBuiltins()

	for _, path := range v.requires {
		if err := v.Require(path); err != nil {
			return err
		}
	}
	return nil
}

// nativeFunction wraps a Go closure as a directly-callable value.Value: an
// object whose native payload is an *invoke.Function with no declared
// parameters beyond what desc specifies (spec.md §6's "arithmetic
// inlining" contract). It backs the native methods installed on the
// built-in prototypes and the builtin global functions.
func (v *VM) nativeFunction(desc *invoke.Descriptor, entry invoke.NativeFunc) value.Value {
	h, obj := v.Heap.New()
	obj.SetNative(&invoke.Function{Descriptor: desc, Entry: entry})
	return value.FromHandle(h)
}

// defineMethod installs fn as an own member (not a property — see
// object.Object.DefineProperty's doc comment) named name on the object at
// proto, so CallMethod finds it unevaluated and invokes it with the real
// call arguments.
func (v *VM) defineMethod(proto value.Handle, name symbol.ID, desc *invoke.Descriptor, entry invoke.NativeFunc) {
	fn := v.nativeFunction(desc, entry)
	_ = object.SetMember(v.Heap, v.Registry, v.Engine, proto, value.FromHandle(proto), name, fn)
}

// The following accessor methods implement internal/compiler's Env
// interface without exposing VM's own exported fields (Symbols, Heap,
// Registry, Engine) under the same names, which package compiler cannot
// import VM to spell directly — it would cycle back through vm, which
// must import compiler to implement Compile/Eval (SPEC_FULL §6).

// SymbolTable returns the VM's symbol table.
func (v *VM) SymbolTable() *symbol.Table { return v.Symbols }

// CallEngine returns the VM's invocation engine.
func (v *VM) CallEngine() *invoke.Engine { return v.Engine }

// ObjectHeap returns the VM's object heap.
func (v *VM) ObjectHeap() *object.Heap { return v.Heap }

// PrototypeRegistry returns the VM's prototype registry.
func (v *VM) PrototypeRegistry() *object.Registry { return v.Registry }

// NewObjectValue allocates a new plain object, prototyped off the root
// object prototype (spec.md §3.2).
func (v *VM) NewObjectValue() value.Value {
	h, obj := v.Heap.New()
	obj.SetPrototype(v.Registry.PrototypeFor(value.KindObject))
	return value.FromHandle(h)
}

// NewArrayValue allocates a new array object (see NewArray).
func (v *VM) NewArrayValue() value.Value { return v.NewArray() }

// NewFiberValue wraps body as a new fiber (see NewFiber).
func (v *VM) NewFiberValue(body value.Value) value.Value { return v.NewFiber(body) }
