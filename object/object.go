package object

import (
	"sort"
	"sync"

	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// property is a (name, getter, setter) triple as described by spec.md
// §3.3. Either getter or setter may be value.Undefined, meaning "write-only"
// or "read-only" respectively.
type property struct {
	name   symbol.ID
	getter value.Value
	setter value.Value
}

// Object is a heap-allocated, prototype-chained object (spec.md §3.3).
// Fields are guarded by mu per spec.md §5's mutator/reader-writer-lock
// discipline: readers take a read lock and release it before any call
// that might allocate (notably invoking a getter/setter), writers take a
// write lock only for the instant needed to mutate a field.
type Object struct {
	mu sync.RWMutex

	hasProto bool
	proto    value.Handle

	members *collection.Map // lazily allocated; symbol packed as value.Value -> value.Value

	properties []property // kept sorted by name

	modules []value.Handle // included modules, in inclusion order

	name      symbol.ID
	hasName   bool
	finalizer func(*Object)

	native interface{}
}

// SetNative attaches a host-native Go value to obj, e.g. a *collection.Array
// or *collection.Map backing an array/map object, or a *fiber.Fiber backing
// a Fiber object. This is how the core's intrinsic collections and fibers
// ride inside the uniform Object/Handle model without every package
// needing its own parallel handle space.
func (obj *Object) SetNative(v interface{}) {
	obj.mu.Lock()
	defer obj.mu.Unlock()
	obj.native = v
}

// Native returns obj's attached host-native value, if any.
func (obj *Object) Native() (interface{}, bool) {
	obj.mu.RLock()
	defer obj.mu.RUnlock()
	return obj.native, obj.native != nil
}

// SetPrototype sets obj's prototype link. Used by clone/class-construction
// helpers (spec.md §3.3 lifecycle: "initialized with a prototype").
func (obj *Object) SetPrototype(proto value.Handle) {
	obj.mu.Lock()
	defer obj.mu.Unlock()
	obj.proto = proto
	obj.hasProto = true
}

// Prototype returns obj's prototype handle and whether one is set.
func (obj *Object) Prototype() (value.Handle, bool) {
	obj.mu.RLock()
	defer obj.mu.RUnlock()
	return obj.proto, obj.hasProto
}

// SetName sets obj's diagnostic name (spec.md §3.3: "optional symbol used
// for diagnostics (set by class-construction helpers)").
func (obj *Object) SetName(name symbol.ID) {
	obj.mu.Lock()
	defer obj.mu.Unlock()
	obj.name = name
	obj.hasName = true
}

// Name returns obj's diagnostic name, if any.
func (obj *Object) Name() (symbol.ID, bool) {
	obj.mu.RLock()
	defer obj.mu.RUnlock()
	return obj.name, obj.hasName
}

// SetFinalizer installs a function the Heap will invoke on Destroy
// (spec.md §3.3 lifecycle).
func (obj *Object) SetFinalizer(fn func(*Object)) {
	obj.mu.Lock()
	defer obj.mu.Unlock()
	obj.finalizer = fn
}

// ownMember reads obj's own members map for name, without walking the
// prototype chain or consulting properties. Returns ok=false if absent or
// the map isn't yet allocated.
func (obj *Object) ownMember(name symbol.ID) (v value.Value, ok bool) {
	obj.mu.RLock()
	members := obj.members
	obj.mu.RUnlock()
	if members == nil {
		return value.Undefined, false
	}
	key := value.FromSymbol(uint64(name))
	if !members.Has(key) {
		return value.Undefined, false
	}
	return members.Get(key), true
}

// setOwnMember stores name -> v in obj's own members map, lazily
// allocating the map. Grounded on spec.md §5's documented discipline:
// "read under lock to check; drop lock; allocate; re-acquire write lock;
// install only if still null" — no allocation happens while mu is held.
func (obj *Object) setOwnMember(name symbol.ID, v value.Value) {
	obj.mu.RLock()
	members := obj.members
	obj.mu.RUnlock()

	if members == nil {
		candidate := collection.NewMap(collection.ArbitraryKey, collection.InsertionOrdered)
		obj.mu.Lock()
		if obj.members == nil {
			obj.members = candidate
		}
		members = obj.members
		obj.mu.Unlock()
	}

	_ = members.Set(value.FromSymbol(uint64(name)), v)
}

// findProperty returns the index of name in obj.properties via binary
// search (properties is kept sorted by name, spec.md §3.3 invariant),
// grounded on gothird's memcore.go/internal/mem findPage binary search
// adapted from page bases to symbol ids.
func (obj *Object) findProperty(name symbol.ID) (int, bool) {
	props := obj.properties
	i := sort.Search(len(props), func(i int) bool { return props[i].name >= name })
	if i < len(props) && props[i].name == name {
		return i, true
	}
	return i, false
}

// DefineProperty inserts or replaces the (getter, setter) pair registered
// under name (spec.md §4.2.3). Either may be value.Undefined. Use this for
// computed accessors only: GetMember invokes the getter itself (with no
// arguments) to produce the member's value. A plain callable method
// belongs in the own-members map instead (via SetMember, when no property
// of that name exists), so that GetMember returns the function value
// unevaluated and CallMethod can invoke it with the real call arguments.
func (obj *Object) DefineProperty(name symbol.ID, getter, setter value.Value) {
	obj.mu.Lock()
	defer obj.mu.Unlock()
	i, found := obj.findProperty(name)
	if found {
		obj.properties[i].getter = getter
		obj.properties[i].setter = setter
		return
	}
	obj.properties = append(obj.properties, property{})
	copy(obj.properties[i+1:], obj.properties[i:])
	obj.properties[i] = property{name: name, getter: getter, setter: setter}
}

func (obj *Object) property(name symbol.ID) (property, bool) {
	obj.mu.RLock()
	defer obj.mu.RUnlock()
	i, found := obj.findProperty(name)
	if !found {
		return property{}, false
	}
	return obj.properties[i], true
}

// IncludeModule appends module to obj's included-modules list if it is not
// already present, returning true if it was added (spec.md §4.2.3,
// Testable Property #10: a module included twice is a no-op the second
// time).
func (obj *Object) IncludeModule(module value.Handle) bool {
	obj.mu.Lock()
	defer obj.mu.Unlock()
	for _, m := range obj.modules {
		if m == module {
			return false
		}
	}
	obj.modules = append(obj.modules, module)
	return true
}

// IncludedModules returns obj's included modules in inclusion order.
func (obj *Object) IncludedModules() []value.Handle {
	obj.mu.RLock()
	defer obj.mu.RUnlock()
	out := make([]value.Handle, len(obj.modules))
	copy(out, obj.modules)
	return out
}

// Clone returns a new Object whose only prototype is obj, with empty own
// members/properties/modules (SPEC_FULL §11, grounded on
// snow/runtime/object.c's snow_create_object(prototype): a fresh object
// carrying no state of its own beyond the prototype link it was given).
func Clone(heap *Heap, obj value.Handle) value.Handle {
	h, _ := heap.New()
	clone := heap.Resolve(h)
	clone.SetPrototype(obj)
	return h
}

// ClassName returns the diagnostic name of the nearest prototype-chain
// ancestor of h (h itself included) that has one set via SetName, mirroring
// snow_class_get_name (include/snow/class.h): in a class-based object model
// an instance's class name is a property of its class, found by one
// indirection from the instance; here, where prototypes double as classes,
// the analogous walk is up the prototype chain to the first named link.
func ClassName(heap *Heap, h value.Handle) (symbol.ID, bool) {
	for {
		obj := heap.Resolve(h)
		if obj == nil {
			return 0, false
		}
		if name, ok := obj.Name(); ok {
			return name, true
		}
		proto, ok := obj.Prototype()
		if !ok {
			return 0, false
		}
		h = proto
	}
}
