package compiler

import (
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/raise"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// evalCtx carries the state a node needs to evaluate itself: the host
// environment and the call frame of the function literal currently
// executing.
type evalCtx struct {
	env   Env
	frame *invoke.Frame
}

// node is one parsed expression or statement.
type node interface {
	eval(ctx *evalCtx) (value.Value, error)
}

// refKind classifies how an identifier reference was resolved.
type refKind int

const (
	refLocal refKind = iota
	refUpvalue
	refGlobal
)

// ref names where a resolved identifier lives: a slot in the current
// frame's Locals, an invoke.UpvalueRef reachable via DefinitionContext,
// or a fallback global binding (spec.md §4.3.2, §6's "get_module_value").
type ref struct {
	kind refKind
	name string // only used for refGlobal
	idx  int    // refLocal: Locals index
	up   invoke.UpvalueRef
}

func (r ref) get(ctx *evalCtx) (value.Value, error) {
	switch r.kind {
	case refLocal:
		return ctx.frame.GetLocal(r.idx), nil
	case refUpvalue:
		return ctx.frame.GetUpvalue(r.up)
	default:
		return ctx.env.GetGlobal(r.name), nil
	}
}

func (r ref) set(ctx *evalCtx, v value.Value) error {
	switch r.kind {
	case refLocal:
		ctx.frame.SetLocal(r.idx, v)
		return nil
	case refUpvalue:
		return ctx.frame.SetUpvalue(r.up, v)
	default:
		ctx.env.SetGlobal(r.name, v)
		return nil
	}
}

type intLit struct{ n int64 }

func (lit intLit) eval(*evalCtx) (value.Value, error) {
	v, ok := value.FromInt(lit.n)
	if !ok {
		return value.Nil, value.OverflowError{Op: "literal"}
	}
	return v, nil
}

type itRef struct{}

func (itRef) eval(ctx *evalCtx) (value.Value, error) { return ctx.frame.It, nil }

type identRef struct{ r ref }

func (n identRef) eval(ctx *evalCtx) (value.Value, error) { return n.r.get(ctx) }

// assign evaluates value and stores it through target, yielding the
// assigned value (assignment is itself an expression).
type assign struct {
	target node // one of identRef, memberGet, indexGet (read as an lvalue site)
	value  node
}

func (n assign) eval(ctx *evalCtx) (value.Value, error) {
	v, err := n.value.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	switch t := n.target.(type) {
	case identRef:
		if err := t.r.set(ctx, v); err != nil {
			return value.Nil, err
		}
		return v, nil
	case memberGet:
		recv, err := t.target.eval(ctx)
		if err != nil {
			return value.Nil, err
		}
		start := ctx.env.PrototypeRegistry().NearestObject(recv)
		if err := object.SetMember(ctx.env.ObjectHeap(), ctx.env.PrototypeRegistry(), ctx.env.CallEngine(), start, recv, t.name, v); err != nil {
			return value.Nil, err
		}
		return v, nil
	case indexGet:
		recv, err := t.target.eval(ctx)
		if err != nil {
			return value.Nil, err
		}
		idx, err := t.index.eval(ctx)
		if err != nil {
			return value.Nil, err
		}
		setSym := ctx.env.SymbolTable().Intern("set")
		return object.CallMethod(ctx.env.ObjectHeap(), ctx.env.PrototypeRegistry(), ctx.env.CallEngine(), recv, setSym, []value.Value{idx, v})
	default:
		return value.Nil, NotAssignableError{}
	}
}

// NotAssignableError reports an assignment whose left-hand side is not a
// name, member access, or index expression.
type NotAssignableError struct{}

func (NotAssignableError) Error() string { return "invalid assignment target" }

type binOp struct {
	op          symbol.ID
	left, right node
}

func (n binOp) eval(ctx *evalCtx) (value.Value, error) {
	l, err := n.left.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	return object.CallMethod(ctx.env.ObjectHeap(), ctx.env.PrototypeRegistry(), ctx.env.CallEngine(), l, n.op, []value.Value{r})
}

type block struct{ stmts []node }

func (n block) eval(ctx *evalCtx) (value.Value, error) {
	result := value.Nil
	for _, s := range n.stmts {
		v, err := s.eval(ctx)
		if err != nil {
			return value.Nil, err
		}
		result = v
	}
	return result, nil
}

// funcLit builds a callable value.Value at the point it is evaluated,
// capturing the currently-executing frame as its DefinitionContext (the
// root of its upvalue chain, per spec.md §4.3.2).
type funcLit struct {
	desc *invoke.Descriptor
	body node
}

func (n funcLit) eval(ctx *evalCtx) (value.Value, error) {
	body := n.body
	entry := func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		return body.eval(&evalCtx{env: ctx.env, frame: frame})
	}
	h, obj := ctx.env.ObjectHeap().New()
	fn := &invoke.Function{Descriptor: n.desc, Entry: entry, DefinitionContext: ctx.frame}
	obj.SetNative(fn)
	return value.FromHandle(h), nil
}

// argNode is one call-site argument: positional, named ("name: value"),
// or a splat ("*value", expanded by invoke.ExpandSplat at call time).
type argNode struct {
	name  symbol.ID // 0 if positional
	splat bool
	value node
}

func evalArgs(ctx *evalCtx, nodes []argNode) (invoke.Arguments, error) {
	var args invoke.Arguments
	for _, a := range nodes {
		v, err := a.value.eval(ctx)
		if err != nil {
			return args, err
		}
		switch {
		case a.splat:
			if err := invoke.ExpandSplat(ctx.env.ObjectHeap(), &args, v); err != nil {
				return args, err
			}
		case a.name != 0:
			args.Named = append(args.Named, invoke.NamedArg{Name: a.name, Value: v})
		default:
			args.Positional = append(args.Positional, v)
		}
	}
	args.SortNamed()
	return args, nil
}

// call evaluates callee and invokes it with the given arguments,
// threading the current frame through as caller (spec.md §4.3.4).
type call struct {
	callee node
	args   []argNode
}

func (n call) eval(ctx *evalCtx) (value.Value, error) {
	fn, err := n.callee.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	args, err := evalArgs(ctx, n.args)
	if err != nil {
		return value.Nil, err
	}
	return ctx.env.CallEngine().Call(fn, value.Nil, args, ctx.frame)
}

type methodCall struct {
	target node
	name   symbol.ID
	args   []argNode
}

func (n methodCall) eval(ctx *evalCtx) (value.Value, error) {
	recv, err := n.target.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	args, err := evalArgs(ctx, n.args)
	if err != nil {
		return value.Nil, err
	}
	start := ctx.env.PrototypeRegistry().NearestObject(recv)
	fn, err := object.GetMember(ctx.env.ObjectHeap(), ctx.env.PrototypeRegistry(), ctx.env.CallEngine(), start, recv, n.name)
	if err != nil {
		return value.Nil, err
	}
	if fn == value.Nil {
		return value.Nil, object.NoMethodError{Receiver: recv, Name: n.name}
	}
	return ctx.env.CallEngine().Call(fn, recv, args, ctx.frame)
}

type memberGet struct {
	target node
	name   symbol.ID
}

func (n memberGet) eval(ctx *evalCtx) (value.Value, error) {
	recv, err := n.target.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	start := ctx.env.PrototypeRegistry().NearestObject(recv)
	return object.GetMember(ctx.env.ObjectHeap(), ctx.env.PrototypeRegistry(), ctx.env.CallEngine(), start, recv, n.name)
}

type indexGet struct {
	target, index node
}

func (n indexGet) eval(ctx *evalCtx) (value.Value, error) {
	recv, err := n.target.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	idx, err := n.index.eval(ctx)
	if err != nil {
		return value.Nil, err
	}
	getSym := ctx.env.SymbolTable().Intern("get")
	return object.CallMethod(ctx.env.ObjectHeap(), ctx.env.PrototypeRegistry(), ctx.env.CallEngine(), recv, getSym, []value.Value{idx})
}

type arrayLit struct{ elems []argNode }

func (n arrayLit) eval(ctx *evalCtx) (value.Value, error) {
	arr := ctx.env.NewArrayValue()
	args, err := evalArgs(ctx, n.elems)
	if err != nil {
		return value.Nil, err
	}
	pushSym := ctx.env.SymbolTable().Intern("push")
	for _, v := range args.Positional {
		if _, err := object.CallMethod(ctx.env.ObjectHeap(), ctx.env.PrototypeRegistry(), ctx.env.CallEngine(), arr, pushSym, []value.Value{v}); err != nil {
			return value.Nil, err
		}
	}
	return arr, nil
}

// tryCatch compiles "try { body } catch (name) { catchBody }" to
// raise.Try, binding the raised value into catchName's local slot before
// running catchBody (spec.md §9's tagged-result error model).
type tryCatch struct {
	body      node
	catchName ref
	catchBody node
}

func (n tryCatch) eval(ctx *evalCtx) (value.Value, error) {
	return raise.Try(ctx.frame,
		func() (value.Value, error) { return n.body.eval(ctx) },
		func(raised value.Value) (value.Value, error) {
			if err := n.catchName.set(ctx, raised); err != nil {
				return value.Nil, err
			}
			return n.catchBody.eval(ctx)
		},
	)
}
