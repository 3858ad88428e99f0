package compiler

import (
	"fmt"
	"sort"

	"github.com/jcorbin/snow/internal/lexer"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/raise"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// funcScope tracks one function literal's (or the top-level program's)
// local variable bindings as the parser walks its body left to right. A
// name is bound the moment it is first assigned or declared as a
// parameter; later references within the same scope resolve to that
// slot, and references from a nested funcScope resolve to an upvalue
// (spec.md §4.3.2). This is a deliberate single-pass simplification: a
// closure cannot observe a local declared later in its enclosing scope's
// source order than the closure literal itself.
type funcScope struct {
	names  map[string]int
	locals []symbol.ID
}

func newFuncScope() *funcScope {
	return &funcScope{names: make(map[string]int)}
}

func (s *funcScope) declare(symtab *symbol.Table, name string) int {
	if idx, ok := s.names[name]; ok {
		return idx
	}
	idx := len(s.locals)
	s.locals = append(s.locals, symtab.Intern(name))
	s.names[name] = idx
	return idx
}

// parser turns a lexer.Lexer's token stream into an AST, resolving
// identifiers against a stack of funcScopes as it goes.
type parser struct {
	symtab *symbol.Table
	lex    *lexer.Lexer
	tok    lexer.Token
	scopes []*funcScope
}

// Compile parses src into a zero-parameter *invoke.Function bound to env
// (the host runtime), per SPEC_FULL §6's Compile entry point.
func Compile(env Env, src string) (*invoke.Function, error) {
	p := &parser{symtab: env.SymbolTable(), lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	top := newFuncScope()
	p.scopes = append(p.scopes, top)
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	p.scopes = p.scopes[:len(p.scopes)-1]

	desc := &invoke.Descriptor{Locals: top.locals, ItIndex: -1, NeedsContext: true}
	entry := func(frame *invoke.Frame, self, it value.Value) (value.Value, error) {
		return body.eval(&evalCtx{env: env, frame: frame})
	}
	return &invoke.Function{Descriptor: desc, Entry: entry}, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) atOp(text string) bool { return p.tok.Kind == lexer.Op && p.tok.Text == text }

func (p *parser) expectOp(text string) error {
	if !p.atOp(text) {
		return raise.CompileError{Message: fmt.Sprintf("expected %q, got %q", text, p.tok.Text), Line: p.tok.Line}
	}
	return p.advance()
}

// parseBlock parses statements (semicolon-separated) until a "}" or EOF.
// The top-level program has no closing delimiter, so it simply runs to
// EOF; every other caller follows up with an explicit expectOp("}").
func (p *parser) parseBlock() (node, error) {
	var stmts []node
	for {
		if p.tok.Kind == lexer.EOF {
			break
		}
		if p.tok.Kind == lexer.Op && p.tok.Text == "}" {
			break
		}
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)
		for p.atOp(";") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return block{stmts: stmts}, nil
}

func (p *parser) parseExpr() (node, error) { return p.parseAssign() }

func (p *parser) parseAssign() (node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	if p.atOp("=") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		// A bare identifier target with no binding anywhere on the scope
		// chain yet is declared here, in the innermost scope, at the point
		// of assignment.
		if id, ok := left.(identRef); ok && id.r.kind == refGlobal {
			if _, shadowed := p.lookupExisting(id.r.name); !shadowed {
				idx := p.scopes[len(p.scopes)-1].declare(p.symtab, id.r.name)
				left = identRef{r: ref{kind: refLocal, idx: idx}}
			}
		}
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return assign{target: left, value: right}, nil
	}
	return left, nil
}

// lookupExisting reports whether name already resolves somewhere in the
// scope chain (local or upvalue), without declaring it.
func (p *parser) lookupExisting(name string) (ref, bool) {
	for level := 0; level < len(p.scopes); level++ {
		sc := p.scopes[len(p.scopes)-1-level]
		if idx, ok := sc.names[name]; ok {
			if level == 0 {
				return ref{kind: refLocal, idx: idx}, true
			}
			return ref{kind: refUpvalue, up: invoke.UpvalueRef{Level: level, Index: idx}}, true
		}
	}
	return ref{}, false
}

func (p *parser) resolve(name string) ref {
	if r, ok := p.lookupExisting(name); ok {
		return r
	}
	return ref{kind: refGlobal, name: name}
}

func (p *parser) parseRelational() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.atOp("<") || p.atOp(">") || p.atOp("==") {
		op := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binOp{op: p.symtab.Intern(op), left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.atOp("+") || p.atOp("-") {
		op := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binOp{op: p.symtab.Intern(op), left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atOp("*") || p.atOp("/") || p.atOp("%") {
		op := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binOp{op: p.symtab.Intern(op), left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.atOp("-") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binOp{op: p.symtab.Intern("-"), left: intLit{0}, right: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixFrom(n)
}

// parseArgs parses a parenthesized, comma-separated call argument list:
// each argument is "name: expr" (named), "*expr" (splat), or "expr"
// (positional). The opening "(" must be the current token.
func (p *parser) parseArgs() ([]argNode, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var args []argNode
	for !p.atOp(")") {
		var a argNode
		if p.atOp("*") {
			a.splat = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else if p.tok.Kind == lexer.Ident {
			name := p.tok.Text
			save := p.tok
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.atOp(":") {
				a.name = p.symtab.Intern(name)
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else {
				// Not a named-argument prefix after all; re-resolve name
				// as the start of an ordinary expression.
				n, err := p.parsePostfixFrom(identNode(p, save.Text))
				if err != nil {
					return nil, err
				}
				n, err = p.continueBinaryFrom(n)
				if err != nil {
					return nil, err
				}
				a.value = n
				args = append(args, a)
				if p.atOp(",") {
					if err := p.advance(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		a.value = v
		args = append(args, a)
		if p.atOp(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func identNode(p *parser, name string) node { return identRef{r: p.resolve(name)} }

// parsePostfixFrom and continueBinaryFrom let parseArgs recover from the
// one token of lookahead it spent distinguishing "name:" from the start
// of an ordinary expression beginning with an identifier.
func (p *parser) parsePostfixFrom(n node) (node, error) {
	for {
		switch {
		case p.atOp("."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind != lexer.Ident {
				return nil, raise.CompileError{Message: "expected member name", Line: p.tok.Line}
			}
			name := p.tok.Text
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.atOp("(") {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				n = methodCall{target: n, name: p.symtab.Intern(name), args: args}
			} else {
				n = memberGet{target: n, name: p.symtab.Intern(name)}
			}
		case p.atOp("["):
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp("]"); err != nil {
				return nil, err
			}
			n = indexGet{target: n, index: idx}
		case p.atOp("("):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			n = call{callee: n, args: args}
		default:
			return n, nil
		}
	}
}

func (p *parser) continueBinaryFrom(left node) (node, error) {
	for p.atOp("*") || p.atOp("/") || p.atOp("%") {
		op := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binOp{op: p.symtab.Intern(op), left: left, right: right}
	}
	for p.atOp("+") || p.atOp("-") {
		op := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binOp{op: p.symtab.Intern(op), left: left, right: right}
	}
	for p.atOp("<") || p.atOp(">") || p.atOp("==") {
		op := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binOp{op: p.symtab.Intern(op), left: left, right: right}
	}
	return left, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.Kind {
	case lexer.Int:
		n := p.tok.Int
		if err := p.advance(); err != nil {
			return nil, err
		}
		return intLit{n}, nil
	case lexer.Ident:
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if name == "it" {
			if _, shadowed := p.lookupExisting("it"); !shadowed {
				return itRef{}, nil
			}
		}
		return identRef{r: p.resolve(name)}, nil
	case lexer.KwTry:
		return p.parseTry()
	case lexer.Op:
		switch p.tok.Text {
		case "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			n, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return n, nil
		case "@":
			return p.parseArrayLit()
		case "|":
			return p.parseFuncLit()
		case "{":
			return p.parseBraceFuncLit(nil)
		}
	}
	return nil, raise.CompileError{Message: fmt.Sprintf("unexpected token %q", p.tok.Text), Line: p.tok.Line}
}

func (p *parser) parseArrayLit() (node, error) {
	if err := p.expectOp("@"); err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var elems []argNode
	for !p.atOp(")") {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, argNode{value: v})
		if p.atOp(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return arrayLit{elems: elems}, nil
}

// parseFuncLit parses "|p1, p2| expr-or-block".
func (p *parser) parseFuncLit() (node, error) {
	if err := p.expectOp("|"); err != nil {
		return nil, err
	}
	var params []string
	for !p.atOp("|") {
		if p.tok.Kind != lexer.Ident {
			return nil, raise.CompileError{Message: "expected parameter name", Line: p.tok.Line}
		}
		params = append(params, p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.atOp(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectOp("|"); err != nil {
		return nil, err
	}
	return p.parseBraceFuncLit(params)
}

// parseBraceFuncLit parses a function body: either a "{ ... }" block, or
// (when there is no opening brace) a single trailing expression, as in
// "|x| x + 1".
func (p *parser) parseBraceFuncLit(params []string) (node, error) {
	sc := newFuncScope()
	sorted := append([]string(nil), params...)
	sort.Slice(sorted, func(i, j int) bool { return p.symtab.Intern(sorted[i]) < p.symtab.Intern(sorted[j]) })
	for _, name := range sorted {
		sc.declare(p.symtab, name)
	}
	p.scopes = append(p.scopes, sc)

	var body node
	var err error
	if p.atOp("{") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("}"); err != nil {
			return nil, err
		}
	} else {
		body, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	p.scopes = p.scopes[:len(p.scopes)-1]

	paramIDs := make([]symbol.ID, len(sorted))
	for i, name := range sorted {
		paramIDs[i] = p.symtab.Intern(name)
	}
	itIndex := -1
	if len(paramIDs) > 0 {
		itIndex = 0
	}
	desc := &invoke.Descriptor{
		Params:       paramIDs,
		ItIndex:      itIndex,
		Locals:       sc.locals,
		NeedsContext: true,
	}
	return funcLit{desc: desc, body: body}, nil
}

func (p *parser) parseTry() (node, error) {
	if err := p.advance(); err != nil { // consume "try"
		return nil, err
	}
	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.KwCatch {
		return nil, raise.CompileError{Message: "expected catch", Line: p.tok.Line}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.Ident {
		return nil, raise.CompileError{Message: "expected catch variable", Line: p.tok.Line}
	}
	catchName := p.tok.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}

	sc := p.scopes[len(p.scopes)-1]
	idx := sc.declare(p.symtab, catchName)
	catchRef := ref{kind: refLocal, idx: idx}

	if err := p.expectOp("{"); err != nil {
		return nil, err
	}
	catchBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return tryCatch{body: body, catchName: catchRef, catchBody: catchBody}, nil
}
