// Package raise implements the error channel (spec.md §7, §4.5): the
// typed error taxonomy not already owned by a lower-level package, and the
// non-local try/catch transfer built on top of every call boundary
// returning a plain Go error rather than unwinding via a Go panic.
package raise

import (
	"fmt"

	"github.com/jcorbin/snow/symbol"
)

// UndefinedNameError reports a reference to a name with no binding in
// scope: neither a local, an upvalue, nor a global (spec.md §7).
type UndefinedNameError struct{ Name symbol.ID }

func (err UndefinedNameError) Error() string { return fmt.Sprintf("undefined-name: %v", uint64(err.Name)) }

// CompileError reports a source-level problem found before any code runs
// (spec.md §7), e.g. a syntax error from the minimal front end.
type CompileError struct {
	Message string
	Line    int
}

func (err CompileError) Error() string {
	return fmt.Sprintf("compile-error: %s (line %d)", err.Message, err.Line)
}

// FiberFinishedError reports Resume called on a fiber that has already run
// to completion (spec.md §4.4, §7).
type FiberFinishedError struct{}

func (err FiberFinishedError) Error() string { return "fiber-finished" }

// FiberSelfResumeError reports a fiber attempting to resume itself, directly
// or through a resume cycle (spec.md §4.4, §7).
type FiberSelfResumeError struct{}

func (err FiberSelfResumeError) Error() string { return "fiber-self-resume" }

// Code identifies which taxonomy member an error belongs to, for
// diagnostics and for exposing an error's category to script code without
// requiring every catch site to import every producing package.
type Code string

const (
	CodeUndefinedName      Code = "undefined-name"
	CodeNoMethod           Code = "no-method"
	CodeNotCallable        Code = "not-callable"
	CodeWrongType          Code = "wrong-type"
	CodeIndexOutOfRange    Code = "index-out-of-range"
	CodePropertyWriteOnly  Code = "property-write-only"
	CodePropertyReadOnly   Code = "property-read-only"
	CodeFiberFinished      Code = "fiber-finished"
	CodeFiberSelfResume    Code = "fiber-self-resume"
	CodeCompileError       Code = "compile-error"
	CodeNotSplattable      Code = "not-splattable"
	CodeExtraNamedArg      Code = "extra-named-argument"
	CodeUpvalueUndefined   Code = "undefined-upvalue"
	CodeUnknownSymbol      Code = "unknown-symbol"
	CodeOther              Code = "error"
)
