package raise

import (
	"errors"

	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
)

// Classify maps any error produced across the runtime to its taxonomy
// Code (spec.md §7), so a catch block (or a diagnostic reporter) can
// switch on a stable string without importing every package that can
// raise.
func Classify(err error) Code {
	switch {
	case errors.As(err, &UndefinedNameError{}):
		return CodeUndefinedName
	case errors.As(err, &object.NoMethodError{}):
		return CodeNoMethod
	case errors.As(err, &invoke.NotCallableError{}):
		return CodeNotCallable
	case errors.As(err, &value.WrongTypeError{}):
		return CodeWrongType
	case errors.As(err, &value.OverflowError{}):
		return CodeWrongType
	case errors.As(err, &collection.IndexOutOfRangeError{}):
		return CodeIndexOutOfRange
	case errors.As(err, &collection.NotImmediateError{}):
		return CodeWrongType
	case errors.As(err, &object.PropertyWriteOnlyError{}):
		return CodePropertyWriteOnly
	case errors.As(err, &object.PropertyReadOnlyError{}):
		return CodePropertyReadOnly
	case errors.As(err, &FiberFinishedError{}):
		return CodeFiberFinished
	case errors.As(err, &FiberSelfResumeError{}):
		return CodeFiberSelfResume
	case errors.As(err, &CompileError{}):
		return CodeCompileError
	case errors.As(err, &invoke.NotSplattableError{}):
		return CodeNotSplattable
	case errors.As(err, &invoke.ExtraNamedArgError{}):
		return CodeExtraNamedArg
	case errors.As(err, &invoke.UpvalueUndefinedError{}):
		return CodeUpvalueUndefined
	case errors.As(err, &symbol.UnknownSymbolError{}):
		return CodeUnknownSymbol
	default:
		return CodeOther
	}
}
