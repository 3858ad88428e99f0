package raise_test

import (
	"testing"

	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/raise"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
	"github.com/stretchr/testify/assert"
)

func Test_classify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want raise.Code
	}{
		{"undefined-name", raise.UndefinedNameError{}, raise.CodeUndefinedName},
		{"no-method", object.NoMethodError{}, raise.CodeNoMethod},
		{"not-callable", invoke.NotCallableError{}, raise.CodeNotCallable},
		{"wrong-type", value.WrongTypeError{}, raise.CodeWrongType},
		{"index-out-of-range", collection.IndexOutOfRangeError{}, raise.CodeIndexOutOfRange},
		{"immediate-key", collection.NotImmediateError{}, raise.CodeWrongType},
		{"property-write-only", object.PropertyWriteOnlyError{}, raise.CodePropertyWriteOnly},
		{"property-read-only", object.PropertyReadOnlyError{}, raise.CodePropertyReadOnly},
		{"fiber-finished", raise.FiberFinishedError{}, raise.CodeFiberFinished},
		{"fiber-self-resume", raise.FiberSelfResumeError{}, raise.CodeFiberSelfResume},
		{"compile-error", raise.CompileError{}, raise.CodeCompileError},
		{"not-splattable", invoke.NotSplattableError{}, raise.CodeNotSplattable},
		{"undefined-upvalue", invoke.UpvalueUndefinedError{}, raise.CodeUpvalueUndefined},
		{"unknown-symbol", symbol.UnknownSymbolError{}, raise.CodeUnknownSymbol},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, raise.Classify(c.err))
		})
	}
}

func Test_classifyUnrecognizedErrorIsOther(t *testing.T) {
	assert.Equal(t, raise.CodeOther, raise.Classify(assertError{}))
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
