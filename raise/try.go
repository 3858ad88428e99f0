package raise

import (
	"errors"

	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/value"
)

// RaisedError carries a script-level raised value up through ordinary Go
// error returns at each call boundary, rather than unwinding via a Go
// panic (spec.md §9 Design Notes: "model as a tagged-result return at each
// call boundary"). It satisfies error so it composes with every other
// taxonomy error and with errors.As/errors.Is.
type RaisedError struct {
	Value value.Value
}

func (err RaisedError) Error() string { return "raised" }

// Raise wraps v as the error a call boundary returns to signal a
// script-level raise (spec.md §4.5). An ordinary Go error returned from
// deeper in the call chain (e.g. a WrongTypeError) is not a RaisedError,
// so Try passes it through instead of catching it.
func Raise(v value.Value) error { return RaisedError{Value: v} }

// Try implements spec.md §4.5's try/catch: it runs body, and if body (or
// anything it calls, transitively) returns a RaisedError, control passes
// to catch with the raised value instead of propagating the error
// further. Any non-RaisedError error (a host-detected taxonomy error, not
// a script-level raise) is returned unchanged — only explicit raises are
// catchable, matching the original runtime's division between "errors"
// and "exceptions" (SPEC_FULL §11).
//
// frame registers a Handler for the duration of body's execution so
// Frame.Handlers reflects the currently active try blocks, per the
// handler-stack supplement in SPEC_FULL §11; "nearest handler" is
// realized for free by Try calls nesting the same way Go calls do — the
// innermost Try's catch is the first to see a RaisedError returned from
// body.
func Try(frame *invoke.Frame, body func() (value.Value, error), catch func(value.Value) (value.Value, error)) (value.Value, error) {
	depth := 0
	if frame != nil {
		depth = len(frame.Locals)
		frame.PushHandler(invoke.Handler{LocalsDepth: depth})
		defer frame.PopHandler()
	}

	result, err := body()
	if err == nil {
		return result, nil
	}

	var raised RaisedError
	if !errors.As(err, &raised) {
		return value.Nil, err
	}

	if frame != nil && len(frame.Locals) > depth {
		frame.Locals = frame.Locals[:depth]
	}
	return catch(raised.Value)
}
