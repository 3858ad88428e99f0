package object

import (
	"fmt"

	"github.com/jcorbin/snow/symbol"
)

// PropertyWriteOnlyError reports that a property was read but has no
// getter (spec.md §7).
type PropertyWriteOnlyError struct{ Name symbol.ID }

func (err PropertyWriteOnlyError) Error() string { return "property-write-only" }

// PropertyReadOnlyError reports that a property was written but has no
// setter (spec.md §7).
type PropertyReadOnlyError struct{ Name symbol.ID }

func (err PropertyReadOnlyError) Error() string { return "property-read-only" }

// NoMethodError reports that CallMethod's member lookup returned nil
// (spec.md §4.2.4, §7 no-method).
type NoMethodError struct {
	Receiver interface{}
	Name     symbol.ID
}

func (err NoMethodError) Error() string { return fmt.Sprintf("no-method: %v", err.Name) }
