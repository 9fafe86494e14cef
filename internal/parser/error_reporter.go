package parser

import (
	"fmt"

	"github.com/toyz/decorator/internal/errors"
)

// ErrorReporter builds validation errors for rejected declarations. The
// message of every error is the bare failure reason; hints travel as
// suggestions so callers can show them separately.
type ErrorReporter struct {
	showHints bool
}

// NewErrorReporter creates a reporter that attaches hints
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{showHints: true}
}

// Validation creates a validation error for one of the pipeline reasons
func (r *ErrorReporter) Validation(reason string) error {
	err := errors.NewValidationError(reason)
	if !r.showHints {
		return err
	}

	switch reason {
	case ReasonNoTopLevelClass:
		err = err.WithSuggestions(
			"Declare the decorator as a top-level class in its own file",
		)
	case ReasonNoPackage:
		err = err.WithSuggestions(
			"Add a package declaration, generated classes are placed in decorator.<package>",
		)
	case ReasonNoTypeArguments:
		err = err.WithSuggestions(
			"Give Decorator the class or interface to wrap, e.g. Decorator<Map<K, V>>",
		)
	default:
		err = err.WithSuggestions(
			"Implement Decorator<T> where T is the type to wrap",
			"Example: abstract class MyMap<K, V> implements Decorator<Map<K, V>> { }",
		)
	}
	return err
}

// Unresolved reports a decorated type whose simple name matched no import
func (r *ErrorReporter) Unresolved(simpleName string) error {
	err := errors.NewValidationError(fmt.Sprintf(reasonUnresolvedTypeFmt, simpleName)).
		WithContext("type", simpleName)
	if r.showHints {
		err = err.WithSuggestion(fmt.Sprintf("Add a single-type import for %s, on-demand imports are not searched", simpleName))
	}
	return err
}
