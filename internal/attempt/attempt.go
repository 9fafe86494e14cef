// Package attempt provides a tri-state outcome type used to thread a single
// failure reason through multi-step pipelines without panics.
//
// An Attempt holds exactly one of:
//
//   - a present value (success)
//   - nothing (empty)
//   - a failure reason
//
// Empty means "nothing to report" and is distinct from a failure. FailOnEmpty
// turns absence at a given step into a named, user-facing failure.
package attempt

import (
	"errors"
	"fmt"
	"reflect"
)

type state uint8

const (
	stateEmpty state = iota
	stateSuccess
	stateFailure
)

// Attempt is an immutable tri-state outcome. The zero value is Empty.
type Attempt[T any] struct {
	value T
	err   error
	state state
}

// Of creates a successful attempt. An absent value (nil pointer, map, slice,
// func, chan or interface) collapses to Empty.
func Of[T any](value T) Attempt[T] {
	if isAbsent(value) {
		return Empty[T]()
	}
	return Attempt[T]{value: value, state: stateSuccess}
}

// OfNullable is an alias of Of kept for symmetry with OfOptional.
func OfNullable[T any](value T) Attempt[T] {
	return Of(value)
}

// OfOptional converts a comma-ok pair into an attempt.
func OfOptional[T any](value T, ok bool) Attempt[T] {
	if !ok {
		return Empty[T]()
	}
	return Of(value)
}

// Empty returns an attempt holding nothing.
func Empty[T any]() Attempt[T] {
	return Attempt[T]{}
}

// Failed returns a failed attempt with the given reason.
func Failed[T any](reason string) Attempt[T] {
	return Attempt[T]{err: errors.New(reason), state: stateFailure}
}

// FailedWith returns a failed attempt carrying err. The reason is err.Error().
// A nil err yields Empty.
func FailedWith[T any](err error) Attempt[T] {
	if err == nil {
		return Empty[T]()
	}
	return Attempt[T]{err: err, state: stateFailure}
}

// Get returns the value and whether it is present.
func (a Attempt[T]) Get() (T, bool) {
	return a.value, a.state == stateSuccess
}

// IsPresent reports whether the attempt succeeded.
func (a Attempt[T]) IsPresent() bool {
	return a.state == stateSuccess
}

// IsEmpty reports whether the attempt holds nothing and did not fail.
func (a Attempt[T]) IsEmpty() bool {
	return a.state == stateEmpty
}

// HasFailed reports whether the attempt failed.
func (a Attempt[T]) HasFailed() bool {
	return a.state == stateFailure
}

// Reason returns the failure reason, or "" when the attempt did not fail.
func (a Attempt[T]) Reason() string {
	if a.state != stateFailure {
		return ""
	}
	return a.err.Error()
}

// Err returns the failure as an error, or nil when the attempt did not fail.
func (a Attempt[T]) Err() error {
	if a.state != stateFailure {
		return nil
	}
	return a.err
}

// Filter keeps a present value only if predicate holds; otherwise the result
// is Empty. Failures and empties pass through.
func (a Attempt[T]) Filter(predicate func(T) bool) Attempt[T] {
	if a.state != stateSuccess {
		return a
	}
	if predicate(a.value) {
		return a
	}
	return Empty[T]()
}

// FailOnEmpty converts Empty into a failure with the given reason.
func (a Attempt[T]) FailOnEmpty(reason string) Attempt[T] {
	if a.state == stateEmpty {
		return Failed[T](reason)
	}
	return a
}

// FailOnEmptyWith converts Empty into a failure carrying err.
func (a Attempt[T]) FailOnEmptyWith(err error) Attempt[T] {
	if a.state == stateEmpty {
		return FailedWith[T](err)
	}
	return a
}

// RunIfPresent calls consumer with the value when present and returns the
// attempt unchanged, so it can sit in the middle of a chain.
func (a Attempt[T]) RunIfPresent(consumer func(T)) Attempt[T] {
	if a.state == stateSuccess {
		consumer(a.value)
	}
	return a
}

// IfPresent calls consumer with the value when present.
func (a Attempt[T]) IfPresent(consumer func(T)) {
	if a.state == stateSuccess {
		consumer(a.value)
	}
}

// IfFailed calls handler with the failure reason when the attempt failed.
func (a Attempt[T]) IfFailed(handler func(reason string)) {
	if a.state == stateFailure {
		handler(a.err.Error())
	}
}

// OrElse returns the value, or other when empty or failed.
func (a Attempt[T]) OrElse(other T) T {
	if a.state == stateSuccess {
		return a.value
	}
	return other
}

// OrElseGet returns the value, or the result of supplier when empty or failed.
func (a Attempt[T]) OrElseGet(supplier func() T) T {
	if a.state == stateSuccess {
		return a.value
	}
	return supplier()
}

// String implements fmt.Stringer.
func (a Attempt[T]) String() string {
	switch a.state {
	case stateFailure:
		return fmt.Sprintf("Attempt[failed: '%s']", a.err.Error())
	case stateSuccess:
		return fmt.Sprintf("Attempt[%v]", a.value)
	default:
		return "Attempt.empty"
	}
}

// Map applies f to a present value. An absent result becomes Empty.
func Map[T, U any](a Attempt[T], f func(T) U) Attempt[U] {
	switch a.state {
	case stateFailure:
		return FailedWith[U](a.err)
	case stateEmpty:
		return Empty[U]()
	}
	return Of(f(a.value))
}

// FlatMap applies f to a present value and returns its attempt as is,
// including any failure it reports.
func FlatMap[T, U any](a Attempt[T], f func(T) Attempt[U]) Attempt[U] {
	switch a.state {
	case stateFailure:
		return FailedWith[U](a.err)
	case stateEmpty:
		return Empty[U]()
	}
	return f(a.value)
}

// FlatMapOptional applies a comma-ok function to a present value; a false
// result becomes Empty.
func FlatMapOptional[T, U any](a Attempt[T], f func(T) (U, bool)) Attempt[U] {
	switch a.state {
	case stateFailure:
		return FailedWith[U](a.err)
	case stateEmpty:
		return Empty[U]()
	}
	return OfOptional(f(a.value))
}

// Join turns a list of attempts into an attempt of the list of present
// values, in input order.
//
// The first failure in the list becomes the result. Empty entries are skipped.
// If every entry is empty the result is a success holding an empty slice.
//
//	[Of(1), Of(2), Of(3)]                    -> Of([1 2 3])
//	[Of(1), Failed(e1), Failed(e2), Of(4)]   -> Failed(e1)
//	[Of(1), Empty, Of(3)]                    -> Of([1 3])
//	[Empty, Empty]                           -> Of([])
func Join[T any](attempts []Attempt[T]) Attempt[[]T] {
	values := make([]T, 0, len(attempts))
	for _, a := range attempts {
		switch a.state {
		case stateFailure:
			return FailedWith[[]T](a.err)
		case stateSuccess:
			values = append(values, a.value)
		}
	}
	return Attempt[[]T]{value: values, state: stateSuccess}
}

func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
