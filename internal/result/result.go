// Package result provides the two-variant success/error container used
// as the return shape of every fallible operation in the Portainer
// client. Remote and validation failures travel through the error
// variant; panics are reserved for programming-contract violations.
package result

// Result holds exactly one of a success value or an error message.
// Immutable once constructed.
type Result[T any] struct {
	value T
	err   string
	ok    bool
}

// Unit is the success payload of operations that return nothing.
type Unit struct{}

// Ok wraps a success value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err wraps an error message.
func Err[T any](message string) Result[T] {
	return Result[T]{err: message}
}

// OkUnit is shorthand for Ok(Unit{}).
func OkUnit() Result[Unit] {
	return Ok(Unit{})
}

// IsOk reports whether the result holds a success value.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value returns the success value. It panics when called on the error
// variant; check IsOk or use Match instead of calling it blindly.
func (r Result[T]) Value() T {
	if !r.ok {
		panic("result: Value called on error variant: " + r.err)
	}
	return r.value
}

// Error returns the error message, or the empty string for a success.
func (r Result[T]) Error() string {
	return r.err
}

// Match folds both variants into a single value.
func Match[T, U any](r Result[T], onOk func(T) U, onErr func(string) U) U {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}

// Map transforms the success value, passing errors through untouched.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// FlatMap chains a dependent fallible operation, short-circuiting on
// the error variant.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return fn(r.value)
}
