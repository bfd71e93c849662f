package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// Assert provides test assertions.
type Assert struct {
	t testing.TB
}

// NewAssert creates a new assert helper.
func NewAssert(t testing.TB) *Assert {
	return &Assert{t: t}
}

// Equal asserts that two values are deeply equal.
func (a *Assert) Equal(expected, actual any, msgAndArgs ...any) {
	a.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		a.fail(fmt.Sprintf("Expected: %#v\nActual: %#v", expected, actual), msgAndArgs...)
	}
}

// True asserts that a value is true.
func (a *Assert) True(value bool, msgAndArgs ...any) {
	a.t.Helper()
	if !value {
		a.fail("Expected true, but got false", msgAndArgs...)
	}
}

// False asserts that a value is false.
func (a *Assert) False(value bool, msgAndArgs ...any) {
	a.t.Helper()
	if value {
		a.fail("Expected false, but got true", msgAndArgs...)
	}
}

// Error asserts that an error occurred.
func (a *Assert) Error(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err == nil {
		a.fail("Expected error, but got nil", msgAndArgs...)
	}
}

// NoError asserts that no error occurred.
func (a *Assert) NoError(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err != nil {
		a.fail(fmt.Sprintf("Expected no error, but got: %v", err), msgAndArgs...)
	}
}

// ErrorIs asserts that err matches target with errors.Is.
func (a *Assert) ErrorIs(err, target error, msgAndArgs ...any) {
	a.t.Helper()
	if !errors.Is(err, target) {
		a.fail(fmt.Sprintf("Expected error matching %v, but got: %v", target, err), msgAndArgs...)
	}
}

// Contains asserts that a string contains a substring.
func (a *Assert) Contains(s, substr string, msgAndArgs ...any) {
	a.t.Helper()
	if !strings.Contains(s, substr) {
		a.fail(fmt.Sprintf("Expected %q to contain %q", s, substr), msgAndArgs...)
	}
}

// Len asserts the length of a collection.
func (a *Assert) Len(collection any, length int, msgAndArgs ...any) {
	a.t.Helper()
	actual := getLen(collection)
	if actual != length {
		a.fail(fmt.Sprintf("Expected length %d, but got %d", length, actual), msgAndArgs...)
	}
}

// Panics asserts that a function panics.
func (a *Assert) Panics(fn func(), msgAndArgs ...any) {
	a.t.Helper()
	defer func() {
		if r := recover(); r == nil {
			a.fail("Expected panic, but function completed normally", msgAndArgs...)
		}
	}()
	fn()
}

// NotPanics asserts that a function does not panic.
func (a *Assert) NotPanics(fn func(), msgAndArgs ...any) {
	a.t.Helper()
	defer func() {
		if r := recover(); r != nil {
			a.fail(fmt.Sprintf("Expected no panic, but got: %v", r), msgAndArgs...)
		}
	}()
	fn()
}

// ErrorAs asserts that err wraps an error of type T and returns it.
func ErrorAs[T error](t testing.TB, err error) T {
	t.Helper()
	var target T
	if !errors.As(err, &target) {
		t.Fatalf("Expected error of type %T in chain, but got: %v", target, err)
	}
	return target
}

func (a *Assert) fail(message string, msgAndArgs ...any) {
	a.t.Helper()
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok && len(msgAndArgs) > 1 {
			message = fmt.Sprintf(format, msgAndArgs[1:]...) + "\n" + message
		} else if len(msgAndArgs) == 1 {
			message = fmt.Sprintf("%v\n%s", msgAndArgs[0], message)
		}
	}
	a.t.Fatal(message)
}

func getLen(value any) int {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return v.Len()
	default:
		return -1
	}
}
