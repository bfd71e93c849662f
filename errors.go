package traits

import (
	"errors"
	"fmt"
)

// Deserialization error kinds.
var (
	// ErrTypeMismatch is returned when a dynamic value's type differs from the field's static type.
	ErrTypeMismatch = errors.New("traits: type mismatch")

	// ErrMissingField is returned when a required field is absent from an object or value map.
	ErrMissingField = errors.New("traits: missing field")

	// ErrFieldDeserialization is returned when a present field fails its leaf conversion.
	ErrFieldDeserialization = errors.New("traits: field deserialization failed")

	// ErrNotObject is returned when a settings blob is not a JSON object.
	ErrNotObject = errors.New("traits: settings are not an object")
)

// Leaf value error kinds.
var (
	// ErrAbsent is returned when a leaf value is null or missing.
	ErrAbsent = errors.New("value is absent")

	// ErrWrongKind is returned when a leaf value has another JSON kind than expected.
	ErrWrongKind = errors.New("value has the wrong kind")

	// ErrOutOfRange is returned when a numeric value falls outside its bounds.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvertedRange is returned when a range's min is greater than its max.
	ErrInvertedRange = errors.New("range min is greater than max")
)

// DeserializationKind classifies a DeserializationError.
type DeserializationKind int

const (
	// KindTypeMismatch marks a failed downcast of an erased value.
	KindTypeMismatch DeserializationKind = iota + 1
	// KindMissingField marks an absent field.
	KindMissingField
	// KindFieldDeserialization marks a leaf conversion failure.
	KindFieldDeserialization
	// KindNotObject marks a non-object settings blob.
	KindNotObject
)

func (k DeserializationKind) sentinel() error {
	switch k {
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindMissingField:
		return ErrMissingField
	case KindFieldDeserialization:
		return ErrFieldDeserialization
	case KindNotObject:
		return ErrNotObject
	default:
		return nil
	}
}

// DeserializationError reports which named field failed and why.
type DeserializationError struct {
	Kind  DeserializationKind
	Field string
	Cause error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	switch e.Kind {
	case KindTypeMismatch:
		return fmt.Sprintf("field %q had an invalid type", e.Field)
	case KindMissingField:
		return fmt.Sprintf("field %q was not found", e.Field)
	case KindFieldDeserialization:
		return fmt.Sprintf("field %q had error: %v", e.Field, e.Cause)
	case KindNotObject:
		if e.Cause != nil {
			return fmt.Sprintf("settings are not an object: %v", e.Cause)
		}
		return "settings are not an object"
	default:
		return "deserialization failed"
	}
}

// Unwrap returns the underlying cause, if any.
func (e *DeserializationError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel for the error's kind.
func (e *DeserializationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func typeError(field string) error {
	return &DeserializationError{Kind: KindTypeMismatch, Field: field}
}

func missingField(field string) error {
	return &DeserializationError{Kind: KindMissingField, Field: field}
}

func fieldError(field string, cause error) error {
	return &DeserializationError{Kind: KindFieldDeserialization, Field: field, Cause: cause}
}

func notObject(cause error) error {
	return &DeserializationError{Kind: KindNotObject, Cause: cause}
}

// ValueError is a leaf conversion failure for one setting kind.
type ValueError struct {
	Kind  string
	Value any
	Err   error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Err == ErrAbsent {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v (got %v)", e.Kind, e.Err, e.Value)
}

// Unwrap returns the leaf error kind.
func (e *ValueError) Unwrap() error {
	return e.Err
}

func valueError(kind string, value any, err error) error {
	return &ValueError{Kind: kind, Value: value, Err: err}
}

// Phase names the step of a node lifecycle that failed.
type Phase string

const (
	// PhaseSettings is the settings deserialization step of construction.
	PhaseSettings Phase = "settings"
	// PhaseMake is the node's own construction logic.
	PhaseMake Phase = "make"
	// PhaseInput is the erased input conversion step of processing.
	PhaseInput Phase = "input"
	// PhaseExecute is the node's own processing logic.
	PhaseExecute Phase = "execute"
)

// CreationError is returned when a node cannot be constructed from its settings.
type CreationError struct {
	Node  string
	Phase Phase
	Err   error
}

// Error implements the error interface.
func (e *CreationError) Error() string {
	if e.Phase == PhaseSettings {
		return fmt.Sprintf("node %s: settings could not be deserialized: %v", e.Node, e.Err)
	}
	return fmt.Sprintf("node %s: creation failed: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *CreationError) Unwrap() error {
	return e.Err
}

// ProcessingError is returned when a node fails to process a value map.
type ProcessingError struct {
	Node  string
	Phase Phase
	Err   error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Phase == PhaseInput {
		return fmt.Sprintf("node %s: input could not be deserialized: %v", e.Node, e.Err)
	}
	return fmt.Sprintf("node %s: execution failed: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}
