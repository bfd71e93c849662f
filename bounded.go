package traits

import (
	"fmt"
)

// Constraint declares the bounds of a Constrained integer. It is an
// Editable producing Constrained values, so it can be used directly in a
// settings field table.
type Constraint[T Integer] struct {
	min, max  T
	inclusive bool
}

// NewConstraint declares bounds for a constrained integer. With inclusive set
// a value v is valid when min <= v <= max, otherwise when min < v < max.
// It panics if min > max.
func NewConstraint[T Integer](min, max T, inclusive bool) Constraint[T] {
	if min > max {
		panic(fmt.Sprintf("traits: constraint min %v must not be greater than max %v", min, max))
	}
	return Constraint[T]{min: min, max: max, inclusive: inclusive}
}

// Min returns the declared lower bound.
func (c Constraint[T]) Min() T { return c.min }

// Max returns the declared upper bound.
func (c Constraint[T]) Max() T { return c.max }

// Inclusive reports whether the bounds themselves are valid values.
func (c Constraint[T]) Inclusive() bool { return c.inclusive }

// Allows reports whether v satisfies the constraint.
func (c Constraint[T]) Allows(v T) bool {
	if c.inclusive {
		return c.min <= v && v <= c.max
	}
	return c.min < v && v < c.max
}

func (c Constraint[T]) kind() string {
	k, _, _ := limits[T]()
	return "Constrained" + k
}

// New wraps v, failing if it violates the constraint.
func (c Constraint[T]) New(v T) (Constrained[T], error) {
	if !c.Allows(v) {
		return Constrained[T]{}, valueError(c.kind(), v, ErrOutOfRange)
	}
	return Constrained[T]{value: v, constraint: c}, nil
}

// Schema reports the declared bounds.
func (c Constraint[T]) Schema() SettingType {
	return SettingType{
		Name: c.kind(),
		Params: map[string]any{
			"min":       int64(c.min),
			"max":       int64(c.max),
			"inclusive": c.inclusive,
		},
	}
}

// Deserialize converts a generic value into a Constrained value.
func (c Constraint[T]) Deserialize(value any) (Constrained[T], error) {
	v, err := decodeInteger[T](c.kind(), value)
	if err != nil {
		return Constrained[T]{}, err
	}
	return c.New(v)
}

// Constrained is an integer known to satisfy its Constraint.
// The zero value holds 0 and an empty constraint; obtain values through
// Constraint.New or Constraint.Deserialize.
type Constrained[T Integer] struct {
	value      T
	constraint Constraint[T]
}

// Value returns the wrapped integer.
func (c Constrained[T]) Value() T { return c.value }

// Constraint returns the bounds the value was validated against.
func (c Constrained[T]) Constraint() Constraint[T] { return c.constraint }

// String implements fmt.Stringer.
func (c Constrained[T]) String() string { return fmt.Sprint(c.value) }

// RangeBounds declares the outer bounds of a Range. It is an Editable
// producing Range values.
type RangeBounds[T Integer] struct {
	min, max T
}

// NewRangeBounds declares inclusive outer bounds for a range.
// It panics if min > max.
func NewRangeBounds[T Integer](min, max T) RangeBounds[T] {
	if min > max {
		panic(fmt.Sprintf("traits: range min %v must not be greater than max %v", min, max))
	}
	return RangeBounds[T]{min: min, max: max}
}

// Min returns the declared lower bound.
func (b RangeBounds[T]) Min() T { return b.min }

// Max returns the declared upper bound.
func (b RangeBounds[T]) Max() T { return b.max }

func (b RangeBounds[T]) kind() string {
	k, _, _ := limits[T]()
	return "Range" + k
}

// New builds a range, requiring b.Min <= lo <= hi <= b.Max.
func (b RangeBounds[T]) New(lo, hi T) (Range[T], error) {
	if lo < b.min || lo > b.max {
		return Range[T]{}, valueError(b.kind()+".min", lo, ErrOutOfRange)
	}
	if hi < b.min || hi > b.max {
		return Range[T]{}, valueError(b.kind()+".max", hi, ErrOutOfRange)
	}
	if lo > hi {
		return Range[T]{}, valueError(b.kind(), fmt.Sprintf("[%v, %v]", lo, hi), ErrInvertedRange)
	}
	return Range[T]{Min: lo, Max: hi}, nil
}

// Schema reports the declared bounds.
func (b RangeBounds[T]) Schema() SettingType {
	return SettingType{
		Name: b.kind(),
		Params: map[string]any{
			"min": int64(b.min),
			"max": int64(b.max),
		},
	}
}

// Deserialize converts an object with "min" and "max" members into a Range.
func (b RangeBounds[T]) Deserialize(value any) (Range[T], error) {
	if value == nil {
		return Range[T]{}, valueError(b.kind(), value, ErrAbsent)
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return Range[T]{}, valueError(b.kind(), value, ErrWrongKind)
	}
	lo, err := decodeInteger[T](b.kind()+".min", obj["min"])
	if err != nil {
		return Range[T]{}, err
	}
	hi, err := decodeInteger[T](b.kind()+".max", obj["max"])
	if err != nil {
		return Range[T]{}, err
	}
	return b.New(lo, hi)
}

// Range is an inclusive [Min, Max] pair.
type Range[T Integer] struct {
	Min T
	Max T
}

// Contains reports whether v lies within the range.
func (r Range[T]) Contains(v T) bool {
	return r.Min <= v && v <= r.Max
}

// Clamp limits v to the range.
func (r Range[T]) Clamp(v T) T {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Span returns Max - Min as an int64.
func (r Range[T]) Span() int64 {
	return int64(r.Max) - int64(r.Min)
}
