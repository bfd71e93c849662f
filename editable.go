package traits

import (
	"math"
)

// Editable describes a leaf setting type: its schema and how to convert a
// generic structured value (as produced by a JSON parser) into it.
//
// Schema is a property of the type, not of any value.
type Editable[T any] interface {
	Schema() SettingType
	Deserialize(value any) (T, error)
}

// Primitive editables.
var (
	U8  Editable[uint8]  = integral[uint8]{name: "u8"}
	U16 Editable[uint16] = integral[uint16]{name: "u16"}
	U32 Editable[uint32] = integral[uint32]{name: "u32"}
	I8  Editable[int8]   = integral[int8]{name: "i8"}
	I16 Editable[int16]  = integral[int16]{name: "i16"}
	I32 Editable[int32]  = integral[int32]{name: "i32"}

	F32 Editable[float32] = floating[float32]{name: "f32", max: math.MaxFloat32}
	F64 Editable[float64] = floating[float64]{name: "f64", max: math.MaxFloat64}

	Bool   Editable[bool]   = boolean{}
	String Editable[string] = str{}
)

// Integer is the set of fixed-width integers usable as settings.
type Integer interface {
	int8 | int16 | int32 | uint8 | uint16 | uint32
}

// limits returns the kind suffix and native bounds of T.
func limits[T Integer]() (kind string, lo, hi int64) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return "U8", 0, math.MaxUint8
	case uint16:
		return "U16", 0, math.MaxUint16
	case uint32:
		return "U32", 0, math.MaxUint32
	case int8:
		return "I8", math.MinInt8, math.MaxInt8
	case int16:
		return "I16", math.MinInt16, math.MaxInt16
	default:
		return "I32", math.MinInt32, math.MaxInt32
	}
}

// decodeInteger extracts a T from a generic value, enforcing T's native range.
func decodeInteger[T Integer](kind string, value any) (T, error) {
	n, err := toInt64(value)
	if err != nil {
		return 0, valueError(kind, value, err)
	}
	_, lo, hi := limits[T]()
	if n < lo || n > hi {
		return 0, valueError(kind, value, ErrOutOfRange)
	}
	return T(n), nil
}

type integral[T Integer] struct {
	name string
}

func (e integral[T]) Schema() SettingType {
	_, lo, hi := limits[T]()
	return SettingType{
		Name:   e.name,
		Params: map[string]any{"min": lo, "max": hi},
	}
}

func (e integral[T]) Deserialize(value any) (T, error) {
	return decodeInteger[T](e.name, value)
}

type floating[T float32 | float64] struct {
	name string
	max  float64
}

func (e floating[T]) Schema() SettingType {
	return SettingType{
		Name:   e.name,
		Params: map[string]any{"min": -e.max, "max": e.max},
	}
}

func (e floating[T]) Deserialize(value any) (T, error) {
	f, err := toFloat64(value)
	if err != nil {
		return 0, valueError(e.name, value, err)
	}
	if math.IsNaN(f) || math.Abs(f) > e.max {
		return 0, valueError(e.name, value, ErrOutOfRange)
	}
	// Non-zero values too small for T must not round to zero.
	if f != 0 && T(f) == 0 {
		return 0, valueError(e.name, value, ErrOutOfRange)
	}
	return T(f), nil
}

type boolean struct{}

func (boolean) Schema() SettingType {
	return SettingType{Name: "bool", Params: map[string]any{}}
}

func (boolean) Deserialize(value any) (bool, error) {
	switch b := value.(type) {
	case nil:
		return false, valueError("bool", value, ErrAbsent)
	case bool:
		return b, nil
	default:
		return false, valueError("bool", value, ErrWrongKind)
	}
}

type str struct{}

func (str) Schema() SettingType {
	return SettingType{Name: "string", Params: map[string]any{}}
}

func (str) Deserialize(value any) (string, error) {
	switch s := value.(type) {
	case nil:
		return "", valueError("string", value, ErrAbsent)
	case string:
		return s, nil
	default:
		return "", valueError("string", value, ErrWrongKind)
	}
}
