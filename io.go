package traits

import (
	"fmt"
	"reflect"
)

// Unit is the empty settings, input or output struct.
type Unit struct{}

// Val is the single-field input or output shape; its field is named "val".
type Val[T any] struct {
	Val T
}

// Input recovers a statically typed struct from a map of erased values.
//
// Values in the map belong to the caller and are only valid for the call
// that received them; a node must not keep references past its return.
type Input[I any] interface {
	Schema() map[string]Type
	FromMap(values map[string]any) (I, error)
}

// Output erases a statically typed struct into a map keyed by field name.
type Output[O any] interface {
	Schema() map[string]Type
	ToMap(out O) map[string]any
}

// InputField is one row of an input table. Create it with In.
type InputField[I any] struct {
	name string
	typ  Type
	set  func(dst *I, v any) bool
}

// In declares an input field of type T named ident, stored through at.
func In[I, T any](ident string, at func(*I) *T, opts ...FieldOption) InputField[I] {
	name := resolveName(ident, opts)
	if at == nil {
		panic(fmt.Sprintf("traits: input field %q needs an accessor", name))
	}
	// A present nil is a valid value of an interface-typed field.
	nilable := reflect.TypeFor[T]().Kind() == reflect.Interface
	return InputField[I]{
		name: name,
		typ:  TypeOf[T](),
		set: func(dst *I, v any) bool {
			if v == nil && nilable {
				var zero T
				*at(dst) = zero
				return true
			}
			tv, ok := v.(T)
			if ok {
				*at(dst) = tv
			}
			return ok
		},
	}
}

// Inputs is an Input built from a field table.
type Inputs[I any] struct {
	fields []InputField[I]
}

// NewInputs declares the input table for I. It panics if two fields share a name.
func NewInputs[I any](fields ...InputField[I]) *Inputs[I] {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	checkUnique("inputs", names)
	return &Inputs[I]{fields: fields}
}

// Schema returns the static type name of every field.
func (in *Inputs[I]) Schema() map[string]Type {
	out := make(map[string]Type, len(in.fields))
	for _, f := range in.fields {
		out[f.name] = f.typ
	}
	return out
}

// FromMap looks up and downcasts every declared field.
func (in *Inputs[I]) FromMap(values map[string]any) (I, error) {
	var out, zero I
	for _, f := range in.fields {
		v, ok := values[f.name]
		if !ok {
			return zero, missingField(f.name)
		}
		if !f.set(&out, v) {
			return zero, typeError(f.name)
		}
	}
	return out, nil
}

// OutputField is one row of an output table. Create it with Out.
type OutputField[O any] struct {
	name string
	typ  Type
	get  func(src *O) any
}

// Out declares an output field of type T named ident, read through at.
func Out[O, T any](ident string, at func(*O) *T, opts ...FieldOption) OutputField[O] {
	name := resolveName(ident, opts)
	if at == nil {
		panic(fmt.Sprintf("traits: output field %q needs an accessor", name))
	}
	return OutputField[O]{
		name: name,
		typ:  TypeOf[T](),
		get: func(src *O) any {
			return *at(src)
		},
	}
}

// Outputs is an Output built from a field table.
type Outputs[O any] struct {
	fields []OutputField[O]
}

// NewOutputs declares the output table for O. It panics if two fields share a name.
func NewOutputs[O any](fields ...OutputField[O]) *Outputs[O] {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	checkUnique("outputs", names)
	return &Outputs[O]{fields: fields}
}

// Schema returns the static type name of every field.
func (o *Outputs[O]) Schema() map[string]Type {
	out := make(map[string]Type, len(o.fields))
	for _, f := range o.fields {
		out[f.name] = f.typ
	}
	return out
}

// ToMap moves every field into the returned map.
func (o *Outputs[O]) ToMap(out O) map[string]any {
	m := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		m[f.name] = f.get(&out)
	}
	return m
}

// SingleInput returns the input table of Val[T].
func SingleInput[T any]() *Inputs[Val[T]] {
	return NewInputs(In("val", func(v *Val[T]) *T { return &v.Val }))
}

// SingleOutput returns the output table of Val[T].
func SingleOutput[T any]() *Outputs[Val[T]] {
	return NewOutputs(Out("val", func(v *Val[T]) *T { return &v.Val }))
}

// Empty tables for nodes without inputs or outputs.
var (
	NoInput  Input[Unit]  = NewInputs[Unit]()
	NoOutput Output[Unit] = NewOutputs[Unit]()
)
