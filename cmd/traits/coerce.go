package main

import (
	"fmt"

	"github.com/ohler55/ojg/oj"

	"github.com/agentstation/traits"
)

// coercers convert a parsed JSON value into the static type named by an
// input schema.
var coercers = map[string]func(any) (any, error){
	"uint8":        editable(traits.U8),
	"uint16":       editable(traits.U16),
	"uint32":       editable(traits.U32),
	"int8":         editable(traits.I8),
	"int16":        editable(traits.I16),
	"int32":        editable(traits.I32),
	"float32":      editable(traits.F32),
	"float64":      editable(traits.F64),
	"bool":         editable(traits.Bool),
	"string":       editable(traits.String),
	"interface {}": func(v any) (any, error) { return v, nil },
}

func editable[T any](ed traits.Editable[T]) func(any) (any, error) {
	return func(v any) (any, error) {
		return ed.Deserialize(v)
	}
}

// coerceInput parses a JSON object and converts each member declared in
// inputs to its static type. Undeclared members are passed through.
func coerceInput(inputs map[string]traits.Type, blob string) (map[string]any, error) {
	parsed, err := oj.ParseString(blob)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	values, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("input must be a JSON object, got %T", parsed)
	}
	return coerceValues(inputs, values)
}

// coerceValues converts the declared members of an already parsed object.
func coerceValues(inputs map[string]traits.Type, values map[string]any) (map[string]any, error) {
	for name, typ := range inputs {
		raw, ok := values[name]
		if !ok {
			continue
		}
		coerce, ok := coercers[typ.Name]
		if !ok {
			return nil, fmt.Errorf("input %q: type %s cannot be given on the command line", name, typ.Name)
		}
		v, err := coerce(raw)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}
