package traits

import (
	"fmt"
)

// Configurable is implemented by settings types: it aggregates the Editable
// schema of every named field and deserializes a settings blob field by field.
type Configurable[S any] interface {
	Schema() map[string]SettingType
	Deserialize(blob string) (S, error)
}

// SettingField is one row of a settings table. Create it with Field.
type SettingField[S any] struct {
	name   string
	schema func() SettingType
	decode func(dst *S, raw any) error
}

// Name returns the field's external name.
func (f SettingField[S]) Name() string { return f.name }

// Field declares a settings field named ident whose value is decoded by ed and
// stored through at.
//
//	traits.Field("threshold", traits.U8, func(s *Settings) *uint8 { return &s.Threshold })
func Field[S, T any, E Editable[T]](ident string, ed E, at func(*S) *T, opts ...FieldOption) SettingField[S] {
	name := resolveName(ident, opts)
	if at == nil {
		panic(fmt.Sprintf("traits: settings field %q needs an editable and an accessor", name))
	}
	return SettingField[S]{
		name:   name,
		schema: ed.Schema,
		decode: func(dst *S, raw any) error {
			v, err := ed.Deserialize(raw)
			if err != nil {
				return err
			}
			*at(dst) = v
			return nil
		},
	}
}

// Settings is a Configurable built from a field table.
type Settings[S any] struct {
	fields []SettingField[S]
}

// NewSettings declares the settings table for S. It panics if two fields
// share a name.
func NewSettings[S any](fields ...SettingField[S]) *Settings[S] {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	checkUnique("settings", names)
	return &Settings[S]{fields: fields}
}

// NoSettings is the Configurable for nodes without settings. It still
// requires the blob to be a JSON object.
var NoSettings Configurable[Unit] = NewSettings[Unit]()

// Fields returns the external field names in declaration order.
func (s *Settings[S]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Schema returns the setting type of every field.
func (s *Settings[S]) Schema() map[string]SettingType {
	out := make(map[string]SettingType, len(s.fields))
	for _, f := range s.fields {
		out[f.name] = f.schema()
	}
	return out
}

// Deserialize parses blob as a JSON object and decodes every field.
func (s *Settings[S]) Deserialize(blob string) (S, error) {
	obj, err := parseObject(blob)
	if err != nil {
		var zero S
		return zero, err
	}
	return s.Decode(obj)
}

// Decode decodes every field from an already parsed object. Unknown keys
// are ignored.
func (s *Settings[S]) Decode(obj map[string]any) (S, error) {
	var out, zero S
	if obj == nil {
		return zero, notObject(nil)
	}
	for _, f := range s.fields {
		raw, ok := obj[f.name]
		if !ok {
			return zero, missingField(f.name)
		}
		if err := f.decode(&out, raw); err != nil {
			return zero, fieldError(f.name, err)
		}
	}
	return out, nil
}
