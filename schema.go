package traits

import (
	"maps"
	"reflect"
)

// Type names the static type of one input or output field.
// It is meant for display and validation by external tooling, never for dispatch.
type Type struct {
	Name string `json:"name" yaml:"name"`
}

// SettingType describes one leaf setting: its kind and kind-specific parameters
// such as numeric bounds.
type SettingType struct {
	Name   string         `json:"name" yaml:"name"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Function is the complete introspectable description of a node kind.
type Function struct {
	Name     string                 `json:"name" yaml:"name"`
	Settings map[string]SettingType `json:"settings" yaml:"settings"`
	Inputs   map[string]Type        `json:"inputs" yaml:"inputs"`
	Outputs  map[string]Type        `json:"outputs" yaml:"outputs"`
}

// Clone returns a deep copy of the setting type.
func (s SettingType) Clone() SettingType {
	return SettingType{Name: s.Name, Params: maps.Clone(s.Params)}
}

// Param returns a parameter by key.
func (s SettingType) Param(key string) (any, bool) {
	v, ok := s.Params[key]
	return v, ok
}

// Clone returns a deep copy of the function schema.
func (f Function) Clone() Function {
	return Function{
		Name:     f.Name,
		Settings: cloneSettings(f.Settings),
		Inputs:   maps.Clone(f.Inputs),
		Outputs:  maps.Clone(f.Outputs),
	}
}

func cloneSettings(in map[string]SettingType) map[string]SettingType {
	out := make(map[string]SettingType, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}

// TypeOf returns the schema Type for T.
func TypeOf[T any]() Type {
	return Type{Name: reflect.TypeFor[T]().String()}
}
