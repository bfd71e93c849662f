// Package builtin provides ready-made node kinds.
//
// Every kind is a *traits.Kind, so it can be used directly or registered with
// a registry.Registry:
//
//	reg := registry.New()
//	if err := builtin.RegisterAll(reg); err != nil {
//		return err
//	}
package builtin

import (
	"github.com/agentstation/traits"
	"github.com/agentstation/traits/registry"
)

// Kinds returns every built-in node kind.
func Kinds() []traits.Factory {
	return []traits.Factory{
		Threshold,
		Clamp,
		Scale,
		Counter,
		JSONPath,
		Lua,
	}
}

// RegisterAll registers every built-in node kind.
func RegisterAll(reg *registry.Registry) error {
	for _, k := range Kinds() {
		if err := reg.Register(k); err != nil {
			return err
		}
	}
	return nil
}
