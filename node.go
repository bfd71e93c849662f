package traits

import (
	"context"
	"errors"
	"reflect"
)

var errNilNode = errors.New("constructor returned a nil node")

// Node is a statically typed unit of work. Process may mutate the node's
// state; calls on one instance must be serialized by the caller.
type Node[I, O any] interface {
	Process(ctx context.Context, in I) (O, error)
}

// NodeFunc adapts a function to the Node interface.
type NodeFunc[I, O any] func(ctx context.Context, in I) (O, error)

// Process calls f(ctx, in).
func (f NodeFunc[I, O]) Process(ctx context.Context, in I) (O, error) {
	return f(ctx, in)
}

// MakeFunc constructs a node from its deserialized settings. It may reject
// combinations of settings that are individually valid.
type MakeFunc[S, I, O any] func(ctx context.Context, settings S) (Node[I, O], error)

// Processable is a node instance with its settings, input and output types
// erased. It is what an orchestrator stores and drives.
type Processable interface {
	// Kind returns the name of the node kind the instance was made from.
	Kind() string

	// Process converts values into the node's input, runs the node and
	// erases its output. values is only borrowed for the call.
	Process(ctx context.Context, values map[string]any) (map[string]any, error)
}

// Factory is the erased, kind-level handle of a node type.
type Factory interface {
	Name() string
	Schema() Function
	Make(ctx context.Context, settings string) (Processable, error)
}

// Kind binds a node's settings, input and output tables to its constructor.
// It implements Factory.
type Kind[S, I, O any] struct {
	name     string
	settings Configurable[S]
	inputs   Input[I]
	outputs  Output[O]
	build    MakeFunc[S, I, O]
	schema   Function
}

// Define declares a node kind. The schema is assembled once here.
// It panics on an empty name or a nil component.
func Define[S, I, O any](name string, settings Configurable[S], inputs Input[I], outputs Output[O], build MakeFunc[S, I, O]) *Kind[S, I, O] {
	if name == "" {
		panic("traits: node kind name must not be empty")
	}
	if settings == nil || inputs == nil || outputs == nil || build == nil {
		panic("traits: node kind " + name + " is missing settings, inputs, outputs or constructor")
	}
	return &Kind[S, I, O]{
		name:     name,
		settings: settings,
		inputs:   inputs,
		outputs:  outputs,
		build:    build,
		schema: Function{
			Name:     name,
			Settings: settings.Schema(),
			Inputs:   inputs.Schema(),
			Outputs:  outputs.Schema(),
		},
	}
}

// Name returns the kind's display name.
func (k *Kind[S, I, O]) Name() string { return k.name }

// Schema returns a copy of the kind's schema.
func (k *Kind[S, I, O]) Schema() Function { return k.schema.Clone() }

// Make deserializes settings and constructs an erased instance.
func (k *Kind[S, I, O]) Make(ctx context.Context, settings string) (Processable, error) {
	s, err := k.settings.Deserialize(settings)
	if err != nil {
		return nil, &CreationError{Node: k.name, Phase: PhaseSettings, Err: err}
	}
	return k.New(ctx, s)
}

// New constructs an erased instance from already typed settings.
func (k *Kind[S, I, O]) New(ctx context.Context, settings S) (Processable, error) {
	n, err := k.build(ctx, settings)
	if err != nil {
		return nil, &CreationError{Node: k.name, Phase: PhaseMake, Err: err}
	}
	if isNil(n) {
		return nil, &CreationError{Node: k.name, Phase: PhaseMake, Err: errNilNode}
	}
	return &instance[S, I, O]{kind: k, node: n}, nil
}

// isNil also catches a typed nil pointer stored in the interface.
func isNil(n any) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

type instance[S, I, O any] struct {
	kind *Kind[S, I, O]
	node Node[I, O]
}

func (p *instance[S, I, O]) Kind() string { return p.kind.name }

func (p *instance[S, I, O]) Process(ctx context.Context, values map[string]any) (map[string]any, error) {
	in, err := p.kind.inputs.FromMap(values)
	if err != nil {
		return nil, &ProcessingError{Node: p.kind.name, Phase: PhaseInput, Err: err}
	}
	out, err := p.node.Process(ctx, in)
	if err != nil {
		return nil, &ProcessingError{Node: p.kind.name, Phase: PhaseExecute, Err: err}
	}
	return p.kind.outputs.ToMap(out), nil
}
