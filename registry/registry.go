// Package registry keeps the node kinds an orchestrator can construct.
//
// A Registry stores traits.Factory values by name, exposes their schemas for
// introspection and constructs erased instances from JSON settings blobs.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/logging"
	"github.com/agentstation/traits/middleware"
)

var (
	// ErrUnknownKind is returned when no kind is registered under a name.
	ErrUnknownKind = errors.New("registry: unknown node kind")

	// ErrDuplicateKind is returned when a kind name is registered twice.
	ErrDuplicateKind = errors.New("registry: node kind already registered")
)

// Registry manages node kind registration and instance creation.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]traits.Factory

	logger      traits.Logger
	validate    bool
	middlewares []middleware.Middleware
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and construction events.
func WithLogger(logger traits.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSchemaValidation validates every settings blob against the JSON Schema
// derived from the kind's settings before deserializing it.
func WithSchemaValidation() Option {
	return func(r *Registry) {
		r.validate = true
	}
}

// WithMiddleware wraps every instance made by the registry. The first
// middleware is the outermost.
func WithMiddleware(middlewares ...middleware.Middleware) Option {
	return func(r *Registry) {
		r.middlewares = append(r.middlewares, middlewares...)
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		factories: make(map[string]traits.Factory),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a node kind under its name.
func (r *Registry) Register(f traits.Factory) error {
	name := f.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, name)
	}
	r.factories[name] = f

	r.logger.Debug(context.Background(), "node kind registered", "kind", name)
	return nil
}

// MustRegister adds node kinds and panics if any name is taken.
func (r *Registry) MustRegister(factories ...traits.Factory) {
	for _, f := range factories {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// Get returns the kind registered under name.
func (r *Registry) Get(name string) (traits.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	return f, ok
}

// List returns the registered kind names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the schema of one kind.
func (r *Registry) Schema(name string) (traits.Function, error) {
	f, ok := r.Get(name)
	if !ok {
		return traits.Function{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return f.Schema(), nil
}

// Schemas returns the schema of every kind, sorted by name.
func (r *Registry) Schemas() []traits.Function {
	names := r.List()
	schemas := make([]traits.Function, 0, len(names))
	for _, name := range names {
		if f, ok := r.Get(name); ok {
			schemas = append(schemas, f.Schema())
		}
	}
	return schemas
}

// Make constructs an instance of the named kind from a JSON settings blob.
func (r *Registry) Make(ctx context.Context, name, settings string) (traits.Processable, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}

	if r.validate {
		if err := traits.ValidateSettings(f.Schema().Settings, settings); err != nil {
			r.logger.Error(ctx, "settings failed schema validation", "kind", name, "error", err)
			return nil, &traits.CreationError{Node: name, Phase: traits.PhaseSettings, Err: err}
		}
	}

	p, err := f.Make(ctx, settings)
	if err != nil {
		r.logger.Error(ctx, "node creation failed", "kind", name, "error", err)
		return nil, err
	}
	r.logger.Debug(ctx, "node created", "kind", name)

	if len(r.middlewares) > 0 {
		p = middleware.Chain(r.middlewares...)(p)
	}
	return p, nil
}
