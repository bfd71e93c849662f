// Package middleware provides decorators for erased node instances that add
// cross-cutting concerns like logging, metrics and tracing.
//
// Middlewares never alter a node's output or error; a wrapped instance can be
// used anywhere the bare instance could, and errors.As still finds the
// traits.ProcessingError it returned.
package middleware

import (
	"context"

	"github.com/agentstation/traits"
)

// Middleware modifies node behavior.
type Middleware func(traits.Processable) traits.Processable

// ProcessFunc is the signature of traits.Processable.Process.
type ProcessFunc func(ctx context.Context, values map[string]any) (map[string]any, error)

// wrapped decorates an instance's Process call.
type wrapped struct {
	inner   traits.Processable
	process ProcessFunc
}

func (w *wrapped) Kind() string {
	return w.inner.Kind()
}

func (w *wrapped) Process(ctx context.Context, values map[string]any) (map[string]any, error) {
	return w.process(ctx, values)
}

// Unwrap returns the decorated instance.
func (w *wrapped) Unwrap() traits.Processable {
	return w.inner
}

// Wrap builds a middleware from a function that receives the kind name and the
// next Process call.
func Wrap(fn func(kind string, next ProcessFunc) ProcessFunc) Middleware {
	return func(p traits.Processable) traits.Processable {
		return &wrapped{inner: p, process: fn(p.Kind(), p.Process)}
	}
}

// Chain combines multiple middlewares into a single middleware.
// The first middleware is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(p traits.Processable) traits.Processable {
		for i := len(middlewares) - 1; i >= 0; i-- {
			p = middlewares[i](p)
		}
		return p
	}
}

// Apply applies middlewares in order, so the last one is the outermost.
func Apply(p traits.Processable, middlewares ...Middleware) traits.Processable {
	for _, mw := range middlewares {
		p = mw(p)
	}
	return p
}

// Unwrap strips every middleware layer from p.
func Unwrap(p traits.Processable) traits.Processable {
	for {
		w, ok := p.(interface{ Unwrap() traits.Processable })
		if !ok {
			return p
		}
		p = w.Unwrap()
	}
}
