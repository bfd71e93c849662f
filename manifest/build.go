package manifest

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ohler55/ojg/oj"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/middleware"
)

// Maker constructs instances by kind name. *registry.Registry implements it.
type Maker interface {
	Make(ctx context.Context, kind, settings string) (traits.Processable, error)
}

type buildOptions struct {
	concurrency int
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithConcurrency limits how many instances are constructed at once.
// Values below 1 are ignored.
func WithConcurrency(n int) BuildOption {
	return func(o *buildOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Build constructs every node of the manifest, keyed by instance name. Each
// instance is built on its own goroutine; the first failure cancels the rest
// and is returned naming the instance.
func (m *Manifest) Build(ctx context.Context, maker Maker, opts ...BuildOption) (map[string]traits.Processable, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions{concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	var mu sync.Mutex
	nodes := make(map[string]traits.Processable, len(m.Nodes))

	for _, def := range m.Nodes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := def.build(ctx, maker)
			if err != nil {
				return fmt.Errorf("node %s (%s): %w", def.Name, def.Kind, err)
			}

			mu.Lock()
			nodes[def.Name] = p
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (nd *NodeDefinition) build(ctx context.Context, maker Maker) (traits.Processable, error) {
	p, err := maker.Make(ctx, nd.Kind, nd.SettingsJSON())
	if err != nil {
		return nil, err
	}

	d, err := nd.timeout()
	if err != nil {
		return nil, err
	}
	if d > 0 {
		p = middleware.Timeout(d)(p)
	}
	return p, nil
}

// SettingsJSON returns the node's settings as a JSON object.
func (nd *NodeDefinition) SettingsJSON() string {
	if nd.Settings == nil {
		return "{}"
	}
	return oj.JSON(nd.Settings)
}
