// Package batch runs many value sets through instances of one node kind.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/traits/pool"
)

// Option configures a batch processor.
type Option func(*options)

type options struct {
	maxConcurrency int
}

// WithConcurrency sets the maximum number of items processed at once, which
// is also the number of instances the processor may make. Values below 1
// are ignored.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxConcurrency = n
		}
	}
}

// Processor processes batches of value sets.
type Processor struct {
	pool           *pool.Pool
	maxConcurrency int
}

// NewProcessor returns a processor for kind built from settings. With the
// default concurrency of 1 every item goes through a single instance in
// order, so stateful kinds see the batch as one sequence of calls.
func NewProcessor(maker pool.Maker, kind, settings string, opts ...Option) (*Processor, error) {
	o := options{maxConcurrency: 1}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := pool.New(maker, kind, settings, o.maxConcurrency)
	if err != nil {
		return nil, err
	}
	return &Processor{pool: p, maxConcurrency: o.maxConcurrency}, nil
}

// Stats returns the usage statistics of the underlying instance pool.
func (p *Processor) Stats() pool.Stats {
	return p.pool.Stats()
}

// Process runs every item and returns the outputs in input order. The first
// failure stops the batch and is returned naming the item index.
func (p *Processor) Process(ctx context.Context, items []map[string]any) ([]map[string]any, error) {
	if p.maxConcurrency <= 1 {
		return p.processSequential(ctx, items)
	}
	return p.processConcurrent(ctx, items)
}

func (p *Processor) processSequential(ctx context.Context, items []map[string]any) ([]map[string]any, error) {
	results := make([]map[string]any, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := p.pool.Process(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		results[i] = out
	}
	return results, nil
}

func (p *Processor) processConcurrent(ctx context.Context, items []map[string]any) ([]map[string]any, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrency)

	results := make([]map[string]any, len(items))
	for i, item := range items {
		g.Go(func() error {
			out, err := p.pool.Process(ctx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
