// Package pool hands out instances of one configured node kind so that
// callers on many goroutines never process through the same instance at once.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/agentstation/traits"
)

// ErrInvalidSize is returned by New for a size below one.
var ErrInvalidSize = errors.New("pool size must be at least 1")

// Maker constructs instances by kind name. *registry.Registry implements it.
type Maker interface {
	Make(ctx context.Context, kind, settings string) (traits.Processable, error)
}

// Stats tracks pool usage.
type Stats struct {
	Gets  int64 `json:"gets"`
	Puts  int64 `json:"puts"`
	News  int64 `json:"news"`
	InUse int64 `json:"inUse"`
}

// Pool holds at most size instances of one kind, all made from the same
// settings. Instances are created lazily and reused, so a stateful node keeps
// its state between the calls routed to it.
type Pool struct {
	maker    Maker
	kind     string
	settings string

	idle  chan traits.Processable
	slots chan struct{}

	mu    sync.Mutex
	stats Stats
}

// New returns a pool of up to size instances of kind built from settings.
// No instance is made until the first Get.
func New(maker Maker, kind, settings string, size int) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Pool{
		maker:    maker,
		kind:     kind,
		settings: settings,
		idle:     make(chan traits.Processable, size),
		slots:    make(chan struct{}, size),
	}, nil
}

// Kind returns the kind the pool makes.
func (p *Pool) Kind() string { return p.kind }

// Get checks out an instance, making one if none is idle. It blocks while
// every instance is checked out. The instance must be returned with Put.
func (p *Pool) Get(ctx context.Context) (traits.Processable, error) {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case inst := <-p.idle:
		p.record(func(s *Stats) { s.Gets++; s.InUse++ })
		return inst, nil
	default:
	}

	inst, err := p.maker.Make(ctx, p.kind, p.settings)
	if err != nil {
		<-p.slots
		return nil, err
	}
	p.record(func(s *Stats) { s.News++; s.Gets++; s.InUse++ })
	return inst, nil
}

// Put returns an instance checked out with Get.
func (p *Pool) Put(inst traits.Processable) {
	p.idle <- inst
	<-p.slots
	p.record(func(s *Stats) { s.Puts++; s.InUse-- })
}

// Process runs values through a checked out instance.
func (p *Pool) Process(ctx context.Context, values map[string]any) (map[string]any, error) {
	inst, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Put(inst)
	return inst.Process(ctx, values)
}

// Stats returns a snapshot of the pool statistics.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Pool) record(update func(*Stats)) {
	p.mu.Lock()
	update(&p.stats)
	p.mu.Unlock()
}
