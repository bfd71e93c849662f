package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/batch"
	"github.com/agentstation/traits/builtin"
	"github.com/agentstation/traits/internal/testutil"
	"github.com/agentstation/traits/registry"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	if err := builtin.RegisterAll(reg); err != nil {
		t.Fatal(err)
	}
	return reg
}

func values(vals ...uint32) []map[string]any {
	items := make([]map[string]any, len(vals))
	for i, v := range vals {
		items[i] = map[string]any{"val": v}
	}
	return items
}

func TestProcessSequential(t *testing.T) {
	p, err := batch.NewProcessor(newRegistry(t), "counter", `{"step": 1, "limit": 10}`)
	if err != nil {
		t.Fatal(err)
	}

	out, err := p.Process(context.Background(), make([]map[string]any, 3))

	assert := testutil.NewAssert(t)
	assert.NoError(err)
	assert.Equal([]map[string]any{{"count": uint32(1)}, {"count": uint32(2)}, {"count": uint32(3)}}, out)
	assert.Equal(int64(1), p.Stats().News)
}

func TestProcessConcurrentKeepsOrder(t *testing.T) {
	p, err := batch.NewProcessor(newRegistry(t), "threshold", `{"threshold": 10}`, batch.WithConcurrency(4))
	if err != nil {
		t.Fatal(err)
	}

	items := values(1, 20, 3, 40, 10, 11, 0, 99)
	out, err := p.Process(context.Background(), items)

	assert := testutil.NewAssert(t)
	assert.NoError(err)
	assert.Len(out, len(items))
	want := []bool{false, true, false, true, false, true, false, true}
	for i, w := range want {
		assert.Equal(w, out[i]["val"], "item %d", i)
	}
	if news := p.Stats().News; news < 1 || news > 4 {
		t.Errorf("made %d instances, want 1..4", news)
	}
}

func TestProcessErrorNamesItem(t *testing.T) {
	p, err := batch.NewProcessor(newRegistry(t), "threshold", `{"threshold": 10}`)
	if err != nil {
		t.Fatal(err)
	}

	items := values(1, 2)
	items = append(items, map[string]any{"val": "three"})
	_, err = p.Process(context.Background(), items)

	assert := testutil.NewAssert(t)
	assert.ErrorIs(err, traits.ErrTypeMismatch)
	assert.Contains(err.Error(), "item 2")
	pe := testutil.ErrorAs[*traits.ProcessingError](t, err)
	assert.Equal(traits.PhaseInput, pe.Phase)
}

func TestProcessMakeError(t *testing.T) {
	p, err := batch.NewProcessor(newRegistry(t), "threshold", `{"threshold": 300}`, batch.WithConcurrency(2))
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Process(context.Background(), values(1, 2, 3))
	var ce *traits.CreationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CreationError, got %v", err)
	}
}

func TestProcessCanceled(t *testing.T) {
	p, err := batch.NewProcessor(newRegistry(t), "threshold", `{"threshold": 1}`)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Process(ctx, values(1))
	testutil.NewAssert(t).ErrorIs(err, context.Canceled)
}
