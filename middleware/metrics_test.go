package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/internal/testutil"
)

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	inputErr := &traits.ProcessingError{Node: "echo", Phase: traits.PhaseInput, Err: traits.ErrTypeMismatch}
	p := m.Middleware()(testutil.NewMockNode("echo").WithError(2, inputErr).WithError(3, errors.New("plain")))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = p.Process(ctx, map[string]any{"val": i})
	}

	assert := testutil.NewAssert(t)
	assert.Equal(2.0, promtestutil.ToFloat64(m.processTotal.WithLabelValues("echo", "success")))
	assert.Equal(1.0, promtestutil.ToFloat64(m.processTotal.WithLabelValues("echo", "error_input")))
	assert.Equal(1.0, promtestutil.ToFloat64(m.processTotal.WithLabelValues("echo", "error_execute")))

	count, err := promtestutil.GatherAndCount(reg, "traits_node_process_duration_seconds")
	assert.NoError(err)
	assert.Equal(1, count)
}

func TestNewMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("second NewMetrics failed: %v", err)
	}

	_, _ = second.Middleware()(testutil.NewMockNode("echo")).Process(context.Background(), nil)

	assert := testutil.NewAssert(t)
	assert.True(first.processTotal == second.processTotal, "expected the registered counter to be reused")
	assert.Equal(1.0, promtestutil.ToFloat64(first.processTotal.WithLabelValues("echo", "success")))
}
