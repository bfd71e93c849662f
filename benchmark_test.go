package traits_test

import (
	"context"
	"testing"

	"github.com/agentstation/traits"
)

// Benchmark settings deserialization through the field table.
func BenchmarkSettingsDeserialize(b *testing.B) {
	settings := traits.NewSettings(
		traits.Field("Window", traits.NewRangeBounds[uint16](0, 1000), func(s *windowSettings) *traits.Range[uint16] { return &s.Window }, traits.Rename("window")),
		traits.Field("level", traits.NewConstraint[uint8](1, 9, true), func(s *windowSettings) *traits.Constrained[uint8] { return &s.Level }),
		traits.Field("ratio", traits.F64, func(s *windowSettings) *float64 { return &s.Ratio }),
		traits.Field("on", traits.Bool, func(s *windowSettings) *bool { return &s.On }),
	)
	blob := `{"window": {"min": 10, "max": 20}, "level": 4, "ratio": 0.25, "on": true}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := settings.Deserialize(blob); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark node construction from a settings blob.
func BenchmarkMake(b *testing.B) {
	kind := thresholdKind()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := kind.Make(ctx, `{"threshold": 5}`); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark erased processing: one type check per input field.
func BenchmarkProcess(b *testing.B) {
	ctx := context.Background()
	node, err := thresholdKind().Make(ctx, `{"threshold": 5}`)
	if err != nil {
		b.Fatal(err)
	}
	values := map[string]any{"val": uint32(13)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := node.Process(ctx, values); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark the typed path without erasure for comparison.
func BenchmarkProcessTyped(b *testing.B) {
	ctx := context.Background()
	node := traits.NodeFunc[u32In, boolOut](func(ctx context.Context, in u32In) (boolOut, error) {
		return boolOut{Val: in.Val > 5}, nil
	})
	in := u32In{Val: 13}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := node.Process(ctx, in); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark parallel processing, one instance per goroutine.
func BenchmarkProcessParallel(b *testing.B) {
	kind := thresholdKind()

	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		node, err := kind.Make(ctx, `{"threshold": 5}`)
		if err != nil {
			b.Error(err)
			return
		}
		values := map[string]any{"val": uint32(13)}
		for pb.Next() {
			if _, err := node.Process(ctx, values); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
