package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentstation/traits"
)

var (
	// ErrZeroFactor is returned when a scale node is configured with factor 0.
	ErrZeroFactor = errors.New("scale factor must not be zero")

	// ErrCounterExhausted is returned once a counter would pass its limit.
	ErrCounterExhausted = errors.New("counter exhausted")

	// ErrStepAboveLimit is returned when a counter's step exceeds its limit.
	ErrStepAboveLimit = errors.New("counter step is greater than its limit")
)

// ThresholdSettings configures the threshold kind.
type ThresholdSettings struct {
	Threshold uint8
}

// Threshold reports whether its input is strictly greater than the threshold.
var Threshold = traits.Define[ThresholdSettings, traits.Val[uint32], traits.Val[bool]](
	"threshold",
	traits.NewSettings(
		traits.Field("threshold", traits.U8, func(s *ThresholdSettings) *uint8 { return &s.Threshold }),
	),
	traits.SingleInput[uint32](),
	traits.SingleOutput[bool](),
	func(ctx context.Context, s ThresholdSettings) (traits.Node[traits.Val[uint32], traits.Val[bool]], error) {
		return traits.NodeFunc[traits.Val[uint32], traits.Val[bool]](
			func(ctx context.Context, in traits.Val[uint32]) (traits.Val[bool], error) {
				return traits.Val[bool]{Val: in.Val > uint32(s.Threshold)}, nil
			}), nil
	},
)

// ClampBounds limits the ranges a clamp node accepts.
var ClampBounds = traits.NewRangeBounds[int32](-1_000_000, 1_000_000)

// ClampSettings configures the clamp kind.
type ClampSettings struct {
	Bounds traits.Range[int32]
}

// Clamp limits its input to the configured range.
var Clamp = traits.Define[ClampSettings, traits.Val[int32], traits.Val[int32]](
	"clamp",
	traits.NewSettings(
		traits.Field("bounds", ClampBounds, func(s *ClampSettings) *traits.Range[int32] { return &s.Bounds }),
	),
	traits.SingleInput[int32](),
	traits.SingleOutput[int32](),
	func(ctx context.Context, s ClampSettings) (traits.Node[traits.Val[int32], traits.Val[int32]], error) {
		return traits.NodeFunc[traits.Val[int32], traits.Val[int32]](
			func(ctx context.Context, in traits.Val[int32]) (traits.Val[int32], error) {
				return traits.Val[int32]{Val: s.Bounds.Clamp(in.Val)}, nil
			}), nil
	},
)

// ScaleSettings configures the scale kind.
type ScaleSettings struct {
	Factor float64
	Offset float32
}

// Scale computes val*factor + offset.
var Scale = traits.Define[ScaleSettings, traits.Val[float64], traits.Val[float64]](
	"scale",
	traits.NewSettings(
		traits.Field("factor", traits.F64, func(s *ScaleSettings) *float64 { return &s.Factor }),
		traits.Field("offset", traits.F32, func(s *ScaleSettings) *float32 { return &s.Offset }),
	),
	traits.SingleInput[float64](),
	traits.SingleOutput[float64](),
	func(ctx context.Context, s ScaleSettings) (traits.Node[traits.Val[float64], traits.Val[float64]], error) {
		if s.Factor == 0 {
			return nil, ErrZeroFactor
		}
		return traits.NodeFunc[traits.Val[float64], traits.Val[float64]](
			func(ctx context.Context, in traits.Val[float64]) (traits.Val[float64], error) {
				return traits.Val[float64]{Val: in.Val*s.Factor + float64(s.Offset)}, nil
			}), nil
	},
)

// CounterStep bounds the increment of a counter node.
var CounterStep = traits.NewConstraint[uint8](1, 100, true)

// CounterSettings configures the counter kind.
type CounterSettings struct {
	Step  traits.Constrained[uint8]
	Limit uint32
}

// CounterOutput is the output of the counter kind.
type CounterOutput struct {
	Count uint32
}

// Counter takes no input and emits step, 2*step, ... until the next count
// would pass limit; from then on every call fails with ErrCounterExhausted.
var Counter = traits.Define[CounterSettings, traits.Unit, CounterOutput](
	"counter",
	traits.NewSettings(
		traits.Field("step", CounterStep, func(s *CounterSettings) *traits.Constrained[uint8] { return &s.Step }),
		traits.Field("limit", traits.U32, func(s *CounterSettings) *uint32 { return &s.Limit }),
	),
	traits.NoInput,
	traits.NewOutputs(
		traits.Out("count", func(o *CounterOutput) *uint32 { return &o.Count }),
	),
	func(ctx context.Context, s CounterSettings) (traits.Node[traits.Unit, CounterOutput], error) {
		step := uint32(s.Step.Value())
		if step > s.Limit {
			return nil, fmt.Errorf("%w: step %d, limit %d", ErrStepAboveLimit, step, s.Limit)
		}
		return &counter{step: step, limit: s.Limit}, nil
	},
)

type counter struct {
	step, limit, count uint32
}

func (c *counter) Process(ctx context.Context, _ traits.Unit) (CounterOutput, error) {
	if c.limit-c.count < c.step {
		return CounterOutput{}, fmt.Errorf("%w at %d", ErrCounterExhausted, c.count)
	}
	c.count += c.step
	return CounterOutput{Count: c.count}, nil
}
