package traits_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/agentstation/traits"
)

type greetSettings struct {
	Greeting string
	Repeat   traits.Constrained[uint8]
}

// ExampleDefine declares a node kind and drives it through its erased form.
func ExampleDefine() {
	greet := traits.Define[greetSettings, traits.Val[string], traits.Val[string]](
		"greet",
		traits.NewSettings(
			traits.Field("greeting", traits.String, func(s *greetSettings) *string { return &s.Greeting }),
			traits.Field("repeat", traits.NewConstraint[uint8](1, 3, true), func(s *greetSettings) *traits.Constrained[uint8] { return &s.Repeat }),
		),
		traits.SingleInput[string](),
		traits.SingleOutput[string](),
		func(ctx context.Context, s greetSettings) (traits.Node[traits.Val[string], traits.Val[string]], error) {
			return traits.NodeFunc[traits.Val[string], traits.Val[string]](
				func(ctx context.Context, in traits.Val[string]) (traits.Val[string], error) {
					out := ""
					for i := uint8(0); i < s.Repeat.Value(); i++ {
						out += s.Greeting + " "
					}
					return traits.Val[string]{Val: out + in.Val}, nil
				}), nil
		},
	)

	ctx := context.Background()
	node, err := greet.Make(ctx, `{"greeting": "hello", "repeat": 2}`)
	if err != nil {
		log.Fatal(err)
	}

	out, err := node.Process(ctx, map[string]any{"val": "world"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out["val"])
	// Output: hello hello world
}

// ExampleCreationError shows how a settings failure identifies its field.
func ExampleCreationError() {
	_, err := thresholdKind().Make(context.Background(), `{"threshold": 300}`)

	var ce *traits.CreationError
	if errors.As(err, &ce) {
		fmt.Println(ce.Phase)
	}
	var de *traits.DeserializationError
	if errors.As(err, &de) {
		fmt.Println(de.Field)
	}
	fmt.Println(errors.Is(err, traits.ErrOutOfRange))
	// Output:
	// settings
	// threshold
	// true
}

// ExampleRangeBounds declares bounds for a range setting.
func ExampleRangeBounds() {
	bounds := traits.NewRangeBounds[int16](-100, 100)

	r, err := bounds.Deserialize(map[string]any{"min": int64(-5), "max": int64(5)})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(r.Clamp(42), r.Contains(0))

	_, err = bounds.Deserialize(map[string]any{"min": int64(5), "max": int64(-5)})
	fmt.Println(errors.Is(err, traits.ErrInvertedRange))
	// Output:
	// 5 true
	// true
}
