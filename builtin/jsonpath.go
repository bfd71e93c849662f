package builtin

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/agentstation/traits"
)

// JSONPathSettings configures the jsonpath kind.
type JSONPathSettings struct {
	Path     string
	Multiple bool
}

// JSONPath extracts data from its input with a JSONPath expression compiled
// at construction. With multiple set the output is every match as a []any,
// otherwise the first match or nil.
var JSONPath = traits.Define[JSONPathSettings, traits.Val[any], traits.Val[any]](
	"jsonpath",
	traits.NewSettings(
		traits.Field("path", traits.String, func(s *JSONPathSettings) *string { return &s.Path }),
		traits.Field("multiple", traits.Bool, func(s *JSONPathSettings) *bool { return &s.Multiple }),
	),
	traits.SingleInput[any](),
	traits.SingleOutput[any](),
	func(ctx context.Context, s JSONPathSettings) (traits.Node[traits.Val[any], traits.Val[any]], error) {
		expr, err := jp.ParseString(s.Path)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONPath expression %q: %w", s.Path, err)
		}
		return &jsonPath{expr: expr, multiple: s.Multiple}, nil
	},
)

type jsonPath struct {
	expr     jp.Expr
	multiple bool
}

func (n *jsonPath) Process(ctx context.Context, in traits.Val[any]) (traits.Val[any], error) {
	results := n.expr.Get(in.Val)

	if n.multiple {
		if results == nil {
			results = []any{}
		}
		return traits.Val[any]{Val: results}, nil
	}
	if len(results) == 0 {
		return traits.Val[any]{}, nil
	}
	return traits.Val[any]{Val: results[0]}, nil
}
