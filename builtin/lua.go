package builtin

import (
	"context"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/builtin/script"
)

// LuaSettings configures the lua kind. Entry is read from the "function" key.
type LuaSettings struct {
	Script string
	Entry  string
}

// Lua calls a function of a sandboxed Lua script with its input and emits the
// function's first result. The script runs once at construction; its globals
// persist across calls of one instance. Lua numbers come back as float64.
var Lua = traits.Define[LuaSettings, traits.Val[any], traits.Val[any]](
	"lua",
	traits.NewSettings(
		traits.Field("script", traits.String, func(s *LuaSettings) *string { return &s.Script }),
		traits.Field("entry", traits.String, func(s *LuaSettings) *string { return &s.Entry }, traits.Rename("function")),
	),
	traits.SingleInput[any](),
	traits.SingleOutput[any](),
	func(ctx context.Context, s LuaSettings) (traits.Node[traits.Val[any], traits.Val[any]], error) {
		prog, err := script.Compile(s.Script, s.Entry)
		if err != nil {
			return nil, err
		}
		return traits.NodeFunc[traits.Val[any], traits.Val[any]](
			func(ctx context.Context, in traits.Val[any]) (traits.Val[any], error) {
				out, err := prog.Call(ctx, in.Val)
				if err != nil {
					return traits.Val[any]{}, err
				}
				return traits.Val[any]{Val: out}, nil
			}), nil
	},
)
