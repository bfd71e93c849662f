/*
Package traits lets node authors write ordinary statically typed settings,
input and output structs while giving an orchestrator, which knows none of
those types, a uniform way to introspect, construct and run the node.

Key features:
  - Self-describing setting types (Editable) including bounded integers
  - Declarative field tables instead of code generation
  - Type-erased construction from a JSON settings blob
  - Type-erased processing over map[string]any with one type check per field
  - Errors that always name the failing field

Declaring a node kind:

	type Settings struct{ Threshold uint8 }

	var Threshold = traits.Define[Settings, traits.Val[uint32], traits.Val[bool]](
		"threshold",
		traits.NewSettings(
			traits.Field("threshold", traits.U8, func(s *Settings) *uint8 { return &s.Threshold }),
		),
		traits.SingleInput[uint32](),
		traits.SingleOutput[bool](),
		func(ctx context.Context, s Settings) (traits.Node[traits.Val[uint32], traits.Val[bool]], error) {
			return traits.NodeFunc[traits.Val[uint32], traits.Val[bool]](
				func(ctx context.Context, in traits.Val[uint32]) (traits.Val[bool], error) {
					return traits.Val[bool]{Val: in.Val > uint32(s.Threshold)}, nil
				}), nil
		},
	)

Driving it without knowing its types:

	var f traits.Factory = Threshold
	schema := f.Schema()
	node, err := f.Make(ctx, `{"threshold": 5}`)
	out, err := node.Process(ctx, map[string]any{"val": uint32(13)})
	// out["val"] == true

Bounded integers:

	percent := traits.NewConstraint[uint8](0, 100, true)
	window := traits.NewRangeBounds[uint16](0, 1024)

Both are Editables and can be used in a settings table; declaring bounds with
min greater than max panics.

Instances are not safe for concurrent Process calls; the caller serializes
them. Values passed to Process are borrowed for the duration of the call.
*/
package traits
