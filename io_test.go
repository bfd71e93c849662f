package traits_test

import (
	"errors"
	"testing"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/internal/testutil"
)

type sample struct {
	Name  string
	Count int
}

type pairInput struct {
	Left  uint32
	Right *sample
}

func pairInputs() *traits.Inputs[pairInput] {
	return traits.NewInputs(
		traits.In("left", func(i *pairInput) *uint32 { return &i.Left }),
		traits.In("Right", func(i *pairInput) **sample { return &i.Right }, traits.Rename("right")),
	)
}

func TestInputsFromMap(t *testing.T) {
	s := &sample{Name: "x", Count: 2}
	got, err := pairInputs().FromMap(map[string]any{"left": uint32(7), "right": s, "extra": "ignored"})

	assert := testutil.NewAssert(t)
	assert.NoError(err)
	assert.Equal(uint32(7), got.Left)
	assert.True(got.Right == s, "pointer inputs must refer to the caller's value")
}

func TestInputsFromMapErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		errIs  error
		field  string
	}{
		{"missing left", map[string]any{"right": &sample{}}, traits.ErrMissingField, "left"},
		{"nil map", nil, traits.ErrMissingField, "left"},
		{"left wrong width", map[string]any{"left": uint64(7), "right": &sample{}}, traits.ErrTypeMismatch, "left"},
		{"left int", map[string]any{"left": 7, "right": &sample{}}, traits.ErrTypeMismatch, "left"},
		{"right by value", map[string]any{"left": uint32(7), "right": sample{}}, traits.ErrTypeMismatch, "right"},
		{"right nil", map[string]any{"left": uint32(7), "right": nil}, traits.ErrTypeMismatch, "right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pairInputs().FromMap(tt.values)
			if !errors.Is(err, tt.errIs) {
				t.Fatalf("expected %v, got %v", tt.errIs, err)
			}
			de := testutil.ErrorAs[*traits.DeserializationError](t, err)
			if de.Field != tt.field {
				t.Errorf("field = %q, want %q", de.Field, tt.field)
			}
		})
	}
}

func TestInputOutputSchema(t *testing.T) {
	assert := testutil.NewAssert(t)

	assert.Equal(map[string]traits.Type{
		"left":  {Name: "uint32"},
		"right": {Name: "*traits_test.sample"},
	}, pairInputs().Schema())

	assert.Equal(map[string]traits.Type{"val": {Name: "bool"}}, traits.SingleOutput[bool]().Schema())
	assert.Equal(map[string]traits.Type{"val": {Name: "interface {}"}}, traits.SingleInput[any]().Schema())
	assert.Len(traits.NoInput.Schema(), 0)
	assert.Len(traits.NoOutput.Schema(), 0)
}

func TestSingleRoundTrip(t *testing.T) {
	assert := testutil.NewAssert(t)

	values := traits.SingleOutput[float64]().ToMap(traits.Val[float64]{Val: 0.1 + 0.2})
	assert.Len(values, 1)

	got, err := traits.SingleInput[float64]().FromMap(values)
	assert.NoError(err)
	assert.Equal(0.1+0.2, got.Val)

	st := sample{Name: "struct", Count: 3}
	back, err := traits.SingleInput[sample]().FromMap(traits.SingleOutput[sample]().ToMap(traits.Val[sample]{Val: st}))
	assert.NoError(err)
	assert.Equal(st, back.Val)
}

type multiOutput struct {
	Sum   int64
	Label string
}

func TestOutputsToMap(t *testing.T) {
	outputs := traits.NewOutputs(
		traits.Out("sum", func(o *multiOutput) *int64 { return &o.Sum }),
		traits.Out("Label", func(o *multiOutput) *string { return &o.Label }, traits.Rename("label")),
	)

	assert := testutil.NewAssert(t)
	assert.Equal(map[string]any{"sum": int64(42), "label": "answer"}, outputs.ToMap(multiOutput{Sum: 42, Label: "answer"}))
	assert.Equal(map[string]traits.Type{"sum": {Name: "int64"}, "label": {Name: "string"}}, outputs.Schema())
}

func TestUnitInputOutput(t *testing.T) {
	assert := testutil.NewAssert(t)

	_, err := traits.NoInput.FromMap(nil)
	assert.NoError(err)
	_, err = traits.NoInput.FromMap(map[string]any{"x": 1})
	assert.NoError(err)
	assert.Len(traits.NoOutput.ToMap(traits.Unit{}), 0)
}

func TestIOTableDeclarationPanics(t *testing.T) {
	assert := testutil.NewAssert(t)

	assert.Panics(func() {
		traits.NewInputs(
			traits.In("a", func(i *pairInput) *uint32 { return &i.Left }),
			traits.In("b", func(i *pairInput) **sample { return &i.Right }, traits.Rename("a")),
		)
	})
	assert.Panics(func() {
		traits.Out("sum", func(o *multiOutput) *int64 { return &o.Sum }, traits.Rename("a"), traits.Rename("b"))
	})
	assert.Panics(func() {
		traits.In[pairInput, uint32]("a", nil)
	})
}

func TestInterfaceInputAcceptsNil(t *testing.T) {
	assert := testutil.NewAssert(t)

	got, err := traits.SingleInput[any]().FromMap(map[string]any{"val": nil})
	assert.NoError(err)
	assert.True(got.Val == nil, "expected a nil value")

	out := traits.SingleOutput[any]().ToMap(traits.Val[any]{})
	back, err := traits.SingleInput[any]().FromMap(out)
	assert.NoError(err)
	assert.True(back.Val == nil, "nil output must round-trip")

	type errInput struct{ Err error }
	inputs := traits.NewInputs(traits.In("err", func(i *errInput) *error { return &i.Err }))
	_, err = inputs.FromMap(map[string]any{"err": nil})
	assert.NoError(err)

	_, err = inputs.FromMap(map[string]any{})
	assert.ErrorIs(err, traits.ErrMissingField)

	_, err = traits.SingleInput[*sample]().FromMap(map[string]any{"val": nil})
	assert.ErrorIs(err, traits.ErrTypeMismatch)
	_, err = traits.SingleInput[int64]().FromMap(map[string]any{"val": nil})
	assert.ErrorIs(err, traits.ErrTypeMismatch)
}
