package traits_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/ohler55/ojg/oj"

	"github.com/agentstation/traits"
	"github.com/agentstation/traits/internal/testutil"
)

func encode(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %v: %v", v, err)
	}
	parsed, err := oj.ParseString(string(data))
	if err != nil {
		t.Fatalf("parse %s: %v", data, err)
	}
	return parsed
}

func roundTrip[T comparable](t *testing.T, ed traits.Editable[T], values ...T) {
	t.Helper()
	for _, v := range values {
		got, err := ed.Deserialize(encode(t, v))
		if err != nil {
			t.Errorf("%s: Deserialize(%v) failed: %v", ed.Schema().Name, v, err)
			continue
		}
		if got != v {
			t.Errorf("%s: Deserialize(%v) = %v", ed.Schema().Name, v, got)
		}
	}
}

func TestEditableRoundTrip(t *testing.T) {
	roundTrip(t, traits.U8, 0, 1, 127, math.MaxUint8)
	roundTrip(t, traits.U16, 0, 300, math.MaxUint16)
	roundTrip(t, traits.U32, 0, 70000, math.MaxUint32)
	roundTrip(t, traits.I8, math.MinInt8, -1, 0, math.MaxInt8)
	roundTrip(t, traits.I16, math.MinInt16, 0, math.MaxInt16)
	roundTrip(t, traits.I32, math.MinInt32, 0, math.MaxInt32)
	roundTrip(t, traits.F32, 0, 1.5, -2.25, 1024)
	roundTrip(t, traits.F64, 0, 0.5, -1234.5, 1e10)
	roundTrip(t, traits.Bool, true, false)
	roundTrip(t, traits.String, "", "hello", "ünïcode")
}

func TestEditableRejects(t *testing.T) {
	tests := []struct {
		name  string
		run   func() error
		errIs error
	}{
		{"u8 above max", func() error { _, err := traits.U8.Deserialize(int64(256)); return err }, traits.ErrOutOfRange},
		{"u8 negative", func() error { _, err := traits.U8.Deserialize(int64(-1)); return err }, traits.ErrOutOfRange},
		{"i8 below min", func() error { _, err := traits.I8.Deserialize(int64(-129)); return err }, traits.ErrOutOfRange},
		{"u32 above max", func() error { _, err := traits.U32.Deserialize(int64(math.MaxUint32 + 1)); return err }, traits.ErrOutOfRange},
		{"u16 fractional", func() error { _, err := traits.U16.Deserialize(1.5); return err }, traits.ErrWrongKind},
		{"i32 string", func() error { _, err := traits.I32.Deserialize("12"); return err }, traits.ErrWrongKind},
		{"i16 bool", func() error { _, err := traits.I16.Deserialize(true); return err }, traits.ErrWrongKind},
		{"u8 absent", func() error { _, err := traits.U8.Deserialize(nil); return err }, traits.ErrAbsent},
		{"f32 overflow", func() error { _, err := traits.F32.Deserialize(1e40); return err }, traits.ErrOutOfRange},
		{"f32 underflow", func() error { _, err := traits.F32.Deserialize(1e-60); return err }, traits.ErrOutOfRange},
		{"f32 negative underflow", func() error { _, err := traits.F32.Deserialize(-1e-60); return err }, traits.ErrOutOfRange},
		{"f64 string", func() error { _, err := traits.F64.Deserialize("1.0"); return err }, traits.ErrWrongKind},
		{"bool number", func() error { _, err := traits.Bool.Deserialize(int64(1)); return err }, traits.ErrWrongKind},
		{"string absent", func() error { _, err := traits.String.Deserialize(nil); return err }, traits.ErrAbsent},
		{"string number", func() error { _, err := traits.String.Deserialize(int64(5)); return err }, traits.ErrWrongKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tt.errIs) {
				t.Fatalf("expected %v, got %v", tt.errIs, err)
			}
			var ve *traits.ValueError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValueError, got %T", err)
			}
		})
	}
}

func TestEditableAcceptsIntegralFloats(t *testing.T) {
	got, err := traits.U8.Deserialize(5.0)
	if err != nil || got != 5 {
		t.Fatalf("U8.Deserialize(5.0) = %v, %v", got, err)
	}
	f, err := traits.F64.Deserialize(int64(7))
	if err != nil || f != 7 {
		t.Fatalf("F64.Deserialize(7) = %v, %v", f, err)
	}
	n, err := traits.I32.Deserialize(json.Number("-42"))
	if err != nil || n != -42 {
		t.Fatalf("I32.Deserialize(json.Number) = %v, %v", n, err)
	}
}

func TestEditableSchema(t *testing.T) {
	tests := []struct {
		schema traits.SettingType
		name   string
		params map[string]any
	}{
		{traits.U8.Schema(), "u8", map[string]any{"min": int64(0), "max": int64(255)}},
		{traits.U16.Schema(), "u16", map[string]any{"min": int64(0), "max": int64(65535)}},
		{traits.U32.Schema(), "u32", map[string]any{"min": int64(0), "max": int64(4294967295)}},
		{traits.I8.Schema(), "i8", map[string]any{"min": int64(-128), "max": int64(127)}},
		{traits.I16.Schema(), "i16", map[string]any{"min": int64(-32768), "max": int64(32767)}},
		{traits.I32.Schema(), "i32", map[string]any{"min": int64(math.MinInt32), "max": int64(math.MaxInt32)}},
		{traits.F64.Schema(), "f64", map[string]any{"min": -math.MaxFloat64, "max": math.MaxFloat64}},
		{traits.Bool.Schema(), "bool", map[string]any{}},
		{traits.String.Schema(), "string", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.schema.Name != tt.name {
				t.Errorf("name = %q, want %q", tt.schema.Name, tt.name)
			}
			if len(tt.schema.Params) != len(tt.params) {
				t.Fatalf("params = %v, want %v", tt.schema.Params, tt.params)
			}
			for k, want := range tt.params {
				if got := tt.schema.Params[k]; got != want {
					t.Errorf("param %s = %v (%T), want %v (%T)", k, got, got, want, want)
				}
			}
		})
	}
}

func TestFloatSmallValues(t *testing.T) {
	assert := testutil.NewAssert(t)

	f, err := traits.F32.Deserialize(float64(0))
	assert.NoError(err)
	assert.Equal(float32(0), f)

	f, err = traits.F32.Deserialize(1e-30)
	assert.NoError(err)
	assert.True(f > 0, "1e-30 is representable as a float32")

	d, err := traits.F64.Deserialize(1e-300)
	assert.NoError(err)
	assert.Equal(1e-300, d)
}
