package traits

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/ohler55/ojg/oj"
)

// parseObject parses a settings blob and requires an object at the top level.
func parseObject(blob string) (map[string]any, error) {
	v, err := oj.ParseString(blob)
	if err != nil {
		return nil, notObject(err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, notObject(nil)
	}
	return obj, nil
}

// toInt64 extracts an integer from a generic structured value.
// Integral floats are accepted; strings and booleans are not. A literal that
// underflows to 0.0 while parsing, such as 1e-400, arrives here as 0 and is
// accepted as such; the parser has already discarded its magnitude.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, ErrAbsent
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, ErrOutOfRange
		}
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, ErrOutOfRange
		}
		return int64(n), nil
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, ErrWrongKind
		}
		return floatToInt64(f)
	default:
		return 0, ErrWrongKind
	}
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrWrongKind
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, ErrOutOfRange
	}
	return int64(f), nil
}

// toFloat64 extracts a float from a generic structured value.
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, ErrAbsent
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, ErrWrongKind
		}
		return f, nil
	default:
		i, err := toInt64(v)
		if err != nil {
			return 0, ErrWrongKind
		}
		return float64(i), nil
	}
}
