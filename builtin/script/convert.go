package script

import (
	"github.com/Shopify/go-lua"
	"github.com/ohler55/ojg/oj"
)

// push converts a Go value to Lua. Integers become Lua numbers; values of
// other types are pushed as their JSON encoding.
func push(l *lua.State, v any) {
	switch val := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(val)
	case string:
		l.PushString(val)
	case int:
		l.PushInteger(val)
	case int8:
		l.PushInteger(int(val))
	case int16:
		l.PushInteger(int(val))
	case int32:
		l.PushInteger(int(val))
	case int64:
		l.PushNumber(float64(val))
	case uint8:
		l.PushInteger(int(val))
	case uint16:
		l.PushInteger(int(val))
	case uint32:
		l.PushNumber(float64(val))
	case uint64:
		l.PushNumber(float64(val))
	case float32:
		l.PushNumber(float64(val))
	case float64:
		l.PushNumber(val)
	case []any:
		l.CreateTable(len(val), 0)
		for i, item := range val {
			push(l, item)
			l.RawSetInt(-2, i+1)
		}
	case map[string]any:
		l.CreateTable(0, len(val))
		for k, item := range val {
			push(l, item)
			l.SetField(-2, k)
		}
	default:
		l.PushString(jsonString(val))
	}
}

// pull converts the Lua value at idx to Go. Numbers become float64; a table
// whose keys are exactly 1..n becomes a []any, any other table a
// map[string]any.
func pull(l *lua.State, idx int) any {
	switch l.TypeOf(idx) {
	case lua.TypeBoolean:
		return l.ToBoolean(idx)
	case lua.TypeNumber:
		n, _ := l.ToNumber(idx)
		return n
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return s
	case lua.TypeTable:
		return pullTable(l, l.AbsIndex(idx))
	default:
		return nil
	}
}

func pullTable(l *lua.State, idx int) any {
	n := l.RawLength(idx)
	keys := 0
	l.PushNil()
	for l.Next(idx) {
		keys++
		l.Pop(1)
	}

	if n > 0 && keys == n {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			l.RawGetInt(idx, i)
			arr[i-1] = pull(l, -1)
			l.Pop(1)
		}
		return arr
	}

	obj := make(map[string]any, keys)
	l.PushNil()
	for l.Next(idx) {
		// ToString would convert a number key in place and confuse Next.
		l.PushValue(-2)
		key, _ := l.ToString(-1)
		l.Pop(1)
		obj[key] = pull(l, -1)
		l.Pop(1)
	}
	return obj
}

func jsonString(v any) string {
	return oj.JSON(v)
}
