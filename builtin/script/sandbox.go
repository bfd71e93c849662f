package script

import (
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// removed lists base functions that reach the file system or load code.
var removed = []string{"dofile", "loadfile", "load", "loadstring", "require", "print", "collectgarbage"}

// sandbox opens the pure libraries and installs the helper functions.
func sandbox(l *lua.State) {
	for _, lib := range []struct {
		name string
		open lua.Function
	}{
		{"_G", lua.BaseOpen},
		{"string", lua.StringOpen},
		{"table", lua.TableOpen},
		{"math", lua.MathOpen},
	} {
		lua.Require(l, lib.name, lib.open, true)
		l.Pop(1)
	}

	for _, name := range removed {
		l.PushNil()
		l.SetGlobal(name)
	}

	l.Register("json_encode", jsonEncode)
	l.Register("json_decode", jsonDecode)
	l.Register("str_trim", strTrim)
	l.Register("str_split", strSplit)
}

func jsonEncode(l *lua.State) int {
	l.PushString(oj.JSON(pull(l, 1), &ojg.Options{Sort: true}))
	return 1
}

func jsonDecode(l *lua.State) int {
	v, err := oj.ParseString(lua.CheckString(l, 1))
	if err != nil {
		l.PushNil()
		l.PushString(err.Error())
		return 2
	}
	push(l, v)
	return 1
}

func strTrim(l *lua.State) int {
	l.PushString(strings.TrimSpace(lua.CheckString(l, 1)))
	return 1
}

func strSplit(l *lua.State) int {
	parts := strings.Split(lua.CheckString(l, 1), lua.CheckString(l, 2))
	l.CreateTable(len(parts), 0)
	for i, part := range parts {
		l.PushString(part)
		l.RawSetInt(-2, i+1)
	}
	return 1
}
