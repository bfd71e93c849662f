// Package script runs sandboxed Lua functions for the lua node kind.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shopify/go-lua"
)

// ErrNotFunction is returned when the entry global of a script is not a function.
var ErrNotFunction = errors.New("script: entry is not a function")

// Program is a loaded script with one entry function. A Program owns its Lua
// state; globals written by one call are visible to the next. It is not safe
// for concurrent use.
type Program struct {
	state *lua.State
	entry string
}

// Compile runs source once in a fresh sandbox and checks that it defines a
// global function named entry.
func Compile(source, entry string) (*Program, error) {
	if entry == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFunction)
	}

	l := lua.NewState()
	sandbox(l)

	if err := lua.DoString(l, source); err != nil {
		return nil, fmt.Errorf("script error: %w", err)
	}
	l.SetTop(0)

	l.Global(entry)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeFunction {
		return nil, fmt.Errorf("%w: %q is a %s", ErrNotFunction, entry, lua.TypeNameOf(l, -1))
	}

	return &Program{state: l, entry: entry}, nil
}

// Entry returns the name of the called function.
func (p *Program) Entry() string { return p.entry }

// Call invokes the entry function with arg and returns its first result.
func (p *Program) Call(ctx context.Context, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := p.state
	l.SetTop(0)
	l.Global(p.entry)
	push(l, arg)
	if err := l.ProtectedCall(1, 1, 0); err != nil {
		l.SetTop(0)
		return nil, fmt.Errorf("%s: %w", p.entry, err)
	}

	result := pull(l, -1)
	l.SetTop(0)
	return result, nil
}
