package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/traits"
)

// Timeout gives every Process call a context deadline. The node runs on the
// caller's goroutine and is expected to honor ctx; the call is never
// abandoned, so an instance is never processed concurrently.
func Timeout(duration time.Duration) Middleware {
	return Wrap(func(kind string, next ProcessFunc) ProcessFunc {
		return func(ctx context.Context, values map[string]any) (map[string]any, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, duration)
			defer cancel()
			return next(timeoutCtx, values)
		}
	})
}

// Recover converts a panic inside Process into an execute-phase error.
func Recover() Middleware {
	return Wrap(func(kind string, next ProcessFunc) ProcessFunc {
		return func(ctx context.Context, values map[string]any) (out map[string]any, err error) {
			defer func() {
				if r := recover(); r != nil {
					out, err = nil, panicError(kind, r)
				}
			}()
			return next(ctx, values)
		}
	})
}

func panicError(kind string, r any) error {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", r)
	} else {
		err = fmt.Errorf("panic: %w", err)
	}
	return &traits.ProcessingError{Node: kind, Phase: traits.PhaseExecute, Err: err}
}
