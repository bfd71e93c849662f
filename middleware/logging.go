package middleware

import (
	"context"
	"time"

	"github.com/agentstation/traits"
)

// Logging adds structured logging around every Process call.
func Logging(logger traits.Logger) Middleware {
	return Wrap(func(kind string, next ProcessFunc) ProcessFunc {
		return func(ctx context.Context, values map[string]any) (map[string]any, error) {
			logger.Debug(ctx, "node process starting", "kind", kind, "inputs", len(values))
			start := time.Now()

			out, err := next(ctx, values)

			if err != nil {
				logger.Error(ctx, "node process failed",
					"kind", kind,
					"duration", time.Since(start),
					"phase", phaseOf(err),
					"error", err)
			} else {
				logger.Debug(ctx, "node process completed",
					"kind", kind,
					"duration", time.Since(start),
					"outputs", len(out))
			}

			return out, err
		}
	})
}
