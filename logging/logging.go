// Package logging provides traits.Logger implementations.
package logging

import (
	"context"

	"go.uber.org/zap"

	"github.com/agentstation/traits"
)

type zapLogger struct {
	logger *zap.Logger
}

// NewZap adapts a zap logger. Key/value pairs become zap fields; a trailing
// key without a value is logged under "!BADKEY".
func NewZap(logger *zap.Logger) traits.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapLogger{logger: logger}
}

func (l *zapLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.logger.Debug(msg, fields(keysAndValues)...)
}

func (l *zapLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.logger.Info(msg, fields(keysAndValues)...)
}

func (l *zapLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.logger.Error(msg, fields(keysAndValues)...)
}

func fields(keysAndValues []any) []zap.Field {
	out := make([]zap.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		if i+1 >= len(keysAndValues) {
			out = append(out, zap.Any("!BADKEY", keysAndValues[i]))
			break
		}
		if err, isErr := keysAndValues[i+1].(error); isErr {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, keysAndValues[i+1]))
	}
	return out
}

type nop struct{}

// Nop returns a logger that discards everything.
func Nop() traits.Logger { return nop{} }

func (nop) Debug(context.Context, string, ...any) {}
func (nop) Info(context.Context, string, ...any)  {}
func (nop) Error(context.Context, string, ...any) {}
