package logging_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agentstation/traits/logging"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZap(zap.New(core))
	ctx := context.Background()

	logger.Debug(ctx, "debug message", "kind", "threshold", "count", 3)
	logger.Info(ctx, "info message")
	logger.Error(ctx, "error message", "error", errors.New("boom"))

	entries := logs.AllUntimed()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	tests := []struct {
		level zapcore.Level
		msg   string
	}{
		{zapcore.DebugLevel, "debug message"},
		{zapcore.InfoLevel, "info message"},
		{zapcore.ErrorLevel, "error message"},
	}
	for i, tt := range tests {
		if entries[i].Level != tt.level || entries[i].Message != tt.msg {
			t.Errorf("entry %d = %s %q, want %s %q", i, entries[i].Level, entries[i].Message, tt.level, tt.msg)
		}
	}

	fields := entries[0].ContextMap()
	if fields["kind"] != "threshold" {
		t.Errorf("kind = %v", fields["kind"])
	}
	if fields["count"] != int64(3) {
		t.Errorf("count = %v (%T)", fields["count"], fields["count"])
	}
	if got := entries[2].ContextMap()["error"]; got != "boom" {
		t.Errorf("error = %v", got)
	}
}

func TestZapLoggerOddPairs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.NewZap(zap.New(core)).Info(context.Background(), "odd", "kind", "x", "dangling")

	fields := logs.All()[0].ContextMap()
	if fields["kind"] != "x" {
		t.Errorf("kind = %v", fields["kind"])
	}
	if fields["!BADKEY"] != "dangling" {
		t.Errorf("dangling value = %v", fields["!BADKEY"])
	}
}

func TestNilAndNop(t *testing.T) {
	ctx := context.Background()
	logging.NewZap(nil).Info(ctx, "dropped")
	logging.Nop().Error(ctx, "dropped", "k", "v")
}
