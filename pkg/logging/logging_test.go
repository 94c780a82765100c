package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	cases := []struct {
		name  string
		level string
		check slog.Level
		want  bool
	}{
		{name: "debug enables debug", level: "debug", check: slog.LevelDebug, want: true},
		{name: "info disables debug", level: "info", check: slog.LevelDebug, want: false},
		{name: "warn enables warn", level: "warn", check: slog.LevelWarn, want: true},
		{name: "warn disables info", level: "WARN", check: slog.LevelInfo, want: false},
		{name: "error disables warn", level: "error", check: slog.LevelWarn, want: false},
		{name: "unknown defaults to info", level: "trace", check: slog.LevelInfo, want: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			logger := New(tc.level, &bytes.Buffer{})
			if logger == nil {
				t.Fatalf("expected logger instance")
			}
			got := logger.Enabled(ctx, tc.check)
			if got != tc.want {
				t.Fatalf("Enabled(%v) = %t, want %t", tc.check, got, tc.want)
			}
		})
	}
}

func TestNewWritesText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New("debug", &buf).Debug("request", "method", "GET")

	out := buf.String()
	if !strings.Contains(out, "msg=request") || !strings.Contains(out, "method=GET") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("discard logger must not enable any level")
	}
}
