// Package testutil bridges slog output into the test log.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger whose records land in t.Log,
// so handler and store log lines show up interleaved with test output on
// failure or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
