package cli

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerFromContextFallback(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	l := newLogger(io.Discard, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("context did not return the stored logger")
	}
}

func TestProgressDone(t *testing.T) {
	l := newLogger(io.Discard, log.DebugLevel)
	p := newProgress(l)
	p.done("step")
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
