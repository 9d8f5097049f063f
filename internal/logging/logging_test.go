package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewJSONIncludesFieldsAndFrame(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})

	ctx := ContextWithFrame(context.Background(), 42)
	log.With(String("body", "mars")).Warn(ctx, "fallback", Float("scale", 15), Err(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
	}
	if rec["msg"] != "fallback" {
		t.Fatalf("msg = %v, want fallback", rec["msg"])
	}
	if rec["body"] != "mars" {
		t.Fatalf("body = %v, want mars", rec["body"])
	}
	if rec["error"] != "boom" {
		t.Fatalf("error = %v, want boom", rec["error"])
	}
	if rec["frame"] != float64(42) {
		t.Fatalf("frame = %v, want 42", rec["frame"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	log.Error(context.Background(), "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if _, ok := LoggerFromContext(context.Background(), nil).(noopLogger); !ok {
		t.Fatalf("expected noop logger when nothing is stored")
	}

	stored := New(Config{})
	ctx := ContextWithLogger(context.Background(), stored)
	if got := LoggerFromContext(ctx, Noop()); got != stored {
		t.Fatalf("LoggerFromContext returned %v, want stored logger", got)
	}
}

func TestFrameFromContextMissing(t *testing.T) {
	if _, ok := FrameFromContext(context.Background()); ok {
		t.Fatalf("expected no frame on empty context")
	}
}
