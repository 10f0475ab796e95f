package eventx_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	. "github.com/comalice/eventx"
)

func TestWithLoggerAndName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ev := New[string](WithName("orders"), WithLogger(logger))
	ctx := context.Background()

	if err := ev.Invoke(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if err := ev.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "round complete") {
		t.Errorf("log should record the round: %q", out)
	}
	if !strings.Contains(out, "event=orders") {
		t.Errorf("log should carry the event name: %q", out)
	}
	if !strings.Contains(out, "cleared") {
		t.Errorf("log should record the clear: %q", out)
	}
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	// No logger configured: operations must not panic or emit anywhere.
	ev := New[string]()
	ctx := context.Background()

	if err := ev.Invoke(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if err := ev.Clear(ctx); err != nil {
		t.Fatal(err)
	}
}
