package telemetry

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown, err := InitTracer(Options{ServiceName: "hackathon-test", Writer: &buf, Sync: true}, logger)
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "register-team")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "register-team") {
		t.Errorf("exported spans missing span name: %s", out)
	}
	if !strings.Contains(out, "hackathon-test") {
		t.Errorf("exported spans missing service name: %s", out)
	}
}

func TestNoop(t *testing.T) {
	if err := Noop(context.Background()); err != nil {
		t.Errorf("Noop() error = %v", err)
	}
}
