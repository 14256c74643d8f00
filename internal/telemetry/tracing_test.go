package telemetry

import (
	"context"
	"testing"
)

func TestInitTracing_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), "", "test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected no-op shutdown, got %v", err)
	}
}
