package sdk

import (
	"context"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/comanda-pos/sdk-go/headers"
)

func TestInjectTraceparent(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	if err != nil {
		t.Fatalf("trace id: %v", err)
	}
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	if err != nil {
		t.Fatalf("span id: %v", err)
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	req := httptest.NewRequest("GET", "http://localhost/api/products", nil)
	injectTraceparent(ctx, req)
	want := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	if got := req.Header.Get(headers.Traceparent); got != want {
		t.Fatalf("traceparent = %q, want %q", got, want)
	}
}

func TestInjectTraceparentNoSpan(t *testing.T) {
	req := httptest.NewRequest("GET", "http://localhost/api/products", nil)
	injectTraceparent(context.Background(), req)
	if got := req.Header.Get(headers.Traceparent); got != "" {
		t.Fatalf("traceparent = %q, want unset without an active span", got)
	}
}
