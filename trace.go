package sdk

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/comanda-pos/sdk-go/headers"
)

// traceparentVersion is the W3C trace-context version emitted on outbound
// requests. The sampled flag is always set; the collector decides retention.
const traceparentVersion = "00"

// injectTraceparent propagates the active span, if any, to the backend so a
// slow order or payment can be followed across the terminal boundary.
func injectTraceparent(ctx context.Context, req *http.Request) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return
	}
	req.Header.Set(headers.Traceparent,
		fmt.Sprintf("%s-%s-%s-01", traceparentVersion, sc.TraceID().String(), sc.SpanID().String()))
}
