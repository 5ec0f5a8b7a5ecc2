// Package headers defines HTTP header constants used by the POS client.
// This is the single source of truth for header names on outbound requests.
package headers

const (
	// RequestID correlates a request across client telemetry and the
	// backend's audit log. The same id is reused when a request is replayed
	// after a token refresh.
	RequestID = "X-Comanda-Request-Id"

	// Traceparent carries W3C trace context to the backend when an
	// OpenTelemetry span is active on the request's context.
	Traceparent = "Traceparent"
)
