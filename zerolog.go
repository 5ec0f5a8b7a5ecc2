package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ZerologHooks adapts TelemetryHooks onto a zerolog logger, for callers who
// want SDK events in their structured log stream without writing hooks by
// hand.
func ZerologHooks(logger zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnHTTPResponse: func(ctx context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration) {
			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt = evt.Str("method", req.Method).
				Str("url", req.URL.String()).
				Dur("latency", latency)
			if resp != nil {
				evt = evt.Int("status", resp.StatusCode)
			}
			evt.Msg("http request")
		},
		OnLogEntry: func(ctx context.Context, entry LogEntry) {
			evt := logger.Info()
			if entry.Level == LogLevelError {
				evt = logger.Error()
			}
			evt.Fields(entry.Fields).Msg(entry.Message)
		},
	}
}
