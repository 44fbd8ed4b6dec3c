package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/observability/tracing"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		logCtx := log.With().Str("path", r.URL.Path).Str("method", r.Method)

		// Attach traceId and caller into each log within the request chain
		if traceId := tracing.TraceId(r.Context()); traceId != "" {
			logCtx = logCtx.Str("traceId", traceId)
		}
		if caller := CallerFromContext(r.Context()); caller != "" {
			logCtx = logCtx.Str("caller", caller)
		}
		logger := logCtx.Logger()

		logger.Debug().Msg("request received")
		r = r.WithContext(logger.WithContext(r.Context()))

		next.ServeHTTP(w, r)

		logEvent := logger.Info()
		if tracingInfo, ok := r.Context().Value(tracing.TracingInfoKey).(*tracing.TracingInfo); ok {
			if spans := tracingInfo.Spans(); len(spans) > 0 {
				logEvent = logEvent.Interface("spans", spans)
			}
		}

		logEvent.Int64("requestDuration", time.Since(startTime).Milliseconds()).Msg("Request completed")
	})
}
