package middlewares

import (
	"net/http"

	"github.com/babylonchain/restaking-ledger-service/internal/observability/tracing"
)

const TraceIdHeader = "X-Trace-Id"

func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.AttachTracingIntoContext(r.Context())
		w.Header().Set(TraceIdHeader, tracing.TraceId(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
