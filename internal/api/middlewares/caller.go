package middlewares

import (
	"context"
	"net/http"
	"strings"
)

// CallerHeader carries the account id authenticated by the upstream gateway.
const CallerHeader = "X-Account-Id"

type callerContextKey struct{}

func CallerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := strings.TrimSpace(r.Header.Get(CallerHeader))
		if caller != "" {
			r = r.WithContext(context.WithValue(r.Context(), callerContextKey{}, caller))
		}
		next.ServeHTTP(w, r)
	})
}

func CallerFromContext(ctx context.Context) string {
	caller, _ := ctx.Value(callerContextKey{}).(string)
	return caller
}
