package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type TracingContextKey string

const TracingInfoKey = TracingContextKey("requestTracingInfo")
const TraceIdKey = TracingContextKey("requestTraceId")

// SpanDetail records one external call made while serving a request.
type SpanDetail struct {
	Name     string `json:"name"`
	Duration int64  `json:"duration_ms"`
	Failed   bool   `json:"failed,omitempty"`
}

type TracingInfo struct {
	mu          sync.Mutex
	SpanDetails []SpanDetail `json:"spans"`
}

func (t *TracingInfo) addSpanDetail(detail SpanDetail) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.SpanDetails = append(t.SpanDetails, detail)
}

// Spans returns a copy of the spans recorded so far.
func (t *TracingInfo) Spans() []SpanDetail {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]SpanDetail{}, t.SpanDetails...)
}

// AttachTracingIntoContext gives the request a trace id and an empty span list.
func AttachTracingIntoContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, TraceIdKey, uuid.NewString())
	return context.WithValue(ctx, TracingInfoKey, &TracingInfo{})
}

func TraceId(ctx context.Context) string {
	traceId, _ := ctx.Value(TraceIdKey).(string)
	return traceId
}

// WrapWithSpan times next as a span of the request in ctx. Without tracing
// info in ctx, next simply runs.
func WrapWithSpan[Result any](ctx context.Context, name string, next func() (Result, error)) (Result, error) {
	tracingInfo, _ := ctx.Value(TracingInfoKey).(*TracingInfo)

	startTime := time.Now()
	result, err := next()
	if tracingInfo != nil {
		tracingInfo.addSpanDetail(SpanDetail{
			Name:     name,
			Duration: time.Since(startTime).Milliseconds(),
			Failed:   err != nil,
		})
	}
	return result, err
}
