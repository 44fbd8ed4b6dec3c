package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/config"
)

type Outcome string

const (
	Success    Outcome = "success"
	Error      Outcome = "error"
	RolledBack Outcome = "rolled_back"
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)
	workflowOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_outcome_total",
			Help: "Number of finished ledger workflows by outcome and the stage they ended at.",
		},
		[]string{"workflow", "stage", "outcome"},
	)
	externalCallDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_call_duration_seconds",
			Help:    "Histogram of calls to external collaborators in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"client", "operation", "outcome"},
	)
	poolLockContentionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pool_lock_contention_total",
			Help: "Number of workflows refused because the staking pool was locked.",
		},
		[]string{"workflow"},
	)
	eventPublishFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_publish_failure_total",
			Help: "Number of ledger events that could not be published to the event queue.",
		},
		[]string{"event"},
	)
)

// Init registers the collectors and serves them as configured.
func Init(cfg config.MetricsConfig) {
	once.Do(func() {
		initMetricsRouter(cfg)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(cfg config.MetricsConfig) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get(cfg.GetPath(), func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	go func() {
		metricsAddr := cfg.GetAddress()
		err := http.ListenAndServe(metricsAddr, metricsRouter)
		if err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		httpRequestDurationHistogram,
		workflowOutcomeCounter,
		externalCallDurationHistogram,
		poolLockContentionCounter,
		eventPublishFailureCounter,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

// StartExternalCallDurationTimer measures one call to an external collaborator.
func StartExternalCallDurationTimer(client, operation string) func(err error) {
	startTime := time.Now()
	return func(err error) {
		outcome := Success
		if err != nil {
			outcome = Error
		}
		externalCallDurationHistogram.WithLabelValues(
			client, operation, outcome.String(),
		).Observe(time.Since(startTime).Seconds())
	}
}

func RecordWorkflowOutcome(workflow, stage string, outcome Outcome) {
	workflowOutcomeCounter.WithLabelValues(workflow, stage, outcome.String()).Inc()
}

func RecordPoolLockContention(workflow string) {
	poolLockContentionCounter.WithLabelValues(workflow).Inc()
}

func RecordEventPublishFailure(event string) {
	eventPublishFailureCounter.WithLabelValues(event).Inc()
}
