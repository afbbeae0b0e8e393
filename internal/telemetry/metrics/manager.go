package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterFatigueComputations prometheus.Counter
	CounterFatigueCache        *prometheus.CounterVec
	CounterDeloadsStarted      *prometheus.CounterVec
	CounterDeloadsExpired      prometheus.Counter
	CounterGateResults         *prometheus.CounterVec
	CounterRecommendations     *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistFatigueScore         prometheus.Histogram
	HistogramRequestDuration *prometheus.HistogramVec
}

// NewDiscardManager returns a manager on its own registry, nothing exports its metrics.
func NewDiscardManager() *Manager {
	return NewManager("gymcoach", "discard", prometheus.NewRegistry())
}

func NewTestManager() *Manager {
	return NewManager("gymcoach", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gymcoach", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterFatigueComputations := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "fatigue_computations",
		Help:      "The total number of fatigue scores computed from history",
	})
	counterFatigueCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "fatigue_cache",
		Help:      "Fatigue cache lookups by result",
	}, []string{"result"})
	counterDeloadsStarted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "deloads_started",
		Help:      "The total number of started deload periods",
	}, []string{"type", "trigger"})
	counterDeloadsExpired := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "deloads_expired",
		Help:      "Deload periods closed by the expiry job",
	})
	counterGateResults := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "progression_gate",
		Help:      "Progression gate checks by blocker, none when progression is allowed",
	}, []string{"blocked_by"})
	counterRecommendations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "progression_recommendations",
		Help:      "Progression recommendations by status",
	}, []string{"status"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "current_requests",
		Help:        "Current number of requests served",
		ConstLabels: nil,
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "life_signal",
		Help:        "Shows whether the service is alive",
		ConstLabels: nil,
	})

	histFatigueScore := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
			Name:      "fatigue_score",
			Help:      "Distribution of computed fatigue scores",
		},
	)

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterFatigueComputations: counterFatigueComputations,
		CounterFatigueCache:        counterFatigueCache,
		CounterDeloadsStarted:      counterDeloadsStarted,
		CounterDeloadsExpired:      counterDeloadsExpired,
		CounterGateResults:         counterGateResults,
		CounterRecommendations:     counterRecommendations,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistFatigueScore:           histFatigueScore,
		HistogramRequestDuration:   histogramRequestDuration,
	}
}
