package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// EngineAttempts 按终态与评测器统计的尝试数
	EngineAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_attempts_total",
			Help: "Attempts reaching a terminal state",
		},
		[]string{"status", "evaluator"},
	)

	// EngineDegradations 被吸收的非致命失败
	EngineDegradations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_degradations_total",
			Help: "Absorbed non-fatal failures by lifecycle stage",
		},
		[]string{"stage"},
	)

	AwardsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_awards_granted_total",
			Help: "Awards issued by the award ledger",
		},
		[]string{"award_type"},
	)

	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_evaluation_duration_seconds",
			Help:    "Time spent producing a verdict",
			Buckets: []float64{0.005, 0.05, 0.25, 1, 5, 15},
		},
		[]string{"evaluator"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(EngineAttempts)
		prometheus.MustRegister(EngineDegradations)
		prometheus.MustRegister(AwardsGranted)
		prometheus.MustRegister(EvaluationDuration)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
