package app

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chessnap_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chessnap_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	gamesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chessnap_games_fetched_total",
		Help: "Normalized games returned, by source site",
	}, []string{"site"})
)

func recordMetrics(c *gin.Context, endpoint string, status int, start time.Time) {
	requestCounter.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
}
