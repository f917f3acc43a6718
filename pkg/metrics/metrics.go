package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "villa"

// Registry holds every collector exposed on /metrics
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingsCreated = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Booking requests stored as PENDING.",
	})

	BookingConflicts = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Create or accept attempts rejected because dates were unavailable.",
	})

	BookingDecisions = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_decisions_total",
		Help:      "Admin decisions by resulting status.",
	}, []string{"status"})

	BlockedDateChanges = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocked_date_changes_total",
		Help:      "Manual block edits by operation.",
	}, []string{"op"})

	NotificationsSent = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Emails handed to the SMTP server.",
	}, []string{"kind"})

	NotificationsFailed = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Notifications that could not be published or delivered.",
	}, []string{"kind"})

	NotificationsDropped = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Notifications discarded because the dispatch queue was full.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Middleware records request count and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
