package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admissions",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "admissions",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admissions",
			Subsystem: "applications",
			Name:      "submissions_total",
			Help:      "Application submissions by outcome.",
		},
		[]string{"outcome"},
	)

	Reviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admissions",
			Subsystem: "applications",
			Name:      "reviews_total",
			Help:      "Completed reviews by decision.",
		},
		[]string{"decision"},
	)

	TransitionConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "admissions",
			Subsystem: "applications",
			Name:      "transition_conflicts_total",
			Help:      "Reviews refused because the application was no longer pending.",
		},
	)

	LetterRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admissions",
			Subsystem: "letters",
			Name:      "renders_total",
			Help:      "Admission letter renders by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		Submissions,
		Reviews,
		TransitionConflicts,
		LetterRenders,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes Registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request count and latency per matched route pattern, so
// /admin/applications/:id is one series rather than one per id.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < 400 {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		method := c.Method()
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
