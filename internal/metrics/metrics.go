// Package metrics holds the prometheus collectors of the client. Nothing is
// registered on import; call Register with the registry of your choice.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/frankli0324/go-httpc/internal/http"
)

var (
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "httpc",
		Name:      "requests_total",
		Help:      "Requests completed, by method and status code.",
	}, []string{"method", "code"})

	RequestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "httpc",
		Name:      "request_errors_total",
		Help:      "Requests that failed before a response head was read, by error class.",
	}, []string{"method", "class"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "httpc",
		Name:      "request_duration_seconds",
		Help:      "Time from request start to response head.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	ConnectDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "httpc",
		Name:      "connect_duration_seconds",
		Help:      "Time spent resolving and connecting a transport, by scheme kind.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	ConfigLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "httpc",
		Subsystem: "dnsconf",
		Name:      "loads_total",
		Help:      "Configuration files parsed, by kind and outcome.",
	}, []string{"kind", "outcome"})
)

// Register adds all collectors to r. Collectors already registered on r
// are not an error.
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		Requests, RequestErrors, RequestDuration, ConnectDuration, ConfigLoads,
	} {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}

// Middleware records request counts and latencies of every exchange passing
// through a client.
func Middleware(next http.Handler) http.Handler {
	return func(ctx context.Context, req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		if err != nil {
			RequestErrors.WithLabelValues(req.Method, ErrorClass(err)).Inc()
			return resp, err
		}
		RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
		Requests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
		return resp, nil
	}
}

// ErrorClass maps an error to a low-cardinality label value.
func ErrorClass(err error) string {
	var re *http.RequestError
	switch {
	case errors.Is(err, http.ErrHostNotFound):
		return "not_found"
	case errors.Is(err, http.ErrConnectionLost):
		return "connection_lost"
	case errors.Is(err, http.ErrUnknownScheme):
		return "unknown_scheme"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &re):
		return "malformed_response"
	}
	return "other"
}
