package middleware

import (
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus"
)

var (
    httpRequestsTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Name: "portfolio_http_requests_total",
            Help: "Count of HTTP requests by method, route and status code.",
        },
        []string{"method", "route", "status"},
    )
    httpRequestDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Name:    "portfolio_http_request_duration_seconds",
            Help:    "HTTP request latency by method and route.",
            Buckets: prometheus.DefBuckets,
        },
        []string{"method", "route"},
    )
)

func init() {
    prometheus.MustRegister(httpRequestsTotal, httpRequestDuration)
}

// Metrics records a counter and latency histogram per request.  The route
// label uses the registered path pattern, not the raw URL, to keep label
// cardinality bounded.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)

            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            method := c.Request().Method
            httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
            httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
            return err
        }
    }
}
