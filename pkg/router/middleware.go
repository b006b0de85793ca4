package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/walletwise/finance/pkg/auth"
	"github.com/walletwise/finance/pkg/backend"
	"github.com/walletwise/finance/pkg/httputil"
)

// URLMiddleware sets the public base URL of the API in the context.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(httputil.ContextURL, strings.TrimSuffix(url.String(), "/"))
		c.Next()
	}
}

// AuthMiddleware adds the principal of the bearer token to the request
// context. Requests without a token continue anonymously, requests with
// an invalid token are rejected.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			httputil.Abort(c, http.StatusUnauthorized, "The Authorization header must contain a bearer token")
			return
		}

		principal, err := auth.ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("Authentication")
			httputil.Abort(c, http.StatusUnauthorized, "The session token is invalid or expired")
			return
		}

		c.Request = c.Request.WithContext(backend.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

// registerPrometheusMetrics registers all Prometheus metrics
// with the default registry.
func registerPrometheusMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %T with Prometheus: %w", c, err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics unregisters all Prometheus metrics.
func unregisterPrometheusMetrics() bool {
	ok := true
	for _, c := range metrics {
		ok = prometheus.Unregister(c) && ok
	}

	return ok
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		// The route template keeps the cardinality low
		// https://prometheus.io/docs/practices/naming/#labels
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		requestDuration.WithLabelValues(status, c.Request.Method, path).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, path).Inc()
	}
}
