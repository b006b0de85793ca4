package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/walletwise/finance/pkg/config"
	"github.com/walletwise/finance/pkg/controllers/healthz"
	"github.com/walletwise/finance/pkg/controllers/root"
	v1 "github.com/walletwise/finance/pkg/controllers/v1"
	"github.com/walletwise/finance/pkg/controllers/version"
	"github.com/walletwise/finance/pkg/httputil"
)

// Set at build time with -ldflags "-X github.com/walletwise/finance/pkg/router.buildVersion=..."
var buildVersion = "0.0.0"

// Config sets up the engine and its middlewares.
//
// The returned teardown function unregisters the Prometheus metrics and
// must be called before Config is called again in the same process.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(cfg.APIURL))
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))
	r.Use(MetricsMiddleware())

	r.NoMethod(func(c *gin.Context) {
		httputil.Abort(c, http.StatusMethodNotAllowed, "This HTTP method is not allowed for the endpoint you called")
	})

	r.NoRoute(func(c *gin.Context) {
		httputil.Abort(c, http.StatusNotFound, "There is no endpoint at this path")
	})

	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", cfg.CORSAllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister prometheus metrics")
		}
	}

	log.Debug().Str("url", cfg.APIURL.String()).Msg("Router")
	log.Info().Str("version", buildVersion).Msg("Router")

	SwaggerInfo.Host = cfg.APIURL.Host
	SwaggerInfo.BasePath = cfg.APIURL.Path
	SwaggerInfo.Version = buildVersion

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed.
//
// Routes below /v1 carry the principal of the bearer token in the request
// context.
func AttachRoutes(group *gin.RouterGroup, cfg config.Config, co v1.Controller, p healthz.Pinger) {
	root.RegisterRoutes(group.Group("/"))
	version.RegisterRoutes(group.Group("/version"), buildVersion)
	healthz.RegisterRoutes(group.Group("/healthz"), p)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	co.RegisterRoutes(group.Group("/v1", AuthMiddleware(cfg.JWTSecret)))
}
