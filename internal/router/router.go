// Package router sets up the gin engine, the middleware stack and all
// API routes.
package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/budgeapp/backend/internal/auth"
	"github.com/budgeapp/backend/internal/banksync"
	"github.com/budgeapp/backend/internal/controllers"
	"github.com/budgeapp/backend/internal/controllers/healthz"
	"github.com/budgeapp/backend/internal/httputil"
	"github.com/budgeapp/backend/internal/llm"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config carries everything the routes need beyond the database.
type Config struct {
	JWTSecret string           // Secret the bearer tokens are verified with
	Advisor   *llm.Advisor     // Financial advisor, nil-safe when unconfigured
	Fetcher   banksync.Fetcher // Bank transaction source, nil disables sync
}

// New sets up the router and middlewares.
func New() *gin.Engine {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Info().Str("version", version).Msg("Router")

	return r
}

// AttachRoutes attaches the API routes to the router group that is
// passed in. Separating this from New allows tests to attach the
// routes to their own engines.
func AttachRoutes(config Config, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	healthz.RegisterRoutes(group.Group("/healthz"))

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	// API v1 setup. Everything under /v1 requires a bearer token.
	v1 := group.Group("/v1")
	v1.Use(auth.Middleware(config.JWTSecret))
	{
		v1.GET("", GetV1)
		v1.OPTIONS("", OptionsV1)
	}

	controllers.RegisterCategoryRoutes(v1.Group("/categories"))
	controllers.RegisterTransactionRoutes(v1.Group("/transactions"))
	controllers.RegisterBudgetRoutes(v1.Group("/budget"))
	controllers.RegisterDashboardRoutes(v1.Group("/dashboard"))
	controllers.RegisterExportRoutes(v1.Group("/privacy/export"))
	controllers.RegisterChatRoutes(v1.Group("/ai-chat"), config.Advisor)
	controllers.RegisterSyncRoutes(v1.Group("/sync"), config.Fetcher)
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/healthz"` // Health endpoint
	Metrics string `json:"metrics" example:"https://example.com/metrics"` // Endpoint returning Prometheus metrics
	Version string `json:"version" example:"https://example.com/version"` // Endpoint returning the version of the backend
	V1      string `json:"v1" example:"https://example.com/v1"`           // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: "/healthz",
			Metrics: "/metrics",
			Version: "/version",
			V1:      "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Categories   string `json:"categories" example:"https://example.com/v1/categories"`     // URL of category list endpoint
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions"` // URL of transaction list endpoint
	Budget       string `json:"budget" example:"https://example.com/v1/budget/monthly"`     // URL of the monthly budget endpoint
	Dashboard    string `json:"dashboard" example:"https://example.com/v1/dashboard"`       // URL of the dashboard endpoint
	Export       string `json:"export" example:"https://example.com/v1/privacy/export"`     // URL of the export endpoint
	Chat         string `json:"chat" example:"https://example.com/v1/ai-chat/chat"`         // URL of the AI chat endpoint
	Sync         string `json:"sync" example:"https://example.com/v1/sync/bank"`            // URL of the bank sync endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Categories:   "/v1/categories",
			Transactions: "/v1/transactions",
			Budget:       "/v1/budget/monthly",
			Dashboard:    "/v1/dashboard",
			Export:       "/v1/privacy/export",
			Chat:         "/v1/ai-chat/chat",
			Sync:         "/v1/sync/bank",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
