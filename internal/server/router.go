// Package server assembles the gin engine: middleware stack, templates and
// routes.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/Pash-Data/Nutricare/internal/config"
	v1 "github.com/Pash-Data/Nutricare/internal/handler/v1"
	"github.com/Pash-Data/Nutricare/internal/middleware"
	"github.com/Pash-Data/Nutricare/pkg/metrics"
)

// RouterConfig carries the handlers and cross-cutting pieces the router
// wires together. Collector and Health may be nil in tests.
type RouterConfig struct {
	Patients  *v1.PatientHandler
	Health    *v1.HealthHandler
	Log       *zap.Logger
	Collector *metrics.Collector
	CORS      config.CORSConfig
	App       config.AppConfig
}

// NewRouter builds the gin engine serving the API, the dashboard and the
// operational endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Log),
		middleware.Metrics(cfg.Collector),
		otelgin.Middleware(cfg.App.Name),
		cors.New(corsConfig(cfg.CORS)),
	)
	r.SetHTMLTemplate(v1.DashboardTemplate())

	r.GET("/", cfg.Patients.Root)
	r.POST("/patients", cfg.Patients.Create)
	r.GET("/patients", cfg.Patients.List)
	r.GET("/export", cfg.Patients.Export)
	r.GET("/dashboard", cfg.Patients.Dashboard)
	r.POST("/dashboard/add", cfg.Patients.DashboardAdd)

	if cfg.Health != nil {
		r.GET("/healthz", cfg.Health.Healthz)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

// corsConfig translates the service CORS settings into the gin-contrib
// form. A wildcard origin switches to allow-all mode, which the middleware
// requires to be exclusive of an origin list.
func corsConfig(cfg config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowMethods: cfg.AllowedMethods,
		AllowHeaders: cfg.AllowedHeaders,
		MaxAge:       cfg.MaxAge,
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			out.AllowAllOrigins = true
			return out
		}
	}
	out.AllowOrigins = cfg.AllowedOrigins
	return out
}
