package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/solosphere/jobs-api/docs"
	"github.com/solosphere/jobs-api/internal/api/handler"
	"github.com/solosphere/jobs-api/internal/api/middleware"
	"github.com/solosphere/jobs-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Tokens ports.TokenService
	Jobs   ports.JobService
	Bids   ports.BidService
	// BidPlacer serializes placements per (email, title). Optional.
	BidPlacer ports.BidPlacer

	Mongo handler.MongoPinger
	// Redis is optional; leave nil (not a typed nil) when Redis is not used.
	Redis handler.RedisPinger

	Production     bool
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Registry, when set, receives the HTTP metrics and backs /metrics
	// instead of the default Prometheus registry.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metricsMiddleware(d.Registry))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Tokens, d.Production, d.Log)
	jobHandler := handler.NewJobHandler(d.Jobs)
	bidHandler := handler.NewBidHandler(d.Bids, d.BidPlacer)
	healthHandler := handler.NewHealthHandler(d.Mongo, d.Redis)

	session := middleware.Session(d.Tokens)
	limit := middleware.RateLimit(d.RateLimitRPS, d.RateLimitBurst)

	// --- Operational routes ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session routes ---
	e.POST("/jwt", authHandler.Issue, limit)
	e.GET("/logout", authHandler.Logout)

	// --- Public job routes ---
	e.GET("/alljobs", jobHandler.List)
	e.POST("/alljobs", jobHandler.Create)
	e.GET("/alljobscount", jobHandler.Count)
	e.GET("/newalljobs", jobHandler.Page)

	// --- Guarded job routes ---
	e.GET("/alljobs/:id", jobHandler.Get, session)
	e.DELETE("/alljobs/:id", jobHandler.Delete, session)
	e.PUT("/alljobs/:id", jobHandler.Upsert, session)
	e.GET("/alljobss/:email", jobHandler.ListMine, session, middleware.OwnerOnly("email"))

	// --- Guarded bid routes ---
	e.GET("/bidjobs", bidHandler.List, session)
	e.POST("/bidjobs", bidHandler.Place, session, limit)
	e.GET("/bidjobs/:email", bidHandler.ListMine, session, middleware.OwnerOnly("email"))
	e.PATCH("/bidjobs/:id", bidHandler.UpdateStatus, session)
	e.GET("/bidrequests/:email", bidHandler.ListRequests, session, middleware.OwnerOnly("email"))

	return e
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "solosphere"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
