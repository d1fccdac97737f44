package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/api/middleware"
	"github.com/feral-file/ff-rental-indexer/internal/health"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server serves the health and metrics surface of a pipeline binary
type Server struct {
	config     Config
	reporter   health.Reporter
	gatherer   prometheus.Gatherer
	httpServer *http.Server
}

// New creates a new health server
func New(cfg Config, reporter health.Reporter, gatherer prometheus.Gatherer) *Server {
	return &Server{
		config:   cfg,
		reporter: reporter,
		gatherer: gatherer,
	}
}

// NewRouter builds the gin engine with /healthz and /metrics
func NewRouter(reporter health.Reporter, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	router.GET("/healthz", healthHandler(reporter))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}

func healthHandler(reporter health.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := reporter.Report(c.Request.Context())
		if err != nil {
			logger.ErrorCtx(c.Request.Context(), err, zap.String("message", "Failed to build health report"))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "health report unavailable"})
			return
		}

		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

// Start initializes and starts the HTTP server; it blocks until Shutdown
func (s *Server) Start() error {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      NewRouter(s.reporter, s.gatherer),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting health server", zap.String("address", addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down health server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
