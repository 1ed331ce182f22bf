package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/api/middleware"
	v1routes "github.com/Lorak9904/RhetorAI/internal/api/v1/routes"
	"github.com/Lorak9904/RhetorAI/internal/app/common"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
)

// Config represents API server configuration
type Config struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
	Version      string
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	config Config,
	container *v1routes.ServiceContainer,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	logger = common.OrNop(logger)
	router := gin.New()
	router.MaxMultipartMemory = int64(container.MaxUploadMB+1) << 20

	// ErrorHandler sits inside StructuredLogging so recovered panics are
	// logged with their final 500 status.
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogging(logger),
		middleware.ErrorHandler(logger),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)
	if m != nil {
		router.Use(middleware.Metrics(m))
	}

	registerBuiltinRoutes(router, m, config.Version, time.Now())
	v1routes.RegisterRoutes(router.Group("/api/v1"), container)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start starts the API server. Listen errors are delivered on the returned
// channel.
func (s *Server) Start() <-chan error {
	s.logger.Info("Starting API server",
		zap.String("host", s.config.Host),
		zap.String("port", s.config.Port),
		zap.String("environment", s.config.Environment),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Failed to start server", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info("API server started", zap.String("address", s.httpServer.Addr))
	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// registerBuiltinRoutes adds the probe, scrape and index endpoints that live
// outside /api/v1
func registerBuiltinRoutes(router *gin.Engine, m *metrics.Metrics, version string, started time.Time) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"version":        version,
			"uptime_seconds": int64(time.Since(started).Seconds()),
			"timestamp":      time.Now().Unix(),
		})
	})

	endpoints := gin.H{
		"health":    "/health",
		"audio":     "/api/v1/audio",
		"chat":      "/api/v1/chat",
		"speech":    "/api/v1/speech",
		"providers": "/api/v1/providers",
		"stats":     "/api/v1/stats",
	}
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
		endpoints["metrics"] = "/metrics"
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "RhetorAI API",
			"version":   version,
			"endpoints": endpoints,
		})
	})
}
