package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fal-engine/config"
	"fal-engine/guard"
	"fal-engine/web/handlers"
	"fal-engine/web/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the components the HTTP layer serves.
type Deps struct {
	Generator      handlers.ReadingGenerator
	History        *guard.HistoryStore
	Cooldown       *guard.TemplateCooldown
	Limiter        *middleware.ClientRateLimiter
	CatalogSymbols int
}

type Server struct {
	router *gin.Engine
	deps   Deps
	logger *zap.Logger
	config *config.Config
}

func NewServer(deps Deps, logger *zap.Logger, config *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.CustomRecovery(handlers.RecoveryHandler(logger)))
	router.Use(cors.Default())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(func(c *gin.Context) {
		// Add logger to context
		c.Set("logger", logger)
		c.Next()
	})

	server := &Server{
		router: router,
		deps:   deps,
		logger: logger,
		config: config,
	}

	server.setupRoutes()
	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.deps.History, s.deps.Cooldown, s.deps.CatalogSymbols)
	readingHandler := handlers.NewReadingHandler(s.deps.Generator, s.logger)

	s.router.GET("/healthz", healthHandler.Health)

	v1 := s.router.Group("/v1")
	v1.GET("/stats", healthHandler.Stats)

	generate := []gin.HandlerFunc{readingHandler.Generate}
	if s.deps.Limiter != nil {
		generate = append([]gin.HandlerFunc{middleware.RateLimitMiddleware(s.deps.Limiter)}, generate...)
	}
	v1.POST("/readings/generate", generate...)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Web server failed to start", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	s.logger.Info("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
