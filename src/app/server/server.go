// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"palpitefc/src/app/http/dto"
	"palpitefc/src/app/http/handler"
	"palpitefc/src/app/middleware"
	"palpitefc/src/core/guess"
	"palpitefc/src/core/ports"
	"palpitefc/src/core/usecase"
	"palpitefc/src/infra/config"
	"palpitefc/src/infra/logger"
	"palpitefc/src/infra/metrics"
)

// Deps are the adapters the server wires into the use cases.
type Deps struct {
	Repo ports.GameRepository

	// Cache is optional; nil disables challenge caching.
	Cache ports.ChallengeCache

	// Auth verifies bearer tokens; nil accepts only the X-User-Id header.
	Auth ports.Authenticator

	// Metrics is optional; nil disables /metrics and game counters.
	Metrics *metrics.Metrics
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	router  *gin.Engine
	http    *http.Server
	deps    Deps
	metrics *metrics.Metrics

	// Handlers
	healthHandler  *handler.HealthHandler
	dailyHandler   *handler.DailyHandler
	rosterHandler  *handler.RosterHandler
	catalogHandler *handler.CatalogHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, deps Deps) (*Server, error) {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidation()

	settings, err := usecase.NewGameSettings(cfg.Game.MaxWrongAttempts, cfg.Game.RevealPolicy, cfg.Game.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	evaluator := guess.NewEvaluator(guess.Policy{
		MinTokenLength:  cfg.Game.MinTokenLength,
		MaxEditDistance: cfg.Game.MaxEditDistance,
	})

	var gameMetrics ports.GameMetrics = ports.NopMetrics{}
	if deps.Metrics != nil {
		gameMetrics = deps.Metrics
	}

	// Create services
	components := map[string]ports.ExternalService{"database": deps.Repo}
	if deps.Cache != nil {
		components["cache"] = deps.Cache
	}
	healthService := usecase.NewHealthService(log, components)
	challenges := usecase.NewChallengeSource(deps.Repo, deps.Cache, cfg.Game.AutoPick, logger.WithComponent(log, "challenges"))
	dailyService := usecase.NewDailyGameService(challenges, deps.Repo, evaluator, settings, gameMetrics, logger.WithComponent(log, "daily"))
	rosterService := usecase.NewRosterGameService(challenges, deps.Repo, evaluator, gameMetrics, logger.WithComponent(log, "roster"))
	catalogService := usecase.NewCatalogService(deps.Repo, logger.WithComponent(log, "catalog"))

	s := &Server{
		cfg:            cfg,
		log:            log,
		router:         gin.New(),
		deps:           deps,
		metrics:        deps.Metrics,
		healthHandler:  handler.NewHealthHandler(healthService),
		dailyHandler:   handler.NewDailyHandler(dailyService),
		rosterHandler:  handler.NewRosterHandler(rosterService),
		catalogHandler: handler.NewCatalogHandler(catalogService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s, nil
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS(s.cfg.Server.AllowedOrigins))
	if s.metrics != nil {
		s.router.Use(middleware.Metrics(s.metrics))
	}
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)
	if s.metrics != nil && s.cfg.Metrics.Enabled {
		s.router.GET(s.cfg.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	v1 := s.router.Group("/v1")

	player := v1.Group("")
	player.Use(middleware.SessionAuth(s.deps.Auth, s.cfg.Auth.AllowUserHeader))
	{
		// Player of the day
		player.POST("/daily/attempts", s.dailyHandler.Start)
		player.GET("/daily/attempts/:attempt_id", s.dailyHandler.Get)
		player.POST("/daily/attempts/:attempt_id/guesses", s.dailyHandler.Guess)

		// Roster
		player.POST("/rosters/:slug/attempts", s.rosterHandler.Start)
		player.GET("/roster-attempts/:attempt_id", s.rosterHandler.Get)
		player.POST("/roster-attempts/:attempt_id/guesses", s.rosterHandler.Guess)
		player.POST("/roster-attempts/:attempt_id/reset", s.rosterHandler.Reset)
		player.POST("/roster-attempts/:attempt_id/abandon", s.rosterHandler.Abandon)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuth(s.cfg.Admin.Token))
	{
		admin.POST("/players", s.catalogHandler.CreatePlayer)
		admin.GET("/players", s.catalogHandler.ListPlayers)
		admin.PUT("/daily/:date_key", s.catalogHandler.PublishDaily)
		admin.POST("/rosters", s.catalogHandler.CreateRoster)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
