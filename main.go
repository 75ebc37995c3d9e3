// Package main is the entry point for the PalpiteFC API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"palpitefc/src/app/server"
	"palpitefc/src/infra/auth"
	"palpitefc/src/infra/cache"
	"palpitefc/src/infra/config"
	"palpitefc/src/infra/db"
	"palpitefc/src/infra/logger"
	"palpitefc/src/infra/metrics"
	"palpitefc/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			return handleMigrationCommand(cfg, log, os.Args[2:])
		case "token":
			return handleTokenCommand(cfg, os.Args[2:])
		default:
			return fmt.Errorf("unknown command: %s (expected migrate or token)", os.Args[1])
		}
	}

	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"timezone", cfg.Game.Timezone,
	)

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := db.MigrateUp(cfg.Database.DSN(), log); err != nil {
			return err
		}
	}

	// Initialize database connection
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	deps := server.Deps{
		Repo: repo.NewPostgresRepository(pg, log),
	}

	if cfg.Redis.Enabled() {
		rc, err := cache.Open(ctx, cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rc.Close()
		deps.Cache = rc
		log.Info("challenge cache enabled", "ttl", cfg.Redis.TTL)
	}

	if cfg.Auth.JWTSecret != "" {
		deps.Auth = auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	}
	if cfg.Auth.AllowUserHeader {
		log.Warn("X-User-Id header authentication is enabled")
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Metrics = metrics.New(reg)
	}

	// Create and run HTTP server
	srv, err := server.New(cfg, log, deps)
	if err != nil {
		return err
	}

	// Run blocks until shutdown signal is received
	return srv.Run()
}

func handleMigrationCommand(cfg *config.Config, log *slog.Logger, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: palpitefc migrate [up|down|status] [args...]")
	}

	url := cfg.Database.DSN()
	switch args[0] {
	case "up":
		return db.MigrateUp(url, log)
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count: %s", args[1])
			}
			steps = n
		}
		return db.MigrateDown(url, steps, log)
	case "status":
		version, dirty, applied, err := db.MigrationStatus(url)
		if err != nil {
			return err
		}
		if !applied {
			fmt.Println("no migrations applied")
			return nil
		}
		fmt.Printf("version: %d, dirty: %t\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

// handleTokenCommand prints a session token for local testing.
func handleTokenCommand(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: palpitefc token <user_id> [ttl]")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("APP_AUTH_JWT_SECRET is not set")
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		return fmt.Errorf("invalid user id: %s", args[0])
	}
	ttl := 24 * time.Hour
	if len(args) > 1 {
		if ttl, err = time.ParseDuration(args[1]); err != nil {
			return fmt.Errorf("invalid ttl: %w", err)
		}
	}

	token, err := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer).Issue(userID, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
