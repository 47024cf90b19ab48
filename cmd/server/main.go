package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thorsignia/backend/internal/backup"
	"github.com/thorsignia/backend/internal/config"
	"github.com/thorsignia/backend/internal/handler"
	"github.com/thorsignia/backend/internal/logging"
	"github.com/thorsignia/backend/internal/metrics"
	"github.com/thorsignia/backend/internal/notify"
	"github.com/thorsignia/backend/internal/ratelimit"
	"github.com/thorsignia/backend/internal/repository"
	"github.com/thorsignia/backend/internal/service"
)

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()

	var (
		contactRepo repository.ContactRepository
		dbKind      string
	)
	if cfg.Database.URL != "" {
		pool, err := repository.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()

		pg := repository.NewPgContactRepository(pool)
		if err := pg.Migrate(ctx); err != nil {
			logging.Fatal("migration failed", "error", err)
		}
		contactRepo = pg
		dbKind = "postgres"
	} else {
		if err := os.MkdirAll(cfg.Backup.DataDir, 0o755); err != nil {
			logging.Fatal("failed to create data directory", "error", err, "dir", cfg.Backup.DataDir)
		}
		sqlite, err := repository.OpenSQLite(cfg.Database.SQLitePath)
		if err != nil {
			logging.Fatal("failed to open sqlite database", "error", err, "path", cfg.Database.SQLitePath)
		}
		defer sqlite.Close()

		if err := sqlite.Migrate(ctx); err != nil {
			logging.Fatal("migration failed", "error", err)
		}
		contactRepo = sqlite
		dbKind = "sqlite"
	}
	logger.Info("database ready", "kind", dbKind)

	limiter := ratelimit.NewMemory(cfg.RateLimit.Max, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			limiter.Sweep(10 * time.Duration(cfg.RateLimit.WindowSeconds) * time.Second)
		}
	}()

	root, err := os.Getwd()
	if err != nil {
		logging.Fatal("cannot determine working directory", "error", err)
	}

	notifier := notify.New(cfg.Email, cfg.IsProduction())
	backupWriter := backup.NewWriter(root, cfg.Backup.DataDir, cfg.Backup.MaxEntries, cfg.IsProduction())
	contactService := service.NewContactService(contactRepo, notifier, backupWriter)

	contactHandler := handler.NewContactHandler(contactService, limiter, cfg.IsProduction())
	healthHandler := handler.NewHealthHandler(cfg.App.Env, dbKind)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("GET /api/contacts/health", healthHandler.ContactsHealth)
	mux.HandleFunc("POST /api/contacts", contactHandler.Submit)
	mux.HandleFunc("GET /api/contacts", contactHandler.List)
	mux.HandleFunc("GET /api/contacts/{id}", contactHandler.Get)
	mux.Handle("GET /metrics", promhttp.Handler())

	// OPTIONS never reaches the mux; the CORS middleware answers preflight
	// before routing so unregistered method/path pairs still preflight cleanly.
	var chain http.Handler = mux
	chain = handler.Recover(chain)
	chain = metrics.Middleware(chain)
	chain = handler.RequestLogger(chain)
	chain = handler.CORS(cfg.CORS.AllowedOrigins)(chain)
	chain = handler.SecurityHeaders(chain)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.App.Host, cfg.App.Port),
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
