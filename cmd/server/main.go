package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/flashneiga/backend/internal/api"
	"github.com/flashneiga/backend/internal/auth"
	"github.com/flashneiga/backend/internal/importer"
	"github.com/flashneiga/backend/internal/infrastructure/config"
	"github.com/flashneiga/backend/internal/payment"
	"github.com/flashneiga/backend/internal/scraper"
	"github.com/flashneiga/backend/internal/service"
	"github.com/flashneiga/backend/internal/store"

	_ "github.com/flashneiga/backend/docs" // generated swagger docs
)

// @title           FlashNeiga API
// @version         1.0
// @description     Driving theory exam trainer — practice questions, timed exams with adaptive selection, road sign reference and progress stats.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var gate payment.Gate = payment.Disabled{}
	if cfg.PaymentRequired {
		gate = payment.NewCheckoutClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	}

	var catalog *scraper.Catalog
	if cfg.SignCatalogURL != "" {
		catalog = scraper.NewCatalog(cfg.SignCatalogURL)
	}

	handler := api.NewHandler(api.Deps{
		Store:    db,
		Exams:    service.NewExamService(db, logger),
		Stats:    service.NewStatsService(db),
		Importer: importer.New(db),
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Gate:     gate,
		Catalog:  catalog,
		Logger:   logger,
	})

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	handler.RegisterRoutes(mux)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
