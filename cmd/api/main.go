package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notary-ally/internal/app"
	"notary-ally/internal/config"
	"notary-ally/internal/handlers"
	"notary-ally/internal/http"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()

	faq, err := handlers.NewFAQHandler()
	if err != nil {
		log.Fatalf("Failed to render FAQ: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		Appointments: a.Appointments,
		Mileage:      a.Mileage,
		Workflow:     a.Workflow,
		Journal:      a.Journal,
		Location:     a.Location,
		DarkMode:     a.Book.DarkMode,
		FAQ:          faq,
		Store:        a.Store,
		StoreBackend: cfg.StoreBackend,
		Lookup:       a.Generator,
	})

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", srv.Addr, "store", cfg.StoreBackend)
	slog.Debug("LLM configuration", "provider", cfg.LLMProvider, "model", cfg.LLMModel, "base_url", cfg.LLMBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}
