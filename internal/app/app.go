// Package app assembles the record store, lookup provider and services
// from configuration. The HTTP server and the CLI share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"notary-ally/internal/config"
	"notary-ally/internal/llm"
	"notary-ally/internal/records"
	"notary-ally/internal/service"
	"notary-ally/internal/storage"
)

// App holds every long-lived dependency. It is built once per process.
type App struct {
	Config    *config.Config
	Store     storage.Substrate
	Book      *records.Book
	Generator llm.Generator

	Lookup       *service.LookupService
	Appointments *service.AppointmentService
	Mileage      *service.MileageService
	Workflow     *service.MileageWorkflow
	Journal      *service.JournalService
	Location     *service.LocationService

	closers []func() error
}

// New opens the configured store, loads the record book and wires the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	generator, err := llm.NewGenerator(llm.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if !generator.Configured() {
		slog.WarnContext(ctx, "no LLM API key configured; county and mileage lookups will fail", "provider", cfg.LLMProvider)
	}

	book := records.OpenBook(ctx, store, records.NewIDGenerator(cfg.IDScheme))
	lookup := service.NewLookupService(generator, service.WithTimeout(cfg.LLMTimeout))

	return &App{
		Config:       cfg,
		Store:        store,
		Book:         book,
		Generator:    generator,
		Lookup:       lookup,
		Appointments: service.NewAppointmentService(book.Appointments),
		Mileage:      service.NewMileageService(book.Mileage),
		Workflow:     service.NewMileageWorkflow(lookup, book.Mileage),
		Journal:      service.NewJournalService(book.Journal),
		Location:     service.NewLocationService(lookup),
		closers:      []func() error{closeStore},
	}, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// OpenStore returns the substrate selected by cfg.StoreBackend and a func
// that releases it.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Substrate, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.InfoContext(ctx, "database initialized", "path", cfg.DBPath)
		return storage.NewKVRepo(db), db.Close, nil

	case config.StoreRedis:
		kv, err := storage.NewRedisKV(ctx, storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "redis store connected", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return kv, kv.Close, nil

	case config.StoreMemory:
		slog.WarnContext(ctx, "using in-memory store; records are lost on exit")
		return storage.NewMemoryKV(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
