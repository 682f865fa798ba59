// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/ArpanNarula/Shop-Assesment/internal/api"
	"github.com/ArpanNarula/Shop-Assesment/internal/cart"
	"github.com/ArpanNarula/Shop-Assesment/internal/catalog"
	"github.com/ArpanNarula/Shop-Assesment/internal/mcpserver"
	"github.com/ArpanNarula/Shop-Assesment/internal/shopservice"
	"github.com/ArpanNarula/Shop-Assesment/internal/sse"
	"github.com/ArpanNarula/Shop-Assesment/internal/storage"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger. In MCP mode stdout carries the
	// protocol, so logs go to stderr.
	logOut := io.Writer(os.Stdout)
	if app.mcp {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("catalog_url", cfg.Catalog.URL),
		slog.String("storage_backend", cfg.Storage.Backend),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize the cart slot storage.
	provider, slotPath, closeProvider, err := buildProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer closeProvider()

	// Rehydrate the cart from its persisted slot.
	cartStore := cart.NewStore(ctx, provider, cfg.Cart.Key, logger)

	catalogStore := catalog.NewStore()
	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Limit)

	svc := shopservice.NewService(catalogStore, cartStore)

	if app.mcp {
		// The catalog must be in place before the first tool call.
		catalogStore.Populate(ctx, client, logger)
		logger.Info("Serving MCP on stdio")
		return mcpserver.New(svc).ServeStdio()
	}

	// SSE broker pushing cart/catalog changes to the browser.
	broker := sse.NewBroker()
	defer broker.Close()

	cartStore.OnChange(func() {
		broker.PublishCartUpdate(cartStore.TotalItems(), cartStore.TotalPrice())
	})

	// Build API router.
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// One-shot catalog fetch: fire and forget, no retry, no timeout. A
	// failure settles as an empty, loaded catalog.
	g.Go(func() error {
		catalogStore.Populate(gCtx, client, logger)
		broker.PublishCatalogLoaded(len(catalogStore.Products()))
		return nil
	})

	// Watch the cart slot file for external changes (fs backend only).
	if slotPath != "" {
		g.Go(func() error {
			if err := cart.Watch(gCtx, cartStore, slotPath, logger, func() {
				broker.PublishCartUpdate(cartStore.TotalItems(), cartStore.TotalPrice())
			}); err != nil {
				logger.Warn("cart watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// buildProvider constructs the configured storage backend. slotPath is
// non-empty only for the fs backend, where the cart slot is a watchable
// file on disk.
func buildProvider(ctx context.Context, cfg *Config) (provider storage.Provider, slotPath string, closer func(), err error) {
	switch cfg.Storage.Backend {
	case BackendFS:
		if err := os.MkdirAll(cfg.Storage.FS.Path, 0o755); err != nil {
			return nil, "", nil, fmt.Errorf("create data dir: %w", err)
		}
		fs, err := storage.NewFS(cfg.Storage.FS.Path)
		if err != nil {
			return nil, "", nil, err
		}
		path, err := fs.SlotPath(cfg.Cart.Key)
		if err != nil {
			return nil, "", nil, err
		}
		return fs, path, func() {}, nil

	case BackendSQLite:
		db, err := storage.OpenSQLite(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, "", nil, err
		}
		return db, "", func() { _ = db.Close() }, nil

	case BackendRedis:
		r, err := storage.NewRedis(ctx, cfg.Storage.Redis.Addr)
		if err != nil {
			return nil, "", nil, err
		}
		return r, "", func() { _ = r.Close() }, nil
	}
	return nil, "", nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
