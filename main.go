package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Bgoodwin24/insightforge/internal/config"
	"github.com/Bgoodwin24/insightforge/internal/dataset"
	"github.com/Bgoodwin24/insightforge/internal/fetchers"
	"github.com/Bgoodwin24/insightforge/internal/logger"
	"github.com/Bgoodwin24/insightforge/internal/server"
)

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.IsProduction())
	log := logger.WithComponent("main")

	log.Info("starting insightforge", map[string]interface{}{
		"version":     config.GetVersion(),
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"analytics":   analyticsURL(cfg),
		"mockup":      cfg.MockupMode,
	})

	store := dataset.NewStore()
	if err := loadInitialDataset(store, cfg.DatasetPath); err != nil {
		log.Fatal("failed to load dataset", err, map[string]interface{}{"path": cfg.DatasetPath})
	}

	client := fetchers.NewAnalyticsClient(analyticsURL(cfg), clientOptions(cfg))
	srv := server.NewServer(cfg, store, client)
	httpServer := newHTTPServer(cfg.Port, srv.SetupRoutes())

	go func() {
		log.Info("server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", err)
	}
	log.Info("server stopped")
}

// analyticsURL is the configured service, or this process in mockup mode
func analyticsURL(cfg *config.Config) string {
	if cfg.MockupMode {
		return "http://localhost:" + cfg.Port
	}
	return cfg.AnalyticsURL
}

func clientOptions(cfg *config.Config) fetchers.Options {
	opts := fetchers.DefaultOptions()
	opts.Timeout = cfg.HTTPTimeout
	opts.RetryCount = cfg.HTTPRetryCount
	return opts
}

// loadInitialDataset loads the dataset at path, if one is configured
func loadInitialDataset(store *dataset.Store, path string) error {
	if path == "" {
		return nil
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	store.Add(ds)
	logger.Info("dataset loaded", map[string]interface{}{
		"id":      ds.ID,
		"name":    ds.Name,
		"columns": len(ds.Columns),
		"rows":    len(ds.Rows),
	})
	return nil
}

func newHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
