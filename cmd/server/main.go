package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"benishangul-police/idregistry/internal/api"
	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/logging"
	"benishangul-police/idregistry/internal/metrics"
	"benishangul-police/idregistry/internal/routes"
)

func main() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("ID registry starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	store, err := db.Open()
	if err != nil {
		logging.Error("failed to open registry store", "error", err.Error())
		log.Fatalf("failed to open registry store: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		logging.Error("migration failed", "error", err.Error())
		log.Fatalf("migration failed: %v", err)
	}
	logging.Info("registry store ready", "driver", store.Driver())

	metricsReg := metrics.NewMetricsRegistry()

	deps, err := api.InitDependencies(store, metricsReg)
	if err != nil {
		logging.Error("failed to initialize dependencies", "error", err.Error())
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Metrics endpoint lives outside the chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("server starting", "port", port, "environment", appEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logging.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
}
