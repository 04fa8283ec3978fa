package main

import (
	"context"
	"cyber-map-service/internal/adapters/pointsource"
	"cyber-map-service/internal/adapters/repositories"
	"cyber-map-service/internal/adapters/viewstore"
	"cyber-map-service/internal/api"
	"cyber-map-service/internal/config"
	"cyber-map-service/internal/platform/db"
	"cyber-map-service/internal/platform/obs"
	"cyber-map-service/internal/ports"
	"cyber-map-service/internal/services"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (HTTP/SQL/Overpass sources, memory/Redis stores)
// behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.DevMode)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("No .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = obs.WithLogger(ctx, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(reg)

	source, closeSource, err := newPointSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource.Close()

	store, closeStore, err := newViewStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore.Close()

	view, err := services.NewMapView(source, store, metrics)
	if err != nil {
		return err
	}

	// One fetch per start; a failure leaves the map empty until a refresh.
	_ = view.Load(ctx)

	router := api.NewRouter(view, logger, metrics, reg)

	// Timeouts leave room for the upstream fetch on /api/points/refresh.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr), zap.String("point_source", cfg.PointSource))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Shutting down")
	return srv.Shutdown(shutdownCtx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newPointSource(ctx context.Context, cfg config.Config) (ports.PointSource, io.Closer, error) {
	switch cfg.PointSource {
	case config.SourceHTTP:
		src, err := pointsource.NewHTTPPointSource(cfg.PointsBaseURL, cfg.PointsTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("http point source: %w", err)
		}
		return src, nopCloser{}, nil

	case config.SourceSQL:
		conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		if cfg.SeedPath != "" {
			if err := repositories.SeedFromJSON(ctx, conn, cfg.SeedPath); err != nil {
				conn.Close()
				return nil, nil, err
			}
		}
		return repositories.NewSQLPointRepository(conn), conn, nil

	case config.SourceOverpass:
		src, err := pointsource.NewOverpassPointSource(cfg.OverpassURL, cfg.OverpassBBox, cfg.PointsTimeout)
		if err != nil {
			return nil, nil, err
		}
		return src, nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("unknown point source %q", cfg.PointSource)
}

func newViewStore(ctx context.Context, cfg config.Config) (ports.ViewStore, io.Closer, error) {
	if cfg.ViewStore != config.StoreRedis {
		return viewstore.NewMemoryViewStore(), nopCloser{}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis view store: ping %s: %w", cfg.RedisAddr, err)
	}

	store, err := viewstore.NewRedisViewStore(client, cfg.RedisPrefix)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return store, client, nil
}
