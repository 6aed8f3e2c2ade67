package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/battlebrain/predict-api/internal/catalog"
	"github.com/battlebrain/predict-api/internal/classifier"
	"github.com/battlebrain/predict-api/internal/config"
	"github.com/battlebrain/predict-api/internal/handlers"
	"github.com/battlebrain/predict-api/internal/logic"
)

const (
	startupTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(cfg, logger); err != nil {
		sugar.Errorw("Service stopped with error", "kind", logic.KindOf(err).String(), "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	source, closeSource, err := newCatalogSource(startCtx, cfg)
	if err != nil {
		return logic.StartupError("catalog source", err)
	}
	defer closeSource()

	store := catalog.NewStore(source, logger)

	// Catalog and model load concurrently; nothing is served until both succeed
	var model classifier.Classifier
	g, gctx := errgroup.WithContext(startCtx)
	g.Go(func() error {
		if err := store.Load(gctx); err != nil {
			return logic.StartupError("load catalog", err)
		}
		return nil
	})
	g.Go(func() error {
		m, err := classifier.Load(classifier.Options{
			Kind:     cfg.ModelKind,
			Path:     cfg.ModelPath,
			Endpoint: cfg.ModelEndpoint,
			Timeout:  cfg.ModelTimeout,
		})
		if err != nil {
			return logic.StartupError("load model", err)
		}
		model = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	var chart logic.TypeChart
	if cfg.TypeChartPath != "" {
		if chart, err = logic.LoadTypeChart(cfg.TypeChartPath); err != nil {
			return logic.StartupError("load type chart", err)
		}
		sugar.Infow("Using custom type chart", "path", cfg.TypeChartPath, "attacking_types", len(chart))
	}

	prediction := logic.NewPredictionService(store, model, chart, logger)
	h := handlers.New(handlers.Config{
		Catalog:    store,
		Prediction: prediction,
		Logger:     logger,
	})

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: handlers.NewRouter(h, handlers.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		sugar.Infow("BattleBrain API started",
			"port", cfg.Port,
			"env", cfg.Env,
			"catalog_source", source.Name(),
			"catalog_entries", store.Len(),
			"model", model.Name(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case err := <-serverErr:
			return fmt.Errorf("http server: %w", err)
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				reloadCatalog(store, sugar)
				continue
			}
			sugar.Infow("Shutting down gracefully", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			sugar.Info("BattleBrain API stopped")
			return nil
		}
	}
}

// reloadCatalog swaps in a fresh snapshot; requests keep using the old one
// until the swap, and a failed reload leaves it in place.
func reloadCatalog(store *catalog.Store, sugar *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := store.Reload(ctx); err != nil {
		sugar.Errorw("Catalog reload failed, keeping previous snapshot", "version", store.Version(), "error", err)
		return
	}
	sugar.Infow("Catalog reloaded", "version", store.Version(), "entries", store.Len())
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	return zcfg.Build()
}

// newCatalogSource opens the backing store selected by CATALOG_SOURCE. The
// returned func releases any connection pool it opened.
func newCatalogSource(ctx context.Context, cfg *config.Config) (catalog.Source, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case config.SourceCSV:
		return catalog.NewCSVSource(cfg.CatalogPath), noop, nil

	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("postgres ping: %w", err)
		}
		return catalog.NewPostgresSource(pool), pool.Close, nil

	case config.SourceRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		return catalog.NewRedisSource(client, cfg.RedisCatalogKey), func() { client.Close() }, nil

	case config.SourceMySQL:
		src, err := catalog.NewMySQLSource(cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		if err := src.DB().PingContext(ctx); err != nil {
			src.DB().Close()
			return nil, noop, fmt.Errorf("mysql ping: %w", err)
		}
		return src, func() { src.DB().Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unsupported catalog source %q", cfg.CatalogSource)
	}
}
