// @title Cattle Records API
// @version 1.0
// @description Búsqueda, filtros, orden multi-columna y layout de columnas del registro de ganado.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cattle-records/internal/adapters/auth/iam"
	"cattle-records/internal/adapters/remote"
	"cattle-records/internal/adapters/snapshot"
	badgerstore "cattle-records/internal/adapters/storage/badger"
	mem "cattle-records/internal/adapters/storage/memory"
	pg "cattle-records/internal/adapters/storage/postgres"
	redisstore "cattle-records/internal/adapters/storage/redis"
	"cattle-records/internal/domain/layout"
	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"
	"cattle-records/internal/platform/config"
	"cattle-records/internal/platform/httpclient"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/ports/auth"
	"cattle-records/internal/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Zap().Sync() }()
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	var db *sql.DB
	if cfg.Storage.DBDSN != "" {
		opened, err := pg.Open(cfg.Storage.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, opened); err != nil {
			_ = opened.Close()
			return err
		}
		db = opened
		closers = append(closers, db.Close)
	}

	layoutStore, err := openLayoutStore(ctx, cfg, db, log, &closers)
	if err != nil {
		return err
	}

	recordSource, masterSource, err := openSources(cfg, db, log, &closers)
	if err != nil {
		return err
	}

	verifier, err := authVerifier(cfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h, err := router.NewRouter(router.Options{
		Logger:        log,
		Registry:      registry,
		AuthVerifier:  verifier, // nil => modo dev
		LayoutStore:   layoutStore,
		Records:       recordSource,
		MasterData:    masterSource,
		MasterDataTTL: cfg.Sources.MasterDataTTL,
		Collation:     cfg.Collation,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":         cfg.Addr(),
			"layout_store": cfg.Storage.LayoutStore,
			"auth":         verifier != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openLayoutStore(ctx context.Context, cfg *config.Config, db *sql.DB, log logger.Logger, closers *[]func() error) (layout.Store, error) {
	switch cfg.Storage.LayoutStore {
	case config.LayoutBadger:
		s, err := badgerstore.Open(cfg.Storage.BadgerPath, false, log.With(map[string]any{"module": "badger"}))
		if err != nil {
			return nil, fmt.Errorf("open badger: %w", err)
		}
		*closers = append(*closers, s.Close)
		return s, nil
	case config.LayoutRedis:
		s, err := redisstore.Open(ctx, cfg.Storage.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		*closers = append(*closers, s.Close)
		return s, nil
	case config.LayoutPostgres:
		return pg.NewLayoutStore(db), nil
	default:
		return mem.NewLayoutStore(), nil
	}
}

// openSources: snapshot en archivo (recargado al cambiar), servicio remoto o (nil, nil) para los datos de ejemplo.
// Con Postgres disponible y sin URL de master data, las tablas salen de la DB.
func openSources(cfg *config.Config, db *sql.DB, log logger.Logger, closers *[]func() error) (records.Source, masterdata.Source, error) {
	src := cfg.Sources

	if src.SnapshotFile != "" {
		fs := snapshot.NewFileSource(src.SnapshotFile,
			snapshot.WithLogger(log.With(map[string]any{"module": "snapshot"})))
		if err := fs.Watch(); err != nil {
			return nil, nil, err
		}
		*closers = append(*closers, fs.Close)
		return fs, fs, nil
	}

	var (
		recordSource records.Source
		masterSource masterdata.Source
	)
	var opts []httpclient.Option
	if src.UpstreamToken != "" {
		opts = append(opts, httpclient.WithHeader("Authorization", "Bearer "+src.UpstreamToken))
	}

	if src.RecordsURL != "" {
		c, err := httpclient.New(src.RecordsURL, src.RequestTimeout, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("records source: %w", err)
		}
		recordSource = remote.NewRecordSource(c)
	}

	switch {
	case src.MasterDataURL != "":
		c, err := httpclient.New(src.MasterDataURL, src.RequestTimeout, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("master data source: %w", err)
		}
		masterSource = remote.NewMasterDataSource(c)
	case db != nil:
		masterSource = pg.NewMasterDataSource(db)
	case recordSource != nil:
		// registros reales sin tablas: placeholders ("Breed #7") en vez de nombres de ejemplo
		masterSource = mem.NewMasterDataSource(masterdata.NewTables())
	}

	return recordSource, masterSource, nil
}

func authVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	if !cfg.Auth.Enabled() {
		return nil, nil
	}
	c, err := iam.NewClient(iam.Config{
		BaseURL:      cfg.Auth.BaseURL,
		APIKey:       cfg.Auth.APIKey,
		APIKeyHeader: cfg.Auth.APIKeyHeader,
		Timeout:      cfg.Auth.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("auth client: %w", err)
	}
	return iam.NewVerifier(c), nil
}
