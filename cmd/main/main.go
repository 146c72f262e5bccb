package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"benchmark-service/internal/benchmark/catalog"
	bmHnd "benchmark-service/internal/benchmark/handler"
	"benchmark-service/internal/benchmark/service"
	"benchmark-service/internal/benchmark/store"
	"benchmark-service/internal/config"
	serverhttp "benchmark-service/server/http"
)

func main() {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	snap, db, err := loadCatalog(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("catalog")
	}
	if db != nil {
		defer db.Close()
	}

	catalogs := catalog.NewStore(snap)
	resolver := service.NewResolver(logger, cfg.ResolveWorkers)

	// a nil *store.Store must not become a non-nil Importer
	var importer bmHnd.Importer
	if db != nil {
		importer = db
	}
	h := bmHnd.New(logger, catalogs, resolver, importer, cfg.ResolveWorkers)
	r := serverhttp.NewRouter(cfg, logger, catalogs, h)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}

// loadCatalog reads benchmarks from Postgres when DATABASE_URL is set,
// otherwise from the sheets in CATALOG_DIR. A missing or broken directory
// yields an empty catalog: the service still starts and every score is unknown.
func loadCatalog(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*catalog.Snapshot, *store.Store, error) {
	if cfg.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		snap, err := db.Snapshot(ctx)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logInfo(logger, snap)
		return snap, db, nil
	}

	snap, stats, err := catalog.LoadDir(cfg.CatalogDir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", cfg.CatalogDir).Msg("catalog not loaded, starting empty")
		return nil, nil, nil
	}
	for _, st := range stats {
		logger.Info().
			Str("kind", string(st.Kind)).
			Int("loaded", st.Loaded).
			Int("skipped", st.Skipped).
			Msg("benchmark sheet loaded")
	}
	logInfo(logger, snap)
	return snap, nil, nil
}

func logInfo(logger zerolog.Logger, snap *catalog.Snapshot) {
	info := snap.Info()
	ev := logger.Info().Str("source", info.Source)
	for k, n := range info.Counts {
		ev = ev.Int(string(k), n)
	}
	ev.Msg("catalog ready")
}
