package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"benchmark-service/internal/benchmark/catalog"
	"benchmark-service/internal/benchmark/store"
	"benchmark-service/internal/config"
)

var version = "dev"

type rootOptions struct {
	databaseURL string
	catalogDir  string
	debug       bool
}

func newRootCommand() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "benchctl",
		Short: "benchctl - benchmark catalog and requirement scoring tool",
		Long: `benchctl loads CPU/GPU/disk benchmark sheets and resolves free-text
hardware requirements to benchmark scores.

The catalog is read from Postgres when --database-url (or DATABASE_URL) is set,
otherwise from the cpu*/gpu*/disk* sheets in --catalog-dir.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", cfg.DatabaseURL, "Postgres DSN")
	cmd.PersistentFlags().StringVar(&opts.catalogDir, "catalog-dir", cfg.CatalogDir, "Directory with benchmark sheets")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newResolveCommand(opts))
	cmd.AddCommand(newExtractCommand(opts))

	return cmd
}

// logger writes to stderr so stdout stays machine-readable.
func (o *rootOptions) logger() zerolog.Logger {
	lvl := zerolog.WarnLevel
	if o.debug {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()
}

func (o *rootOptions) openStore(ctx context.Context) (*store.Store, error) {
	if o.databaseURL == "" {
		return nil, fmt.Errorf("no database: set --database-url or DATABASE_URL")
	}
	db, err := store.Open(ctx, o.databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (o *rootOptions) loadCatalog(ctx context.Context) (*catalog.Snapshot, error) {
	if o.databaseURL != "" {
		db, err := o.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Snapshot(ctx)
	}
	snap, _, err := catalog.LoadDir(o.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", o.catalogDir, err)
	}
	return snap, nil
}
