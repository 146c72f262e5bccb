package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // Postgres driver

	"benchmark-service/internal/benchmark/catalog"
	"benchmark-service/internal/benchmark/model"
)

var ErrNilDB = errors.New("store: nil database handle")

// one table per kind
var tables = map[model.Kind]string{
	model.KindCPU:  "cpu_benchmark",
	model.KindGPU:  "gpu_benchmark",
	model.KindDisk: "disk_benchmark",
}

func table(kind model.Kind) (string, error) {
	t, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("store: no table for kind %q", kind)
	}
	return t, nil
}

// Store keeps benchmark catalogs in Postgres.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &Store{db: db}, nil
}

// Open connects with the given DSN and checks the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(db)
}

func (s *Store) Close() error { return s.db.Close() }

func schemaSQL(t string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id    SERIAL PRIMARY KEY,
			name  TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL CHECK (score >= 0)
		)`, t)
}

// EnsureSchema creates the benchmark tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, k := range model.Kinds {
		t, _ := table(k)
		if _, err := s.db.ExecContext(ctx, schemaSQL(t)); err != nil {
			return fmt.Errorf("create %s: %w", t, err)
		}
	}
	return nil
}

// Load returns all records of one kind ordered by id, so matcher ties
// resolve the same way on every load.
func (s *Store) Load(ctx context.Context, kind model.Kind) ([]model.Record, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT name, score FROM %s ORDER BY id`, t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.Name, &r.Score); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Snapshot loads every kind inside one read-only transaction so the result
// is consistent even while an import is running.
func (s *Store) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	records := make(map[model.Kind][]model.Record, len(model.Kinds))
	for _, k := range model.Kinds {
		t, _ := table(k)
		rows, err := tx.QueryContext(ctx, fmt.Sprintf(`SELECT name, score FROM %s ORDER BY id`, t))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", t, err)
		}
		for rows.Next() {
			var r model.Record
			if err := rows.Scan(&r.Name, &r.Score); err != nil {
				rows.Close()
				return nil, err
			}
			records[k] = append(records[k], r)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return catalog.NewSnapshot("postgres", records), nil
}

// Import upserts records by name in one transaction. With truncate the
// kind's table is emptied first.
func (s *Store) Import(ctx context.Context, kind model.Kind, recs []model.Record, truncate bool) (model.ImportStats, error) {
	stats := model.ImportStats{Kind: kind}
	t, err := table(kind)
	if err != nil {
		return stats, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback() //nolint:errcheck

	if truncate {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`TRUNCATE %s RESTART IDENTITY`, t)); err != nil {
			return stats, fmt.Errorf("truncate %s: %w", t, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, score) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET score = EXCLUDED.score
		RETURNING (xmax = 0)`, t))
	if err != nil {
		return stats, err
	}
	defer stmt.Close()

	for _, r := range recs {
		var inserted bool
		if err := stmt.QueryRowContext(ctx, r.Name, r.Score).Scan(&inserted); err != nil {
			return stats, fmt.Errorf("upsert %q: %w", r.Name, err)
		}
		if inserted {
			stats.Created++
		} else {
			stats.Updated++
		}
	}
	if err := tx.Commit(); err != nil {
		return stats, err
	}
	stats.Loaded = len(recs)
	return stats, nil
}
