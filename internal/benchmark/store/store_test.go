package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchmark-service/internal/benchmark/model"
)

func TestNew_NilDB(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilDB)
}

func TestTable(t *testing.T) {
	for _, k := range model.Kinds {
		name, err := table(k)
		require.NoError(t, err)
		assert.Equal(t, string(k)+"_benchmark", name)
	}
	_, err := table(model.Kind("ram"))
	assert.Error(t, err)
}

func TestSchemaSQL(t *testing.T) {
	q := schemaSQL("cpu_benchmark")
	assert.Contains(t, q, "CREATE TABLE IF NOT EXISTS cpu_benchmark")
	assert.Contains(t, q, "name  TEXT NOT NULL UNIQUE")
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestImportAndLoad_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EnsureSchema(ctx))

	recs := []model.Record{
		{Name: "Intel Core i5-6600K", Score: 5000},
		{Name: "AMD Ryzen 5 1600", Score: 6000},
	}
	stats, err := s.Import(ctx, model.KindCPU, recs, true)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Created)

	stats, err = s.Import(ctx, model.KindCPU, []model.Record{{Name: "AMD Ryzen 5 1600", Score: 6100}}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)

	got, err := s.Load(ctx, model.KindCPU)
	require.NoError(t, err)
	assert.Equal(t, []model.Record{
		{Name: "Intel Core i5-6600K", Score: 5000},
		{Name: "AMD Ryzen 5 1600", Score: 6100},
	}, got)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Records(model.KindCPU), 2)
}
