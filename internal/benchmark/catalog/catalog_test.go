package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchmark-service/internal/benchmark/model"
)

var cpuHeaders = []string{"CPU Name", "CPU Mark", "Rank"}

func TestFromRows(t *testing.T) {
	rows := []map[string]string{
		{"CPU Name": "Intel Core i7-9700K", "CPU Mark": "14,000", "Rank": "1"},
		{"CPU Name": "  ", "CPU Mark": "9000", "Rank": "2"},
		{"CPU Name": "AMD Ryzen 5 1600", "CPU Mark": "NA", "Rank": "3"},
		{"CPU Name": "AMD Ryzen 5 1600", "CPU Mark": "12000", "Rank": "4"},
	}
	recs, stats, err := FromRows(model.KindCPU, cpuHeaders, rows)
	require.NoError(t, err)
	assert.Equal(t, []model.Record{
		{Name: "Intel Core i7-9700K", Score: 14000},
		{Name: "AMD Ryzen 5 1600", Score: 12000},
	}, recs)
	assert.Equal(t, model.ImportStats{Kind: model.KindCPU, Loaded: 2, Skipped: 2}, stats)
}

func TestFromRows_MalformedScores(t *testing.T) {
	rows := []map[string]string{
		{"CPU Name": "Negative Chip", "CPU Mark": "-500"},
		{"CPU Name": "Decimal Chip", "CPU Mark": "1234.5"},
		{"CPU Name": "Float Export Chip", "CPU Mark": "12345.0"},
		{"CPU Name": "Overflow Chip", "CPU Mark": "99999999999999999999"},
		{"CPU Name": "Suffix Chip", "CPU Mark": "800 pts"},
	}
	recs, stats, err := FromRows(model.KindCPU, []string{"CPU Name", "CPU Mark"}, rows)
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{Name: "Float Export Chip", Score: 12345}}, recs)
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 4, stats.Skipped)
}

func TestFromRows_HeaderOnly(t *testing.T) {
	recs, stats, err := FromRows(model.KindCPU, cpuHeaders, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, model.ImportStats{Kind: model.KindCPU}, stats)
}

func TestFromRows_DuplicateSanitizedHeaders(t *testing.T) {
	headers := []string{"CPU Name", "CPU Mark", "CPU-Mark"}
	rows := []map[string]string{{"CPU Name": "Ryzen 5 1600", "CPU Mark": "12000", "CPU-Mark": "1"}}
	for range 20 {
		recs, _, err := FromRows(model.KindCPU, headers, rows)
		require.NoError(t, err)
		require.Equal(t, []model.Record{{Name: "Ryzen 5 1600", Score: 12000}}, recs, "leftmost header wins")
	}
}

func TestFromRows_MissingColumns(t *testing.T) {
	rows := []map[string]string{{"Videocard Name": "GTX 970", "Price": "100"}}
	_, _, err := FromRows(model.KindGPU, []string{"Videocard Name", "Price"}, rows)
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "g3dmark")

	_, _, err = FromRows(model.KindDisk, nil, nil)
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestRead_HeaderOnlySheet(t *testing.T) {
	recs, stats, err := Read(model.KindGPU, strings.NewReader("Videocard Name,G3D Mark\n"), "gpu.csv", 1)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Zero(t, stats.Skipped)
}

func TestSanitizeHeader(t *testing.T) {
	assert.Equal(t, "videocardname", sanitizeHeader(" Videocard Name "))
	assert.Equal(t, "g3dmark", sanitizeHeader("G3D-Mark"))
	assert.Equal(t, "diskrating", sanitizeHeader("Disk_Rating"))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("cpu_list.csv", "CPU Name,CPU Mark\nIntel Core i5-6600K,5000\nAMD Ryzen 5 1600,6000\n")
	write("GPU-2024.csv", "Videocard Name,G3D Mark\nGeForce GTX 970,9600\n")
	write("notes.txt", "ignored")

	snap, stats, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Len(t, snap.Records(model.KindCPU), 2)
	assert.Len(t, snap.Records(model.KindGPU), 1)
	assert.Empty(t, snap.Records(model.KindDisk))

	info := snap.Info()
	assert.Equal(t, 2, info.Counts[model.KindCPU])
	assert.Equal(t, 0, info.Counts[model.KindDisk])
	assert.Equal(t, "dir:"+dir, info.Source)
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	_, err := FindFile(dir, model.KindDisk)
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestSnapshotIsolation(t *testing.T) {
	src := map[model.Kind][]model.Record{model.KindCPU: {{Name: "a", Score: 1}}}
	snap := NewSnapshot("test", src)
	src[model.KindCPU][0].Score = 99
	assert.Equal(t, 1, snap.Records(model.KindCPU)[0].Score)

	next := snap.With("test", model.KindGPU, []model.Record{{Name: "g", Score: 2}})
	assert.Empty(t, snap.Records(model.KindGPU))
	assert.Len(t, next.Records(model.KindGPU), 1)
	assert.Len(t, next.Records(model.KindCPU), 1)
}

func TestStoreReplaceConcurrent(t *testing.T) {
	st := NewStore(nil)
	var wg sync.WaitGroup
	for _, k := range model.Kinds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Replace("upload:"+string(k), k, []model.Record{{Name: string(k), Score: 1}})
		}()
	}
	wg.Wait()

	snap := st.Snapshot()
	for _, k := range model.Kinds {
		assert.Len(t, snap.Records(k), 1, k)
	}
}
