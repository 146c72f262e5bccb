package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchmark-service/internal/benchmark/extract"
	"benchmark-service/internal/benchmark/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func catalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "cpu_benchmarks.csv", "CPU Name,CPU Mark\nIntel Core i5-6600K,\"8,000\"\nIntel Core i7-8700K,\"15,000\"\n")
	writeFile(t, dir, "gpu_benchmarks.csv", "Videocard Name,G3D Mark\nGeForce GTX 970,9600\nGeForce GTX 1080 Ti,18000\n")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	dir := catalogDir(t)
	out, err := run(t, "resolve", "--catalog-dir", dir, "-t", "cpu",
		"Intel Core i5-6600K or Intel Core i7-8700K", "Motorola 68000", "N/A")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "15000"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "unknown"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "unknown"), lines[2])
}

func TestResolveCommand_BadKind(t *testing.T) {
	_, err := run(t, "resolve", "--catalog-dir", t.TempDir(), "-t", "psu", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownKind)
}

func TestImportCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "disk.csv", "Drive Name,Disk Rating\nSamsung 970 EVO,25000\nBroken,\n")

	out, err := run(t, "import", "--type", "disk", "--file", file, "--dry-run")
	require.NoError(t, err)

	var stats model.ImportStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, model.KindDisk, stats.Kind)
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 1, stats.Skipped)
}

func TestImportCommand_NoDatabase(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "cpu.csv", "CPU Name,CPU Mark\nRyzen 5 1600,12000\n")

	_, err := run(t, "import", "--type", "cpu", "--file", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database")
}

func TestExtractCommand(t *testing.T) {
	dir := catalogDir(t)
	a := writeFile(t, t.TempDir(), "a.txt", "Processor: Intel Core i5-6600K\nGraphics: GeForce GTX 970\nMemory: 8 GB RAM\n\n"+
		"Recommended:\nProcessor: Intel Core i7-8700K\nGraphics: GeForce GTX 1080 Ti\nMemory: 16 GB RAM\n")
	b := writeFile(t, t.TempDir(), "b.txt", "Processor: Intel Core i5-6600K\nGraphics: GeForce GTX 970\nMemory: 4 GB RAM\n")

	out, err := run(t, "extract", "--catalog-dir", dir, "--resolve", "--compare", b, a)
	require.NoError(t, err)

	var got extractOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Requirements, 2)
	require.NotNil(t, got.Aggregate)
	assert.Equal(t, 17600, got.Aggregate.Min.Demand())
	assert.Equal(t, 33000, got.Aggregate.Recommended.Demand())
	assert.Contains(t, got.Diff, extract.Diff{Index: 0, Field: "ram", A: "8", B: "4"})
}
