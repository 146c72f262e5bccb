package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "")
	t.Setenv("ALLOW_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, 8083, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, "127.0.0.1:8083", cfg.Addr())
	assert.Equal(t, int64(64<<20), cfg.MaxUploadBytes())
	assert.Positive(t, cfg.ResolveWorkers)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_DIR=/srv/bench\nRESOLVE_WORKERS=3\n"), 0o644))
	t.Setenv("ENV_FILE", path)
	t.Setenv("ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("PORT", "not-a-number")

	// godotenv never overrides variables that already exist
	unset := func() {
		os.Unsetenv("CATALOG_DIR")
		os.Unsetenv("RESOLVE_WORKERS")
	}
	unset()
	t.Cleanup(unset)

	cfg := Load()

	assert.Equal(t, "/srv/bench", cfg.CatalogDir)
	assert.Equal(t, 3, cfg.ResolveWorkers)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	assert.Equal(t, 8083, cfg.Port)
}
