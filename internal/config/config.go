package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host           string
	Port           int
	AllowOrigins   []string
	LogLevel       string
	LogFile        string
	MaxUploadMB    int
	DatabaseURL    string // postgres catalog; empty means spreadsheets from CatalogDir
	CatalogDir     string // cpu*.xlsx, gpu*.csv, disk*.xls ...
	ResolveWorkers int
}

// Load reads the environment. A .env file in the working directory (or the
// one named by ENV_FILE) is applied first without overriding real variables.
func Load() Config {
	_ = godotenv.Load(getenv("ENV_FILE", ".env"))

	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           atoi(getenv("PORT", "8083"), 8083),
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFile:        getenv("LOG_FILE", "logs/benchmark-service.log"),
		MaxUploadMB:    atoi(getenv("MAX_UPLOAD_MB", "64"), 64),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		CatalogDir:     getenv("CATALOG_DIR", "data"),
		ResolveWorkers: atoi(getenv("RESOLVE_WORKERS", ""), runtime.NumCPU()),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
