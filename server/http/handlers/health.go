package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"benchmark-service/internal/benchmark/catalog"
)

type healthBody struct {
	Status   string    `json:"status"`
	Records  int       `json:"records"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Health reports liveness plus the size of the active catalog. An empty
// catalog is still healthy: every lookup just comes back unknown.
func Health(catalogs *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := catalogs.Snapshot().Info()
		body := healthBody{Status: "ok", Source: info.Source, LoadedAt: info.LoadedAt}
		for _, n := range info.Counts {
			body.Records += n
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(body)
	}
}
