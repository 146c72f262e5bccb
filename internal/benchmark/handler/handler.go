package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"benchmark-service/internal/benchmark/catalog"
	"benchmark-service/internal/benchmark/extract"
	"benchmark-service/internal/benchmark/model"
	"benchmark-service/internal/benchmark/service"
	"benchmark-service/internal/fileio"
	"benchmark-service/internal/middleware"
	"benchmark-service/internal/recommend"
)

// Importer persists an uploaded catalog. Optional; without it uploads only
// replace the in-memory snapshot. With it the snapshot is reloaded from the
// persisted table, so memory and database hold the same records.
type Importer interface {
	Import(ctx context.Context, kind model.Kind, recs []model.Record, truncate bool) (model.ImportStats, error)
	Load(ctx context.Context, kind model.Kind) ([]model.Record, error)
}

type Handler struct {
	log      zerolog.Logger
	catalogs *catalog.Store
	resolver *service.Resolver
	importer Importer
	workers  int
	validate *validator.Validate
}

func New(logger zerolog.Logger, catalogs *catalog.Store, resolver *service.Resolver, importer Importer, workers int) *Handler {
	return &Handler{
		log:      logger,
		catalogs: catalogs,
		resolver: resolver,
		importer: importer,
		workers:  workers,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return h.log.With().Str("rid", rid).Logger()
	}
	return h.log
}

type matchRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=cpu gpu disk"`
	Candidate string `json:"candidate" validate:"required"`
}

type matchResponse struct {
	Kind      model.Kind    `json:"kind"`
	Candidate string        `json:"candidate"`
	Matched   bool          `json:"matched"`
	Record    *model.Record `json:"record,omitempty"`
}

// Match resolves one candidate name to its catalog record.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !h.decode(w, r, &req) {
		return
	}
	kind := model.Kind(req.Kind)
	resp := matchResponse{Kind: kind, Candidate: req.Candidate}
	if rec, ok := service.FindBestMatch(req.Candidate, h.catalogs.Snapshot().Records(kind)); ok {
		resp.Matched, resp.Record = true, &rec
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

type resolveRequest struct {
	Requirements []model.Requirement `json:"requirements" validate:"required,min=1,dive"`
}

type requirementsResponse struct {
	Requirements []model.Requirement `json:"requirements"`
}

// Resolve fills cpu/gpu scores of the posted requirements.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.resolver.ResolveAll(r.Context(), req.Requirements, h.catalogs.Snapshot())
	if err != nil {
		h.logger(r).Warn().Err(err).Msg("resolve aborted")
		writeError(w, http.StatusServiceUnavailable, "resolve aborted")
		return
	}
	_ = writeJSON(w, http.StatusOK, requirementsResponse{Requirements: out})
}

type reduceRequest struct {
	Requirements []model.Requirement `json:"requirements" validate:"dive"`
	Resolve      bool                `json:"resolve"`
}

type reduceResponse struct {
	Found     bool              `json:"found"`
	Heaviest  model.Requirement `json:"heaviest"`
	Aggregate model.Aggregate   `json:"aggregate"`
}

// Reduce picks the heaviest requirement of the pool, overall and per type.
// With resolve=true scores are recomputed first.
func (h *Handler) Reduce(w http.ResponseWriter, r *http.Request) {
	var req reduceRequest
	if !h.decode(w, r, &req) {
		return
	}
	pool := req.Requirements
	if req.Resolve {
		var err error
		if pool, err = h.resolver.ResolveAll(r.Context(), pool, h.catalogs.Snapshot()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "resolve aborted")
			return
		}
	}
	heaviest, found := service.Reduce(pool)
	_ = writeJSON(w, http.StatusOK, reduceResponse{
		Found:     found,
		Heaviest:  heaviest,
		Aggregate: service.ReduceAggregate(pool),
	})
}

type extractRequest struct {
	Text    string `json:"text" validate:"required"`
	Resolve bool   `json:"resolve"`
}

// Extract parses requirement text and optionally scores the result.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !h.decode(w, r, &req) {
		return
	}
	reqs := extract.Parse(req.Text)
	if req.Resolve {
		snap := h.catalogs.Snapshot()
		for i := range reqs {
			reqs[i] = h.resolver.Resolve(reqs[i], snap)
		}
	}
	_ = writeJSON(w, http.StatusOK, requirementsResponse{Requirements: reqs})
}

type productsRequest struct {
	Products    []recommend.Product `json:"products" validate:"required,dive"`
	Requirement model.Requirement   `json:"requirement"`
	StorageType string              `json:"storage_type" validate:"omitempty,oneof=SSD HDD"`
	FillScores  bool                `json:"fill_scores"`
}

type productsResponse struct {
	Filled   int                `json:"filled"`
	Products []recommend.Ranked `json:"products"`
}

// Products filters and ranks products against one side of a reduced requirement pool.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	var req productsRequest
	if !h.decode(w, r, &req) {
		return
	}
	var filled int
	if req.FillScores {
		var err error
		filled, err = recommend.FillScores(r.Context(), req.Products, h.resolver, h.catalogs.Snapshot(), h.workers)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "score fill aborted")
			return
		}
	}
	ranked := recommend.Match(req.Products, recommend.TargetFrom(req.Requirement, req.StorageType))
	_ = writeJSON(w, http.StatusOK, productsResponse{Filled: filled, Products: ranked})
}

// CatalogInfo reports what the active snapshot holds.
func (h *Handler) CatalogInfo(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, h.catalogs.Snapshot().Info())
}

type uploadResponse struct {
	Stats     model.ImportStats  `json:"stats"`
	Persisted *model.ImportStats `json:"persisted,omitempty"`
	Catalog   model.CatalogInfo  `json:"catalog"`
}

// UploadCatalog replaces one kind of the catalog with an uploaded sheet
// (multipart field "file"). In-flight matches keep using the old snapshot.
func (h *Handler) UploadCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.logger(r)

	kind, err := model.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	recs, stats, err := catalog.Read(kind, file, header.Filename, atoi(r.FormValue("header_row"), 1))
	switch {
	case errors.Is(err, fileio.ErrUnsupported), errors.Is(err, catalog.ErrMissingColumns):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(recs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no valid benchmark rows")
		return
	}

	resp := uploadResponse{Stats: stats}
	if h.importer != nil {
		persisted, err := h.importer.Import(r.Context(), kind, recs, toBool(r.FormValue("truncate"), false))
		if err != nil {
			log.Error().Err(err).Str("kind", string(kind)).Msg("catalog import failed")
			writeError(w, http.StatusInternalServerError, "catalog import failed")
			return
		}
		persisted.Skipped = stats.Skipped
		resp.Persisted = &persisted

		// without truncate the table keeps rows the sheet does not mention
		if recs, err = h.importer.Load(r.Context(), kind); err != nil {
			log.Error().Err(err).Str("kind", string(kind)).Msg("catalog reload failed")
			writeError(w, http.StatusInternalServerError, "catalog reload failed")
			return
		}
	}

	source := "upload:" + strings.TrimSpace(header.Filename)
	resp.Catalog = h.catalogs.Replace(source, kind, recs).Info()

	log.Info().
		Str("kind", string(kind)).
		Str("file", header.Filename).
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped).
		Int("records", len(recs)).
		Dur("elapsed", time.Since(start)).
		Msg("catalog replaced")
	_ = writeJSON(w, http.StatusOK, resp)
}
