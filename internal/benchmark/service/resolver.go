package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"benchmark-service/internal/benchmark/model"
	"benchmark-service/internal/metrics"
)

// Catalog gives read-only access to benchmark records per kind.
// Implementations must not change the returned slices while they are in use.
type Catalog interface {
	Records(kind model.Kind) []model.Record
}

// ResolveScore scores a raw requirement line by the strongest alternative it
// lists: every candidate is matched on its own and the highest matched score
// is returned. ok is false when nothing matched.
func ResolveScore(raw string, catalog []model.Record) (score int, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}
	for _, c := range Split(raw) {
		rec, matched := FindBestMatch(c, catalog)
		if !matched {
			continue
		}
		if !ok || rec.Score > score {
			score, ok = rec.Score, true
		}
	}
	return score, ok
}

// Resolver fills cpu/gpu scores of requirements from a catalog and reports
// unresolved fields.
type Resolver struct {
	log     zerolog.Logger
	workers int
}

func NewResolver(logger zerolog.Logger, workers int) *Resolver {
	if workers <= 0 {
		workers = 1
	}
	return &Resolver{log: logger, workers: workers}
}

// Score resolves one raw component line against the kind's catalog.
func (r *Resolver) Score(kind model.Kind, raw string, cat Catalog) *int {
	if strings.TrimSpace(raw) == "" {
		metrics.MatchOutcomes.WithLabelValues(string(kind), metrics.OutcomeEmpty).Inc()
		return nil
	}
	score, ok := ResolveScore(raw, cat.Records(kind))
	if !ok {
		metrics.MatchOutcomes.WithLabelValues(string(kind), metrics.OutcomeNoMatch).Inc()
		r.log.Warn().Str("kind", string(kind)).Str("raw", raw).Msg("score unknown: no benchmark match")
		return nil
	}
	metrics.MatchOutcomes.WithLabelValues(string(kind), metrics.OutcomeMatched).Inc()
	return &score
}

// Resolve returns a copy of req with cpu/gpu scores recomputed.
func (r *Resolver) Resolve(req model.Requirement, cat Catalog) model.Requirement {
	start := time.Now()
	req.CPUScore = r.Score(model.KindCPU, req.CPUName, cat)
	req.GPUScore = r.Score(model.KindGPU, req.GPUName, cat)
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	return req
}

// ResolveAll resolves every requirement, spreading the work over the
// configured number of workers. The result keeps input order.
func (r *Resolver) ResolveAll(ctx context.Context, reqs []model.Requirement, cat Catalog) ([]model.Requirement, error) {
	out := make([]model.Requirement, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = r.Resolve(reqs[i], cat)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
