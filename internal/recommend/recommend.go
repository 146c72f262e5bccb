// Package recommend turns a reduced hardware requirement into a ranked list of
// products that satisfy it.
package recommend

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"benchmark-service/internal/benchmark/model"
	"benchmark-service/internal/benchmark/service"
)

// Product is a sellable configuration. Scores are nil until resolved.
type Product struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name"`
	Price       float64 `json:"price" validate:"min=0"`
	CPUBrand    string  `json:"cpu_brand"`
	CPUSeries   string  `json:"cpu_series"`
	CPUModel    string  `json:"cpu_model"`
	CPUText     string  `json:"cpu_text"` // free text the vendor entered for the processor
	GPUText     string  `json:"gpu_text"`
	CPUScore    *int    `json:"cpu_score"`
	GPUScore    *int    `json:"gpu_score"`
	RAMGB       int     `json:"ram_gb" validate:"min=0"`
	StorageGB   int     `json:"storage_gb" validate:"min=0"`
	StorageType string  `json:"storage_type"` // SSD | HDD
}

// Ranked is a product that passed the filter, with its ranking score.
type Ranked struct {
	Product
	Rank float64 `json:"rank"`
}

// ranking bonuses for CPU affinity with the recommended CPU
const (
	bonusBrand  = 25.0
	bonusSeries = 50.0
	bonusModel  = 100.0
)

var (
	reBrand  = regexp.MustCompile(`(?i)(intel|amd)`)
	reSeries = regexp.MustCompile(`(?i)(i[3579]|Ryzen\s[3579])`)
)

// Target is what a product has to meet.
type Target struct {
	CPUScore    int
	GPUScore    int
	RAMGB       int
	StorageGB   int
	CPUName     string
	StorageType string
}

// TargetFrom takes the thresholds from one side of a reduced requirement pool.
func TargetFrom(req model.Requirement, storageType string) Target {
	t := Target{
		RAMGB:       req.RAMGB,
		StorageGB:   req.StorageGB,
		CPUName:     req.CPUName,
		StorageType: storageType,
	}
	if req.CPUScore != nil {
		t.CPUScore = *req.CPUScore
	}
	if req.GPUScore != nil {
		t.GPUScore = *req.GPUScore
	}
	return t
}

func score(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Eligible reports whether p meets every threshold of t. A product without a
// known CPU score never qualifies. The GPU threshold only applies when a GPU
// is actually required.
func Eligible(p Product, t Target) bool {
	if p.CPUScore == nil {
		return false
	}
	if *p.CPUScore < t.CPUScore || p.RAMGB < t.RAMGB || p.StorageGB < t.StorageGB {
		return false
	}
	if t.GPUScore > 0 && score(p.GPUScore) < t.GPUScore {
		return false
	}
	return true
}

// Rank scores an eligible product: raw cpu+gpu performance plus bonuses when
// the product CPU shares brand, series or model with the recommended CPU.
func Rank(p Product, t Target) float64 {
	r := float64(score(p.CPUScore) + score(p.GPUScore))
	name := strings.TrimSpace(t.CPUName)
	if name == "" {
		return r
	}
	if m := reBrand.FindStringSubmatch(name); m != nil && containsFold(p.CPUBrand, m[1]) {
		r += bonusBrand
	}
	if m := reSeries.FindStringSubmatch(name); m != nil && containsFold(p.CPUSeries, m[1]) {
		r += bonusSeries
	}
	if containsFold(p.CPUModel, name) {
		r += bonusModel
	}
	return r
}

func containsFold(s, sub string) bool {
	return sub != "" && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Match filters products against t and orders them by rank (desc), then
// products with the preferred storage type, then price (asc).
func Match(products []Product, t Target) []Ranked {
	out := make([]Ranked, 0, len(products))
	for _, p := range products {
		if Eligible(p, t) {
			out = append(out, Ranked{Product: p, Rank: Rank(p, t)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		pi, pj := preferred(out[i].Product, t), preferred(out[j].Product, t)
		if pi != pj {
			return pi
		}
		return out[i].Price < out[j].Price
	})
	return out
}

func preferred(p Product, t Target) bool {
	return t.StorageType != "" && strings.EqualFold(p.StorageType, t.StorageType)
}

// FillScores resolves the cpu/gpu scores that are still nil from the
// product's free-text processor and graphics descriptions. Known scores are
// kept. Returns how many products got at least one new score.
func FillScores(ctx context.Context, products []Product, res *service.Resolver, cat service.Catalog, workers int) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	updated := make([]bool, len(products))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range products {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := &products[i]
			if p.CPUScore == nil && strings.TrimSpace(p.CPUText) != "" {
				if s := res.Score(model.KindCPU, p.CPUText, cat); s != nil {
					p.CPUScore, updated[i] = s, true
				}
			}
			if p.GPUScore == nil && strings.TrimSpace(p.GPUText) != "" {
				if s := res.Score(model.KindGPU, p.GPUText, cat); s != nil {
					p.GPUScore, updated[i] = s, true
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	n := 0
	for _, u := range updated {
		if u {
			n++
		}
	}
	return n, nil
}
