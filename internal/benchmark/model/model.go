package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind of benchmarked component. Each kind has its own catalog.
type Kind string

const (
	KindCPU  Kind = "cpu"
	KindGPU  Kind = "gpu"
	KindDisk Kind = "disk"
)

// Kinds in import/report order.
var Kinds = []Kind{KindCPU, KindGPU, KindDisk}

var ErrUnknownKind = errors.New("unknown component kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCPU, KindGPU, KindDisk:
		return k, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
	}
}

// Record is one canonical benchmark entry.
type Record struct {
	Name  string `json:"name" validate:"required"`
	Score int    `json:"score" validate:"min=0"`
}

type RequirementType string

const (
	Minimum     RequirementType = "minimum"
	Recommended RequirementType = "recommended"
)

// Requirement is one application's minimum or recommended system requirement.
// CPUScore/GPUScore are nil while no confident match is known.
type Requirement struct {
	Type      RequirementType `json:"type" validate:"omitempty,oneof=minimum recommended"`
	CPUName   string          `json:"cpu_name"`
	GPUName   string          `json:"gpu_name"`
	RAMGB     int             `json:"ram_gb" validate:"min=0"`
	StorageGB int             `json:"storage_gb" validate:"min=0"`
	CPUScore  *int            `json:"cpu_score"`
	GPUScore  *int            `json:"gpu_score"`
	Notes     string          `json:"notes,omitempty"`
}

// Demand is the combined demand score: cpu + gpu, unknown scores count as 0.
func (r Requirement) Demand() int {
	return deref(r.CPUScore) + deref(r.GPUScore)
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// IntPtr is a helper for optional scores.
func IntPtr(v int) *int { return &v }

// Aggregate is a recommendation: the heaviest minimum and heaviest recommended
// requirement out of a pool. Both sides are pool members copied verbatim.
type Aggregate struct {
	Min         Requirement   `json:"min"`
	Recommended Requirement   `json:"recommended"`
	Source      []Requirement `json:"source"`
}

// ImportStats reports what a catalog import did.
type ImportStats struct {
	Kind    Kind `json:"kind"`
	Loaded  int  `json:"loaded"`
	Created int  `json:"created,omitempty"`
	Updated int  `json:"updated,omitempty"`
	Skipped int  `json:"skipped"`
}

// CatalogInfo summarizes a loaded catalog snapshot.
type CatalogInfo struct {
	Counts   map[Kind]int `json:"counts"`
	Source   string       `json:"source"`
	LoadedAt time.Time    `json:"loadedAt"`
}
