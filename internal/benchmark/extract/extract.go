// Package extract pulls minimum/recommended system requirements out of
// scraped requirement text such as store pages.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"benchmark-service/internal/benchmark/model"
)

// Labeled lines: "Minimum CPU: ...", "Recommended Graphics: ...".
var (
	minCPU     = compile(`Minimum[^:\n]*?(?:CPU|Processor)[^:\n]*:\s*(.+)`)
	minGPU     = compile(`Minimum[^:\n]*?(?:GPU|Graphics|Video Card)[^:\n]*:\s*(.+)`)
	minRAM     = compile(`Minimum[^:\n]*?(?:RAM|Memory)[^:\n]*:\s*(.+)`)
	minStorage = compile(`Minimum[^:\n]*?(?:Disk|Storage|Hard Drive)[^:\n]*:\s*(.+)`)

	recCPU     = compile(`Recommended[^:\n]*?(?:CPU|Processor)[^:\n]*:\s*(.+)`)
	recGPU     = compile(`Recommended[^:\n]*?(?:GPU|Graphics|Video Card)[^:\n]*:\s*(.+)`)
	recRAM     = compile(`Recommended[^:\n]*?(?:RAM|Memory)[^:\n]*:\s*(.+)`)
	recStorage = compile(`Recommended[^:\n]*?(?:Disk|Storage|Hard Drive)[^:\n]*:\s*(.+)`)
)

// Unlabeled lines inside a "Minimum:" / "Recommended:" section (store page layout).
var (
	anyCPU     = compile(`(?:^|\n)\s*(?:Processor|CPU)[^:\n]*:\s*(.+)`)
	anyGPU     = compile(`(?:^|\n)\s*(?:Graphics|GPU|Video Card)[^:\n]*:\s*(.+)`)
	anyRAM     = compile(`(?:^|\n)\s*(?:Memory|RAM)[^:\n]*:\s*(.+)`)
	anyStorage = compile(`(?:^|\n)\s*(?:Storage|Disk|Hard Drive)[^:\n]*:\s*(.+)`)
)

var (
	reRecommendedHeader = regexp.MustCompile(`(?im)^\s*recommended\b`)
	reSize              = regexp.MustCompile(`(?i)(\d+)\s*(GB|TB)\b`)
)

const parsedNote = "Parsed via regex"

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

func first(text string, res []*regexp.Regexp) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// SizeGB reads the first "<n> GB" or "<n> TB" in s, in GB. ok is false when none is found.
func SizeGB(s string) (int, bool) {
	m := reSize.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(m[2], "TB") {
		n *= 1024
	}
	return n, true
}

// field prefers a labeled line anywhere in text, then an unlabeled line of the section.
func field(text, section string, labeled, generic []*regexp.Regexp) string {
	if v := first(text, labeled); v != "" {
		return v
	}
	return first(section, generic)
}

func sizeField(text, section string, labeled, generic []*regexp.Regexp) int {
	n, _ := SizeGB(field(text, section, labeled, generic))
	return n
}

// sections splits text at the "Recommended" header. Without one the whole
// text is the minimum section.
func sections(text string) (minText, recText string) {
	loc := reRecommendedHeader.FindStringIndex(text)
	if loc == nil {
		return text, ""
	}
	return text[:loc[0]], text[loc[0]:]
}

// Parse returns the minimum and the recommended requirement found in text.
// Fields that are not present stay empty or zero; scores are left unset.
func Parse(text string) []model.Requirement {
	minText, recText := sections(text)
	return []model.Requirement{
		{
			Type:      model.Minimum,
			CPUName:   field(text, minText, minCPU, anyCPU),
			GPUName:   field(text, minText, minGPU, anyGPU),
			RAMGB:     sizeField(text, minText, minRAM, anyRAM),
			StorageGB: sizeField(text, minText, minStorage, anyStorage),
			Notes:     parsedNote,
		},
		{
			Type:      model.Recommended,
			CPUName:   field(text, recText, recCPU, anyCPU),
			GPUName:   field(text, recText, recGPU, anyGPU),
			RAMGB:     sizeField(text, recText, recRAM, anyRAM),
			StorageGB: sizeField(text, recText, recStorage, anyStorage),
			Notes:     parsedNote,
		},
	}
}

// Diff is one field where two extractions of the same page disagree.
type Diff struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	A     string `json:"a"`
	B     string `json:"b"`
}

// Compare lists the cpu/gpu/ram/storage differences between two extractions,
// pairing requirements by position.
func Compare(a, b []model.Requirement) []Diff {
	var diffs []Diff
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		fields := []struct{ name, a, b string }{
			{"cpu", a[i].CPUName, b[i].CPUName},
			{"gpu", a[i].GPUName, b[i].GPUName},
			{"ram", strconv.Itoa(a[i].RAMGB), strconv.Itoa(b[i].RAMGB)},
			{"storage", strconv.Itoa(a[i].StorageGB), strconv.Itoa(b[i].StorageGB)},
		}
		for _, f := range fields {
			if f.a != f.b {
				diffs = append(diffs, Diff{Index: i, Field: f.name, A: f.a, B: f.b})
			}
		}
	}
	return diffs
}
