package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"benchmark-service/internal/benchmark/model"
	"benchmark-service/internal/fileio"
	"benchmark-service/internal/utils"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoFile         = errors.New("no benchmark file found")
)

// name/score columns per kind, after header sanitation
var columns = map[model.Kind]struct{ name, score string }{
	model.KindCPU:  {"cpuname", "cpumark"},
	model.KindGPU:  {"videocardname", "g3dmark"},
	model.KindDisk: {"drivename", "diskrating"},
}

// Extensions accepted for benchmark sheets.
var Extensions = []string{".csv", ".xlsx", ".xls"}

var validate = validator.New()

var rxHeaderJunk = regexp.MustCompile(`[^a-z0-9]`)

// sanitizeHeader: "CPU Name" -> "cpuname", "Videocard Name" -> "videocardname"
func sanitizeHeader(s string) string {
	return rxHeaderJunk.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// FromRows converts header-keyed spreadsheet rows into benchmark records.
// headers is the sheet header row in column order; when two headers sanitize
// to the same column name the leftmost one is used. Rows without a name or
// with a malformed score are skipped and counted.
func FromRows(kind model.Kind, headers []string, rows []map[string]string) ([]model.Record, model.ImportStats, error) {
	stats := model.ImportStats{Kind: kind}
	cols, ok := columns[kind]
	if !ok {
		return nil, stats, fmt.Errorf("catalog: kind %q has no column map", kind)
	}

	var nameKey, scoreKey string
	found := make([]string, 0, len(headers))
	for _, h := range headers {
		sk := sanitizeHeader(h)
		found = append(found, sk)
		switch {
		case sk == cols.name && nameKey == "":
			nameKey = h
		case sk == cols.score && scoreKey == "":
			scoreKey = h
		}
	}
	if nameKey == "" || scoreKey == "" {
		var missing []string
		if nameKey == "" {
			missing = append(missing, cols.name)
		}
		if scoreKey == "" {
			missing = append(missing, cols.score)
		}
		sort.Strings(found)
		return nil, stats, fmt.Errorf("%w for %s: %v (found %v)", ErrMissingColumns, kind, missing, found)
	}

	recs := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row[nameKey])
		score, ok := utils.ParseScore(row[scoreKey])
		rec := model.Record{Name: name, Score: score}
		if !ok || validate.Struct(rec) != nil {
			stats.Skipped++
			continue
		}
		recs = append(recs, rec)
	}
	stats.Loaded = len(recs)
	return recs, stats, nil
}

// Read parses one uploaded or on-disk benchmark sheet. A sheet with the
// right headers and no data rows yields no records and no error.
func Read(kind model.Kind, r io.Reader, filename string, headerRow int) ([]model.Record, model.ImportStats, error) {
	sheet, err := fileio.ReadAny(r, filename, headerRow)
	if err != nil {
		return nil, model.ImportStats{Kind: kind}, fmt.Errorf("read %s: %w", filename, err)
	}
	return FromRows(kind, sheet.Headers, sheet.Rows)
}

// LoadFile reads a benchmark sheet from disk.
func LoadFile(kind model.Kind, path string) ([]model.Record, model.ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.ImportStats{Kind: kind}, err
	}
	defer f.Close()
	return Read(kind, f, filepath.Base(path), 1)
}

// FindFile returns the first file in dir named "<kind>*" with a supported extension.
func FindFile(dir string, kind model.Kind) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := strings.ToLower(e.Name())
		if !strings.HasPrefix(n, string(kind)) {
			continue
		}
		for _, ext := range Extensions {
			if strings.HasSuffix(n, ext) {
				return filepath.Join(dir, e.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("%w for %s in %s", ErrNoFile, kind, dir)
}

// LoadDir builds a snapshot from the benchmark sheets found in dir.
// Kinds without a sheet stay empty.
func LoadDir(dir string) (*Snapshot, []model.ImportStats, error) {
	records := make(map[model.Kind][]model.Record, len(model.Kinds))
	var stats []model.ImportStats
	for _, k := range model.Kinds {
		path, err := FindFile(dir, k)
		if errors.Is(err, ErrNoFile) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		recs, st, err := LoadFile(k, path)
		if err != nil {
			return nil, nil, err
		}
		records[k] = recs
		stats = append(stats, st)
	}
	return NewSnapshot("dir:"+dir, records), stats, nil
}
