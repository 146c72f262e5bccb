package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupported = errors.New("unsupported file type")

// Sheet is the first worksheet of a file: its header row in column order and
// the data rows below it as header -> cell maps.
type Sheet struct {
	Headers []string
	Rows    []map[string]string
}

// ReadAny picks a reader by file extension. headerRow is 1-based.
func ReadAny(r io.Reader, filename string, headerRow int) (Sheet, error) {
	if headerRow < 1 {
		headerRow = 1
	}
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return Sheet{}, fmt.Errorf("%w: %q", ErrUnsupported, filename)
	}
}

func toSheet(rows [][]string, headerRow int) Sheet {
	headers := pickHeader(rows, headerRow)
	return Sheet{Headers: headers, Rows: rowsToMaps(rows, headers, headerRow)}
}

// pickHeader takes the header row and names blank cells "Column N".
// A repeated header gets its column number appended, so the first one keeps
// the plain name.
func pickHeader(rows [][]string, headerRow int) []string {
	if len(rows) == 0 {
		return nil
	}
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]bool, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		switch {
		case v == "":
			v = fmt.Sprintf("Column %d", i+1)
		case seen[v]:
			v = fmt.Sprintf("%s (%d)", v, i+1)
		}
		seen[v] = true
		out[i] = v
	}
	return out
}

// rowsToMaps turns the rows below the header into maps, dropping fully blank rows.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	var out []map[string]string
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, h := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

// normalizeCell trims the cell, turns NBSP/narrow NBSP into spaces and drops BOMs.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\uFEFF", "").Replace(s)
	return strings.TrimSpace(s)
}
