// Legacy .xls reader. Row.LastCol() is unreliable on some exports, so the
// table width is probed up front and every row is read up to it.
package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

const probeMaxCols = 256

// sheetWidth returns the index+1 of the rightmost non-empty cell on the sheet.
func sheetWidth(sheet *xls.WorkSheet) int {
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := width; j < probeMaxCols; j++ {
			if normalizeCell(r.Col(j)) != "" {
				width = j + 1
			}
		}
	}
	if width == 0 {
		width = 1
	}
	return width
}

func readXLS(r io.Reader, headerRow int) (Sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Sheet{}, err
	}

	// benchmark exports are utf-8 or cp1252
	var wb *xls.WorkBook
	var lastErr error
	for _, cs := range []string{"utf-8", "windows-1252"} {
		wb, err = xls.OpenReader(bytes.NewReader(b), cs)
		if err == nil && wb != nil {
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return Sheet{}, lastErr
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return Sheet{}, nil
	}

	width := sheetWidth(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		cols := make([]string, width)
		if row := sheet.Row(i); row != nil {
			for j := 0; j < width; j++ {
				cols[j] = row.Col(j)
			}
		}
		rows = append(rows, cols)
	}
	return toSheet(rows, headerRow), nil
}
