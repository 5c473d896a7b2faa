package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Sheet is a raw table: a header row and data rows of strings.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// Cell returns row i at column j, or "" past the end of a short row.
func (s *Sheet) Cell(i, j int) string {
	if j < len(s.Rows[i]) {
		return s.Rows[i][j]
	}
	return ""
}

func newSheet(rows [][]string) *Sheet {
	if len(rows) == 0 {
		return &Sheet{}
	}
	headers := rows[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return &Sheet{Headers: headers, Rows: rows[1:]}
}

// ReadCSV reads a semicolon-separated Latin-1 file.
func ReadCSV(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return newSheet(rows), nil
}

// ReadXLSX reads the first worksheet of a workbook.
func ReadXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Sheet{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return newSheet(rows), nil
}
