package ingest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// ErrNoSources is returned when a directory holds none of the expected files.
var ErrNoSources = errors.New("no source spreadsheet could be loaded")

// FileSummary describes one loaded source.
type FileSummary struct {
	Path     string
	Category string
	Rows     int
}

// Result is the unified table.
type Result struct {
	Records []domain.Record
	// Columns lists BaseColumns then every extra column, sorted.
	Columns []string
	Files   []FileSummary
	// Duplicates counts rows dropped for repeating (nombre, municipio, categoria).
	Duplicates int
}

// CategoryCount is a row of the per-category summary.
type CategoryCount struct {
	Category string
	Count    int
}

// ByCategory counts records per category, most frequent first.
func (r *Result) ByCategory() []CategoryCount {
	counts := map[string]int{}
	for _, rec := range r.Records {
		cat, _ := rec[ColCategoria].(string)
		counts[cat]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{cat, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Loader reads and unifies every source found in a directory.
type Loader struct {
	sources []Source
	logger  *slog.Logger
}

type Option func(*Loader)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSources replaces KnownSources.
func WithSources(sources ...Source) Option {
	return func(l *Loader) {
		l.sources = sources
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		sources: KnownSources,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the known CSV files, then every .xlsx file in dir.
// Missing CSV files and unreadable workbooks are skipped with a warning.
func (l *Loader) Load(dir string) (*Result, error) {
	res := &Result{}
	var all []domain.Record
	extra := map[string]bool{}

	add := func(path, category string, sheet *Sheet) error {
		records, extras, err := Normalize(sheet, category)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		for _, c := range extras {
			extra[c] = true
		}
		all = append(all, records...)
		res.Files = append(res.Files, FileSummary{Path: path, Category: category, Rows: len(records)})
		return nil
	}

	for _, src := range l.sources {
		path := filepath.Join(dir, src.File)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("source file not found", "path", path)
			continue
		}
		l.logger.Info("loading csv", "path", path, "category", src.Category)
		sheet, err := ReadCSV(path)
		if err != nil {
			return nil, err
		}
		if err := add(path, src.Category, sheet); err != nil {
			return nil, err
		}
	}

	workbooks, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("failed to list workbooks: %w", err)
	}
	sort.Strings(workbooks)
	for _, path := range workbooks {
		category := CategoryFromFile(path)
		l.logger.Info("loading xlsx", "path", path, "category", category)
		sheet, err := ReadXLSX(path)
		if err != nil {
			l.logger.Error("skipping unreadable workbook", "path", path, "err", err)
			continue
		}
		if err := add(path, category, sheet); err != nil {
			return nil, err
		}
	}

	if len(res.Files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, dir)
	}

	res.Records, res.Duplicates = dedupe(all)
	res.Columns = append([]string(nil), BaseColumns...)
	extras := make([]string, 0, len(extra))
	for c := range extra {
		extras = append(extras, c)
	}
	sort.Strings(extras)
	res.Columns = append(res.Columns, extras...)
	return res, nil
}

// CategoryFromFile derives a category from a workbook file name.
func CategoryFromFile(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ToLower(SanitizeColumn(base))
}

// Normalize maps a raw sheet onto BaseColumns plus sanitized extra columns.
// Rows without a name are dropped. It returns the extra column names.
func Normalize(sheet *Sheet, category string) ([]domain.Record, []string, error) {
	cols, err := detectColumns(sheet.Headers)
	if err != nil {
		return nil, nil, err
	}

	index := make(map[string]int, len(sheet.Headers))
	for j, h := range sheet.Headers {
		if _, dup := index[h]; !dup {
			index[h] = j
		}
	}

	taken := map[string]bool{}
	for _, c := range BaseColumns {
		taken[c] = true
	}
	type extraCol struct {
		name string
		src  int
	}
	var extras []extraCol
	for j, h := range sheet.Headers {
		if cols.isMapped(h) {
			continue
		}
		base := SanitizeColumn(h)
		name := base
		for suffix := 1; taken[name]; suffix++ {
			name = fmt.Sprintf("%s_%d", base, suffix)
		}
		taken[name] = true
		extras = append(extras, extraCol{name, j})
	}

	text := func(i int, concept string) string {
		h, ok := cols[concept]
		if !ok {
			return ""
		}
		return strings.TrimSpace(sheet.Cell(i, index[h]))
	}

	records := make([]domain.Record, 0, len(sheet.Rows))
	for i := range sheet.Rows {
		name := text(i, ColNombre)
		if domain.IsBlankName(name) {
			continue
		}
		rec := domain.Record{
			ColNombre:     name,
			ColMunicipio:  text(i, ColMunicipio),
			ColTipo:       text(i, ColTipo),
			ColSuperficie: ParseArea(text(i, ColSuperficie)),
			ColCategoria:  category,
		}
		for _, e := range extras {
			if v := sheet.Cell(i, e.src); v != "" {
				rec[e.name] = v
			} else {
				rec[e.name] = nil
			}
		}
		records = append(records, rec)
	}

	names := make([]string, 0, len(extras))
	for _, e := range extras {
		names = append(names, e.name)
	}
	return records, names, nil
}

// ParseArea parses a surface in hectares. Unparseable values yield nil.
// A lone comma is read as the decimal separator, as in "12,5".
func ParseArea(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		f, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func dedupe(records []domain.Record) ([]domain.Record, int) {
	seen := make(map[[3]string]bool, len(records))
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		key := [3]string{fmt.Sprint(r[ColNombre]), fmt.Sprint(r[ColMunicipio]), fmt.Sprint(r[ColCategoria])}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out, len(records) - len(out)
}
