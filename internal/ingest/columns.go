package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// concept is a normalized column and the ways sources spell it.
type concept struct {
	name       string
	candidates []string
	fallback   *regexp.Regexp
	required   bool
}

var concepts = []concept{
	{ColNombre, []string{"Nombre"}, regexp.MustCompile(`(?i)nombre|reserva|name`), true},
	{ColMunicipio, []string{"Municipio"}, regexp.MustCompile(`(?i)ubic|localidad|partido|municipio|provincia|direccion`), false},
	{ColTipo, []string{"Tipo", "Tipo de reserva"}, regexp.MustCompile(`(?i)tipo|categoria|clase`), false},
	{ColSuperficie, []string{"Superficie(Ha)", "Superficie"}, regexp.MustCompile(`(?i)superfic|ha|hect`), false},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func alnumKey(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// FindColumn returns the first header matching a candidate, trying exact,
// then case-insensitive, then alphanumeric containment in either direction.
func FindColumn(headers, candidates []string) (string, bool) {
	for _, c := range candidates {
		for _, h := range headers {
			if h == c {
				return h, true
			}
		}
	}

	for _, c := range candidates {
		for _, h := range headers {
			if strings.EqualFold(h, c) {
				return h, true
			}
		}
	}

	for _, c := range candidates {
		nc := alnumKey(c)
		for _, h := range headers {
			nh := alnumKey(h)
			// A header with no letters or digits would be contained in anything.
			if nh == "" {
				continue
			}
			if strings.Contains(nh, nc) || strings.Contains(nc, nh) {
				return h, true
			}
		}
	}
	return "", false
}

// mapping holds the source header chosen for each concept.
type mapping map[string]string

func detectColumns(headers []string) (mapping, error) {
	m := mapping{}
	for _, c := range concepts {
		col, ok := FindColumn(headers, c.candidates)
		if !ok {
			for _, h := range headers {
				if c.fallback.MatchString(h) {
					col, ok = h, true
					break
				}
			}
		}
		if !ok {
			if c.required {
				return nil, fmt.Errorf("none of the candidate columns exist: %s", strings.Join(c.candidates, ", "))
			}
			continue
		}
		m[c.name] = col
	}
	return m, nil
}

func (m mapping) isMapped(header string) bool {
	for _, col := range m {
		if col == header {
			return true
		}
	}
	return false
}

var (
	separatorRun = regexp.MustCompile(`[\s/\\]+`)
	dropChars    = regexp.MustCompile(`[()\[\],]`)
)

// SanitizeColumn turns a source header into a safe output column name.
// Whitespace and slashes become underscores; brackets and commas are removed.
func SanitizeColumn(name string) string {
	name = strings.TrimSpace(name)
	name = separatorRun.ReplaceAllString(name, "_")
	return dropChars.ReplaceAllString(name, "")
}
