package unify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/unify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableYAML = `
"Otamendi":
  Horarios_de_visita: "Todos los días 09:00–18:00"
  Costo_de_ingreso: Gratuito
"Bahía de  Samborombón (Sitio RAMSAR)":
  Horarios_de_visita: No abierta al público
  Fuente: OPDS
"Laguna de los Padres":
  Fuente: MGP
`

func parse(t *testing.T) *unify.Table {
	t.Helper()
	table, err := unify.ParseTable([]byte(tableYAML))
	require.NoError(t, err)
	return table
}

func TestLookupTiers(t *testing.T) {
	table := parse(t)

	tests := []struct {
		name string
		tier unify.Tier
	}{
		{"Otamendi", unify.TierExact},
		{"OTAMENDI", unify.TierNormalized},
		{"bahia de samborombon sitio ramsar", unify.TierNormalized},
		{"Laguna de los Padre", unify.TierFuzzy},
		{"Sierra de la Ventana", unify.TierNone},
		{"nan", unify.TierNone},
		{"  ", unify.TierNone},
		{"!!!", unify.TierNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tier, table.Lookup(tt.name).Tier)
		})
	}
}

func TestApply_IsNonDestructive(t *testing.T) {
	table := parse(t)
	records := []domain.Record{
		{"nombre": "Otamendi", "municipio": "Campana", "Fuente": "previo"},
		{"nombre": "Reserva Desconocida", "municipio": "Tandil", "Costo_de_ingreso": "ARS 100"},
		{"nombre": nil, "categoria": "reserva-municipal"},
		{"nombre": 42.0},
		{"nombre": "laguna de los padre"},
	}

	report := table.Apply(records)

	require.Len(t, records, 5)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.ByTier[unify.TierExact])
	assert.Equal(t, 1, report.ByTier[unify.TierFuzzy])
	assert.Equal(t, []unify.FuzzyMatch{{Name: "laguna de los padre", Key: "Laguna de los Padres"}}, report.Fuzzy)
	assert.Equal(t, []string{"Reserva Desconocida", "null", "42"}, report.Unmatched)

	// Matched: enrichment added, unrelated fields kept, untouched table fields kept.
	assert.Equal(t, "Campana", records[0]["municipio"])
	assert.Equal(t, "Gratuito", records[0]["Costo_de_ingreso"])
	assert.Equal(t, "previo", records[0]["Fuente"])

	// Unmatched: identical to the input.
	assert.Equal(t, domain.Record{"nombre": "Reserva Desconocida", "municipio": "Tandil", "Costo_de_ingreso": "ARS 100"}, records[1])
	assert.Equal(t, domain.Record{"nombre": nil, "categoria": "reserva-municipal"}, records[2])
	assert.Equal(t, "MGP", records[4]["Fuente"])
}

func TestParseTable_KeepsOrder(t *testing.T) {
	table := parse(t)
	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Otamendi", entries[0].Name)
	assert.Equal(t, []unify.Field{
		{Key: "Horarios_de_visita", Value: "Todos los días 09:00–18:00"},
		{Key: "Costo_de_ingreso", Value: "Gratuito"},
	}, entries[0].Fields)
	assert.Equal(t, "Bahía de  Samborombón (Sitio RAMSAR)", entries[1].Name)
}

func TestParseTable_JSON(t *testing.T) {
	table, err := unify.ParseTable([]byte(`{"Punta Lara": {"Costo_de_ingreso": "Gratuito"}, "Isla Botija": {}}`))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, unify.TierNormalized, table.Lookup("punta lara").Tier)
}

func TestParseTable_Invalid(t *testing.T) {
	for _, doc := range []string{
		`- a list`,
		`Otamendi: just a string`,
		"Otamendi:\n  Fuente: [a, b]",
		"a: [",
	} {
		_, err := unify.ParseTable([]byte(doc))
		assert.Error(t, err, doc)
	}

	empty, err := unify.ParseTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabla.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tableYAML), 0644))

	table, err := unify.LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	_, err = unify.LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultTable(t *testing.T) {
	table := unify.DefaultTable()
	assert.Equal(t, 70, table.Len())

	m := table.Lookup("Reserva Natural Otamendi")
	assert.NotEqual(t, unify.TierExact, m.Tier)

	assert.Equal(t, unify.TierExact, table.Lookup("Rincón de Ajó").Tier)
	assert.Equal(t, unify.TierNormalized, table.Lookup("Rincon de Ajo").Tier)
	assert.Equal(t, unify.TierNormalized, table.Lookup("Bahía de Samborombón (Sitio RAMSAR)").Tier)
}
