package file_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/ecoguia/pkg/adapters/file"
	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeJSON(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a": NaN}`, `{"a": null}`},
		{`[NaN,NaN, Infinity, -Infinity]`, `[null,null, null, null]`},
		{`{"nombre": "NaN"}`, `{"nombre": "NaN"}`},
		{`{"s": "say \"NaN\" here", "n": NaN}`, `{"s": "say \"NaN\" here", "n": null}`},
		{`{"x": 1.5}`, `{"x": 1.5}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(file.SanitizeJSON([]byte(tt.in))))
	}
}

func TestRecordLoader(t *testing.T) {
	path := writeFile(t, "reservas.json", `[
		{"nombre": "Reserva Natural Otamendi", "superficie_ha": 3000, "municipio": NaN},
		{"nombre": NaN, "categoria": "reserva-municipal"}
	]`)

	records, err := file.NewRecordLoader(path).LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, json.Number("3000"), records[0]["superficie_ha"])
	v, ok := records[0]["municipio"]
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = records[1].Name()
	assert.False(t, ok)
}

func TestRecordLoader_NullEntriesRoundTrip(t *testing.T) {
	path := writeFile(t, "reservas.json", `[null, {"nombre": "Otamendi"}]`)

	records, err := file.NewRecordLoader(path).LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Nil(t, records[0])
	_, ok := records[0].Name()
	assert.False(t, ok)

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, file.WriteRecordsJSON(out, records))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[null, {"nombre": "Otamendi"}]`, string(data))
	assert.NotContains(t, string(data), "{}")

	csvPath := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, file.WriteRecordsCSV(csvPath, records, "nombre"))
}

func TestRecordLoader_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	_, err := file.NewRecordLoader(missing).LoadRecords(context.Background())
	assert.Error(t, err)

	records, err := file.NewRecordLoader(missing, file.WithMissingOK()).LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordLoader_Malformed(t *testing.T) {
	_, err := file.NewRecordLoader(writeFile(t, "r.json", `{"nombre": "x"}`)).LoadRecords(context.Background())
	assert.Error(t, err)
}

func TestWriteRecords(t *testing.T) {
	dir := t.TempDir()
	records := []domain.Record{
		{"nombre": "Bahía Samborombón", "superficie_ha": json.Number("9311"), "Fuente": nil},
		{"nombre": "Otamendi", "categoria": "reserva-natural-integral", "activa": true},
	}

	jsonPath := filepath.Join(dir, "out.json")
	require.NoError(t, file.WriteRecordsJSON(jsonPath, records))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bahía Samborombón")
	assert.Contains(t, string(data), "\n  {")

	back, err := file.DecodeRecords(data)
	require.NoError(t, err)
	assert.Equal(t, records, back)

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, file.WriteRecordsCSV(csvPath, records, "nombre"))

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"nombre", "Fuente", "activa", "categoria", "superficie_ha"}, rows[0])
	assert.Equal(t, []string{"Bahía Samborombón", "", "", "", "9311"}, rows[1])
	assert.Equal(t, "true", rows[2][2])
	assert.True(t, strings.HasPrefix(rows[2][3], "reserva-"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", file.FormatValue(nil))
	assert.Equal(t, "12.5", file.FormatValue(12.5))
	assert.Equal(t, "3", file.FormatValue(3))
	assert.Equal(t, "abc", file.FormatValue("abc"))
}
