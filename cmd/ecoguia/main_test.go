package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/ecoguia"
	"github.com/aretw0/ecoguia/internal/ingest"
	"github.com/aretw0/ecoguia/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures(t *testing.T) (bot, reservas string) {
	t.Helper()
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"bot.txt":                  testutils.BotJSON,
		"reservas_unificadas.json": testutils.ReservasJSON,
	})
	return filepath.Join(dir, "bot.txt"), filepath.Join(dir, "reservas_unificadas.json")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "ecoguia version "+strings.TrimSpace(ecoguia.Version)+"\n", out)
}

func TestSearch(t *testing.T) {
	bot, reservas := fixtures(t)

	out, err := run(t, "", "search", "--bot", bot, "--reservas", reservas, "Reserva", "Natural", "Otamendy")
	require.NoError(t, err)
	assert.Contains(t, out, "(fuzzy match)")
	assert.Contains(t, out, "Reserva Natural Otamendi")
	assert.Contains(t, out, "Campana")

	out, err = run(t, "", "search", "--bot", bot, "--reservas", reservas, "--json", "laguna de los padres")
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 2)

	out, err = run(t, "", "search", "--bot", bot, "--reservas", reservas, "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No reservations found for "zzzz".`)

	_, err = run(t, "", "search", "--bot", bot)
	assert.Error(t, err)
}

func TestChat(t *testing.T) {
	bot, reservas := fixtures(t)

	out, err := run(t, "1\nSamborombon\nvolver\n3\n", "chat", "--bot", bot, "--reservas", reservas, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Bahía Samborombón (Castelli)")
	assert.Contains(t, out, "¡Hasta luego!")
	assert.NotContains(t, out, ">>>")
}

func TestValidate(t *testing.T) {
	bot, _ := fixtures(t)
	out, err := run(t, "", "validate", "--bot", bot)
	require.NoError(t, err)
	assert.Contains(t, out, "Start node: inicio_menu (4 reachable)")
	assert.Contains(t, out, "Dialogue is valid!")

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{
  "start_node_id": "a",
  "nodes": [
    {"id": "a", "type": "menu", "message": "A", "options": [{"id": "1", "label": "B", "next_node_id": "ghost"}]},
    {"id": "lonely", "type": "end", "message": "L"}
  ]
}`), 0644))

	out, err = run(t, "", "validate", "--bot", broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "a -> ghost")
	assert.Contains(t, out, "Warning: unreachable nodes: lonely")
}

func TestGraph(t *testing.T) {
	bot, _ := fixtures(t)
	out, err := run(t, "", "graph", "--bot", bot, "--path", "inicio_menu,pedir_nombre")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "inicio_menu")
	assert.Contains(t, out, "pedir_nombre")
}

func TestUnify(t *testing.T) {
	_, reservas := fixtures(t)
	dir := t.TempDir()
	table := filepath.Join(dir, "tabla.yaml")
	require.NoError(t, os.WriteFile(table, []byte("Reserva Natural Otamendi:\n  web: https://otamendi.example\n"), 0644))
	output := filepath.Join(dir, "out.json")

	out, err := run(t, "", "unify", "--reservas", reservas, "--table", table, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 4 reservations updated")
	assert.Contains(t, out, "Unmatched:")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 4)
	assert.Equal(t, "https://otamendi.example", records[0]["web"])

	csv, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "nombre,municipio,"))
}

func TestIngest(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, ingest.KnownSources[2].File),
		[]byte("Nombre;Municipio;Tipo;Superficie\nOtamendi;Campana;Integral;3000\n"), 0644))

	dir := t.TempDir()
	output := filepath.Join(dir, "reservas.json")
	csvPath := filepath.Join(dir, "reservas.csv")

	out, err := run(t, "", "ingest", "--dir", src, "--reservas", output, "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "reserva-natural-integral")
	assert.Contains(t, out, "1 reservations (0 duplicates dropped)")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nombre": "Otamendi"`)
	assert.FileExists(t, csvPath)

	_, err = run(t, "", "ingest", "--dir", t.TempDir(), "--reservas", output, "--csv", csvPath)
	assert.ErrorIs(t, err, ingest.ErrNoSources)
}

func TestConfigErrors(t *testing.T) {
	bot, _ := fixtures(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", "--bot", bot, "--log-level", "loud"})
	assert.ErrorContains(t, cmd.Execute(), "invalid log level")

	_, err := run(t, "", "validate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = run(t, "", "mcp", "--bot", bot, "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport")
}
