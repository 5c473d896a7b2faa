// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFiles writes name → content pairs under dir, creating subdirectories.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// BotJSON is a small dialogue in the historical bot.txt format.
const BotJSON = `{
  "start_node_id": "inicio_menu",
  "nodes": [
    {
      "id": "inicio_menu",
      "type": "menu",
      "message": "¡Hola! Soy **EcoGuía**. ¿Qué querés hacer?",
      "options": [
        {"id": "1", "label": "Buscar una reserva", "next_node_id": "pedir_nombre"},
        {"id": "2", "label": "Consejos", "next_node_id": "consejos"},
        {"id": "3", "label": "Salir", "next_node_id": "fin"}
      ]
    },
    {"id": "pedir_nombre", "type": "input", "message": "Escribí el nombre de la reserva.", "next_node_id": "consejos"},
    {
      "id": "consejos",
      "type": "response",
      "message": "No dejes basura y respetá la fauna.",
      "options": [{"id": "volver", "next_node_id": "inicio_menu"}]
    },
    {"id": "fin", "type": "end", "message": "¡Hasta luego!"}
  ]
}`

// ReservasJSON is a small unified reservation table, including a NaN cell.
const ReservasJSON = `[
  {"nombre": "Reserva Natural Otamendi", "municipio": "Campana", "categoria": "reserva-natural-integral", "superficie_ha": 3000},
  {"nombre": "Laguna de los Padres", "municipio": "General Pueyrredón", "categoria": "reserva-municipal", "superficie_ha": NaN},
  {"nombre": "laguna de los padres", "municipio": "Mar del Plata", "categoria": "reserva-municipal", "superficie_ha": 687},
  {"nombre": "Bahía Samborombón", "municipio": "Castelli", "categoria": "reserva-natural-integral", "superficie_ha": 9311}
]`
