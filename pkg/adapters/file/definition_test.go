package file_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ecoguia/pkg/adapters/file"
	"github.com/aretw0/ecoguia/pkg/domain"
	contract "github.com/aretw0/ecoguia/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botJSON = `{
  "start_node_id": "inicio_menu",
  "nodes": [
    {
      "id": "inicio_menu",
      "type": "menu",
      "message": "¡Hola! Soy EcoGuía.",
      "options": [
        {"id": "1", "label": "Buscar reserva", "next_node_id": "pedir_nombre"},
        {"id": 2, "next_node_id": "fin"}
      ]
    },
    {"id": "pedir_nombre", "type": "input", "message": "¿Qué reserva?", "next_node_id": "fin"},
    {"id": "fin", "type": "end", "message": "Gracias"}
  ]
}`

const botYAML = `
start_node_id: inicio_menu
nodes:
  - id: inicio_menu
    type: menu
    message: "¡Hola! Soy EcoGuía."
    options:
      - id: "1"
        label: Buscar reserva
        next_node_id: pedir_nombre
      - id: 2
        next_node_id: fin
  - id: pedir_nombre
    type: input
    message: "¿Qué reserva?"
    next_node_id: fin
  - id: fin
    type: end
    message: Gracias
`

func expectedBot() *domain.Definition {
	return &domain.Definition{
		StartNodeID: "inicio_menu",
		Nodes: []domain.Node{
			{ID: "inicio_menu", Type: "menu", Message: "¡Hola! Soy EcoGuía.", Options: []domain.Option{
				{ID: "1", Label: "Buscar reserva", NextNodeID: "pedir_nombre"},
				{ID: "2", NextNodeID: "fin"},
			}},
			{ID: "pedir_nombre", Type: "input", Message: "¿Qué reserva?", NextNodeID: "fin"},
			{ID: "fin", Type: "end", Message: "Gracias"},
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefinitionLoader_JSONContract(t *testing.T) {
	// The historical bot file is JSON with a .txt extension.
	loader := file.NewDefinitionLoader(writeFile(t, "bot.txt", botJSON))
	contract.DefinitionLoaderContractTest(t, loader, expectedBot())
}

func TestDefinitionLoader_YAMLContract(t *testing.T) {
	loader := file.NewDefinitionLoader(writeFile(t, "bot.yaml", botYAML))
	contract.DefinitionLoaderContractTest(t, loader, expectedBot())
}

func TestDefinitionLoader_KeepsRaw(t *testing.T) {
	loader := file.NewDefinitionLoader(writeFile(t, "bot.json", botJSON))
	def, err := loader.LoadDefinition(context.Background())
	require.NoError(t, err)

	require.NotNil(t, def.Raw)
	assert.Equal(t, "inicio_menu", def.Raw["start_node_id"])

	// Raw must round-trip as JSON for GET /api/bot.
	_, err = json.Marshal(def.Raw)
	assert.NoError(t, err)
}

func TestDefinitionLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"no nodes", "bot.txt", `{"start_node_id": "x"}`},
		{"not json", "bot.txt", `{nodes: [`},
		{"not an object", "bot.txt", `[1, 2]`},
		{"bad yaml", "bot.yml", "nodes: [a, b"},
		{"nodes of wrong shape", "bot.json", `{"nodes": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := file.NewDefinitionLoader(writeFile(t, tt.file, tt.content))
			_, err := loader.LoadDefinition(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration), "got %v", err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := file.NewDefinitionLoader(filepath.Join(t.TempDir(), "absent.txt")).LoadDefinition(context.Background())
		assert.Error(t, err)
	})
}

func TestDecodeDefinition_EmptyNodes(t *testing.T) {
	def, err := file.DecodeDefinition(map[string]any{"nodes": []any{}})
	require.NoError(t, err)
	assert.NotNil(t, def.Nodes)
	assert.Empty(t, def.Nodes)
	assert.Equal(t, domain.DefaultStartNodeID, def.EntryNodeID())
}
