package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/ecoguia/pkg/adapters/memory"
	"github.com/aretw0/ecoguia/pkg/domain"
	contract "github.com/aretw0/ecoguia/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	nodes := []domain.Node{
		{ID: "start", Type: domain.NodeTypeMenu, Message: "Hola", Options: []domain.Option{{ID: "1", Label: "Fin", NextNodeID: "end"}}},
		{ID: "end", Type: domain.NodeTypeEnd, Message: "Chau"},
	}

	loader, err := memory.NewFromNodes(nodes...)
	require.NoError(t, err)

	contract.DefinitionLoaderContractTest(t, loader, &domain.Definition{StartNodeID: "start", Nodes: nodes})
}

func TestInMemoryLoader_MissingID(t *testing.T) {
	_, err := memory.NewFromNodes(domain.Node{Type: domain.NodeTypeEnd})
	assert.Error(t, err)
}

func TestInMemoryLoader_NoNodes(t *testing.T) {
	_, err := memory.NewLoader(&domain.Definition{}).LoadDefinition(context.Background())
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestInMemoryLoader_DefinitionIsCopied(t *testing.T) {
	loader, err := memory.NewFromNodes(domain.Node{ID: "a", Type: domain.NodeTypeEnd})
	require.NoError(t, err)

	def, err := loader.LoadDefinition(context.Background())
	require.NoError(t, err)
	def.Nodes[0].Message = "changed"

	again, err := loader.LoadDefinition(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again.Nodes[0].Message)
}

func TestInMemoryLoader_Records(t *testing.T) {
	loader := memory.NewLoader(nil).WithRecords(domain.Record{"nombre": "Otamendi"})

	records, err := loader.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	name, ok := records[0].Name()
	assert.True(t, ok)
	assert.Equal(t, "Otamendi", name)
}
