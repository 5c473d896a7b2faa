package tests

import (
	"context"
	"testing"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// Node order is not part of the contract; nodes are compared by id.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, want *domain.Definition) {
	t.Helper()

	def, err := loader.LoadDefinition(context.Background())
	if err != nil {
		t.Fatalf("unexpected error loading definition: %v", err)
	}

	t.Run("StartNode", func(t *testing.T) {
		if def.EntryNodeID() != want.EntryNodeID() {
			t.Errorf("start node mismatch. got %q, want %q", def.EntryNodeID(), want.EntryNodeID())
		}
	})

	t.Run("Nodes", func(t *testing.T) {
		if len(def.Nodes) != len(want.Nodes) {
			t.Fatalf("expected %d nodes, got %d", len(want.Nodes), len(def.Nodes))
		}

		got := make(map[string]domain.Node, len(def.Nodes))
		for _, n := range def.Nodes {
			got[n.ID] = n
		}

		for _, w := range want.Nodes {
			n, ok := got[w.ID]
			if !ok {
				t.Errorf("node %s missing from definition", w.ID)
				continue
			}
			if n.Type != w.Type {
				t.Errorf("node %s: type mismatch. got %q, want %q", w.ID, n.Type, w.Type)
			}
			if n.Message != w.Message {
				t.Errorf("node %s: message mismatch. got %q, want %q", w.ID, n.Message, w.Message)
			}
			if n.NextNodeID != w.NextNodeID {
				t.Errorf("node %s: next_node_id mismatch. got %q, want %q", w.ID, n.NextNodeID, w.NextNodeID)
			}
			if len(n.Options) != len(w.Options) {
				t.Errorf("node %s: expected %d options, got %d", w.ID, len(w.Options), len(n.Options))
				continue
			}
			for i := range w.Options {
				if n.Options[i] != w.Options[i] {
					t.Errorf("node %s: option %d mismatch. got %+v, want %+v", w.ID, i, n.Options[i], w.Options[i])
				}
			}
		}
	})
}
