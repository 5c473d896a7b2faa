package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph(t *testing.T) {
	t.Run("valid graph", func(t *testing.T) {
		b := dsl.New()
		b.Add("start").Menu("hola").Option("1", "a", "a")
		b.Add("a").Input("nombre?").Go("b")
		b.Add("b").End("chau")

		report, err := ValidateGraph(b.Definition())
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.NoError(t, report.Err())
		assert.Equal(t, []string{"start", "a", "b"}, report.Reachable)
		assert.Empty(t, report.Unreachable)
	})

	t.Run("broken link", func(t *testing.T) {
		b := dsl.New()
		b.Add("broken_start").Menu("hola").Option("1", "ghost", "ghost_node")

		report, err := ValidateGraph(b.Definition())
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Equal(t, []string{"broken_start -> ghost_node"}, report.BrokenLinks)
		assert.Contains(t, report.Err().Error(), "found 1 errors")
	})

	t.Run("unreachable and dead ends are warnings", func(t *testing.T) {
		b := dsl.New()
		b.Add("start").Menu("hola").Option("1", "x", "stuck")
		b.Add("stuck").Response("no way out")
		b.Add("orphan_b").End("")
		b.Add("orphan_a").End("")

		report, err := ValidateGraph(b.Definition())
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, []string{"orphan_a", "orphan_b"}, report.Unreachable)
		assert.Equal(t, []string{"stuck"}, report.DeadEnds)
	})

	t.Run("missing start is structural", func(t *testing.T) {
		b := dsl.New().Start("nope")
		b.Add("a").End("")

		_, err := ValidateGraph(b.Definition())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
	})
}
