package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf,
		WithTextHandlerRenderer(func(s string) (string, error) {
			return "Rendered: " + s, nil
		}),
	)

	err := handler.Output(context.Background(), domain.NodePayload{
		NodeID:  "inicio_menu",
		Type:    domain.NodeTypeMenu,
		Message: "Hello World",
		Options: []domain.OptionView{{ID: "1", Label: "Uno"}, {ID: "2", Label: "Opción"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rendered: Hello World\n  [1] Uno\n  [2] Opción\n", outBuf.String())
}

func TestTextHandler_OutputHidesOptionsOnInputAndEnd(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)

	opts := []domain.OptionView{{ID: "1", Label: "Uno"}}
	require.NoError(t, handler.Output(context.Background(), domain.NodePayload{Message: "Ask", Options: opts, ExpectsInput: true}))
	require.NoError(t, handler.Output(context.Background(), domain.NodePayload{Message: "Bye", Options: opts, IsEnd: true}))
	require.NoError(t, handler.Output(context.Background(), domain.NodePayload{Message: "  "}))
	assert.Equal(t, "Ask\nBye\n", outBuf.String())
}

func TestTextHandler_Input(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("  my user input \nBell\x07\n"), outBuf)

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my user input", val)
	assert.Equal(t, "> ", outBuf.String())

	val, err = handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bell", val)

	_, err = handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_InputRejectsOversize(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "4")
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("too long\nok\n"), outBuf)

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Contains(t, outBuf.String(), "Please try again.")
}

func TestTextHandler_Results(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)

	require.NoError(t, handler.Results(context.Background(), "laguna", []domain.Record{
		{"nombre": "Laguna de los Padres", "municipio": "General Pueyrredón"},
		{"nombre": "Laguna Chascomús", "municipio": nil},
	}))
	require.NoError(t, handler.Results(context.Background(), "zzz", nil))

	assert.Equal(t,
		"  - Laguna de los Padres (General Pueyrredón)\n  - Laguna Chascomús\nNo reservations found for \"zzz\".\n",
		outBuf.String())
}
