package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/ecoguia"
	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *ecoguia.Engine {
	t.Helper()
	b := dsl.New()
	b.Add("inicio_menu").Menu("Welcome to EcoGuía").
		Option("1", "Buscar", "pedir_nombre").
		Option("2", "Salir", "fin")
	b.Add("pedir_nombre").Input("Which reserve?").Go("inicio_menu")
	b.Add("fin").End("Goodbye")

	loader, err := b.Build()
	require.NoError(t, err)
	loader.WithRecords(
		domain.Record{"nombre": "Reserva Natural Otamendi", "municipio": "Campana"},
		domain.Record{"nombre": "Bahía Samborombón", "municipio": "Castelli"},
	)

	eng, err := ecoguia.New("", ecoguia.WithLoader(loader), ecoguia.WithRecordLoader(loader))
	require.NoError(t, err)
	return eng
}

func runWith(t *testing.T, input string, opts ...Option) (domain.NodePayload, string) {
	t.Helper()
	out := &bytes.Buffer{}
	opts = append([]Option{
		WithInputHandler(NewTextHandler(strings.NewReader(input), out)),
		WithSignals(false),
	}, opts...)
	r := NewRunner(opts...)
	eng := newTestEngine(t)

	type result struct {
		last domain.NodePayload
		err  error
	}
	done := make(chan result, 1)
	go func() {
		last, err := r.Run(context.Background(), eng)
		done <- result{last, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		return res.last, out.String()
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not finish")
	}
	return domain.NodePayload{}, ""
}

func TestRunner_Run_BasicFlow(t *testing.T) {
	last, out := runWith(t, "2\n")

	assert.True(t, last.IsEnd)
	assert.Equal(t, "fin", last.NodeID)
	assert.Contains(t, out, "Welcome to EcoGuía")
	assert.Contains(t, out, "  [1] Buscar\n")
	assert.Contains(t, out, "  [2] Salir\n")
	assert.Contains(t, out, "Goodbye")
}

func TestRunner_Run_LabelAndRetry(t *testing.T) {
	last, out := runWith(t, "9\n\nsalir\n")

	assert.True(t, last.IsEnd)
	assert.Contains(t, out, "[System] option '9' not found in node 'inicio_menu'")
	assert.Contains(t, out, "[System] node 'inicio_menu': missing 'option_id'")
	assert.Equal(t, 1, strings.Count(out, "Welcome to EcoGuía"), "rejected choices should not re-render the node")
}

func TestRunner_Run_InputWithSearch(t *testing.T) {
	last, out := runWith(t, "1\notamendi\n1\nCataratas\n2\n", WithSearch(true))

	assert.True(t, last.IsEnd)
	assert.Contains(t, out, "  - Reserva Natural Otamendi (Campana)")
	assert.Contains(t, out, `No reservations found for "Cataratas".`)
	assert.Equal(t, 3, strings.Count(out, "Welcome to EcoGuía"))
}

func TestRunner_Run_ExitAndEOF(t *testing.T) {
	last, _ := runWith(t, "exit\n")
	assert.Equal(t, "inicio_menu", last.NodeID)

	last, _ = runWith(t, "1\n")
	assert.Equal(t, "pedir_nombre", last.NodeID)
}

func TestRunner_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()

	r := NewRunner(
		WithInputHandler(NewTextHandler(pr, &bytes.Buffer{})),
		WithSignals(false),
	)
	eng := newTestEngine(t)

	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx, eng)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("runner ignored cancellation")
	}
}

func TestChooseOption(t *testing.T) {
	payload := domain.NodePayload{Options: []domain.OptionView{
		{ID: "1", Label: "Buscar"},
		{ID: "volver", Label: "Volver al menú"},
	}}

	assert.Equal(t, "1", ChooseOption(payload, " 1 "))
	assert.Equal(t, "volver", ChooseOption(payload, "volver al MENÚ"))
	assert.Equal(t, "x", ChooseOption(payload, "x"))
	assert.Equal(t, "", ChooseOption(payload, ""))
}
