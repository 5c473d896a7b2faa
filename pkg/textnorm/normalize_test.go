package textnorm_test

import (
	"testing"

	"github.com/aretw0/ecoguia/pkg/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"accents", "Samborombón", "samborombon"},
		{"plain", "Samborombon", "samborombon"},
		{"whitespace collapse", "  Laguna   de los\tPadres \n", "laguna de los padres"},
		{"punctuation is a separator", "Bahía(Samborombón)", "bahia samborombon"},
		{"brackets and quotes", `Costanera Sur "Mar del Plata" [MdP]`, "costanera sur mar del plata mdp"},
		{"keeps hyphen and underscore", "Pehuencó- Monte_Hermoso", "pehuenco- monte_hermoso"},
		{"ordinal indicator", "Islas 1ª Sección", "islas 1a seccion"},
		{"dots", "Dr. Carlos Spegazzini", "dr carlos spegazzini"},
		{"digits", "Ley 14.488", "ley 14 488"},
		{"only punctuation", "¡¿...?!", ""},
		{"enie", "Ñandú", "nandu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Samborombón",
		"Bahía de  Samborombón (Sitio RAMSAR)",
		"Parque ecológico Islas 1ª Sección (Delta)",
		"ℌello ﬁne",
		"  -_- ",
		"Rincón de Ajó",
		"",
	}
	for _, in := range inputs {
		once := textnorm.Normalize(in)
		assert.Equal(t, once, textnorm.Normalize(once), "input %q", in)
	}
}

func TestNormalize_EquivalentSpellings(t *testing.T) {
	assert.Equal(t, textnorm.Normalize("Samborombón"), textnorm.Normalize("Samborombon"))
	assert.Equal(t, "samborombon", textnorm.Normalize("SAMBOROMBÓN"))
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "", textnorm.NormalizeValue(nil))
	assert.Equal(t, "", textnorm.NormalizeValue(12.5))
	assert.Equal(t, "otamendi", textnorm.NormalizeValue(" Otamendi "))
}

func TestNormalize_Concurrent(t *testing.T) {
	done := make(chan string, 32)
	for i := 0; i < 32; i++ {
		go func() { done <- textnorm.Normalize("Bahía de Samborombón") }()
	}
	for i := 0; i < 32; i++ {
		assert.Equal(t, "bahia de samborombon", <-done)
	}
}
