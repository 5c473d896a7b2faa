// Package ingest builds the unified reservation table from the provincial
// open-data spreadsheets.
package ingest

// Source is a known provincial CSV export and the category its rows belong to.
type Source struct {
	File     string
	Category string
}

// KnownSources lists the 2022 provincial exports, one per reserve category.
var KnownSources = []Source{
	{"040_reserva-natural-de-objetivo-definido.-total-provincia.-2022.csv", "reserva-natural-objetivo-definido"},
	{"041_reserva-natural-de-uso-multiple.-total-provincia.-2022.csv", "reserva-natural-uso-multiple"},
	{"042_reserva-natural-integral.-total-provincia.-2022.csv", "reserva-natural-integral"},
	{"043_reserva-de-biosfera.-total-provincia.-2022.csv", "reserva-de-biosfera"},
	{"044_reserva-natural-privada.-total-provincia.-2022.csv", "reserva-natural-privada"},
	{"045_reserva-municipal.-total-provincia.-2022.csv", "reserva-municipal"},
	{"046_reserva-natural-de-defensa.-total-provincia.-2022.csv", "reserva-natural-de-defensa"},
}

// Output columns, in the order they are written.
const (
	ColNombre     = "nombre"
	ColMunicipio  = "municipio"
	ColTipo       = "tipo"
	ColSuperficie = "superficie_ha"
	ColCategoria  = "categoria"
)

// BaseColumns are the normalized columns every record carries.
var BaseColumns = []string{ColNombre, ColMunicipio, ColTipo, ColSuperficie, ColCategoria}
