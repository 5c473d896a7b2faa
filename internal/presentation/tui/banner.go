package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  _____           ____       _       `, "#4ade80"},
	{` | ____|___ ___  / ___|_   _(_) __ _ `, "#34d399"},
	{` |  _| / __/ _ \| |  _| | | | |/ _' |`, "#2dd4bf"},
	{` | |__| (_| (_) | |_| | |_| | | (_| |`, "#22d3ee"},
	{` |_____\___\___/ \____|\__,_|_|\__,_|`, "#38bdf8"},
}

// PrintBanner writes the EcoGuía banner followed by the version.
// Colors degrade to plain text when w is not a color terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  Reservas naturales de Buenos Aires · v"+v).Faint())
	}
	fmt.Fprintln(w)
}
