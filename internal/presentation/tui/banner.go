package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the regula ASCII art banner and version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                      _       ", "#34d399"},
		{"  _ __ ___  __ _ _  _| | __ _ ", "#2dd4bf"},
		{" | '__/ _ \\/ _` | || | |/ _` |", "#22d3ee"},
		{" | | |  __/ (_| | || | | (_| |", "#38bdf8"},
		{" |_|  \\___|\\__, |\\_,_|_|\\__,_|", "#60a5fa"},
		{"           |___/              ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+strings.TrimSpace(version)).Faint())
}
