package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Compass banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   ___ ___  _ __ ___  _ __   __ _ ___ ___ ", "#34d399"},
		{"  / __/ _ \\| '_ ` _ \\| '_ \\ / _` / __/ __|", "#2dd4bf"},
		{" | (_| (_) | | | | | | |_) | (_| \\__ \\__ \\", "#22d3ee"},
		{"  \\___\\___/|_| |_| |_| .__/ \\__,_|___/___/", "#38bdf8"},
		{"                     |_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  ordering agent "+version).Faint())
	fmt.Fprintln(w)
}
