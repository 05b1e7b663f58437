package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	adapter "github.com/typograf/galley/adapter-bubbletea"
	"github.com/typograf/galley/core"
)

// demoMetrics builds a small static metrics table: Latin letters, digits and
// a few Hebrew glyphs for trying RTL lines (Alt+Enter).
func demoMetrics() *core.StaticMetrics {
	metrics := core.NewStaticMetrics()

	for r := 'a'; r <= 'z'; r++ {
		metrics.Set(core.MustGlyphID(string(r)), 520)
	}
	for r := 'A'; r <= 'Z'; r++ {
		metrics.Set(core.MustGlyphID(string(r)), 640)
	}
	for r := '0'; r <= '9'; r++ {
		metrics.Set(core.MustGlyphID(string(r)), 560)
	}

	// Hebrew alef through tav, named uniXXXX like the input layer does.
	for r := rune(0x05D0); r <= 0x05EA; r++ {
		metrics.Set(core.MustGlyphID(fmt.Sprintf("uni%04X", r)), 480)
	}

	metrics.Set(core.MustGlyphID("uni0020"), 260) // space

	return metrics
}

func main() {
	m := adapter.New(80, 24, demoMetrics())

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
