package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/one-drop/internal/core"
)

// paletteSize is the number of core colors.
const paletteSize = int(core.ColorDeepWater) + 1

// colorCodes maps core.Color to ANSI 256 codes. ColorDefault has none.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorSky:           "24",
	core.ColorSmog:          "238",
	core.ColorLoam:          "58",
	core.ColorRootBrown:     "94",
	core.ColorDeepWater:     "18",
}

// Palette holds a style for every foreground/background pair, bound to one
// lipgloss renderer. SSH sessions each get their own renderer so colors
// match the client terminal.
type Palette struct {
	styles [paletteSize][paletteSize]lipgloss.Style
}

// NewPalette builds the styles for a renderer.
func NewPalette(r *lipgloss.Renderer) *Palette {
	p := &Palette{}
	for fg := range paletteSize {
		for bg := range paletteSize {
			st := r.NewStyle()
			if code, ok := colorCodes[core.Color(fg)]; ok {
				st = st.Foreground(lipgloss.Color(code))
			}
			if code, ok := colorCodes[core.Color(bg)]; ok {
				st = st.Background(lipgloss.Color(code))
			}
			p.styles[fg][bg] = st
		}
	}
	return p
}

func (p *Palette) style(fg, bg core.Color) lipgloss.Style {
	if int(fg) >= paletteSize {
		fg = core.ColorDefault
	}
	if int(bg) >= paletteSize {
		bg = core.ColorDefault
	}
	return p.styles[fg][bg]
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			fg, bg := cell.Fg, cell.Bg

			// Collect consecutive cells with same colors
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Fg != fg || cell.Bg != bg {
					break
				}
				if cell.Rune != 0 { // Skip wide-rune padding
					run.WriteRune(cell.Rune)
				}
				x++
			}

			sb.WriteString(p.style(fg, bg).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPalette = sync.OnceValue(func() *Palette {
	return NewPalette(lipgloss.DefaultRenderer())
})

// RenderScreen renders with the process-wide default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultPalette().Render(s)
}
