package onedrop

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/one-drop/internal/core"
)

// Visual characters for rendering
const (
	FloorChar  = '▀'
	StemChar   = '│'
	LeafChar   = '♣'
	BloomChar  = '✿'
	DropSmall  = '·'
	DropMedium = 'o'
	DropLarge  = 'O'
	DropHuge   = '●'
)

type glyph struct {
	r  rune
	fg core.Color
}

var hazardGlyphs = map[Variant]glyph{
	VariantSunbeam:     {'░', core.ColorBrightYellow},
	VariantCloud:       {'▒', core.ColorBrightWhite},
	VariantPollution:   {'▓', core.ColorGray},
	VariantGear:        {'@', core.ColorRed},
	VariantHeatWall:    {'≈', core.ColorBrightRed},
	VariantSteamVent:   {'^', core.ColorWhite},
	VariantStaticRoot:  {'╫', core.ColorYellow},
	VariantMovingRoot:  {'╬', core.ColorOrange},
	VariantVine:        {'§', core.ColorGreen},
	VariantIntroPad:    {'=', core.ColorBrightGreen},
	VariantFertilePad:  {'=', core.ColorGreen},
	VariantFlower:      {'*', core.ColorBrightMagenta},
	VariantAirVent:     {'^', core.ColorBrightCyan},
	VariantBottomVent:  {'^', core.ColorCyan},
	VariantReflectPool: {'~', core.ColorBrightBlue},
	VariantSeed:        {'o', core.ColorYellow},
}

// viewport maps world pixels onto screen cells below the HUD row.
type viewport struct {
	cam    Camera
	sx, sy float64 // World pixels per column / row
	top    int     // First screen row of the viewport
	rows   int
	cols   int
}

func newViewport(cam Camera, dst *core.Screen) viewport {
	rows := dst.Height() - 1
	cols := dst.Width()
	return viewport{
		cam:  cam,
		sx:   cam.W / float64(core.Max(cols, 1)),
		sy:   cam.H / float64(core.Max(rows, 1)),
		top:  1,
		rows: rows,
		cols: cols,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x - v.cam.X) / v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor((y-v.cam.Y)/v.sy))
}

// cells returns the inclusive cell span covered by a box.
func (v viewport) cells(b core.Box) (x0, y0, x1, y1 int) {
	x0, y0 = v.col(b.Left()), v.row(b.Top())
	x1 = core.Max(x0, int(math.Ceil((b.Right()-v.cam.X)/v.sx))-1)
	y1 = core.Max(y0, v.top+int(math.Ceil((b.Bottom()-v.cam.Y)/v.sy))-1)
	return x0, y0, x1, y1
}

func (v viewport) fill(dst *core.Screen, b core.Box, r rune, fg core.Color) {
	x0, y0, x1, y1 := v.cells(b)
	for y := core.Max(y0, v.top); y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColor(x, y, r, fg)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil || dst.Height() < 2 {
		return
	}

	w := g.world
	v := newViewport(w.Camera, dst)

	// Zone backgrounds
	for y := v.top; y < dst.Height(); y++ {
		wy := v.cam.Y + (float64(y-v.top)+0.5)*v.sy
		dst.FillRow(y, w.Level.ZoneAt(wy).Color)
	}

	// Floor
	if v.cam.Y+v.cam.H >= w.Level.Height {
		fy := core.Min(v.row(w.Level.Height-1), dst.Height()-1)
		for x := 0; x < dst.Width(); x++ {
			dst.SetColor(x, fy, FloorChar, core.ColorGray)
		}
	}

	for _, h := range w.Level.Hazards {
		gl := hazardGlyphs[h.Variant]
		v.fill(dst, h.Box(), gl.r, gl.fg)
	}

	g.drawSprout(dst, v)
	g.drawDroplet(dst, v)
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if w.Session.Ended {
		title := "THE DROP IS LOST"
		if w.Session.Outcome == core.OutcomeSuccess {
			title = "LIFE SPARKED"
		}
		drawCenteredMessage(dst, title, w.Session.Cause+"  |  Press R to restart")
	}
}

// drawDroplet renders the droplet with a glyph that grows with its size.
func (g *Game) drawDroplet(dst *core.Screen, v viewport) {
	d := g.world.Drop
	if !d.Visible {
		return
	}
	var r rune
	switch {
	case d.Size < 0.1:
		r = DropSmall
	case d.Size < 0.2:
		r = DropMedium
	case d.Size < 0.3:
		r = DropLarge
	default:
		r = DropHuge
	}
	v.fill(dst, d.Box(), r, core.ColorBrightCyan)
}

// drawSprout renders the goal plant growing out of the seed.
func (g *Game) drawSprout(dst *core.Screen, v viewport) {
	w := g.world
	if !w.Session.Planted {
		return
	}
	seed := w.Level.Seed()
	if seed == nil {
		return
	}
	x := v.col(seed.X)
	base := v.row(seed.Box().Top())
	height := core.Max(1, int(math.Ceil(w.Sprout*3)))
	for i := 1; i <= height; i++ {
		dst.SetColor(x, base-i, StemChar, core.ColorGreen)
	}
	top := base - height - 1
	if w.Session.Outcome == core.OutcomeSuccess {
		dst.SetColor(x, top, BloomChar, core.ColorBrightMagenta)
		return
	}
	if w.Session.GoalStage >= 1 {
		dst.SetColor(x-1, top+1, LeafChar, core.ColorBrightGreen)
		dst.SetColor(x+1, top+1, LeafChar, core.ColorBrightGreen)
	}
}

// drawHUD writes the status message on the left and the timer on the right.
func (g *Game) drawHUD(dst *core.Screen) {
	s := g.world.Session
	timer := " " + s.Timer + " "
	room := dst.Width() - runewidth.StringWidth(timer) - 1
	msg := runewidth.Truncate(s.Message, core.Max(room-1, 0), "…")
	dst.DrawTextColor(1, 0, msg, core.ColorBrightWhite)
	dst.DrawTextColor(dst.Width()-runewidth.StringWidth(timer), 0, timer, core.ColorBrightYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	subtitle = runewidth.Truncate(subtitle, core.Max(w-4, 0), "…")
	titleW := runewidth.StringWidth(title)
	subW := runewidth.StringWidth(subtitle)

	boxW := core.Min(core.Max(titleW, subW)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
