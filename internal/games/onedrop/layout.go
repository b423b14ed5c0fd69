package onedrop

import (
	"math/rand"
	"sort"

	"github.com/vovakirdan/one-drop/internal/core"
)

// Range is an inclusive coordinate range. Min == Max is a fixed coordinate.
// Randomized ranges draw whole pixels, uniformly.
type Range struct {
	Min, Max float64
}

// At returns a fixed range.
func At(v float64) Range {
	return Range{Min: v, Max: v}
}

// Between returns a randomized range.
func Between(lo, hi float64) Range {
	return Range{Min: lo, Max: hi}
}

// Random reports whether drawing from the range consumes randomness.
func (r Range) Random() bool {
	return r.Max > r.Min
}

// Draw picks a value from the range.
func (r Range) Draw(rng *rand.Rand) float64 {
	if !r.Random() {
		return r.Min
	}
	return r.Min + float64(rng.Intn(int(r.Max-r.Min)+1))
}

// Placement describes where and how one hazard is instantiated.
// Y is relative to the top of the zone the placement belongs to.
type Placement struct {
	Variant Variant
	X, Y    Range
	W, H    float64
	Swing   float64 // Horizontal oscillation amplitude (0 = static)
	Sweep   float64 // Seconds per oscillation pass
}

// ZoneSpec is the static description of a zone.
type ZoneSpec struct {
	Name       string
	Color      core.Color
	Placements []Placement
}

// Layout is a complete level description: zones stacked top to bottom.
type Layout struct {
	ID    string
	Title string
	Zones []ZoneSpec
}

// Zone is an instantiated vertical band of the world.
type Zone struct {
	Index  int
	Name   string
	Top    float64
	Bottom float64
	Color  core.Color
}

// Contains reports whether y lies within the band.
func (z Zone) Contains(y float64) bool {
	return y >= z.Top && y < z.Bottom
}

// Level is a layout instantiated into world coordinates.
type Level struct {
	LayoutID string
	Width    float64
	Height   float64
	Zones    []Zone
	Hazards  []*Hazard
}

// BuildLevel instantiates a layout. Randomized coordinates are drawn from rng
// in placement order, so equal seeds give equal levels.
func BuildLevel(layout Layout, width, zoneHeight float64, rng *rand.Rand) *Level {
	lvl := &Level{
		LayoutID: layout.ID,
		Width:    width,
		Height:   zoneHeight * float64(len(layout.Zones)),
		Zones:    make([]Zone, 0, len(layout.Zones)),
	}

	for i, zs := range layout.Zones {
		top := float64(i) * zoneHeight
		lvl.Zones = append(lvl.Zones, Zone{
			Index:  i,
			Name:   zs.Name,
			Top:    top,
			Bottom: top + zoneHeight,
			Color:  zs.Color,
		})

		for _, p := range zs.Placements {
			x := p.X.Draw(rng)
			y := top + p.Y.Draw(rng)
			h := &Hazard{
				ID:      len(lvl.Hazards),
				Variant: p.Variant,
				Zone:    i,
				X:       x,
				Y:       y,
				W:       p.W,
				H:       p.H,
			}
			if p.Swing > 0 && p.Sweep > 0 {
				h.Motion = NewOscillator(x, p.Swing, p.Sweep)
				h.X = h.Motion.Value()
			}
			lvl.Hazards = append(lvl.Hazards, h)
		}
	}

	return lvl
}

// ZoneAt returns the zone whose band contains y.
// Positions above the world map to the first zone, below it to the last.
func (l *Level) ZoneAt(y float64) Zone {
	if len(l.Zones) == 0 {
		return Zone{Name: noZone}
	}
	i := sort.Search(len(l.Zones), func(i int) bool {
		return l.Zones[i].Bottom > y
	})
	if i >= len(l.Zones) {
		i = len(l.Zones) - 1
	}
	return l.Zones[i]
}

// Seed returns the goal hazard, or nil if the level has none.
func (l *Level) Seed() *Hazard {
	for _, h := range l.Hazards {
		if h.Variant == VariantSeed {
			return h
		}
	}
	return nil
}

// Standard hazard extents in pixels.
const (
	sunbeamW, sunbeamH = 60, 160
	cloudW, cloudH     = 160, 70
	pollutionW         = 120
	pollutionH         = 80
	gearSize           = 70
	heatW, heatH       = 80, 160
	ventW, ventH       = 60, 40
	padW, padH         = 160, 30
	rootW, rootH       = 80, 60
	stakeW, stakeH     = 60, 120
	vineW, vineH       = 100, 40
	flowerSize         = 50
	seedSize           = 40
	poolW, poolH       = 240, 40
)

func atmosphereZone() ZoneSpec {
	return ZoneSpec{
		Name:  "Atmosphere",
		Color: core.ColorSky,
		Placements: []Placement{
			{Variant: VariantSunbeam, X: At(400), Y: At(300), W: sunbeamW, H: sunbeamH, Swing: 80, Sweep: 2.5},
			{Variant: VariantSunbeam, X: At(500), Y: At(500), W: sunbeamW, H: sunbeamH * 3 / 4, Swing: 80, Sweep: 3.0},
			{Variant: VariantCloud, X: At(300), Y: At(200), W: cloudW, H: cloudH, Swing: 150, Sweep: 4.0},
			{Variant: VariantCloud, X: At(500), Y: At(220), W: cloudW, H: cloudH, Swing: 150, Sweep: 4.7},
		},
	}
}

func industrialZone() ZoneSpec {
	return ZoneSpec{
		Name:  "Industrial",
		Color: core.ColorSmog,
		Placements: []Placement{
			{Variant: VariantPollution, X: Between(200, 600), Y: At(200), W: pollutionW, H: pollutionH},
			{Variant: VariantGear, X: Between(100, 700), Y: Between(100, 500), W: gearSize, H: gearSize},
			{Variant: VariantGear, X: Between(100, 700), Y: Between(100, 500), W: gearSize, H: gearSize},
			{Variant: VariantHeatWall, X: Between(100, 700), Y: At(350), W: heatW, H: heatH},
			{Variant: VariantSteamVent, X: Between(100, 700), Y: At(250), W: ventW, H: ventH},
		},
	}
}

// ClassicLayout is the three-zone world: sky, factories, fertile soil with
// the seed at the bottom.
func ClassicLayout() Layout {
	return Layout{
		ID:    "onedrop",
		Title: "One Drop",
		Zones: []ZoneSpec{
			atmosphereZone(),
			industrialZone(),
			{
				Name:  "Fertile Earth",
				Color: core.ColorLoam,
				Placements: []Placement{
					{Variant: VariantIntroPad, X: At(400), Y: At(30), W: padW, H: padH},
					{Variant: VariantFertilePad, X: At(400), Y: At(150), W: padW, H: padH},
					{Variant: VariantAirVent, X: At(600), Y: At(200), W: ventW, H: ventH},
					{Variant: VariantPollution, X: Between(200, 600), Y: At(200), W: pollutionW, H: pollutionH},
					{Variant: VariantMovingRoot, X: At(400), Y: At(450), W: rootW, H: rootH, Swing: 100, Sweep: 4.0},
					{Variant: VariantVine, X: At(600), Y: At(550), W: vineW, H: vineH},
					{Variant: VariantFlower, X: At(400), Y: At(900), W: flowerSize, H: flowerSize},
					{Variant: VariantSeed, X: At(400), Y: At(950), W: seedSize, H: seedSize},
				},
			},
		},
	}
}

// DeepLayout extends the world with a root maze and an aquifer.
func DeepLayout() Layout {
	return Layout{
		ID:    "onedrop_deep",
		Title: "One Drop: Deep Roots",
		Zones: []ZoneSpec{
			atmosphereZone(),
			industrialZone(),
			{
				Name:  "Fertile Earth",
				Color: core.ColorLoam,
				Placements: []Placement{
					{Variant: VariantIntroPad, X: At(400), Y: At(30), W: padW, H: padH},
					{Variant: VariantFertilePad, X: At(400), Y: At(150), W: padW, H: padH},
					{Variant: VariantAirVent, X: At(600), Y: At(200), W: ventW, H: ventH},
					{Variant: VariantPollution, X: Between(200, 600), Y: At(200), W: pollutionW, H: pollutionH},
					{Variant: VariantVine, X: At(600), Y: At(550), W: vineW, H: vineH},
					{Variant: VariantFlower, X: At(400), Y: At(850), W: flowerSize, H: flowerSize},
				},
			},
			{
				Name:  "Root Maze",
				Color: core.ColorRootBrown,
				Placements: []Placement{
					{Variant: VariantStaticRoot, X: Between(100, 300), Y: At(200), W: stakeW, H: stakeH},
					{Variant: VariantMovingRoot, X: At(400), Y: At(300), W: rootW, H: rootH, Swing: 100, Sweep: 4.0},
					{Variant: VariantStaticRoot, X: Between(500, 700), Y: At(420), W: stakeW, H: stakeH},
					{Variant: VariantMovingRoot, X: At(400), Y: At(650), W: rootW, H: rootH, Swing: 200, Sweep: 5.0},
					{Variant: VariantVine, X: Between(150, 650), Y: At(780), W: vineW, H: vineH},
				},
			},
			{
				Name:  "Aquifer",
				Color: core.ColorDeepWater,
				Placements: []Placement{
					{Variant: VariantCloud, X: At(250), Y: At(150), W: cloudW, H: cloudH, Swing: 100, Sweep: 3.5},
					{Variant: VariantReflectPool, X: Between(200, 600), Y: At(400), W: poolW, H: poolH},
					{Variant: VariantBottomVent, X: At(120), Y: At(985), W: ventW + 20, H: 30},
					{Variant: VariantBottomVent, X: At(680), Y: At(985), W: ventW + 20, H: 30},
					{Variant: VariantSeed, X: At(400), Y: At(960), W: seedSize, H: seedSize},
				},
			},
		},
	}
}

// Layouts returns all built-in layouts.
func Layouts() []Layout {
	return []Layout{ClassicLayout(), DeepLayout()}
}

// LayoutByID looks up a built-in layout.
func LayoutByID(id string) (Layout, bool) {
	for _, l := range Layouts() {
		if l.ID == id {
			return l, true
		}
	}
	return Layout{}, false
}
