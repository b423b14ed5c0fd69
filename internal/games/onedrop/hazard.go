package onedrop

import (
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/one-drop/internal/core"
)

// Variant identifies the behavior of a hazard or boon.
type Variant int

const (
	VariantSunbeam Variant = iota
	VariantCloud
	VariantPollution
	VariantGear
	VariantHeatWall
	VariantSteamVent
	VariantStaticRoot
	VariantMovingRoot
	VariantVine
	VariantIntroPad
	VariantFertilePad
	VariantFlower
	VariantAirVent
	VariantBottomVent
	VariantReflectPool
	VariantSeed
)

var variantNames = [...]string{
	VariantSunbeam:     "sunbeam",
	VariantCloud:       "cloud",
	VariantPollution:   "pollution",
	VariantGear:        "gear",
	VariantHeatWall:    "heat wall",
	VariantSteamVent:   "steam vent",
	VariantStaticRoot:  "root",
	VariantMovingRoot:  "moving root",
	VariantVine:        "vines",
	VariantIntroPad:    "intro pad",
	VariantFertilePad:  "fertile pad",
	VariantFlower:      "flower",
	VariantAirVent:     "air vent",
	VariantBottomVent:  "bottom vent",
	VariantReflectPool: "reflect pool",
	VariantSeed:        "seed",
}

// String returns a human-readable name for the variant.
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "unknown"
	}
	return variantNames[v]
}

// Trigger is how contact with a hazard is detected.
type Trigger int

const (
	// TriggerOverlap fires every tick while the bodies intersect.
	TriggerOverlap Trigger = iota
	// TriggerCollide fires once per contact and blocks movement.
	TriggerCollide
)

// Trigger returns the trigger kind of the variant.
func (v Variant) Trigger() Trigger {
	switch v {
	case VariantGear, VariantSteamVent, VariantStaticRoot, VariantMovingRoot,
		VariantVine, VariantAirVent, VariantBottomVent, VariantSeed:
		return TriggerCollide
	default:
		return TriggerOverlap
	}
}

// Lethal reports whether contact ends the run immediately.
func (v Variant) Lethal() bool {
	switch v {
	case VariantGear, VariantStaticRoot, VariantMovingRoot:
		return true
	default:
		return false
	}
}

// Collision space tags
const (
	tagDroplet = "droplet"
	tagOverlap = "overlap"
	tagSolid   = "solid"
)

// Hazard is one placed instance of a variant.
// Hazards never react to physics; only their motion law moves them.
type Hazard struct {
	ID      int // Registry order; contacts are resolved in this order
	Variant Variant
	Zone    int // Index of the zone the hazard was placed in
	X, Y    float64
	W, H    float64
	Motion  *Oscillator // nil for static hazards

	obj *resolv.Object
}

// Box returns the hazard's current bounding box.
func (h *Hazard) Box() core.Box {
	return core.NewBox(h.X, h.Y, h.W, h.H)
}

// Trigger returns the hazard's trigger kind.
func (h *Hazard) Trigger() Trigger {
	return h.Variant.Trigger()
}

// update advances the motion law and syncs the collision object.
func (h *Hazard) update(dt float64) {
	if h.Motion == nil {
		return
	}
	h.X = h.Motion.Update(dt)
	h.syncObject()
}

// syncObject copies the hazard geometry into its collision object.
func (h *Hazard) syncObject() {
	if h.obj == nil {
		return
	}
	h.obj.X = h.X - h.W/2
	h.obj.Y = h.Y - h.H/2
	h.obj.Update()
}

// Oscillator moves a value back and forth between Center-Amplitude and
// Center+Amplitude, taking Sweep seconds for each pass.
// The value starts at the low end, like a yoyo tween.
type Oscillator struct {
	Center    float64
	Amplitude float64
	Sweep     float64

	tween   *gween.Tween
	forward bool
	value   float64
}

// NewOscillator creates an oscillator at the low end of its range.
func NewOscillator(center, amplitude, sweep float64) *Oscillator {
	o := &Oscillator{
		Center:    center,
		Amplitude: amplitude,
		Sweep:     sweep,
		forward:   true,
		value:     center - amplitude,
	}
	o.tween = o.newTween()
	return o
}

func (o *Oscillator) newTween() *gween.Tween {
	from, to := float32(o.Center-o.Amplitude), float32(o.Center+o.Amplitude)
	if !o.forward {
		from, to = to, from
	}
	return gween.New(from, to, float32(o.Sweep), ease.Linear)
}

// Update advances the oscillator by dt seconds and returns the new value.
func (o *Oscillator) Update(dt float64) float64 {
	if o.Sweep <= 0 || o.Amplitude == 0 {
		o.value = o.Center
		return o.value
	}
	v, done := o.tween.Update(float32(dt))
	o.value = core.ClampF(float64(v), o.Min(), o.Max())
	if done {
		o.forward = !o.forward
		o.tween = o.newTween()
	}
	return o.value
}

// Value returns the current value.
func (o *Oscillator) Value() float64 {
	return o.value
}

// Min returns the lowest value the oscillator can take.
func (o *Oscillator) Min() float64 {
	return o.Center - o.Amplitude
}

// Max returns the highest value the oscillator can take.
func (o *Oscillator) Max() float64 {
	return o.Center + o.Amplitude
}
