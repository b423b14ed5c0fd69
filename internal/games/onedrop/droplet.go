package onedrop

import (
	"math"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/core"
)

// sizeEpsilon absorbs float drift when a shrink lands on the minimum.
const sizeEpsilon = 1e-9

// DropletState is the run state of the droplet.
type DropletState int

const (
	StateActive DropletState = iota
	StateEnded
)

// Droplet is the player-controlled body.
// Position is the center in world pixels, velocity is px/s and Size is the
// visual scale. Every mutation is ignored once the droplet has ended.
type Droplet struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Visible bool
	Frozen  bool // Physics integration disabled (absorbed by the seed)

	state   DropletState
	minSize float64
	maxSize float64
	radius  float64 // Pixels per unit of Size
}

// NewDroplet creates a droplet at the configured spawn point.
func NewDroplet(cfg config.DropletConfig) *Droplet {
	return &Droplet{
		X:       cfg.SpawnX,
		Y:       cfg.SpawnY,
		Size:    cfg.InitialSize,
		Visible: true,
		state:   StateActive,
		minSize: cfg.MinSize,
		maxSize: cfg.MaxSize,
		radius:  cfg.RadiusPerScale,
	}
}

// State returns the current run state.
func (d *Droplet) State() DropletState {
	return d.state
}

// Ended reports whether the run has ended for this droplet.
func (d *Droplet) Ended() bool {
	return d.state == StateEnded
}

// Radius returns the collision radius in pixels.
func (d *Droplet) Radius() float64 {
	return d.Size * d.radius
}

// Box returns the droplet's bounding box.
func (d *Droplet) Box() core.Box {
	r := d.Radius()
	return core.NewBox(d.X, d.Y, 2*r, 2*r)
}

// ApplyShrink reduces the size by amount, never below the minimum.
// Reaching the minimum hides the droplet and ends the run; the return value
// reports that evaporation so the caller can pick the message.
func (d *Droplet) ApplyShrink(amount float64) (evaporated bool) {
	if d.Ended() {
		return false
	}
	d.Size -= amount
	if d.Size <= d.minSize+sizeEpsilon {
		d.Size = d.minSize
		d.Visible = false
		d.Terminate()
		return true
	}
	return false
}

// ApplyGrow increases the size by amount up to limit (itself capped at the
// maximum size) and makes the droplet visible.
func (d *Droplet) ApplyGrow(amount, limit float64) {
	if d.Ended() {
		return
	}
	limit = math.Min(limit, d.maxSize)
	if d.Size < limit {
		d.Size = math.Min(d.Size+amount, limit)
	}
	d.Visible = true
}

// ApplyVelocityScale multiplies the vertical velocity.
func (d *Droplet) ApplyVelocityScale(factor float64) {
	if d.Ended() {
		return
	}
	d.VY *= factor
}

// ApplyImpulse sets the vertical velocity to an absolute value.
func (d *Droplet) ApplyImpulse(vy float64) {
	if d.Ended() {
		return
	}
	d.VY = vy
}

// Reposition teleports the droplet.
func (d *Droplet) Reposition(x, y float64) {
	if d.Ended() {
		return
	}
	d.X = x
	d.Y = y
}

// Decay shrinks an oversized droplet back toward floor by step per call.
// It never goes below floor and never ends the run.
func (d *Droplet) Decay(step, floor float64) {
	if d.Ended() || d.Size <= floor {
		return
	}
	d.Size = math.Max(d.Size-step, floor)
}

// Freeze stops movement without ending the run.
func (d *Droplet) Freeze() {
	if d.Ended() {
		return
	}
	d.VX, d.VY = 0, 0
	d.Frozen = true
}

// Terminate ends the run: velocity is zeroed and integration stops.
func (d *Droplet) Terminate() {
	if d.Ended() {
		return
	}
	d.VX, d.VY = 0, 0
	d.Frozen = true
	d.state = StateEnded
}
