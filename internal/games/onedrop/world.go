package onedrop

import (
	"math"
	"math/rand"
	"sort"

	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/core"
)

// contactSlop is the overlap in pixels still treated as touching.
const contactSlop = 1e-6

// Controls is the player intent for one tick.
type Controls struct {
	Move int  // -1 left, 0 none, 1 right
	Jump bool // Jump if supported from below
}

// Camera is the viewport into the world, top-left in world pixels.
type Camera struct {
	X, Y     float64
	W, H     float64
	Detached bool // Stopped following the droplet
}

// Follow centers the camera on a point, clamped to the world.
func (c *Camera) Follow(x, y, worldW, worldH float64) {
	if c.Detached {
		return
	}
	c.X = core.ClampF(x-c.W/2, 0, math.Max(0, worldW-c.W))
	c.Y = core.ClampF(y-c.H/2, 0, math.Max(0, worldH-c.H))
}

// Detach stops the camera where it is.
func (c *Camera) Detach() {
	c.Detached = true
}

// World owns one run: level, droplet, session, collision space and camera.
type World struct {
	Level   *Level
	Drop    *Droplet
	Session *Session
	Camera  Camera

	// Sprout is the goal growth animation progress in [0, 1].
	Sprout float64

	cfg      config.OneDropConfig
	layout   Layout
	rng      *rand.Rand
	engine   *Engine
	space    *resolv.Space
	dropObj  *resolv.Object
	touching map[int]bool // Collide hazards in contact last tick
	onGround bool
	stepMax  float64 // Longest sub-step move that cannot skip a hazard
	sprout   *gween.Tween
}

// NewWorld builds a world for layout. Randomized placements are drawn from
// rng, here and on every restart.
func NewWorld(cfg config.OneDropConfig, layout Layout, rng *rand.Rand) *World {
	w := &World{
		cfg:    cfg,
		layout: layout,
		rng:    rng,
	}
	w.Restart()
	return w
}

// Restart discards the current run and starts a fresh one.
func (w *World) Restart() {
	wc := w.cfg.World
	w.Level = BuildLevel(w.layout, wc.Width, wc.ZoneHeight, w.rng)
	w.Drop = NewDroplet(w.cfg.Droplet)
	if w.Session == nil {
		w.Session = NewSession()
	} else {
		w.Session.Reset()
	}
	w.Camera = Camera{W: wc.ViewWidth, H: wc.ViewHeight}
	w.Camera.Follow(w.Drop.X, w.Drop.Y, w.Level.Width, w.Level.Height)
	w.Sprout = 0
	w.sprout = nil
	w.touching = make(map[int]bool)
	w.onGround = false

	cell := wc.CellSize
	if cell <= 0 {
		cell = 32
	}
	w.space = resolv.NewSpace(int(math.Ceil(w.Level.Width)), int(math.Ceil(w.Level.Height)), cell, cell)
	for _, h := range w.Level.Hazards {
		tag := tagOverlap
		if h.Trigger() == TriggerCollide {
			tag = tagSolid
		}
		h.obj = resolv.NewObject(h.X-h.W/2, h.Y-h.H/2, h.W, h.H, tag)
		h.obj.Data = h
		w.space.Add(h.obj)
	}
	w.stepMax = smallestExtent(w.Level.Hazards)
	b := w.Drop.Box()
	w.dropObj = resolv.NewObject(b.Left(), b.Top(), b.W, b.H, tagDroplet)
	w.space.Add(w.dropObj)

	w.engine = NewEngine(w.cfg, w.Drop, w.Session, w.Level, &w.Camera)
}

// Zone returns the zone the droplet is in.
func (w *World) Zone() Zone {
	return w.Level.ZoneAt(w.Drop.Y)
}

// OnGround reports whether the droplet was supported from below last tick.
func (w *World) OnGround() bool {
	return w.onGround
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64, in Controls) {
	if w.Session.Ended {
		return
	}

	w.engine.Advance(w.Session.Tick(dt, w.Zone().Name))
	if w.Session.Ended {
		w.finishSprout()
		return
	}

	for _, h := range w.Level.Hazards {
		h.update(dt)
	}
	w.updateSprout(dt)

	if !w.Drop.Frozen {
		w.integrate(dt, in)
		w.advance(dt)
		w.syncDroplet()
	}

	w.Camera.Follow(w.Drop.X, w.Drop.Y, w.Level.Width, w.Level.Height)
}

// maxSubsteps bounds the work a single long frame can cause.
const maxSubsteps = 32

// advance moves the droplet through dt in sub-steps no longer than the
// smallest hazard, so a fast fall at a low frame rate still touches
// everything on its path. Each hazard applies at most once per tick.
func (w *World) advance(dt float64) {
	n := w.substeps(dt)
	sub := dt / float64(n)
	touched := make(map[int]bool)
	applied := make(map[int]bool)

	w.onGround = false
	for i := 0; i < n && !w.Drop.Frozen; i++ {
		for _, h := range w.contacts(w.move(sub), touched) {
			if applied[h.ID] {
				continue
			}
			applied[h.ID] = true
			w.engine.Apply(h)
		}
	}
	w.touching = touched
}

// substeps returns how many pieces dt is split into at the droplet's
// current speed.
func (w *World) substeps(dt float64) int {
	if w.stepMax <= 0 {
		return 1
	}
	d := w.Drop
	dist := math.Max(math.Abs(d.VX), math.Abs(d.VY)) * dt
	n := int(math.Ceil(dist / w.stepMax))
	return core.Clamp(n, 1, maxSubsteps)
}

// smallestExtent returns the smallest width or height among hazards, or 0
// when there are none.
func smallestExtent(hazards []*Hazard) float64 {
	least := 0.0
	for _, h := range hazards {
		e := math.Min(h.W, h.H)
		if e > 0 && (least == 0 || e < least) {
			least = e
		}
	}
	return least
}

// integrate applies decay, controls and gravity to the droplet.
func (w *World) integrate(dt float64, in Controls) {
	d := w.Drop
	p := w.cfg.Physics

	d.Decay(w.cfg.Droplet.DecayStep, w.cfg.Droplet.InitialSize)

	d.VX = float64(in.Move) * p.MoveSpeed
	if in.Jump && w.onGround {
		d.VY = p.JumpImpulse
		w.Session.Say(msgJump)
	}

	d.VY += p.Gravity * dt
	if d.VY > p.MaxFallSpeed {
		d.VY = p.MaxFallSpeed
	}
}

// move resolves motion one axis at a time against solid hazards and the
// world bounds. It returns the solid hazards touched during the move.
func (w *World) move(dt float64) []*Hazard {
	d := w.Drop
	p := w.cfg.Physics
	r := d.Radius()
	touched := make(map[int]*Hazard)

	// Horizontal
	dx := d.VX * dt
	if dx != 0 {
		w.syncDroplet()
		for _, h := range w.solidsNear(dx, 0) {
			cur := d.Box()
			hb := h.Box()
			if penetrates(cur, hb) {
				touched[h.ID] = h
				continue
			}
			if !penetrates(cur.Translate(dx, 0), hb) {
				continue
			}
			touched[h.ID] = h
			if dx > 0 {
				dx = math.Max(0, hb.Left()-cur.Right())
			} else {
				dx = math.Min(0, hb.Right()-cur.Left())
			}
			d.VX = 0
		}
	}
	d.X = core.ClampF(d.X+dx, r, w.Level.Width-r)

	// Vertical
	dy := d.VY * dt
	blocked := false
	if dy != 0 {
		w.syncDroplet()
		for _, h := range w.solidsNear(0, dy) {
			cur := d.Box()
			hb := h.Box()
			if penetrates(cur, hb) {
				touched[h.ID] = h
				continue
			}
			if !penetrates(cur.Translate(0, dy), hb) {
				continue
			}
			touched[h.ID] = h
			blocked = true
			if dy > 0 {
				dy = math.Max(0, hb.Top()-cur.Bottom())
			} else {
				dy = math.Min(0, hb.Bottom()-cur.Top())
			}
		}
	}
	d.Y += dy

	switch {
	case d.Y+r >= w.Level.Height:
		d.Y = w.Level.Height - r
		w.land(p)
	case d.Y-r < 0:
		d.Y = r
		d.VY = 0
	case blocked && d.VY > 0:
		w.land(p)
	case blocked:
		d.VY = 0
	}

	out := make([]*Hazard, 0, len(touched))
	for _, h := range touched {
		out = append(out, h)
	}
	return out
}

// land bounces a falling droplet off the surface below it.
func (w *World) land(p config.PhysicsConfig) {
	d := w.Drop
	w.onGround = true
	if d.VY <= 0 {
		return
	}
	d.VY = -d.VY * p.Bounce
	if math.Abs(d.VY) < p.RestSpeed {
		d.VY = 0
	}
}

// solidsNear returns solid hazards in the cells the droplet would occupy
// after moving by (dx, dy).
func (w *World) solidsNear(dx, dy float64) []*Hazard {
	return hazardsOf(w.dropObj.Check(dx, dy, tagSolid))
}

// contacts orders a sub-step's contacts: solid hazards not in contact last
// tick, then every intersecting overlap hazard, each group by registry
// order. Solid hazards touched are recorded in now.
func (w *World) contacts(solid []*Hazard, now map[int]bool) []*Hazard {
	sortByID(solid)

	var out []*Hazard
	for _, h := range solid {
		now[h.ID] = true
		if !w.touching[h.ID] {
			out = append(out, h)
		}
	}

	w.syncDroplet()
	box := w.Drop.Box()
	overlaps := hazardsOf(w.dropObj.Check(0, 0, tagOverlap))
	sortByID(overlaps)
	for _, h := range overlaps {
		if box.Intersects(h.Box()) {
			out = append(out, h)
		}
	}
	return out
}

// syncDroplet copies the droplet geometry into its collision object.
func (w *World) syncDroplet() {
	b := w.Drop.Box()
	w.dropObj.X = b.Left()
	w.dropObj.Y = b.Top()
	w.dropObj.W = b.W
	w.dropObj.H = b.H
	w.dropObj.Update()
}

func (w *World) updateSprout(dt float64) {
	if !w.Session.Planted {
		return
	}
	if w.sprout == nil {
		grow := float64(w.cfg.Goal.Stages-1) * w.cfg.Goal.StageInterval
		if grow <= 0 {
			w.Sprout = 1
			return
		}
		w.sprout = gween.New(0, 1, float32(grow), ease.OutQuad)
	}
	v, _ := w.sprout.Update(float32(dt))
	w.Sprout = core.ClampF(float64(v), 0, 1)
}

func (w *World) finishSprout() {
	if w.Session.Outcome == core.OutcomeSuccess {
		w.Sprout = 1
	}
}

// penetrates reports an overlap deeper than contactSlop on both axes.
// Boxes resting against each other stay touching despite float error.
func penetrates(a, b core.Box) bool {
	return a.Right()-b.Left() > contactSlop && b.Right()-a.Left() > contactSlop &&
		a.Bottom()-b.Top() > contactSlop && b.Bottom()-a.Top() > contactSlop
}

func hazardsOf(c *resolv.Collision) []*Hazard {
	if c == nil {
		return nil
	}
	out := make([]*Hazard, 0, len(c.Objects))
	seen := make(map[int]bool, len(c.Objects))
	for _, o := range c.Objects {
		h, ok := o.Data.(*Hazard)
		if !ok || seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	return out
}

func sortByID(hs []*Hazard) {
	sort.Slice(hs, func(i, j int) bool { return hs[i].ID < hs[j].ID })
}
