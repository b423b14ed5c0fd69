package onedrop

import (
	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/core"
)

// Status messages
const (
	msgSunlight     = "Sunlight shrinks you..."
	msgSunEvaporate = "Evaporated by sunlight..."
	msgCloud        = "Nourished by cloud..."
	msgPollution    = "Pollution weakens you..."
	msgGear         = "Crushed by gear..."
	msgHeat         = "Heat shrinks you..."
	msgHeatVaporize = "Vaporized by industrial heat..."
	msgSteam        = "Steam jet pushes you upward..."
	msgStaticRoot   = "Impaled on a root..."
	msgMovingRoot   = "Caught by root, stuck..."
	msgVine         = "Tangled in vines, slowed down..."
	msgIntroPad     = "You enter life-rich soil..."
	msgFertilePad   = "You are nourished by fertile ground..."
	msgFlower       = "A flower shares its dew..."
	msgAirVent      = "Fertile vent lifts you..."
	msgPool         = "The pool reflects you back up..."
	msgJump         = "Jump!"
	msgSuccess      = "Success! One drop sparked life."
)

// growthMessages are the goal stage messages before the final one,
// indexed by stage.
var growthMessages = []string{
	"A sprout breaks the soil...",
	"The sprout unfolds its leaves...",
}

// Engine applies hazard effects to the droplet and session.
// Every handler is a no-op once the session has ended.
type Engine struct {
	effects config.EffectsConfig
	goal    config.GoalConfig
	drop    *Droplet
	session *Session
	level   *Level
	camera  *Camera
}

// NewEngine wires an engine to one run's state.
func NewEngine(cfg config.OneDropConfig, drop *Droplet, session *Session, level *Level, camera *Camera) *Engine {
	return &Engine{
		effects: cfg.Effects,
		goal:    cfg.Goal,
		drop:    drop,
		session: session,
		level:   level,
		camera:  camera,
	}
}

// Apply resolves a single contact with h.
func (e *Engine) Apply(h *Hazard) {
	if e.session.Ended || e.drop.Ended() {
		return
	}

	fx := e.effects
	switch h.Variant {
	case VariantSunbeam:
		e.shrink(fx.SunbeamShrink, msgSunlight, msgSunEvaporate)
	case VariantHeatWall:
		e.shrink(fx.HeatShrink, msgHeat, msgHeatVaporize)
	case VariantCloud:
		e.grow(fx.CloudGrow, fx.CloudCap, msgCloud)
	case VariantIntroPad:
		e.grow(fx.IntroPadGrow, fx.IntroPadCap, msgIntroPad)
	case VariantFertilePad:
		e.grow(fx.PadGrow, fx.PadCap, msgFertilePad)
	case VariantFlower:
		e.grow(fx.FlowerGrow, fx.FlowerCap, msgFlower)
	case VariantPollution:
		e.drop.ApplyVelocityScale(fx.PollutionFactor)
		e.session.Say(msgPollution)
	case VariantVine:
		e.drop.ApplyVelocityScale(fx.VineFactor)
		e.session.Say(msgVine)
	case VariantSteamVent:
		e.drop.ApplyImpulse(fx.VentImpulse)
		e.session.Say(msgSteam)
	case VariantAirVent:
		e.drop.ApplyImpulse(fx.VentImpulse)
		e.session.Say(msgAirVent)
	case VariantBottomVent:
		e.drop.ApplyImpulse(fx.BottomVentLift)
		e.session.Say(msgAirVent)
	case VariantGear:
		e.kill(core.OutcomeCrushed, msgGear)
	case VariantStaticRoot:
		e.kill(core.OutcomeCaught, msgStaticRoot)
	case VariantMovingRoot:
		e.kill(core.OutcomeCaught, msgMovingRoot)
	case VariantReflectPool:
		e.reflect(h)
	case VariantSeed:
		e.plant()
	}
}

func (e *Engine) shrink(amount float64, msg, fatal string) {
	if e.drop.ApplyShrink(amount) {
		e.session.End(core.OutcomeEvaporated, fatal)
		e.camera.Detach()
		return
	}
	e.session.Say(msg)
}

func (e *Engine) grow(amount, limit float64, msg string) {
	e.drop.ApplyGrow(amount, limit)
	e.session.Say(msg)
}

func (e *Engine) kill(outcome core.Outcome, msg string) {
	e.drop.Terminate()
	e.session.End(outcome, msg)
	e.camera.Detach()
}

// reflect sends the droplet back to the entry point of the pool's zone.
func (e *Engine) reflect(h *Hazard) {
	zone := e.level.Zones[h.Zone]
	e.drop.Reposition(e.level.Width/2, zone.Top+e.effects.PoolEntryOffset)
	e.drop.ApplyImpulse(e.effects.PoolImpulse)
	e.session.Say(msgPool)
}

// plant starts the goal growth sequence. Contact is stage 0 and every
// later stage fires one interval after the previous one; the last stage
// ends the run. A second touch while growing is ignored.
func (e *Engine) plant() {
	if e.session.Planted {
		return
	}
	e.session.Planted = true
	e.drop.Freeze()
	e.stage(0)
	for st := 1; st < e.goal.Stages; st++ {
		e.session.Schedule(float64(st)*e.goal.StageInterval, st)
	}
}

// Advance applies goal events returned by Session.Tick. Events from an
// earlier run or out of order are dropped.
func (e *Engine) Advance(events []stageEvent) {
	for _, ev := range events {
		if e.session.Ended || !e.session.Planted || !e.session.events.current(ev) {
			continue
		}
		if ev.stage != e.session.GoalStage+1 {
			continue
		}
		e.stage(ev.stage)
	}
}

func (e *Engine) stage(n int) {
	e.session.GoalStage = n
	if n >= e.goal.Stages-1 {
		e.drop.Terminate()
		e.session.End(core.OutcomeSuccess, msgSuccess)
		return
	}
	e.session.Say(growthMessages[min(n, len(growthMessages)-1)])
}
