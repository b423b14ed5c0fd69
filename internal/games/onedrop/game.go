// Package onedrop implements One Drop: a water droplet falls through stacked
// zones of hazards and boons and must reach the seed at the bottom to grow
// new life. The package holds pure simulation and rendering into a
// core.Screen; it knows nothing about terminals.
package onedrop

import (
	"math/rand"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/core"
	"github.com/vovakirdan/one-drop/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names fall back to the config as loaded.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts a World to the registry's game interface.
type Game struct {
	layout  Layout
	runtime core.RuntimeConfig
	cfg     config.OneDropConfig
	world   *World
	paused  bool

	holdLeft  int // Ticks the last left press keeps moving
	holdRight int
}

// New creates a game instance for a layout.
func New(layout Layout) *Game {
	return &Game{layout: layout}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.layout.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.layout.Title
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.OneDropConfig {
	return g.cfg
}

// World returns the running world, or nil before the first Reset.
func (g *Game) World() *World {
	return g.world
}

// Reset loads configuration and builds a fresh world seeded from runtime.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadWithPreset(configPath, difficultyPreset)
	if err != nil {
		cfg = config.DefaultOneDropConfig()
		if difficultyPreset != "" {
			config.ApplyOneDropPreset(&cfg, difficultyPreset)
		}
	}
	g.cfg = cfg

	g.world = NewWorld(cfg, g.layout, rand.New(rand.NewSource(runtime.Seed)))
	g.paused = false
	g.holdLeft, g.holdRight = 0, 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State(), Restarted: true}
	}

	if g.world.Session.Ended {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.world.Step(g.dt(), g.controls(in))
	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.world.Restart()
	g.paused = false
	g.holdLeft, g.holdRight = 0, 0
}

// controls turns key presses into held movement. Terminals report presses
// and auto-repeats but never releases, so a press holds for HoldTicks.
func (g *Game) controls(in core.InputFrame) Controls {
	hold := g.cfg.Input.HoldTicks
	if hold <= 0 {
		hold = 1
	}
	if in.Has(core.ActionLeft) {
		g.holdLeft, g.holdRight = hold, 0
	}
	if in.Has(core.ActionRight) {
		g.holdRight, g.holdLeft = hold, 0
	}

	c := Controls{Jump: in.Has(core.ActionJump)}
	switch {
	case g.holdLeft > 0:
		c.Move = -1
		g.holdLeft--
	case g.holdRight > 0:
		c.Move = 1
		g.holdRight--
	}
	return c
}

func (g *Game) dt() float64 {
	if g.runtime.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(g.runtime.TickRate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	s := g.world.Session
	return core.GameState{
		Elapsed:  s.Elapsed,
		Message:  s.Message,
		Zone:     g.world.Zone().Name,
		Outcome:  s.Outcome,
		GameOver: s.Ended,
		Paused:   g.paused,
	}
}

// Register both layouts with the registry
func init() {
	for _, layout := range Layouts() {
		registry.Register(layout.ID, func() registry.Game {
			return New(layout)
		})
	}
}
