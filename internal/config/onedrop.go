// Package config provides YAML-based game configuration loading and
// difficulty presets for One Drop.
package config

import (
	"errors"
	"fmt"
)

// OneDropConfig contains all tunable parameters of the game.
type OneDropConfig struct {
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Droplet DropletConfig `yaml:"droplet"`
	Effects EffectsConfig `yaml:"effects"`
	Goal    GoalConfig    `yaml:"goal"`
	Input   InputConfig   `yaml:"input"`
}

// WorldConfig defines the play field and the camera viewport, in pixels.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	ZoneHeight float64 `yaml:"zone_height"`
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
	CellSize   int     `yaml:"cell_size"` // Collision space cell size
}

// PhysicsConfig defines motion parameters. Velocities are px/s.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	Bounce       float64 `yaml:"bounce"`
	RestSpeed    float64 `yaml:"rest_speed"` // Rebounds slower than this stop
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
}

// DropletConfig defines the player entity.
type DropletConfig struct {
	SpawnX         float64 `yaml:"spawn_x"`
	SpawnY         float64 `yaml:"spawn_y"`
	InitialSize    float64 `yaml:"initial_size"`
	MinSize        float64 `yaml:"min_size"`
	MaxSize        float64 `yaml:"max_size"`
	DecayStep      float64 `yaml:"decay_step"` // Per-tick shrink back toward InitialSize
	RadiusPerScale float64 `yaml:"radius_per_scale"`
}

// EffectsConfig defines per-hazard interaction strengths.
type EffectsConfig struct {
	SunbeamShrink   float64 `yaml:"sunbeam_shrink"`
	HeatShrink      float64 `yaml:"heat_shrink"`
	CloudGrow       float64 `yaml:"cloud_grow"`
	CloudCap        float64 `yaml:"cloud_cap"`
	IntroPadGrow    float64 `yaml:"intro_pad_grow"`
	IntroPadCap     float64 `yaml:"intro_pad_cap"`
	PadGrow         float64 `yaml:"pad_grow"`
	PadCap          float64 `yaml:"pad_cap"`
	FlowerGrow      float64 `yaml:"flower_grow"`
	FlowerCap       float64 `yaml:"flower_cap"`
	PollutionFactor float64 `yaml:"pollution_factor"`
	VineFactor      float64 `yaml:"vine_factor"`
	VentImpulse     float64 `yaml:"vent_impulse"`
	BottomVentLift  float64 `yaml:"bottom_vent_impulse"`
	PoolImpulse     float64 `yaml:"pool_impulse"`
	PoolEntryOffset float64 `yaml:"pool_entry_offset"` // Distance below the zone top
}

// GoalConfig defines the seed growth sequence.
type GoalConfig struct {
	Stages        int     `yaml:"stages"`         // Including the contact stage; the last one ends the run
	StageInterval float64 `yaml:"stage_interval"` // Seconds between stages
}

// InputConfig defines terminal input behavior.
type InputConfig struct {
	// HoldTicks is how long a horizontal key press keeps moving the droplet.
	// Terminals report presses and repeats but never releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// presetScale returns multipliers for harmful and helpful effects.
func presetScale(preset DifficultyPreset) (harm, help float64) {
	switch preset {
	case DifficultyEasy:
		return 0.6, 1.5
	case DifficultyHard:
		return 1.5, 0.6
	default:
		return 1.0, 1.0
	}
}

// ApplyOneDropPreset modifies the config based on a difficulty preset.
// Shrink steps scale with harm, growth steps with help; caps are untouched.
func ApplyOneDropPreset(cfg *OneDropConfig, preset DifficultyPreset) {
	harm, help := presetScale(preset)

	cfg.Effects.SunbeamShrink *= harm
	cfg.Effects.HeatShrink *= harm
	cfg.Droplet.DecayStep *= harm

	cfg.Effects.CloudGrow *= help
	cfg.Effects.IntroPadGrow *= help
	cfg.Effects.PadGrow *= help
	cfg.Effects.FlowerGrow *= help

	if preset == DifficultyHard {
		cfg.Effects.PollutionFactor *= 0.8
		cfg.Effects.VineFactor *= 0.8
	}
}

// Validate reports configuration values the simulation cannot run with.
func (c OneDropConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.ZoneHeight <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.ZoneHeight))
	}
	if c.World.ViewWidth <= 0 || c.World.ViewHeight <= 0 {
		errs = append(errs, fmt.Errorf("view size must be positive, got %gx%g", c.World.ViewWidth, c.World.ViewHeight))
	}
	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %d", c.World.CellSize))
	}
	d := c.Droplet
	if d.MinSize <= 0 || d.MinSize >= d.MaxSize {
		errs = append(errs, fmt.Errorf("droplet size bounds invalid: min=%g max=%g", d.MinSize, d.MaxSize))
	}
	if d.InitialSize < d.MinSize || d.InitialSize > d.MaxSize {
		errs = append(errs, fmt.Errorf("initial_size %g outside [%g, %g]", d.InitialSize, d.MinSize, d.MaxSize))
	}
	if d.RadiusPerScale <= 0 {
		errs = append(errs, fmt.Errorf("radius_per_scale must be positive, got %g", d.RadiusPerScale))
	}
	if c.Physics.Bounce < 0 || c.Physics.Bounce > 1 {
		errs = append(errs, fmt.Errorf("bounce must be in [0, 1], got %g", c.Physics.Bounce))
	}
	if c.Goal.Stages < 1 || c.Goal.StageInterval < 0 {
		errs = append(errs, fmt.Errorf("goal needs at least one stage and a non-negative interval"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
