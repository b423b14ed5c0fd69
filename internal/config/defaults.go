package config

import (
	_ "embed"
)

//go:embed defaults/onedrop.yaml
var defaultOneDropYAML []byte

// DefaultOneDropConfig returns the default configuration.
// It mirrors defaults/onedrop.yaml and is used when the embedded file
// cannot be parsed.
func DefaultOneDropConfig() OneDropConfig {
	return OneDropConfig{
		World: WorldConfig{
			Width:      800,
			ZoneHeight: 1000,
			ViewWidth:  800,
			ViewHeight: 600,
			CellSize:   32,
		},
		Physics: PhysicsConfig{
			Gravity:      250,
			MaxFallSpeed: 900,
			Bounce:       0.3,
			RestSpeed:    20,
			MoveSpeed:    200,
			JumpImpulse:  -350,
		},
		Droplet: DropletConfig{
			SpawnX:         400,
			SpawnY:         100,
			InitialSize:    0.15,
			MinSize:        0.05,
			MaxSize:        0.44,
			DecayStep:      0.001,
			RadiusPerScale: 100,
		},
		Effects: EffectsConfig{
			SunbeamShrink:   0.01,
			HeatShrink:      0.02,
			CloudGrow:       0.01,
			CloudCap:        0.30,
			IntroPadGrow:    0.01,
			IntroPadCap:     0.35,
			PadGrow:         0.03,
			PadCap:          0.40,
			FlowerGrow:      0.02,
			FlowerCap:       0.44,
			PollutionFactor: 0.6,
			VineFactor:      0.7,
			VentImpulse:     -220,
			BottomVentLift:  -180,
			PoolImpulse:     -200,
			PoolEntryOffset: 60,
		},
		Goal: GoalConfig{
			Stages:        3,
			StageInterval: 1.0,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultOneDropYAML
}
