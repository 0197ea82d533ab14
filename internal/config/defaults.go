package config

import (
	_ "embed"
)

//go:embed defaults/pachinko.yaml
var defaultPachinkoYAML []byte

// DefaultPachinkoConfig returns the default pachinko configuration.
func DefaultPachinkoConfig() PachinkoConfig {
	return PachinkoConfig{
		Physics: PachinkoPhysics{
			Gravity:     980,
			MaxSubsteps: 64,
			Restitution: PachinkoRestitution{
				Ball: 0.9,
			},
		},
		Launch: PachinkoLaunch{
			SpawnInsetX:    35,
			SpawnY:         40,
			Radius:         30,
			Mass:           1,
			BaseVelocity:   3000,
			JitterVelocity: 600,
		},
		Gameplay: PachinkoGameplay{
			Award:           10,
			BallsPerSession: 30,
			MaxLiveBalls:    0,
			IndicatorTicks:  60,
		},
		Board: PachinkoBoard{
			Width:     640,
			Height:    800,
			Layout:    "",
			LayoutDir: "~/.arcade/layouts",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pachinko", "pachinko_classic":
		return defaultPachinkoYAML
	default:
		return nil
	}
}
