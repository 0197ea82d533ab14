package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a config file parses but holds values the
// game cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// LoadPachinko loads pachinko configuration.
// Search order: customPath -> ~/.arcade/configs/pachinko.yaml -> ./configs/pachinko.yaml -> embedded default
// Files are decoded over the defaults, so they only need the keys they change.
// Invalid files in the search path are skipped; an invalid customPath is an error.
func LoadPachinko(customPath string) (PachinkoConfig, error) {
	cfg := DefaultPachinkoConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultPachinkoConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return DefaultPachinkoConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pachinko.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
			cfg = DefaultPachinkoConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pachinko.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
		cfg = DefaultPachinkoConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPachinkoYAML, &cfg); err != nil {
		return DefaultPachinkoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate checks the values the game depends on: a positive award and
// gravity, restitution within [0,1], a ball that fits, and non-negative limits.
func (c PachinkoConfig) Validate() error {
	switch {
	case c.Gameplay.Award <= 0:
		return fmt.Errorf("gameplay.award %d must be positive: %w", c.Gameplay.Award, ErrInvalidConfig)
	case c.Gameplay.BallsPerSession < 0:
		return fmt.Errorf("gameplay.balls_per_session %d is negative: %w", c.Gameplay.BallsPerSession, ErrInvalidConfig)
	case c.Gameplay.MaxLiveBalls < 0:
		return fmt.Errorf("gameplay.max_live_balls %d is negative: %w", c.Gameplay.MaxLiveBalls, ErrInvalidConfig)
	case !(c.Physics.Gravity > 0):
		return fmt.Errorf("physics.gravity %v must be positive: %w", c.Physics.Gravity, ErrInvalidConfig)
	case !(c.Launch.Radius > 0) || !(c.Launch.Mass > 0):
		return fmt.Errorf("launch radius %v and mass %v must be positive: %w", c.Launch.Radius, c.Launch.Mass, ErrInvalidConfig)
	case !(c.Board.Width > 0) || !(c.Board.Height > 0):
		return fmt.Errorf("board %vx%v must have a positive size: %w", c.Board.Width, c.Board.Height, ErrInvalidConfig)
	}

	r := c.Physics.Restitution
	names := []string{"pin", "fence", "wall", "ball"}
	for i, v := range []float64{r.Pin, r.Fence, r.Wall, r.Ball} {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("physics.restitution.%s %v outside [0,1]: %w", names[i], v, ErrInvalidConfig)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
