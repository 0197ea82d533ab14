package config

// BouncePreset names a set of restitution values.
type BouncePreset string

const (
	BounceSoft   BouncePreset = "soft"
	BounceLively BouncePreset = "lively"
	BounceWild   BouncePreset = "wild"
)

// ParseBouncePreset maps a CLI value to a preset. Empty and unknown values
// report false.
func ParseBouncePreset(s string) (BouncePreset, bool) {
	switch p := BouncePreset(s); p {
	case BounceSoft, BounceLively, BounceWild:
		return p, true
	default:
		return "", false
	}
}

// ApplyBouncePreset modifies the config based on a bounce preset.
func ApplyBouncePreset(cfg *PachinkoConfig, preset BouncePreset) {
	r := &cfg.Physics.Restitution
	switch preset {
	case BounceSoft:
		r.Pin, r.Fence, r.Wall, r.Ball = 0.6, 0.5, 0.55, 0.6
	case BounceLively:
		r.Pin, r.Fence, r.Wall, r.Ball = 0.9, 0.8, 0.85, 0.9
	case BounceWild:
		r.Pin, r.Fence, r.Wall, r.Ball = 0.98, 0.95, 0.97, 0.98
		cfg.Launch.JitterVelocity *= 1.5
	}
}
