package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	var cfg PachinkoConfig
	if err := yaml.Unmarshal(GetDefaultYAML("pachinko"), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultPachinkoConfig()) {
		t.Errorf("embedded defaults differ from code:\n yaml: %+v\n code: %+v", cfg, DefaultPachinkoConfig())
	}
	if GetDefaultYAML("snake") != nil {
		t.Error("expected nil for unknown game")
	}
}

func TestLoadPachinkoCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "gameplay:\n  award: 25\nboard:\n  layout: classic\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPachinko(path)
	if err != nil {
		t.Fatalf("LoadPachinko: %v", err)
	}
	if cfg.Gameplay.Award != 25 {
		t.Errorf("Award = %d, want 25", cfg.Gameplay.Award)
	}
	if cfg.Board.Layout != "classic" {
		t.Errorf("Layout = %q, want classic", cfg.Board.Layout)
	}
	// Unset keys keep their defaults.
	if cfg.Launch.BaseVelocity != 3000 {
		t.Errorf("BaseVelocity = %v, want 3000", cfg.Launch.BaseVelocity)
	}
	if cfg.Gameplay.BallsPerSession != 30 {
		t.Errorf("BallsPerSession = %d, want 30", cfg.Gameplay.BallsPerSession)
	}
}

func TestLoadPachinkoCustomPathErrors(t *testing.T) {
	if _, err := LoadPachinko(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPachinko(path)
	if err == nil {
		t.Error("expected parse error")
	}
	if !reflect.DeepEqual(cfg, DefaultPachinkoConfig()) {
		t.Error("expected defaults alongside parse error")
	}
}

func TestLoadPachinkoUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pachinko.yaml"), []byte("launch:\n  radius: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPachinko("")
	if err != nil {
		t.Fatalf("LoadPachinko: %v", err)
	}
	if cfg.Launch.Radius != 20 {
		t.Errorf("Radius = %v, want 20", cfg.Launch.Radius)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultPachinkoConfig().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*PachinkoConfig)
	}{
		{"negative award", func(c *PachinkoConfig) { c.Gameplay.Award = -10 }},
		{"zero award", func(c *PachinkoConfig) { c.Gameplay.Award = 0 }},
		{"zero gravity", func(c *PachinkoConfig) { c.Physics.Gravity = 0 }},
		{"negative gravity", func(c *PachinkoConfig) { c.Physics.Gravity = -980 }},
		{"pin restitution above one", func(c *PachinkoConfig) { c.Physics.Restitution.Pin = 5 }},
		{"negative ball restitution", func(c *PachinkoConfig) { c.Physics.Restitution.Ball = -1 }},
		{"zero radius", func(c *PachinkoConfig) { c.Launch.Radius = 0 }},
		{"negative budget", func(c *PachinkoConfig) { c.Gameplay.BallsPerSession = -1 }},
		{"negative live cap", func(c *PachinkoConfig) { c.Gameplay.MaxLiveBalls = -2 }},
		{"empty board", func(c *PachinkoConfig) { c.Board.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPachinkoConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadPachinkoRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "negative.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  award: -10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPachinko(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("LoadPachinko() error = %v, want ErrInvalidConfig", err)
	}
	if cfg.Gameplay.Award != 10 {
		t.Errorf("Award = %d, want default 10 alongside the error", cfg.Gameplay.Award)
	}
}

func TestLoadPachinkoSkipsInvalidUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pachinko.yaml"), []byte("physics:\n  gravity: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPachinko("")
	if err != nil {
		t.Fatalf("LoadPachinko: %v", err)
	}
	if cfg.Physics.Gravity != 980 {
		t.Errorf("Gravity = %v, want default 980", cfg.Physics.Gravity)
	}
}

func TestLoadPachinkoFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadPachinko("")
	if err != nil {
		t.Fatalf("LoadPachinko: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultPachinkoConfig()) {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestApplyBouncePreset(t *testing.T) {
	tests := []struct {
		preset BouncePreset
		pin    float64
		wall   float64
		jitter float64
	}{
		{BounceSoft, 0.6, 0.55, 600},
		{BounceLively, 0.9, 0.85, 600},
		{BounceWild, 0.98, 0.97, 900},
		{"", 0, 0, 600},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPachinkoConfig()
			ApplyBouncePreset(&cfg, tt.preset)
			if cfg.Physics.Restitution.Pin != tt.pin {
				t.Errorf("Pin = %v, want %v", cfg.Physics.Restitution.Pin, tt.pin)
			}
			if cfg.Physics.Restitution.Wall != tt.wall {
				t.Errorf("Wall = %v, want %v", cfg.Physics.Restitution.Wall, tt.wall)
			}
			if cfg.Launch.JitterVelocity != tt.jitter {
				t.Errorf("Jitter = %v, want %v", cfg.Launch.JitterVelocity, tt.jitter)
			}
		})
	}
}

func TestParseBouncePreset(t *testing.T) {
	for _, s := range []string{"soft", "lively", "wild"} {
		if p, ok := ParseBouncePreset(s); !ok || string(p) != s {
			t.Errorf("ParseBouncePreset(%q) = %q, %v", s, p, ok)
		}
	}
	for _, s := range []string{"", "hard", "SOFT"} {
		if _, ok := ParseBouncePreset(s); ok {
			t.Errorf("ParseBouncePreset(%q) should fail", s)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/.arcade/layouts", filepath.Join(home, ".arcade", "layouts")},
		{"~", home},
		{"/tmp/x", "/tmp/x"},
		{"relative/~/x", "relative/~/x"},
		{"~user/x", "~user/x"},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
