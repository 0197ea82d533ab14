// Package formats parses layout files. YAML and TOML share one schema.
package formats

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pachinko/internal/board"
)

// File is the on-disk layout schema.
type File struct {
	Name        string       `yaml:"name" toml:"name"`
	MinSize     Size         `yaml:"min_size" toml:"min_size"`
	Pins        Pins         `yaml:"pins" toml:"pins"`
	Fences      Fences       `yaml:"fences" toml:"fences"`
	Restitution *Restitution `yaml:"restitution,omitempty" toml:"restitution,omitempty"`
	Boundary    []Anchor     `yaml:"boundary" toml:"boundary"`
	Bottom      []Anchor     `yaml:"bottom,omitempty" toml:"bottom,omitempty"`
}

// Size is a width/height pair.
type Size struct {
	W float64 `yaml:"w" toml:"w"`
	H float64 `yaml:"h" toml:"h"`
}

// Point is an x/y pair.
type Point struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Pins describes the pin grid.
type Pins struct {
	Origin      Point   `yaml:"origin" toml:"origin"`
	Spacing     float64 `yaml:"spacing" toml:"spacing"`
	RightMargin float64 `yaml:"right_margin" toml:"right_margin"`
	TopMargin   float64 `yaml:"top_margin" toml:"top_margin"`
	Radius      float64 `yaml:"radius" toml:"radius"`
	Stagger     bool    `yaml:"stagger" toml:"stagger"`
}

// Fences describes the fence row.
type Fences struct {
	Spacing     float64 `yaml:"spacing" toml:"spacing"`
	RightMargin float64 `yaml:"right_margin" toml:"right_margin"`
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
}

// Restitution overrides the default bounce factors. Omitted fields keep the
// default for their class.
type Restitution struct {
	Pin   *float64 `yaml:"pin" toml:"pin"`
	Fence *float64 `yaml:"fence" toml:"fence"`
	Wall  *float64 `yaml:"wall" toml:"wall"`
}

// Anchor is a boundary vertex: x = fx*W + dx, y = fy*H + dy.
type Anchor struct {
	FX float64 `yaml:"fx" toml:"fx"`
	DX float64 `yaml:"dx" toml:"dx"`
	FY float64 `yaml:"fy" toml:"fy"`
	DY float64 `yaml:"dy" toml:"dy"`
}

func (a Anchor) anchor() board.Anchor {
	return board.Anchor{FX: a.FX, DX: a.DX, FY: a.FY, DY: a.DY}
}

// ErrInvalidLayout is returned for files that parse but describe no usable board.
var ErrInvalidLayout = errors.New("invalid layout")

// ParseYAML parses a YAML layout file.
func ParseYAML(data []byte) (board.Layout, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return board.Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return f.Layout()
}

// ParseTOML parses a TOML layout file.
func ParseTOML(data []byte) (board.Layout, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return board.Layout{}, fmt.Errorf("toml unmarshal: %w", err)
	}
	return f.Layout()
}

// Parse routes to the parser for the given extension.
func Parse(data []byte, ext string) (board.Layout, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return board.Layout{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Layout validates the file and converts it.
func (f *File) Layout() (board.Layout, error) {
	if f.Name == "" {
		return board.Layout{}, fmt.Errorf("missing name: %w", ErrInvalidLayout)
	}
	if len(f.Boundary) < 2 {
		return board.Layout{}, fmt.Errorf("%s: boundary needs at least 2 vertices: %w", f.Name, ErrInvalidLayout)
	}
	if len(f.Bottom) != 0 && len(f.Bottom) != 2 {
		return board.Layout{}, fmt.Errorf("%s: bottom needs exactly 2 vertices, got %d: %w", f.Name, len(f.Bottom), ErrInvalidLayout)
	}
	if f.Pins.Spacing < 0 || f.Pins.Radius < 0 || f.Fences.Spacing < 0 || f.Fences.Width < 0 {
		return board.Layout{}, fmt.Errorf("%s: negative pin or fence size: %w", f.Name, ErrInvalidLayout)
	}
	if f.Pins.Spacing > 0 && f.Pins.Spacing < 2*f.Pins.Radius {
		return board.Layout{}, fmt.Errorf("%s: pin spacing %v is less than the pin diameter: %w", f.Name, f.Pins.Spacing, ErrInvalidLayout)
	}
	if f.Fences.Spacing > 0 && f.Fences.Spacing <= f.Fences.Width {
		return board.Layout{}, fmt.Errorf("%s: fence spacing %v does not leave a gap: %w", f.Name, f.Fences.Spacing, ErrInvalidLayout)
	}

	rest := board.DefaultRestitution()
	if r := f.Restitution; r != nil {
		for _, v := range []struct {
			name string
			src  *float64
			dst  *float64
		}{
			{"pin", r.Pin, &rest.Pin},
			{"fence", r.Fence, &rest.Fence},
			{"wall", r.Wall, &rest.Wall},
		} {
			if v.src == nil {
				continue
			}
			if !(*v.src >= 0 && *v.src <= 1) {
				return board.Layout{}, fmt.Errorf("%s: %s restitution %v outside [0,1]: %w", f.Name, v.name, *v.src, ErrInvalidLayout)
			}
			*v.dst = *v.src
		}
	}

	anchors := make([]board.Anchor, len(f.Boundary))
	for i, a := range f.Boundary {
		anchors[i] = a.anchor()
	}
	var bottom [2]board.Anchor
	if len(f.Bottom) == 2 {
		bottom = [2]board.Anchor{f.Bottom[0].anchor(), f.Bottom[1].anchor()}
	}

	return board.Layout{
		Name: f.Name,
		Pins: board.PinGrid{
			OriginX:     f.Pins.Origin.X,
			OriginY:     f.Pins.Origin.Y,
			Spacing:     f.Pins.Spacing,
			RightMargin: f.Pins.RightMargin,
			TopMargin:   f.Pins.TopMargin,
			Radius:      f.Pins.Radius,
			Stagger:     f.Pins.Stagger,
		},
		Fences: board.FenceRow{
			Spacing:     f.Fences.Spacing,
			RightMargin: f.Fences.RightMargin,
			Width:       f.Fences.Width,
			Height:      f.Fences.Height,
		},
		Boundary:    anchors,
		Bottom:      bottom,
		Restitution: rest,
		MinWidth:    f.MinSize.W,
		MinHeight:   f.MinSize.H,
	}, nil
}
