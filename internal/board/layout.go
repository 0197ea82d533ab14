package board

// Layout describes a board independently of its size. Positions that depend on
// the board dimensions are expressed as margins or as Anchors, so the same
// layout scales to any width and height.
type Layout struct {
	Name        string
	Pins        PinGrid
	Fences      FenceRow
	Boundary    []Anchor
	Restitution Restitution

	// Bottom is the exit line, From then To, with the board on its left.
	// The zero value is the floor from (0,0) to (width,0).
	Bottom [2]Anchor

	// Boards smaller than this are rejected.
	MinWidth  float64
	MinHeight float64
}

// PinGrid places circular pins on a staggered grid.
// Columns run from OriginX while x < width-RightMargin, rows from OriginY while
// y < height-TopMargin. Odd rows shift right by half the spacing when Stagger is set.
type PinGrid struct {
	OriginX     float64
	OriginY     float64
	Spacing     float64
	RightMargin float64
	TopMargin   float64
	Radius      float64
	Stagger     bool
}

// FenceRow places one row of vertical posts standing on the floor.
type FenceRow struct {
	Spacing     float64
	RightMargin float64
	Width       float64
	Height      float64
}

// Anchor is a boundary vertex relative to the board size:
// x = FX*width + DX, y = FY*height + DY.
type Anchor struct {
	FX, DX float64
	FY, DY float64
}

// DefaultBottom returns the floor line used when a layout leaves Bottom unset.
func DefaultBottom() [2]Anchor {
	return [2]Anchor{{FX: 0}, {FX: 1}}
}

// Restitution holds the bounce factor for each static obstacle class.
type Restitution struct {
	Pin   float64
	Fence float64
	Wall  float64
}

// Default restitution values. High enough that bounces stay lively.
const (
	DefaultPinRestitution   = 0.9
	DefaultFenceRestitution = 0.8
	DefaultWallRestitution  = 0.85
)

// DefaultRestitution returns the default bounce factors.
func DefaultRestitution() Restitution {
	return Restitution{
		Pin:   DefaultPinRestitution,
		Fence: DefaultFenceRestitution,
		Wall:  DefaultWallRestitution,
	}
}

// ChuteLayout returns the final board revision: staggered pins, a fence row and
// a boundary with a flat top that breaks into an angled chute over the launch lane.
func ChuteLayout() Layout {
	return Layout{
		Name: "chute",
		Pins: PinGrid{
			OriginX:     75,
			OriginY:     200,
			Spacing:     100,
			RightMargin: 140,
			TopMargin:   0,
			Radius:      5,
			Stagger:     true,
		},
		Fences: FenceRow{
			Spacing:     100,
			RightMargin: 100,
			Width:       5,
			Height:      75,
		},
		Boundary: []Anchor{
			{FX: 0, DX: 0, FY: 0, DY: 0},
			{FX: 0, DX: 0, FY: 1, DY: 0},
			{FX: 1, DX: -150, FY: 1, DY: 0},
			{FX: 1, DX: -50, FY: 1, DY: 0},
			{FX: 1, DX: 0, FY: 1, DY: -150},
			{FX: 1, DX: 0, FY: 0, DY: 0},
		},
		Restitution: DefaultRestitution(),
		MinWidth:    200,
		MinHeight:   300,
	}
}

// ClassicLayout returns the earlier board revision, where a single long diagonal
// cuts across the top-right corner.
func ClassicLayout() Layout {
	l := ChuteLayout()
	l.Name = "classic"
	l.Boundary = []Anchor{
		{FX: 0, DX: 0, FY: 0, DY: 0},
		{FX: 0, DX: 0, FY: 1, DY: 0},
		{FX: 1, DX: -200, FY: 1, DY: 0},
		{FX: 1, DX: 0, FY: 1, DY: -200},
		{FX: 1, DX: 0, FY: 0, DY: 0},
	}
	return l
}
