// Package board builds the static geometry of a peg board: pins, fence posts,
// the boundary polyline and the bottom exit line. Boards are immutable once built
// and are a pure function of their dimensions and layout.
package board

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pachinko/internal/physics"
)

var (
	// ErrInvalidBoardDimensions is returned when a board is too small or has
	// non-positive dimensions.
	ErrInvalidBoardDimensions = errors.New("invalid board dimensions")

	// ErrTooManyObstacles is returned when a layout would place more than
	// MaxObstacles pins and fences.
	ErrTooManyObstacles = errors.New("too many obstacles")

	// ErrInvalidBottom is returned when the exit line has zero length.
	ErrInvalidBottom = errors.New("invalid bottom line")
)

// MaxObstacles bounds the static obstacles on one board. Collision tests are
// linear in it, so it keeps a tick well inside the frame budget.
const MaxObstacles = 4096

// Kind classifies a static obstacle.
type Kind int

const (
	KindPin Kind = iota
	KindFence
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPin:
		return "pin"
	case KindFence:
		return "fence"
	default:
		return "unknown"
	}
}

// Shape is the collision shape of an obstacle.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// Obstacle is an immovable collision body.
type Obstacle struct {
	ID          int
	Kind        Kind
	Shape       Shape
	Center      physics.Vec2
	Radius      float64 // ShapeCircle
	Width       float64 // ShapeRect
	Height      float64 // ShapeRect
	Restitution float64
}

// Bounds returns the obstacle's bounding box.
func (o Obstacle) Bounds() physics.AABB {
	if o.Shape == ShapeCircle {
		return physics.CircleBounds(o.Center, o.Radius)
	}
	return physics.BoxAround(o.Center, o.Width, o.Height)
}

// Collide tests a circle against the obstacle.
func (o Obstacle) Collide(c physics.Vec2, r float64) (physics.Contact, bool) {
	if o.Shape == ShapeCircle {
		return physics.CircleCircle(c, r, o.Center, o.Radius)
	}
	return physics.CircleBox(c, r, o.Bounds())
}

// Board is the static part of the simulation.
type Board struct {
	Width     float64
	Height    float64
	Layout    string
	Obstacles []Obstacle

	// Vertices is the boundary polyline in layout order; Walls holds its segments.
	Vertices []physics.Vec2
	Walls    []physics.Segment

	// Bottom is the exit line, oriented so its left normal points into the board.
	Bottom          physics.Segment
	WallRestitution float64
}

// Build lays out a board of the given size.
func Build(width, height float64, layout Layout) (*Board, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("board: %vx%v: %w", width, height, ErrInvalidBoardDimensions)
	}
	if width < layout.MinWidth || height < layout.MinHeight {
		return nil, fmt.Errorf("board: %vx%v is below minimum %vx%v: %w",
			width, height, layout.MinWidth, layout.MinHeight, ErrInvalidBoardDimensions)
	}

	b := &Board{
		Width:           width,
		Height:          height,
		Layout:          layout.Name,
		WallRestitution: layout.Restitution.Wall,
	}

	if err := b.placePins(layout.Pins, layout.Restitution.Pin); err != nil {
		return nil, err
	}
	if layout.Pins.Spacing > 0 && len(b.Obstacles) == 0 {
		return nil, fmt.Errorf("board: %vx%v has no room for pins: %w", width, height, ErrInvalidBoardDimensions)
	}
	if err := b.placeFences(layout.Fences, layout.Restitution.Fence); err != nil {
		return nil, err
	}
	b.placeBoundary(layout.Boundary)

	bottom := layout.Bottom
	if bottom == ([2]Anchor{}) {
		bottom = DefaultBottom()
	}
	b.Bottom = physics.Seg(b.resolve(bottom[0]), b.resolve(bottom[1]))
	if b.Bottom.Len() == 0 {
		return nil, fmt.Errorf("board: %s: %w", layout.Name, ErrInvalidBottom)
	}

	return b, nil
}

// resolve turns an anchor into a point on this board.
func (b *Board) resolve(a Anchor) physics.Vec2 {
	return physics.V(a.FX*b.Width+a.DX, a.FY*b.Height+a.DY)
}

// add appends an obstacle, failing once the board is full.
func (b *Board) add(o Obstacle) error {
	if len(b.Obstacles) >= MaxObstacles {
		return fmt.Errorf("board: %s: more than %d obstacles: %w", b.Layout, MaxObstacles, ErrTooManyObstacles)
	}
	o.ID = len(b.Obstacles)
	b.Obstacles = append(b.Obstacles, o)
	return nil
}

// placePins adds the staggered pin grid.
func (b *Board) placePins(g PinGrid, restitution float64) error {
	if g.Spacing <= 0 || g.Radius <= 0 {
		return nil
	}

	maxX := b.Width - g.RightMargin
	maxY := b.Height - g.TopMargin
	row := 0
	for y := g.OriginY; y < maxY; y += g.Spacing {
		offset := 0.0
		if g.Stagger && row%2 == 1 {
			offset = g.Spacing / 2
		}
		for x := g.OriginX; x < maxX; x += g.Spacing {
			err := b.add(Obstacle{
				Kind:        KindPin,
				Shape:       ShapeCircle,
				Center:      physics.V(x+offset, y),
				Radius:      g.Radius,
				Restitution: restitution,
			})
			if err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

// placeFences adds the row of posts standing on the floor.
func (b *Board) placeFences(f FenceRow, restitution float64) error {
	if f.Spacing <= 0 || f.Width <= 0 || f.Height <= 0 {
		return nil
	}

	maxX := b.Width - f.RightMargin
	for x := f.Spacing; x < maxX; x += f.Spacing {
		err := b.add(Obstacle{
			Kind:        KindFence,
			Shape:       ShapeRect,
			Center:      physics.V(x, f.Height/2),
			Width:       f.Width,
			Height:      f.Height,
			Restitution: restitution,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// placeBoundary resolves anchors into vertices and wall segments.
func (b *Board) placeBoundary(anchors []Anchor) {
	b.Vertices = make([]physics.Vec2, 0, len(anchors))
	for _, a := range anchors {
		b.Vertices = append(b.Vertices, b.resolve(a))
	}

	for i := 1; i < len(b.Vertices); i++ {
		s := physics.Seg(b.Vertices[i-1], b.Vertices[i])
		if s.Len() == 0 {
			continue
		}
		b.Walls = append(b.Walls, s)
	}
}

// Exited reports whether a point lies on or past the bottom line.
func (b *Board) Exited(p physics.Vec2) bool {
	return b.Bottom.SignedDistance(p) <= 0
}

// Contains reports whether p is inside the board rectangle.
func (b *Board) Contains(p physics.Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Count returns the number of obstacles of the given kind.
func (b *Board) Count(k Kind) int {
	n := 0
	for _, o := range b.Obstacles {
		if o.Kind == k {
			n++
		}
	}
	return n
}
