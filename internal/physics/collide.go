package physics

import "math"

// Contact describes an overlap between a moving circle and another shape.
// Normal points from the other shape towards the circle centre, so pushing the
// circle by Normal*Depth separates the two.
type Contact struct {
	Normal Vec2
	Depth  float64
	Point  Vec2
}

// Segment is a line segment between two points.
type Segment struct {
	A, B Vec2
}

// Seg is shorthand for constructing a Segment.
func Seg(a, b Vec2) Segment {
	return Segment{A: a, B: b}
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return s.B.Sub(s.A).Len()
}

// ClosestPoint returns the point on s nearest to p.
func (s Segment) ClosestPoint(p Vec2) Vec2 {
	d := s.B.Sub(s.A)
	lenSq := d.LenSq()
	if lenSq == 0 {
		return s.A
	}
	t := p.Sub(s.A).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))
	return s.A.Add(d.Scale(t))
}

// Normal returns the unit left normal of the direction A->B.
func (s Segment) Normal() Vec2 {
	return s.B.Sub(s.A).Perp().Normalize()
}

// SignedDistance returns the distance from p to the infinite line through s,
// positive on the left of A->B and negative on the right.
func (s Segment) SignedDistance(p Vec2) float64 {
	n := s.Normal()
	if n.IsZero() {
		return p.Dist(s.A)
	}
	return p.Sub(s.A).Dot(n)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec2
}

// BoxAround returns the AABB of a w x h box centred at c.
func BoxAround(c Vec2, w, h float64) AABB {
	hw, hh := w/2, h/2
	return AABB{Min: V(c.X-hw, c.Y-hh), Max: V(c.X+hw, c.Y+hh)}
}

// CircleBounds returns the AABB enclosing a circle.
func CircleBounds(c Vec2, r float64) AABB {
	return AABB{Min: V(c.X-r, c.Y-r), Max: V(c.X+r, c.Y+r)}
}

// Overlaps reports whether a and o intersect.
func (a AABB) Overlaps(o AABB) bool {
	return a.Min.X <= o.Max.X && o.Min.X <= a.Max.X &&
		a.Min.Y <= o.Max.Y && o.Min.Y <= a.Max.Y
}

// Contains reports whether p lies inside a (edges inclusive).
func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// CircleCircle tests a circle at c with radius r against a circle at o with
// radius ro. When the centres coincide the contact normal points up.
func CircleCircle(c Vec2, r float64, o Vec2, ro float64) (Contact, bool) {
	delta := c.Sub(o)
	total := r + ro
	distSq := delta.LenSq()
	if distSq >= total*total {
		return Contact{}, false
	}

	dist := math.Sqrt(distSq)
	normal := V(0, 1)
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	return Contact{
		Normal: normal,
		Depth:  total - dist,
		Point:  o.Add(normal.Scale(ro)),
	}, true
}

// CircleBox tests a circle at c with radius r against an axis-aligned box.
// A centre inside the box is pushed out through the nearest face.
func CircleBox(c Vec2, r float64, box AABB) (Contact, bool) {
	closest := V(
		math.Max(box.Min.X, math.Min(c.X, box.Max.X)),
		math.Max(box.Min.Y, math.Min(c.Y, box.Max.Y)),
	)
	delta := c.Sub(closest)
	distSq := delta.LenSq()
	if distSq >= r*r {
		return Contact{}, false
	}

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return Contact{
			Normal: delta.Scale(1 / dist),
			Depth:  r - dist,
			Point:  closest,
		}, true
	}

	// Centre is inside the box.
	left := c.X - box.Min.X
	right := box.Max.X - c.X
	bottom := c.Y - box.Min.Y
	top := box.Max.Y - c.Y

	normal, face := V(-1, 0), left
	if right < face {
		normal, face = V(1, 0), right
	}
	if bottom < face {
		normal, face = V(0, -1), bottom
	}
	if top < face {
		normal, face = V(0, 1), top
	}
	return Contact{
		Normal: normal,
		Depth:  face + r,
		Point:  c.Sub(normal.Scale(face)),
	}, true
}

// CircleSegment tests a circle at c with radius r against a segment.
// A centre lying exactly on the segment is pushed along the segment's left normal.
func CircleSegment(c Vec2, r float64, s Segment) (Contact, bool) {
	closest := s.ClosestPoint(c)
	delta := c.Sub(closest)
	distSq := delta.LenSq()
	if distSq >= r*r {
		return Contact{}, false
	}

	dist := math.Sqrt(distSq)
	normal := s.Normal()
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	return Contact{
		Normal: normal,
		Depth:  r - dist,
		Point:  closest,
	}, true
}

// Reflect removes the component of v that moves into a surface with the given
// unit normal and replaces it with a bounce scaled by restitution. Velocities
// already leaving the surface are returned unchanged.
func Reflect(v, normal Vec2, restitution float64) Vec2 {
	vn := v.Dot(normal)
	if vn >= 0 {
		return v
	}
	return v.Sub(normal.Scale((1 + restitution) * vn))
}
