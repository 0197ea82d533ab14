package physics

// Body is the dynamic state needed to resolve a collision between two movers.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Mass   float64
}

// invMass returns 1/mass, treating non-positive mass as immovable.
func (b *Body) invMass() float64 {
	if b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// ResolveCircles separates two overlapping circular bodies and applies an
// impulse along the contact normal. Returns false if they do not touch.
func ResolveCircles(a, b *Body, restitution float64) bool {
	contact, ok := CircleCircle(a.Pos, a.Radius, b.Pos, b.Radius)
	if !ok {
		return false
	}

	invA, invB := a.invMass(), b.invMass()
	invSum := invA + invB
	if invSum == 0 {
		return true
	}

	// Positional correction, split by inverse mass.
	correction := contact.Normal.Scale(contact.Depth / invSum)
	a.Pos = a.Pos.Add(correction.Scale(invA))
	b.Pos = b.Pos.Sub(correction.Scale(invB))

	// Normal points from b to a.
	rel := a.Vel.Sub(b.Vel)
	vn := rel.Dot(contact.Normal)
	if vn >= 0 {
		return true
	}

	j := -(1 + restitution) * vn / invSum
	impulse := contact.Normal.Scale(j)
	a.Vel = a.Vel.Add(impulse.Scale(invA))
	b.Vel = b.Vel.Sub(impulse.Scale(invB))
	return true
}
