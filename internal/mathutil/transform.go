package mathutil

// Transform2D is an affine transform composed of a rotation followed by a
// translation, matching spec §4.5: local = Rotate(-orientation) ∘ Translate(position).
type Transform2D struct {
	Position    Vector2
	Orientation float64 // radians
}

// Identity is the identity transform.
var Identity = Transform2D{}

// Apply transforms a point from local space into the space this transform
// represents: rotate by Orientation, then translate by Position.
func (t Transform2D) Apply(p Vector2) Vector2 {
	return p.Rotated(t.Orientation).Add(t.Position)
}

// ApplyDirection rotates a direction vector without translating it.
func (t Transform2D) ApplyDirection(d Vector2) Vector2 {
	return d.Rotated(t.Orientation)
}

// Compose returns the transform equivalent to applying `local` first, then
// this transform (i.e. world = parent.Compose(local)).
func (t Transform2D) Compose(local Transform2D) Transform2D {
	return Transform2D{
		Position:    t.Apply(local.Position),
		Orientation: t.Orientation + local.Orientation,
	}
}
