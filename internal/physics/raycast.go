package physics

import (
	"math"

	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
)

// RayCast finds the nearest collider passing filter along a normalized ray
// (spec §4.7 ray_cast). It returns the hit node and hit distance; ok is
// false if nothing was hit within length. Ties (equal t) prefer the
// earlier-registered collider, which registration order plus a
// strict-less comparison guarantees.
func (s *Simulation) RayCast(start, dir mathutil.Vector2, length float64, filter func(*Collider) bool) (hit *scene.Node, hitLength float64, ok bool) {
	bestT := math.Inf(1)
	for _, c := range s.colliders {
		if filter != nil && !filter(c) {
			continue
		}
		t, hitOK := circleRayT(start, dir, length, c.Position(), c.Radius)
		if !hitOK {
			continue
		}
		if t < bestT {
			bestT = t
			hit = c.Node
			ok = true
		}
	}
	if !ok {
		return nil, 0, false
	}
	return hit, bestT * length, true
}

// circleRayT solves the quadratic circle-ray intersection for the smallest
// valid t in [0,1) along P(t) = start + dir*t*length.
func circleRayT(start, dir mathutil.Vector2, length float64, center mathutil.Vector2, radius float64) (float64, bool) {
	oc := start.Sub(center)
	a := length * length
	b := 2 * length * oc.Dot(dir)
	c := oc.LengthSq() - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(disc)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 >= 0 && t1 < 1 {
		return t1, true
	}
	if t2 >= 0 && t2 < 1 {
		return t2, true
	}
	return 0, false
}
