package level

import (
	"math"

	"github.com/foundrylabs/arenacore/internal/mathutil"
)

// ResolveCircle resolves a circle collider against nearby solid cells. It
// returns the corrected center, whether any collision occurred, and whether
// the collider's center cell is itself fully solid ("submerged") — the
// caller's contract (spec §4.6 ColliderBehavior.handle_wall_collisions) is
// to remove a submerged entity rather than attempt a nudge.
func (g *Grid) ResolveCircle(center mathutil.Vector2, radius float64) (corrected mathutil.Vector2, collided bool, submerged bool) {
	cx := int(math.Floor(center.X / CellSize))
	cy := int(math.Floor(center.Y / CellSize))

	if g.At(cx, cy) == BlockWall {
		return center, true, true
	}

	corrected = center
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := cx+dx, cy+dy
			t := g.At(x, y)
			if !t.IsSolid() {
				continue
			}
			push, ok := g.cellPush(t, x, y, corrected, radius)
			if !ok {
				continue
			}
			corrected = corrected.Add(push)
			collided = true
		}
	}
	return corrected, collided, false
}

func (g *Grid) cellBounds(cx, cy int) (min, max mathutil.Vector2) {
	min = mathutil.Vector2{X: float64(cx) * CellSize, Y: float64(cy) * CellSize}
	max = mathutil.Vector2{X: min.X + CellSize, Y: min.Y + CellSize}
	return
}

func (g *Grid) cellPush(t BlockType, cx, cy int, center mathutil.Vector2, radius float64) (mathutil.Vector2, bool) {
	min, max := g.cellBounds(cx, cy)
	switch t {
	case BlockWall:
		return circleRectPush(center, radius, min, max)
	case BlockHorizontalWall:
		thickness := CellSize / 2
		midY := (min.Y + max.Y) / 2
		return circleRectPush(center, radius,
			mathutil.Vector2{X: min.X, Y: midY - thickness/2},
			mathutil.Vector2{X: max.X, Y: midY + thickness/2})
	case BlockVerticalWall:
		thickness := CellSize / 2
		midX := (min.X + max.X) / 2
		return circleRectPush(center, radius,
			mathutil.Vector2{X: midX - thickness/2, Y: min.Y},
			mathutil.Vector2{X: midX + thickness/2, Y: max.Y})
	case BlockCornerNE, BlockCornerNW, BlockCornerSE, BlockCornerSW:
		anchor := cornerAnchor(t, min, max)
		return solidWedgePush(center, radius, anchor)
	case BlockInverseCornerNE, BlockInverseCornerNW, BlockInverseCornerSE, BlockInverseCornerSW:
		anchor := cornerAnchor(inverseToCorner(t), min, max)
		return hollowWedgePush(center, radius, anchor)
	default:
		return mathutil.Vector2{}, false
	}
}

func inverseToCorner(t BlockType) BlockType {
	return t - (BlockInverseCornerNE - BlockCornerNE)
}

func cornerAnchor(t BlockType, min, max mathutil.Vector2) mathutil.Vector2 {
	switch t {
	case BlockCornerNE:
		return mathutil.Vector2{X: max.X, Y: min.Y}
	case BlockCornerNW:
		return mathutil.Vector2{X: min.X, Y: min.Y}
	case BlockCornerSE:
		return mathutil.Vector2{X: max.X, Y: max.Y}
	default: // BlockCornerSW
		return mathutil.Vector2{X: min.X, Y: max.Y}
	}
}

// circleRectPush returns the minimal-translation push that moves center
// fully outside the axis-aligned rectangle [min,max], or ok=false if the
// circle doesn't touch it.
func circleRectPush(center mathutil.Vector2, radius float64, min, max mathutil.Vector2) (mathutil.Vector2, bool) {
	closest := mathutil.Vector2{
		X: clampf(center.X, min.X, max.X),
		Y: clampf(center.Y, min.Y, max.Y),
	}
	delta := center.Sub(closest)
	distSq := delta.LengthSq()
	if distSq >= radius*radius {
		return mathutil.Vector2{}, false
	}
	if distSq == 0 {
		// Center is inside the rect; push out along the axis of least
		// penetration.
		left, right := center.X-min.X, max.X-center.X
		top, bottom := center.Y-min.Y, max.Y-center.Y
		m := math.Min(math.Min(left, right), math.Min(top, bottom))
		switch m {
		case left:
			return mathutil.Vector2{X: -(left + radius)}, true
		case right:
			return mathutil.Vector2{X: right + radius}, true
		case top:
			return mathutil.Vector2{Y: -(top + radius)}, true
		default:
			return mathutil.Vector2{Y: bottom + radius}, true
		}
	}
	dist := math.Sqrt(distSq)
	return delta.Mul((radius - dist) / dist), true
}

// solidWedgePush treats a quarter-disc of radius CellSize at anchor as
// solid (spec §3 Level corner variants): used for the regular corner
// blocks, which round a cell's corner into a solid ramp.
func solidWedgePush(center mathutil.Vector2, radius float64, anchor mathutil.Vector2) (mathutil.Vector2, bool) {
	delta := center.Sub(anchor)
	dist := delta.Length()
	if dist >= CellSize+radius {
		return mathutil.Vector2{}, false
	}
	if dist == 0 {
		return mathutil.Vector2{X: CellSize + radius}, true
	}
	pushDist := (CellSize + radius) - dist
	return delta.Mul(pushDist / dist), true
}

// hollowWedgePush treats a quarter-disc of radius CellSize at anchor as
// the sole passable pocket of an otherwise solid cell (the inverse corner
// variants): a collider fully within the pocket passes freely; crossing
// the arc into the solid remainder is pushed back into the pocket.
func hollowWedgePush(center mathutil.Vector2, radius float64, anchor mathutil.Vector2) (mathutil.Vector2, bool) {
	delta := center.Sub(anchor)
	dist := delta.Length()
	if dist+radius <= CellSize {
		return mathutil.Vector2{}, false
	}
	if dist >= CellSize {
		// Already past the arc into the solid bulk; handled by the
		// neighboring full-wall cell's own AABB push, not here.
		return mathutil.Vector2{}, false
	}
	overlap := (dist + radius) - CellSize
	if dist == 0 {
		return mathutil.Vector2{X: -overlap}, true
	}
	return delta.Mul(-overlap / dist), true
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
