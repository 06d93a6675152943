package level

import (
	"math"

	"github.com/foundrylabs/arenacore/internal/mathutil"
)

// WallRayCast walks the grid along a normalized direction using a DDA
// (Bresenham-like) traversal and returns the distance to the first solid
// cell boundary, if any within length (spec §4.7 "the level may provide
// wall ray-cast via a Bresenham-like block traversal").
func (g *Grid) WallRayCast(start, dir mathutil.Vector2, length float64) (hitLength float64, hit bool) {
	if dir.LengthSq() == 0 {
		return 0, false
	}

	x, y := start.X/CellSize, start.Y/CellSize
	cx, cy := int(math.Floor(x)), int(math.Floor(y))

	stepX, stepY := 1, 1
	if dir.X < 0 {
		stepX = -1
	}
	if dir.Y < 0 {
		stepY = -1
	}

	var tMaxX, tMaxY, tDeltaX, tDeltaY float64
	if dir.X != 0 {
		tDeltaX = math.Abs(CellSize / dir.X)
		nextBoundary := float64(cx)
		if stepX > 0 {
			nextBoundary++
		}
		tMaxX = (nextBoundary*CellSize - start.X) / dir.X
	} else {
		tDeltaX = math.Inf(1)
		tMaxX = math.Inf(1)
	}
	if dir.Y != 0 {
		tDeltaY = math.Abs(CellSize / dir.Y)
		nextBoundary := float64(cy)
		if stepY > 0 {
			nextBoundary++
		}
		tMaxY = (nextBoundary*CellSize - start.Y) / dir.Y
	} else {
		tDeltaY = math.Inf(1)
		tMaxY = math.Inf(1)
	}

	t := 0.0
	for t <= length {
		if g.At(cx, cy).IsSolid() {
			return t, true
		}
		if tMaxX < tMaxY {
			t = tMaxX
			tMaxX += tDeltaX
			cx += stepX
		} else {
			t = tMaxY
			tMaxY += tDeltaY
			cy += stepY
		}
	}
	return 0, false
}
