package level

import (
	"bytes"
	"testing"

	"github.com/foundrylabs/arenacore/internal/mathutil"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	g := New(3, 2)
	g.Set(0, 0, BlockWall)
	g.Set(1, 0, BlockPlayerStart)
	g.Set(2, 1, BlockCornerNE)

	buf := g.Encode()
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	buf2 := got.Encode()
	if !bytes.Equal(buf, buf2) {
		t.Fatalf("re-serialization mismatch")
	}
	if len(got.PlayerStarts()) != 1 {
		t.Fatalf("expected 1 player start, got %d", len(got.PlayerStarts()))
	}
}

func TestResolveCircleAgainstFullWall(t *testing.T) {
	g := New(4, 4)
	g.Set(1, 1, BlockWall)

	center := mathutil.Vector2{X: 1*CellSize + CellSize + 2, Y: 1*CellSize + CellSize/2}
	corrected, collided, submerged := g.ResolveCircle(center, 10)
	if submerged {
		t.Fatalf("collider center is outside the wall cell, should not be submerged")
	}
	if !collided {
		t.Fatalf("expected a collision")
	}
	if corrected == center {
		t.Fatalf("expected position to be corrected")
	}
}

func TestResolveCircleSubmerged(t *testing.T) {
	g := New(4, 4)
	g.Set(1, 1, BlockWall)
	center := mathutil.Vector2{X: 1*CellSize + CellSize/2, Y: 1*CellSize + CellSize/2}
	_, _, submerged := g.ResolveCircle(center, 10)
	if !submerged {
		t.Fatalf("expected submerged collider at wall cell center")
	}
}

func TestWallRayCastHitsAdjacentWall(t *testing.T) {
	g := New(4, 4)
	g.Set(2, 0, BlockWall)
	start := mathutil.Vector2{X: 0.5 * CellSize, Y: 0.5 * CellSize}
	dir := mathutil.Vector2{X: 1, Y: 0}
	hitLen, hit := g.WallRayCast(start, dir, 10*CellSize)
	if !hit {
		t.Fatalf("expected a hit")
	}
	wantMin := CellSize * 1.0
	if hitLen < wantMin-1 {
		t.Fatalf("hit distance %v too short, want >= %v", hitLen, wantMin)
	}
}

func TestWallRayCastNoHitWithinLength(t *testing.T) {
	g := New(4, 4)
	start := mathutil.Vector2{X: 0.5 * CellSize, Y: 0.5 * CellSize}
	dir := mathutil.Vector2{X: 1, Y: 0}
	_, hit := g.WallRayCast(start, dir, CellSize*0.1)
	if hit {
		t.Fatalf("expected no hit within short length in an empty grid")
	}
}
