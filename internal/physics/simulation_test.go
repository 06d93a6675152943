package physics

import (
	"testing"

	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

type collisionRecorder struct {
	hits []Collidable
}

func (c *collisionRecorder) HandleCollision(other Collidable) {
	c.hits = append(c.hits, other)
}

func TestPairwiseCollisionOverlapTriggersBoth(t *testing.T) {
	g := scene.NewGraph()
	sim := New()

	n1 := scene.NewNode(wire.EntityOrb)
	r1 := &collisionRecorder{}
	n1.Payload = r1
	g.Add(n1, nil)
	g.Update()
	n1.SetLocalPosition(mathutil.Vector2{X: 0, Y: 0})
	sim.Register(n1, 10, nil)

	n2 := scene.NewNode(wire.EntityOrb)
	r2 := &collisionRecorder{}
	n2.Payload = r2
	g.Add(n2, nil)
	g.Update()
	n2.SetLocalPosition(mathutil.Vector2{X: 15, Y: 0}) // overlap: 10+10=20 > 15
	sim.Register(n2, 10, nil)

	sim.Update(0, g, nil)

	if len(r1.hits) != 1 || len(r2.hits) != 1 {
		t.Fatalf("expected both colliders to register a hit, got r1=%d r2=%d", len(r1.hits), len(r2.hits))
	}
}

func TestTouchingExactlyDoesNotCollide(t *testing.T) {
	g := scene.NewGraph()
	sim := New()

	n1 := scene.NewNode(wire.EntityOrb)
	r1 := &collisionRecorder{}
	n1.Payload = r1
	g.Add(n1, nil)
	g.Update()
	sim.Register(n1, 10, nil)

	n2 := scene.NewNode(wire.EntityOrb)
	r2 := &collisionRecorder{}
	n2.Payload = r2
	g.Add(n2, nil)
	g.Update()
	n2.SetLocalPosition(mathutil.Vector2{X: 20, Y: 0}) // exactly touching: 10+10=20
	sim.Register(n2, 10, nil)

	sim.Update(0, g, nil)

	if len(r1.hits) != 0 || len(r2.hits) != 0 {
		t.Fatalf("expected no collision for exactly-touching circles")
	}
}

func TestRayCastPicksNearestHit(t *testing.T) {
	g := scene.NewGraph()
	sim := New()

	near := scene.NewNode(wire.EntityOrb)
	g.Add(near, nil)
	g.Update()
	near.SetLocalPosition(mathutil.Vector2{X: 50, Y: 0})
	sim.Register(near, 5, nil)

	far := scene.NewNode(wire.EntityOrb)
	g.Add(far, nil)
	g.Update()
	far.SetLocalPosition(mathutil.Vector2{X: 100, Y: 0})
	sim.Register(far, 5, nil)

	hit, _, ok := sim.RayCast(mathutil.Vector2{X: 0, Y: 0}, mathutil.Vector2{X: 1, Y: 0}, 200, nil)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit != near {
		t.Fatalf("expected nearest collider to be hit")
	}
}

func TestRayCastRespectsFilter(t *testing.T) {
	g := scene.NewGraph()
	sim := New()

	n := scene.NewNode(wire.EntityOrb)
	g.Add(n, nil)
	g.Update()
	n.SetLocalPosition(mathutil.Vector2{X: 50, Y: 0})
	sim.Register(n, 5, nil)

	_, _, ok := sim.RayCast(mathutil.Vector2{X: 0, Y: 0}, mathutil.Vector2{X: 1, Y: 0}, 200, func(c *Collider) bool {
		return c.Node != n
	})
	if ok {
		t.Fatalf("expected filter to exclude the only collider")
	}
}

func TestEntitiesInAreaReusesScratch(t *testing.T) {
	g := scene.NewGraph()
	sim := New()
	n := scene.NewNode(wire.EntityOrb)
	g.Add(n, nil)
	g.Update()
	sim.Register(n, 5, nil)

	got1 := sim.EntitiesInArea(mathutil.Vector2{}, 10)
	if len(got1) != 1 {
		t.Fatalf("expected 1 collider in area, got %d", len(got1))
	}
	got2 := sim.EntitiesInArea(mathutil.Vector2{X: 1000, Y: 1000}, 1)
	if len(got2) != 0 {
		t.Fatalf("expected 0 colliders far away, got %d", len(got2))
	}
}
