package physics

import (
	"github.com/foundrylabs/arenacore/internal/level"
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
)

// Simulation holds the live collider list and runs the per-tick physics
// pass (spec §4.7).
type Simulation struct {
	colliders []*Collider
	scratch   []*Collider // reused by EntitiesInArea
}

// New constructs an empty simulation.
func New() *Simulation {
	return &Simulation{}
}

// Register adds a collider for node and returns it. Order of registration
// is preserved and used as the tie-break for ray casts and pairwise
// collisions.
func (s *Simulation) Register(node *scene.Node, radius float64, resolver WallResolver) *Collider {
	c := &Collider{Node: node, Radius: radius, Resolver: resolver, alive: true}
	s.colliders = append(s.colliders, c)
	return c
}

// Unregister removes a collider, preserving the relative order of the rest.
func (s *Simulation) Unregister(c *Collider) {
	c.alive = false
	for i, other := range s.colliders {
		if other == c {
			s.colliders = append(s.colliders[:i], s.colliders[i+1:]...)
			return
		}
	}
}

// Update runs one physics tick: integrate entity positions, resolve wall
// collisions, then pairwise circle collisions in registration order
// (spec §4.7).
func (s *Simulation) Update(dt float64, graph *scene.Graph, lvl *level.Grid) {
	graph.PostOrder(func(n *scene.Node) {
		if m, ok := n.Payload.(Mover); ok {
			n.SetLocalPosition(n.LocalPosition.Add(m.Velocity().Mul(dt)))
		}
	})

	for i, c := range s.colliders {
		if lvl != nil && c.Resolver != nil {
			c.Resolver.HandleWallCollisions(lvl)
		}
		a, aok := c.Node.Payload.(Collidable)
		if !aok {
			continue
		}
		for j := i + 1; j < len(s.colliders); j++ {
			other := s.colliders[j]
			if !circlesOverlap(c.Position(), c.Radius, other.Position(), other.Radius) {
				continue
			}
			b, bok := other.Node.Payload.(Collidable)
			if !bok {
				continue
			}
			a.HandleCollision(b)
			b.HandleCollision(a)
		}
	}
}

func circlesOverlap(p1 mathutil.Vector2, r1 float64, p2 mathutil.Vector2, r2 float64) bool {
	rr := r1 + r2
	return p1.DistanceSq(p2) < rr*rr
}

// EntitiesInArea returns every collider whose circle intersects the query
// circle, using a scratch slice cleared on each call (spec §4.7
// get_entities_in_area).
func (s *Simulation) EntitiesInArea(center mathutil.Vector2, radius float64) []*Collider {
	s.scratch = s.scratch[:0]
	for _, c := range s.colliders {
		if circlesOverlap(center, radius, c.Position(), c.Radius) {
			s.scratch = append(s.scratch, c)
		}
	}
	return s.scratch
}
