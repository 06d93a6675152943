package behavior

import (
	"github.com/foundrylabs/arenacore/internal/level"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
)

// WallCollidable is the optional hook an entity implements to react to a
// nudge against a level wall (spec §4.6 ColliderBehavior "invokes the
// entity's handle_wall_collision hook").
type WallCollidable interface {
	HandleWallCollision()
}

// ColliderBehavior registers a circle with the physics simulation on
// attach and resolves its wall contact each tick the simulation drives it
// (spec §4.6).
type ColliderBehavior struct {
	node     *scene.Node
	graph    *scene.Graph
	sim      *physics.Simulation
	radius   float64
	collider *physics.Collider
}

// NewColliderBehavior constructs a collider behavior of the given radius,
// to be driven by sim and detached from graph on submersion.
func NewColliderBehavior(graph *scene.Graph, sim *physics.Simulation, radius float64) *ColliderBehavior {
	return &ColliderBehavior{graph: graph, sim: sim, radius: radius}
}

func (c *ColliderBehavior) OnAttached(n *scene.Node) {
	c.node = n
	c.collider = c.sim.Register(n, c.radius, c)
}

func (c *ColliderBehavior) OnDetached() {
	if c.collider != nil {
		c.sim.Unregister(c.collider)
		c.collider = nil
	}
}

// Execute is a no-op; all collider work happens in HandleWallCollisions,
// driven directly by the physics simulation (spec §4.6: "On execute,
// no-op").
func (c *ColliderBehavior) Execute(dt float64) {}

// HandleWallCollisions reads the nearest wall contact from lvl and either
// removes the entity (submerged) or nudges its position by the contact
// offset and invokes the entity's wall-collision hook.
func (c *ColliderBehavior) HandleWallCollisions(lvl *level.Grid) {
	pos := c.node.WorldPosition()
	corrected, collided, submerged := lvl.ResolveCircle(pos, c.radius)
	if !collided {
		return
	}
	if submerged {
		c.graph.Remove(c.node)
		return
	}
	offset := corrected.Sub(pos)
	c.node.SetLocalPosition(c.node.LocalPosition.Add(offset))
	if wc, ok := c.node.Payload.(WallCollidable); ok {
		wc.HandleWallCollision()
	}
}
