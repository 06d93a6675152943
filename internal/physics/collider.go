// Package physics implements the broad-phase collision and ray-cast pass
// (spec §4.7).
package physics

import (
	"github.com/foundrylabs/arenacore/internal/level"
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
)

// Mover is implemented by entities that advance position by velocity×dt
// each tick (spec §4.7 step 1).
type Mover interface {
	Velocity() mathutil.Vector2
}

// Collidable is implemented by entities that react to overlapping another
// collider (spec §4.7 step 2, §9 "dispatch on the tag in handle_collision").
type Collidable interface {
	HandleCollision(other Collidable)
}

// WallResolver is implemented by the behavior owning a Collider's wall
// interaction (spec §4.6 ColliderBehavior.handle_wall_collisions).
type WallResolver interface {
	HandleWallCollisions(lvl *level.Grid)
}

// Collider is one registered circle collider (spec §3 Collider). Colliders
// are kept in registration order; that order is the ray-cast and pairwise
// collision tie-break (spec §4.7 "equal t prefers the earlier-registered
// collider").
type Collider struct {
	Node     *scene.Node
	Radius   float64
	Resolver WallResolver
	alive    bool
}

// Position returns the collider's current world-space center.
func (c *Collider) Position() mathutil.Vector2 { return c.Node.WorldPosition() }
