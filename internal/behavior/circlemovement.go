package behavior

import (
	"math"

	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
)

// CircleMovementBehavior orbits its node around a fixed center at a
// constant angular speed (spec §3 lists "CircleMovement" among behavior
// categories with no further contract given in §4.6; this is the most
// direct reading of the name).
type CircleMovementBehavior struct {
	node *scene.Node

	Center       mathutil.Vector2
	Radius       float64
	AngularSpeed float64 // radians/sec

	angle float64
}

// NewCircleMovementBehavior constructs a behavior orbiting center at the
// given radius and angular speed, starting at angle 0.
func NewCircleMovementBehavior(center mathutil.Vector2, radius, angularSpeed float64) *CircleMovementBehavior {
	return &CircleMovementBehavior{Center: center, Radius: radius, AngularSpeed: angularSpeed}
}

func (c *CircleMovementBehavior) OnAttached(n *scene.Node) {
	c.node = n
	c.node.SetLocalPosition(c.positionAt(c.angle))
}

func (c *CircleMovementBehavior) OnDetached() {}

func (c *CircleMovementBehavior) Execute(dt float64) {
	c.angle += c.AngularSpeed * dt
	c.node.SetLocalPosition(c.positionAt(c.angle))
}

func (c *CircleMovementBehavior) positionAt(angle float64) mathutil.Vector2 {
	return mathutil.Vector2{
		X: c.Center.X + c.Radius*math.Cos(angle),
		Y: c.Center.Y + c.Radius*math.Sin(angle),
	}
}
