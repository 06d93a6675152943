package behavior

import (
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// invisibleChecker is implemented by orb payloads so AiBehavior can skip
// invisible targets.
type invisibleChecker interface {
	IsInvisible() bool
}

// AiBehavior drives a bot orb by embedding a PlayerInputBehavior and
// synthesizing input toward or away from the nearest visible opponent
// (spec §4.6 AiBehavior).
type AiBehavior struct {
	*PlayerInputBehavior
	node  *scene.Node
	graph *scene.Graph
}

// NewAiBehavior constructs an AI behavior that scans graph for targets.
func NewAiBehavior(graph *scene.Graph) *AiBehavior {
	return &AiBehavior{PlayerInputBehavior: NewPlayerInputBehavior(), graph: graph}
}

func (a *AiBehavior) OnAttached(n *scene.Node) {
	a.node = n
	a.PlayerInputBehavior.OnAttached(n)
}

// closeRangeThresholdSq is the squared distance above which the bot moves
// away from its target; at or below it the bot moves toward the target
// (spec §4.6 "40000").
const closeRangeThresholdSq = 40000.0

func (a *AiBehavior) Execute(dt float64) {
	target := a.findNearestVisibleOrb()
	if target != nil {
		from := a.node.WorldPosition()
		to := target.WorldPosition()
		delta := to.Sub(from)
		distSq := delta.LengthSq()
		dir := mathutil.Vector2{X: 1}
		if distSq > 0 {
			dir = delta.Normalize()
		}
		moveDir := dir
		if distSq > closeRangeThresholdSq {
			moveDir = dir.Neg()
		}
		a.HandleInput(dir, moveDir.Y < 0, moveDir.Y > 0, moveDir.X < 0, moveDir.X > 0, true, false, a.Secondary, true)
	}
	a.PlayerInputBehavior.Execute(dt)
}

func (a *AiBehavior) findNearestVisibleOrb() *scene.Node {
	var nearest *scene.Node
	bestDistSq := -1.0
	self := a.node.WorldPosition()
	a.graph.PreOrderFiltered(wire.EntityOrb, func(n *scene.Node) {
		if n == a.node {
			return
		}
		if ic, ok := n.Payload.(invisibleChecker); ok && ic.IsInvisible() {
			return
		}
		d := n.WorldPosition().Sub(self).LengthSq()
		if bestDistSq < 0 || d < bestDistSq {
			bestDistSq = d
			nearest = n
		}
	})
	return nearest
}
