package behavior

import "github.com/foundrylabs/arenacore/internal/scene"

// TimeToLiveBehavior removes its node once the configured lifetime elapses
// (spec §4.6 TimeToLiveBehavior).
type TimeToLiveBehavior struct {
	graph     *scene.Graph
	node      *scene.Node
	remaining float64
}

// NewTimeToLiveBehavior constructs a behavior that removes its node from
// graph after seconds elapse.
func NewTimeToLiveBehavior(graph *scene.Graph, seconds float64) *TimeToLiveBehavior {
	return &TimeToLiveBehavior{graph: graph, remaining: seconds}
}

func (t *TimeToLiveBehavior) OnAttached(n *scene.Node) { t.node = n }
func (t *TimeToLiveBehavior) OnDetached()              {}

func (t *TimeToLiveBehavior) Execute(dt float64) {
	if t.remaining <= 0 {
		return
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.graph.Remove(t.node)
	}
}
