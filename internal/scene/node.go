package scene

import (
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// Node is a scene-graph node (spec §3 SceneNode). Entities are built on top
// of Node by attaching a Payload and a Type tag; the graph itself never
// inspects Payload.
type Node struct {
	Graph *Graph

	Parent                          *Node
	FirstChild, NextSibling, PrevSibling *Node

	behaviorsHead, behaviorsTail *behaviorEntry

	LocalPosition    mathutil.Vector2
	LocalOrientation float64

	localTransform mathutil.Transform2D
	worldTransform mathutil.Transform2D

	removed bool

	// Type is the entity type tag used by filtered traversals and
	// handle_collision/broadcast_updates dispatch (spec §9). Zero value
	// means "not an entity" (e.g. the root).
	Type wire.EntityType

	// Payload carries entity-specific state; set by the owner layer.
	Payload any
}

// NewNode allocates a detached node with the given type tag. It must be
// added to a graph via Graph.Add before use.
func NewNode(t wire.EntityType) *Node {
	n := &Node{Type: t}
	n.recomputeLocalTransform()
	return n
}

func (n *Node) recomputeLocalTransform() {
	n.localTransform = mathutil.Transform2D{Position: n.LocalPosition, Orientation: n.LocalOrientation}
}

// WorldTransform returns the node's cached world transform.
func (n *Node) WorldTransform() mathutil.Transform2D { return n.worldTransform }

// WorldPosition is a convenience accessor for the world-space translation.
func (n *Node) WorldPosition() mathutil.Vector2 { return n.worldTransform.Position }

// IsRemoved reports whether the node (or an ancestor) has been marked
// removed; removed nodes are skipped by traversals (spec invariant I4).
func (n *Node) IsRemoved() bool { return n.removed }

// SetLocalPosition updates local position and refreshes cached transforms
// for this node and its descendants.
func (n *Node) SetLocalPosition(p mathutil.Vector2) {
	n.LocalPosition = p
	n.recomputeLocalTransform()
	n.refreshWorldTransform()
}

// SetLocalOrientation updates local orientation and refreshes cached
// transforms for this node and its descendants.
func (n *Node) SetLocalOrientation(o float64) {
	n.LocalOrientation = o
	n.recomputeLocalTransform()
	n.refreshWorldTransform()
}

func (n *Node) refreshWorldTransform() {
	if n.Parent != nil {
		n.worldTransform = n.Parent.worldTransform.Compose(n.localTransform)
	} else {
		n.worldTransform = n.localTransform
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		c.refreshWorldTransform()
	}
}

// appendBehavior links e at the tail of this node's behavior list. It does
// not call OnAttached; Graph calls it after linking, and handles queuing of
// attach/detach itself.
func (n *Node) appendBehavior(e *behaviorEntry) {
	e.node = n
	e.prev = n.behaviorsTail
	if n.behaviorsTail != nil {
		n.behaviorsTail.next = e
	} else {
		n.behaviorsHead = e
	}
	n.behaviorsTail = e
}

func (n *Node) unlinkBehavior(e *behaviorEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		n.behaviorsHead = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		n.behaviorsTail = e.prev
	}
	e.next, e.prev = nil, nil
}

// Behaviors calls fn for every behavior currently attached to n, in
// attach order.
func (n *Node) Behaviors(fn func(Behavior)) {
	for e := n.behaviorsHead; e != nil; e = e.next {
		fn(e.b)
	}
}
