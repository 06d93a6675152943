package scene

// Behavior is per-tick logic attached to a node (spec §4.6). Concrete
// implementations live in package behavior; this interface breaks the
// import cycle that would otherwise exist between scene and behavior.
type Behavior interface {
	OnAttached(n *Node)
	OnDetached()
	Execute(dt float64)
}

// behaviorEntry is the intrusive doubly-linked list element wrapping a
// Behavior (spec §3 SceneNode: "head of an intrusive doubly-linked behavior
// list"). Go's GC makes true intrusive back-pointers unnecessary, but the
// wrapper preserves the teacher's linked-list shape for attach/detach order.
type behaviorEntry struct {
	b          Behavior
	node       *Node
	next, prev *behaviorEntry
}
