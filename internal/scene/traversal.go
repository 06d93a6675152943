package scene

import "github.com/foundrylabs/arenacore/internal/wire"

// PreOrder visits node, then its children left-to-right recursively (spec
// §4.5 "Traversal order"). Removed nodes are skipped (I4). Structural
// mutations issued from visit are deferred until the traversal completes.
func (g *Graph) PreOrder(visit func(*Node)) {
	g.traversalDepth++
	defer func() { g.traversalDepth-- }()
	var walk func(*Node)
	walk = func(n *Node) {
		if n.removed {
			return
		}
		visit(n)
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			walk(c)
			c = next
		}
	}
	for c := g.root.FirstChild; c != nil; {
		next := c.NextSibling
		walk(c)
		c = next
	}
}

// PostOrder visits children left-to-right recursively, then node.
func (g *Graph) PostOrder(visit func(*Node)) {
	g.traversalDepth++
	defer func() { g.traversalDepth-- }()
	var walk func(*Node)
	walk = func(n *Node) {
		if n.removed {
			return
		}
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			walk(c)
			c = next
		}
		visit(n)
	}
	for c := g.root.FirstChild; c != nil; {
		next := c.NextSibling
		walk(c)
		c = next
	}
}

// PreOrderFiltered visits only nodes whose Type matches t, iterating the
// full tree (spec §4.5 "Filtered traversals iterate the full tree and
// yield only nodes whose type matches").
func (g *Graph) PreOrderFiltered(t wire.EntityType, visit func(*Node)) {
	g.PreOrder(func(n *Node) {
		if n.Type == t {
			visit(n)
		}
	})
}

// PostOrderFiltered is the post-order counterpart of PreOrderFiltered.
func (g *Graph) PostOrderFiltered(t wire.EntityType, visit func(*Node)) {
	g.PostOrder(func(n *Node) {
		if n.Type == t {
			visit(n)
		}
	})
}
