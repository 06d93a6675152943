package scene

import (
	"testing"

	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/wire"
)

func mv(x, y float64) mathutil.Vector2 { return mathutil.Vector2{X: x, Y: y} }

func TestAddAndPreOrder(t *testing.T) {
	g := NewGraph()
	a := NewNode(wire.EntityOrb)
	b := NewNode(wire.EntityBullet)
	g.Add(a, nil)
	g.Add(b, a)

	var seen []*Node
	g.PreOrder(func(n *Node) { seen = append(seen, n) })
	if len(seen) != 2 || seen[0] != a || seen[1] != b {
		t.Fatalf("unexpected pre-order: %v", seen)
	}
}

func TestRemoveDuringTraversalIsDeferred(t *testing.T) {
	g := NewGraph()
	a := NewNode(wire.EntityOrb)
	b := NewNode(wire.EntityBullet)
	g.Add(a, nil)
	g.Add(b, nil)

	g.PreOrder(func(n *Node) {
		if n == a {
			g.Remove(a)
		}
	})

	// Removal marks is-removed immediately, so a traversal started after
	// the call (even before Update drains the queue) must not yield a.
	var seenAfterMark []*Node
	g.PreOrder(func(n *Node) { seenAfterMark = append(seenAfterMark, n) })
	for _, n := range seenAfterMark {
		if n == a {
			t.Fatalf("removed node still yielded by traversal before Update()")
		}
	}

	g.Update()
	if a.Graph != nil {
		t.Fatalf("expected node to be detached from graph after Update()")
	}
}

func TestRemoveRootPanics(t *testing.T) {
	g := NewGraph()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic removing root")
		}
	}()
	g.Remove(g.Root())
}

func TestReparentToDescendantPanics(t *testing.T) {
	g := NewGraph()
	a := NewNode(wire.EntityOrb)
	b := NewNode(wire.EntityBullet)
	g.Add(a, nil)
	g.Add(b, a)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic reparenting to descendant")
		}
	}()
	g.Reparent(a, b)
}

func TestNodeRemovedObserverFiresOnUpdate(t *testing.T) {
	g := NewGraph()
	a := NewNode(wire.EntityOrb)
	g.Add(a, nil)
	g.Update()

	var notified *Node
	g.SetNodeRemovedObserver(func(n *Node) { notified = n })
	g.Remove(a)
	if notified != nil {
		t.Fatalf("observer fired before Update()")
	}
	g.Update()
	if notified != a {
		t.Fatalf("observer did not fire with removed node")
	}
}

func TestAddBehaviorAttachAndDetach(t *testing.T) {
	g := NewGraph()
	a := NewNode(wire.EntityOrb)
	g.Add(a, nil)
	g.Update()

	fb := &fakeBehavior{}
	g.AddBehavior(a, fb)
	if !fb.attached {
		t.Fatalf("expected OnAttached to run immediately outside a traversal")
	}

	g.RemoveBehavior(a, fb)
	if !fb.detached {
		t.Fatalf("expected OnDetached to run")
	}
}

func TestWorldTransformComposesWithParent(t *testing.T) {
	g := NewGraph()
	a := NewNode(wire.EntityOrb)
	g.Add(a, nil)
	a.SetLocalPosition(mv(10, 0))

	b := NewNode(wire.EntityBullet)
	g.Add(b, a)
	b.SetLocalPosition(mv(1, 0))

	got := b.WorldPosition()
	want := mv(11, 0)
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

type fakeBehavior struct {
	attached, detached bool
}

func (f *fakeBehavior) OnAttached(n *Node) { f.attached = true }
func (f *fakeBehavior) OnDetached()        { f.detached = true }
func (f *fakeBehavior) Execute(dt float64) {}
