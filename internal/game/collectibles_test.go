package game

import (
	"testing"

	"github.com/foundrylabs/arenacore/internal/behavior"
	"github.com/foundrylabs/arenacore/internal/entity"
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

func TestSpawnCollectiblesPopulatesOpenCells(t *testing.T) {
	s, _ := newTestSession()
	s.SpawnCollectibles()
	s.graph.ExecuteBehaviors(0)
	s.graph.Update()

	var found []wire.EntityType
	s.graph.PreOrder(func(n *scene.Node) {
		if c, ok := n.Payload.(*entity.Collectible); ok {
			found = append(found, c.Type())
		}
	})
	if len(found) == 0 {
		t.Fatalf("expected at least one collectible spawned, got none")
	}
}

func TestSpawnCollectibleAtAssignsRotatingWeaponSlot(t *testing.T) {
	s, _ := newTestSession()

	first := s.spawnCollectibleAt(wire.EntityCollectibleWeapon, s.level.IndexPosition(0))
	second := s.spawnCollectibleAt(wire.EntityCollectibleWeapon, s.level.IndexPosition(1))

	c1, ok := first.(*entity.Collectible)
	if !ok {
		t.Fatalf("expected *entity.Collectible, got %T", first)
	}
	c2, ok := second.(*entity.Collectible)
	if !ok {
		t.Fatalf("expected *entity.Collectible, got %T", second)
	}
	if c1.WeaponSlot == c2.WeaponSlot {
		t.Fatalf("expected successive weapon pickups to rotate slots, both got %d", c1.WeaponSlot)
	}
}

func TestCollectiblePickupRemovesAndRespawns(t *testing.T) {
	s, ob := newTestSession()
	pos := s.level.IndexPosition(0)
	s.addCollectibleSpawner(wire.EntityCollectibleHealth, pos)
	s.graph.ExecuteBehaviors(0)
	s.graph.Update()

	var c *entity.Collectible
	s.graph.PreOrder(func(n *scene.Node) {
		if got, ok := n.Payload.(*entity.Collectible); ok {
			c = got
		}
	})
	if c == nil {
		t.Fatalf("expected the spawner's first tick to have produced a collectible")
	}

	orbNode := scene.NewNode(wire.EntityOrb)
	s.graph.Add(orbNode, nil)
	s.graph.Update()
	input := behavior.NewPlayerInputBehavior()
	s.graph.AddBehavior(orbNode, input)
	orb := entity.NewOrb(orbNode, identity.Handle{Index: 1}, input)

	before := len(ob.messages)
	c.HandleCollision(orb)
	if len(ob.messages) <= before {
		t.Fatalf("expected pickup removal to broadcast EntityRemove")
	}
	if c.IsAlive() {
		t.Fatalf("expected collectible to be marked dead after pickup")
	}

	s.graph.ExecuteBehaviors(CollectibleSpawnCooldown)
	s.graph.Update()
	s.graph.ExecuteBehaviors(0)
	s.graph.Update()

	var replacement *entity.Collectible
	s.graph.PreOrder(func(n *scene.Node) {
		if got, ok := n.Payload.(*entity.Collectible); ok && got != c {
			replacement = got
		}
	})
	if replacement == nil || !replacement.IsAlive() {
		t.Fatalf("expected the spawner to produce a live replacement once the cooldown elapsed")
	}
}
