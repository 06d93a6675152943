package game

import (
	"github.com/foundrylabs/arenacore/internal/behavior"
	"github.com/foundrylabs/arenacore/internal/entity"
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// CollectibleSpawnCooldown is how long a spawn point waits after its
// collectible is taken before offering a replacement (spec §4.6
// SpawnBehavior "count down and spawn once the timer hits zero"; no
// corpus-specified value, chosen comfortably longer than RespawnDelay so a
// small arena doesn't saturate with pickups).
const CollectibleSpawnCooldown = 20.0

// CollectibleColliderRadius is the collision circle radius for collectible
// pickups (spec §3 Collider; chosen smaller than OrbColliderRadius so a
// pickup doesn't block passage through a narrow corridor cell).
const CollectibleColliderRadius = 16.0

// MaxCollectibleSpawners caps how many of the level's open cells get a
// spawner, so a large arena doesn't end up wall-to-wall with pickups.
const MaxCollectibleSpawners = 12

// collectibleRotation is the fixed cycle of collectible types handed out
// across spawn points (spec §7 Entities "collectibles", spec §3 Collectible
// lists health/armor/regeneration/quad-damage/speed/invisibility/weapon
// with no ordering, so any fixed rotation satisfies it).
var collectibleRotation = []wire.EntityType{
	wire.EntityCollectibleHealth,
	wire.EntityCollectibleWeapon,
	wire.EntityCollectibleArmor,
	wire.EntityCollectibleQuadDamage,
	wire.EntityCollectibleRegeneration,
	wire.EntityCollectibleSpeed,
	wire.EntityCollectibleInvisibility,
}

// SpawnCollectibles wires one SpawnBehavior per chosen open cell, evenly
// spaced across the level's open cells up to MaxCollectibleSpawners, cycling
// collectibleRotation across them (spec §4.6 SpawnBehavior). The level file
// format carries no dedicated spawn-point block, so positions are drawn
// from Grid.OpenCells the same way RespawnPlayer draws from PlayerStarts.
// Host.Start calls this once, right after constructing the session.
func (s *Session) SpawnCollectibles() {
	cells := s.level.OpenCells()
	if len(cells) == 0 {
		return
	}
	count := len(cells)
	if count > MaxCollectibleSpawners {
		count = MaxCollectibleSpawners
	}
	stride := len(cells) / count

	for i := 0; i < count; i++ {
		idx := cells[(i*stride)%len(cells)]
		pos := s.level.IndexPosition(idx)
		kind := collectibleRotation[i%len(collectibleRotation)]
		s.addCollectibleSpawner(kind, pos)
	}
}

// addCollectibleSpawner attaches a SpawnBehavior to a fresh, non-entity
// marker node at pos; the marker is never added to the session as an
// entity, so it is never broadcast, only the collectibles it spawns are.
func (s *Session) addCollectibleSpawner(kind wire.EntityType, pos mathutil.Vector2) {
	node := scene.NewNode(kind)
	s.graph.Add(node, nil)
	node.SetLocalPosition(pos)
	s.graph.AddBehavior(node, behavior.NewSpawnBehavior(kind, pos, CollectibleSpawnCooldown, s.spawnCollectibleAt))
	s.graph.Update()
}

// spawnCollectibleAt satisfies SpawnBehavior.Spawn, fabricating and
// registering the live collectible entity at pos.
func (s *Session) spawnCollectibleAt(kind wire.EntityType, pos mathutil.Vector2) behavior.Alive {
	node := scene.NewNode(kind)
	s.graph.Add(node, nil)
	node.SetLocalPosition(pos)
	s.graph.AddBehavior(node, behavior.NewColliderBehavior(s.graph, s.sim, CollectibleColliderRadius))
	s.graph.Update()

	var c *entity.Collectible
	c = entity.NewCollectible(node, kind, func(*scene.Node) {
		s.RemoveEntity(c)
	})
	if kind == wire.EntityCollectibleWeapon {
		c.WeaponSlot = s.nextWeaponPickupSlot()
	}

	s.AddEntity(c)
	return c
}

// nextWeaponPickupSlot cycles through weapon slots across successive
// weapon-pickup spawns so a server doesn't hand out the same slot forever.
func (s *Session) nextWeaponPickupSlot() wire.WeaponType {
	slot := wire.WeaponType(s.weaponPickupCursor % wire.NumWeaponSlots)
	s.weaponPickupCursor++
	return slot
}
