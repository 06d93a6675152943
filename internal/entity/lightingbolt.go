package entity

import (
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// LightingBolt is the visual/collision representation of a continuously
// firing LightingGun beam (spec §3 Entity type tags, §4.6 WeaponBehavior
// "fires-continuously").
type LightingBolt struct {
	Entity

	Length float64
	boltSeq uint32
}

// NewLightingBolt constructs a bolt anchored at node, owned by owner.
func NewLightingBolt(node *scene.Node, owner identity.Handle) *LightingBolt {
	l := &LightingBolt{Entity: newEntity(node, owner, wire.EntityLightingBolt)}
	node.Payload = l
	return l
}

// SetLength updates the beam's current reach, recomputed each tick from a
// ray cast against the physics simulation by the owning weapon logic.
func (l *LightingBolt) SetLength(length float64) { l.Length = length }

func (l *LightingBolt) HandleWallCollision() {}

// HandleCollision is a no-op: beam damage is applied per-tick by the
// owning WeaponBehavior's deplete logic via a ray cast, not by pairwise
// circle overlap against the beam's own (nominal) collider.
func (l *LightingBolt) HandleCollision(other physics.Collidable) {}

// BroadcastUpdates emits position and beam-length updates every tick
// (spec §4.8).
func (l *LightingBolt) BroadcastUpdates(b Broadcaster) {
	b.Enqueue(l.transformUpdate())
	l.boltSeq++
	b.Enqueue(&wire.UpdateLightingBolt{Identity: l.Identity(), Length: float32(l.Length), SeqNum: l.boltSeq})
}
