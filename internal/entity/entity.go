// Package entity implements the specialized scene nodes carrying gameplay
// state: orbs, bullets, rockets, lighting bolts, and collectibles
// (spec §3 Entity, §9 "one tagged variant per entity kind").
package entity

import (
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// Broadcaster is the subset of server logic entities need to emit
// sequenced update messages (spec §4.8 broadcast_entity_updates).
type Broadcaster interface {
	Enqueue(msg wire.Message)
}

// GameEntity is implemented by every concrete entity kind. Server logic
// dispatches on Type() rather than a class hierarchy (spec §9).
type GameEntity interface {
	Node() *scene.Node
	Identity() identity.Handle
	SetIdentity(identity.Handle)
	Owner() identity.Handle
	Type() wire.EntityType
	OnAdded()
	OnRemoved()
	BroadcastUpdates(b Broadcaster)
}

// Entity is the common state every concrete kind embeds (spec §3 Entity).
type Entity struct {
	node       *scene.Node
	identity   identity.Handle
	owner      identity.Handle
	entityType wire.EntityType

	transformSeq uint32
}

func newEntity(node *scene.Node, owner identity.Handle, t wire.EntityType) Entity {
	node.Type = t
	return Entity{node: node, owner: owner, entityType: t}
}

func (e *Entity) Node() *scene.Node              { return e.node }
func (e *Entity) Identity() identity.Handle      { return e.identity }
func (e *Entity) SetIdentity(h identity.Handle)  { e.identity = h }
func (e *Entity) Owner() identity.Handle         { return e.owner }
func (e *Entity) Type() wire.EntityType          { return e.entityType }
func (e *Entity) OnAdded()                       {}
func (e *Entity) OnRemoved()                     {}

// nextTransformSeq returns the next strictly-increasing sequence number
// for this entity's UpdateTransform broadcasts (spec §8 "sequence numbers
// applied to f form a strictly increasing series").
func (e *Entity) nextTransformSeq() uint32 {
	e.transformSeq++
	return e.transformSeq
}

func (e *Entity) transformUpdate() *wire.UpdateTransform {
	return &wire.UpdateTransform{
		Identity:    e.identity,
		Position:    e.node.WorldPosition(),
		Orientation: e.node.WorldTransform().Orientation,
		SeqNum:      e.nextTransformSeq(),
	}
}
