package entity

import (
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// collectibleEffect maps each power-up collectible's EntityType to the
// power-up it applies. Health and weapon pickups are not in the map; a
// weapon pickup's slot is Collectible.WeaponSlot.
var collectibleEffect = map[wire.EntityType]wire.PowerUp{
	wire.EntityCollectibleArmor:         wire.PowerUpArmor,
	wire.EntityCollectibleRegeneration:  wire.PowerUpRegeneration,
	wire.EntityCollectibleQuadDamage:    wire.PowerUpQuadDamage,
	wire.EntityCollectibleSpeed:         wire.PowerUpSpeed,
	wire.EntityCollectibleInvisibility:  wire.PowerUpInvisibility,
}

// Collectible is a static pickup: health, a power-up, or a weapon refill
// (spec §3 Entity type tags, GLOSSARY "Collectible").
type Collectible struct {
	Entity

	WeaponSlot wire.WeaponType
	alive      bool

	remove func(*scene.Node)
}

// NewCollectible constructs a collectible of kind at node. kind must
// satisfy EntityType.IsCollectible.
func NewCollectible(node *scene.Node, kind wire.EntityType, remove func(*scene.Node)) *Collectible {
	if !kind.IsCollectible() {
		panic("entity: NewCollectible requires a collectible EntityType")
	}
	c := &Collectible{Entity: newEntity(node, identity.ServerPlayerIdentity, kind), alive: true, remove: remove}
	node.Payload = c
	return c
}

// IsAlive satisfies behavior.Alive, used by SpawnBehavior to decide
// whether to spawn a replacement.
func (c *Collectible) IsAlive() bool { return c.alive }

func (c *Collectible) HandleWallCollision() {}

func (c *Collectible) HandleCollision(other physics.Collidable) {
	o, ok := other.(*Orb)
	if !ok || !c.alive {
		return
	}
	switch c.Type() {
	case wire.EntityCollectibleHealth:
		o.Health += weapons.OrbSoftCapHealth / 2
		if o.Health > weapons.OrbMaxHealth {
			o.Health = weapons.OrbMaxHealth
		}
	case wire.EntityCollectibleWeapon:
		o.Input.Weapons[c.WeaponSlot].Energy = weapons.Templates[c.WeaponSlot].MaxEnergy
	default:
		if pu, ok := collectibleEffect[c.Type()]; ok {
			o.ApplyPowerUp(pu)
		}
	}
	c.alive = false
	if c.remove != nil {
		c.remove(c.Node())
	}
}

// BroadcastUpdates is a no-op: collectibles have no per-tick state beyond
// their Add/Remove lifecycle messages.
func (c *Collectible) BroadcastUpdates(b Broadcaster) {}
