package entity

import (
	"github.com/foundrylabs/arenacore/internal/behavior"
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// Orb is the player-controlled entity (spec §3 Orb, GLOSSARY "Orb").
type Orb struct {
	Entity

	Input *behavior.PlayerInputBehavior

	Health float64

	PowerUp          wire.PowerUp
	PowerUpRemaining float64

	// LastAttacker records who most recently damaged this orb, so server
	// logic can attribute a kill when health reaches zero.
	LastAttacker identity.Handle

	orbSeq uint32
}

// NewOrb constructs an orb at node, owned by player, driven by input
// (either a bare PlayerInputBehavior for a human or an embedded one inside
// an AiBehavior for a bot — both resolve to the same *PlayerInputBehavior).
func NewOrb(node *scene.Node, owner identity.Handle, input *behavior.PlayerInputBehavior) *Orb {
	o := &Orb{Entity: newEntity(node, owner, wire.EntityOrb), Input: input, Health: weapons.OrbSoftCapHealth}
	node.Payload = o
	return o
}

// Velocity satisfies physics.Mover, delegating to the attached input
// behavior.
func (o *Orb) Velocity() mathutil.Vector2 { return o.Input.Velocity() }

// IsInvisible reports whether the invisibility power-up is active, used
// by AiBehavior target selection (spec §4.6 AiBehavior).
func (o *Orb) IsInvisible() bool { return o.PowerUp == wire.PowerUpInvisibility }

// HandleWallCollision satisfies behavior.WallCollidable; orbs take no
// special action beyond the positional nudge already applied.
func (o *Orb) HandleWallCollision() {}

// HandleCollision dispatches on the other collider's concrete type
// (spec §9 "dispatch on the tag in handle_collision").
func (o *Orb) HandleCollision(other physics.Collidable) {
	switch v := other.(type) {
	case *Orb:
		// Orbs pass through one another; only projectiles and
		// collectibles interact with an orb.
	case *Projectile:
		v.applyHitTo(o)
	case *Collectible:
		// Handled from the collectible side to avoid double-application.
	}
}

// ApplyPowerUp activates a power-up collected by this orb (spec §3 Orb).
func (o *Orb) ApplyPowerUp(p wire.PowerUp) {
	o.PowerUp = p
	if eff, ok := weapons.PowerUpEffects[p]; ok {
		o.PowerUpRemaining = eff.Duration.Seconds()
	} else {
		o.PowerUpRemaining = 0
	}
}

// TakeDamage applies incoming damage, clamped at 0 (spec §8 "orb health
// never leaves [0,200]").
func (o *Orb) TakeDamage(amount float64) {
	o.Health -= amount
	if o.Health < 0 {
		o.Health = 0
	}
}

// Tick advances power-up expiry and health regen/decay toward the soft
// cap (spec §3 Orb "regen up to 200 with power-up, decays to 100
// otherwise").
func (o *Orb) Tick(dt float64) {
	if o.PowerUpRemaining > 0 {
		o.PowerUpRemaining -= dt
		if o.PowerUpRemaining <= 0 {
			o.PowerUpRemaining = 0
			o.PowerUp = wire.PowerUpNone
		}
	}

	const regenRate = 5.0  // health/sec while the regeneration power-up is active, up to OrbMaxHealth
	const decayRate = 2.0  // health/sec while decaying down to the soft cap
	switch {
	case o.PowerUp == wire.PowerUpRegeneration && o.Health < weapons.OrbMaxHealth:
		o.Health += regenRate * dt
		if o.Health > weapons.OrbMaxHealth {
			o.Health = weapons.OrbMaxHealth
		}
	case o.Health > weapons.OrbSoftCapHealth:
		o.Health -= decayRate * dt
		if o.Health < weapons.OrbSoftCapHealth {
			o.Health = weapons.OrbSoftCapHealth
		}
	}
}

func (o *Orb) IsAlive() bool { return o.Health > 0 }

// BroadcastUpdates emits UpdateTransform and UpdateOrb every tick
// (spec §4.8).
func (o *Orb) BroadcastUpdates(b Broadcaster) {
	b.Enqueue(o.transformUpdate())

	var energies [wire.NumWeaponSlots]float32
	for i, w := range o.Input.Weapons {
		energies[i] = float32(w.Energy)
	}
	o.orbSeq++
	b.Enqueue(&wire.UpdateOrb{
		Identity:      o.Identity(),
		WeaponEnergy:  energies,
		PowerUp:       o.PowerUp,
		RemainingTime: float32(o.PowerUpRemaining),
		Health:        float32(o.Health),
		Primary:       o.Input.Primary,
		Secondary:     o.Input.Secondary,
		SeqNum:        o.orbSeq,
	})
}
