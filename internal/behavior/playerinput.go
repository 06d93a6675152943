package behavior

import (
	"math"

	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// PlayerInputAcceleration is the magnitude applied per pressed direction
// axis before drag (no corpus-specified value). With the 0.85 per-tick
// drag, speed settles at 0.85*a*dt/0.15, about 170 at a 30 Hz tick, well
// below the 4000 speed cap.
const PlayerInputAcceleration = 900.0

// OrientationThresholdSq is the squared target-vector length above which
// orientation tracks the input target (spec §4.6 "exceeds 10").
const OrientationThresholdSq = 10.0

// PlayerSpeedCap bounds velocity magnitude (spec §4.6).
const PlayerSpeedCap = 4000.0

// PlayerDragPerTick is the per-tick velocity multiplier (spec §4.6).
const PlayerDragPerTick = 0.85

// Mover is implemented so physics can integrate this node's position.
type Mover interface {
	Velocity() mathutil.Vector2
}

// PlayerInputBehavior translates accepted input into orb velocity,
// orientation, and weapon triggers (spec §4.6).
type PlayerInputBehavior struct {
	node *scene.Node

	Weapons   [wire.NumWeaponSlots]*WeaponBehavior
	Primary   wire.WeaponType
	Secondary wire.WeaponType

	target      mathutil.Vector2
	hasTarget   bool
	accel       mathutil.Vector2
	velocity    mathutil.Vector2
	orientation float64
}

// NewPlayerInputBehavior constructs the 8 weapon sub-behaviors. The
// secondary slot is fixed to the blaster: unlike the primary, no wire
// message lets a client select it, so every orb carries it as a
// permanently-available backup weapon (spec §3 Orb "primary and secondary
// weapon type").
func NewPlayerInputBehavior() *PlayerInputBehavior {
	p := &PlayerInputBehavior{Secondary: weapons.SlotBlaster}
	for slot := range p.Weapons {
		p.Weapons[slot] = NewWeaponBehavior(wire.WeaponType(slot))
	}
	return p
}

func (p *PlayerInputBehavior) OnAttached(n *scene.Node) {
	p.node = n
	for _, w := range p.Weapons {
		w.OnAttached(n)
	}
}

func (p *PlayerInputBehavior) OnDetached() {
	for _, w := range p.Weapons {
		w.OnDetached()
	}
}

// Velocity satisfies physics.Mover.
func (p *PlayerInputBehavior) Velocity() mathutil.Vector2 { return p.velocity }

// Orientation returns the orb's current facing.
func (p *PlayerInputBehavior) Orientation() float64 { return p.orientation }

func (p *PlayerInputBehavior) Execute(dt float64) {
	p.velocity = p.velocity.Add(p.accel.Mul(dt)).Mul(PlayerDragPerTick)
	if p.velocity.LengthSq() > PlayerSpeedCap*PlayerSpeedCap {
		p.velocity = p.velocity.Normalize().Mul(PlayerSpeedCap)
	}
	if p.hasTarget && p.target.LengthSq() > OrientationThresholdSq {
		p.orientation = math.Atan2(p.target.Y, p.target.X)
	}
	if p.node != nil {
		p.node.SetLocalOrientation(p.orientation)
	}
	for _, w := range p.Weapons {
		w.Execute(dt)
	}
}

// HandleInput sets acceleration direction and orientation target from the
// folded input state, and forwards fire state to the primary (and
// secondary, if given) weapon (spec §4.6 "handle_input").
func (p *PlayerInputBehavior) HandleInput(target mathutil.Vector2, up, down, left, right, firePrimary, fireSecondary bool, secondary wire.WeaponType, hasSecondary bool) {
	p.target = target
	p.hasTarget = true

	dir := mathutil.Vector2{}
	if up {
		dir.Y -= 1
	}
	if down {
		dir.Y += 1
	}
	if left {
		dir.X -= 1
	}
	if right {
		dir.X += 1
	}
	if dir.LengthSq() > 0 {
		dir = dir.Normalize()
	}
	p.accel = dir.Mul(PlayerInputAcceleration)

	p.Weapons[p.Primary].SetFiring(firePrimary)
	if hasSecondary {
		p.Weapons[secondary].SetFiring(fireSecondary)
	}
}

// SetPrimaryWeapon switches the active primary weapon slot if it has
// energy remaining (spec §4.8 handle_player_input).
func (p *PlayerInputBehavior) SetPrimaryWeapon(slot wire.WeaponType) {
	if p.Weapons[slot].Energy > 0 {
		p.Primary = slot
	}
}

// ResetEnergyForRespawn restores every weapon slot to full energy, used
// when a fresh orb is created (spec §3 Orb initial weapon-energy state is
// implied full on spawn).
func (p *PlayerInputBehavior) ResetEnergyForRespawn() {
	for slot := range p.Weapons {
		p.Weapons[slot].Energy = weapons.Templates[slot].MaxEnergy
	}
}
