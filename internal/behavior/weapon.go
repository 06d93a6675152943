package behavior

import (
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// WeaponBehavior tracks one weapon slot's firing state and energy
// (spec §4.6 WeaponBehavior). OnFire is called once per shot with the
// slot that fired; the owning entity spawns the appropriate projectile.
type WeaponBehavior struct {
	node     *scene.Node
	Slot     wire.WeaponType
	Template weapons.Template
	Energy   float64

	isFiring, wasFiring bool
	remainingCooldown   float64
	nextDeplete         float64

	OnFire func(slot wire.WeaponType)
}

// NewWeaponBehavior constructs a weapon behavior for slot, starting at
// full energy.
func NewWeaponBehavior(slot wire.WeaponType) *WeaponBehavior {
	tmpl := weapons.Templates[slot]
	return &WeaponBehavior{Slot: slot, Template: tmpl, Energy: tmpl.MaxEnergy}
}

func (w *WeaponBehavior) OnAttached(n *scene.Node) { w.node = n }
func (w *WeaponBehavior) OnDetached()              {}

// SetFiring sets the trigger state consulted on the next Execute. Continuous
// weapons (the lighting gun) don't get start/stop transition callbacks here;
// their beam entity lifecycle is instead driven out-of-band by
// game.Session's beamFor/StopBeam from the rising/falling edge of firing.
func (w *WeaponBehavior) SetFiring(firing bool) { w.isFiring = firing }

func (w *WeaponBehavior) Execute(dt float64) {
	if w.remainingCooldown > 0 {
		w.remainingCooldown -= dt
	}
	if w.Template.FiresContinuously {
		w.executeContinuous(dt)
	} else {
		w.executeSingleShot()
	}
	w.wasFiring = w.isFiring
}

func (w *WeaponBehavior) executeContinuous(dt float64) {
	if w.isFiring {
		w.nextDeplete -= dt
		for w.nextDeplete <= 0 && w.Energy > 0 {
			w.Energy = clamp(w.Energy-1, 0, w.Template.MaxEnergy)
			w.fire()
			w.nextDeplete += 1 / w.Template.DepleteSpeed
		}
	}
}

func (w *WeaponBehavior) executeSingleShot() {
	if w.isFiring && !w.wasFiring && w.remainingCooldown <= 0 && w.Energy > 0 {
		w.Energy = clamp(w.Energy-w.Template.DepleteSpeed, 0, w.Template.MaxEnergy)
		w.fire()
		w.remainingCooldown = w.Template.Cooldown
	}
}

func (w *WeaponBehavior) fire() {
	if w.OnFire != nil {
		w.OnFire(w.Slot)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
