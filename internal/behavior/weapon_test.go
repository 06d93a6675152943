package behavior

import (
	"testing"

	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

func TestWeaponSingleShotFiresOnFreshTriggerOnly(t *testing.T) {
	w := NewWeaponBehavior(0) // Blaster: cooldown 0.25, deplete 5, max 100
	fired := 0
	w.OnFire = func(slot wire.WeaponType) { fired++ }

	w.SetFiring(true)
	w.Execute(0.01) // fresh trigger, cooldown starts at 0 -> fires
	if fired != 1 {
		t.Fatalf("expected 1 shot on fresh trigger, got %d", fired)
	}

	// Still firing, but cooldown not yet elapsed and not a fresh trigger.
	w.Execute(0.01)
	if fired != 1 {
		t.Fatalf("expected no additional shot before cooldown, got %d", fired)
	}
}

func TestWeaponEnergyClampedToRange(t *testing.T) {
	w := NewWeaponBehavior(0)
	w.Energy = 2 // less than one shot's deplete-speed of 5
	w.SetFiring(true)
	w.Execute(0.01)
	if w.Energy < 0 {
		t.Fatalf("energy went negative: %v", w.Energy)
	}
	if w.Energy > weapons.Templates[0].MaxEnergy {
		t.Fatalf("energy exceeded max: %v", w.Energy)
	}
}

func TestWeaponContinuousDrainsWhileFiring(t *testing.T) {
	w := NewWeaponBehavior(4) // LightingGun: continuous, deplete 12
	start := w.Energy
	w.SetFiring(true)
	w.Execute(1.0) // 1 second of continuous fire
	if w.Energy >= start {
		t.Fatalf("expected energy to drop while firing continuously, start=%v got=%v", start, w.Energy)
	}
}

func TestWeaponDoesNotFireWithoutEnergy(t *testing.T) {
	w := NewWeaponBehavior(0)
	w.Energy = 0
	fired := 0
	w.OnFire = func(wire.WeaponType) { fired++ }
	w.SetFiring(true)
	w.Execute(0.01)
	if fired != 0 {
		t.Fatalf("expected no shot with zero energy")
	}
}
