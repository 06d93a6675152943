package behavior

import (
	"testing"

	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

func TestPlayerInputDragConvergesBelowSpeedCap(t *testing.T) {
	g := scene.NewGraph()
	n := scene.NewNode(wire.EntityOrb)
	g.Add(n, nil)
	g.Update()

	p := NewPlayerInputBehavior()
	g.AddBehavior(n, p)

	p.HandleInput(mathutil.Vector2{X: 1, Y: 0}, false, false, false, true, false, false, 0, false)
	for i := 0; i < 1000; i++ {
		p.Execute(1.0 / 30.0)
	}
	if p.Velocity().LengthSq() > PlayerSpeedCap*PlayerSpeedCap+1 {
		t.Fatalf("velocity exceeded speed cap: %+v", p.Velocity())
	}
}

func TestPlayerInputSwitchesPrimaryOnlyWithEnergy(t *testing.T) {
	p := NewPlayerInputBehavior()
	p.Weapons[2].Energy = 0
	p.SetPrimaryWeapon(2)
	if p.Primary == 2 {
		t.Fatalf("should not switch to a zero-energy weapon")
	}
	p.Weapons[3].Energy = 10
	p.SetPrimaryWeapon(3)
	if p.Primary != 3 {
		t.Fatalf("expected switch to weapon with energy")
	}
}
