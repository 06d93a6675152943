package game

import (
	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// InputMask carries the already-folded per-action recency bitmask for one
// accepted PlayerInput message; the client session computes this by
// keeping, in each field's 8-bit mask, only the low bits for the frames
// after the player's last-accepted frame (all 8 for a gap of 8 or more)
// (spec §4.9).
type InputMask struct {
	Up, Down, Left, Right       uint8
	FirePrimary, FireSecondary  uint8
}

// HandlePlayerInput resolves one accepted input message into orb control.
// If the player owns no live orb the message is ignored (spec §4.8
// handle_player_input).
func (s *Session) HandlePlayerInput(p *Player, msg *wire.PlayerInput, mask InputMask) {
	if p.Orb == nil || !p.Orb.IsAlive() {
		return
	}

	up := mask.Up != 0
	down := mask.Down != 0
	left := mask.Left != 0
	right := mask.Right != 0
	firePrimary := mask.FirePrimary != 0
	fireSecondary := mask.FireSecondary != 0

	wasLighting := p.Orb.Input.Primary == weapons.SlotLightingGun
	p.Orb.Input.HandleInput(msg.Target, up, down, left, right, firePrimary, fireSecondary, p.Orb.Input.Secondary, true)
	p.Orb.Input.SetPrimaryWeapon(msg.PrimaryWeapon)

	if wasLighting && !firePrimary {
		s.StopBeam(p)
	}
	if p.Orb.Input.Primary != weapons.SlotLightingGun {
		s.StopBeam(p)
	}
}
