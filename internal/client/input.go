package client

import (
	"github.com/foundrylabs/arenacore/internal/game"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// handlePlayerInput validates the sender's claimed identity, accepts the
// message only if its frame-number strictly advances the client's last
// accepted frame, folds the per-action recency bitmasks down to "pressed
// at some point since the last accepted frame", and forwards the result
// to the game session (spec §4.9).
func (c *Client) handlePlayerInput(m *wire.PlayerInput) {
	if m.Identity != c.player.Identity {
		c.kick(wire.LeaveMisbehaved)
		return
	}
	if c.hasInputFrame && m.FrameNumber <= c.lastInputFrame {
		return
	}

	var gap uint32 = 1
	if c.hasInputFrame {
		gap = m.FrameNumber - c.lastInputFrame
	}
	c.lastInputFrame = m.FrameNumber
	c.hasInputFrame = true

	mask := game.InputMask{
		Up:            foldRecencyMask(m.Up, gap),
		Down:          foldRecencyMask(m.Down, gap),
		Left:          foldRecencyMask(m.Left, gap),
		Right:         foldRecencyMask(m.Right, gap),
		FirePrimary:   foldRecencyMask(m.FirePrimary, gap),
		FireSecondary: foldRecencyMask(m.FireSecondary, gap),
	}
	c.session.HandlePlayerInput(c.player, m, mask)
}

// foldRecencyMask keeps only the bits covering the frames since the last
// accepted input (bit 0 = the frame just reported, bit i = i frames
// earlier), discarding bits referencing frames already folded into a
// previous call. A gap of 8 or more means every bit in the 8-frame window
// is new, so the raw byte passes through unchanged.
func foldRecencyMask(raw uint8, gap uint32) uint8 {
	if gap == 0 {
		return 0
	}
	if gap >= 8 {
		return raw
	}
	window := uint8(1<<uint(gap)) - 1
	return raw & window
}
