package game

import (
	"math/rand"

	"github.com/foundrylabs/arenacore/internal/behavior"
	"github.com/foundrylabs/arenacore/internal/entity"
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// OrbColliderRadius is the collision circle radius for live orbs and the
// player-start occupancy check (spec §3 Collider "circle of given radius
// around the entity's world position"; no corpus or spec value is given,
// chosen to roughly match one level cell).
const OrbColliderRadius = 24.0

// RespawnPlayer applies the respawn policy: do nothing while the delay is
// still counting down; otherwise try up to weapons.RespawnRetries random
// player-start blocks, skipping any whose area already overlaps a live orb
// (spec §4.8 respawn_player, §8 scenario 6 "Respawn race").
func (s *Session) RespawnPlayer(p *Player) {
	if p.RemainingRespawnDelay > 0 {
		return
	}
	if p.Orb != nil && p.Orb.IsAlive() {
		return
	}
	starts := s.level.PlayerStarts()
	if len(starts) == 0 {
		return
	}
	for attempt := 0; attempt < weapons.RespawnRetries; attempt++ {
		idx := starts[rand.Intn(len(starts))]
		pos := s.level.IndexPosition(idx)
		if s.occupiedByLiveOrb(pos) {
			continue
		}
		s.spawnOrb(p, pos)
		return
	}
}

// handleOrbDeath attributes a kill, broadcasts PlayerKill, removes the
// dead orb, and starts the respawn delay (spec §3 Player "kills, deaths",
// §6 "RespawnDelay = 2 s").
func (s *Session) handleOrbDeath(p *Player) {
	victim := p.Orb
	p.Deaths++
	if killer, ok := s.byPlayer[victim.LastAttacker]; ok {
		killer.Kills++
	}
	s.broadcast(&wire.PlayerKill{Killer: victim.LastAttacker, Victim: p.Identity})
	s.StopBeam(p)
	s.RemoveEntity(victim)
	p.Orb = nil
	p.RemainingRespawnDelay = weapons.RespawnDelay.Seconds()
}

// occupiedByLiveOrb reports whether any registered collider within
// OrbColliderRadius of pos belongs to a live orb.
func (s *Session) occupiedByLiveOrb(pos mathutil.Vector2) bool {
	for _, c := range s.sim.EntitiesInArea(pos, OrbColliderRadius) {
		if o, ok := c.Node.Payload.(*entity.Orb); ok && o.IsAlive() {
			return true
		}
	}
	return false
}

// spawnOrb builds a fresh orb node with its full behavior tree (input,
// weapons, collider) at pos, registers it with the scene graph, and adds
// it as a tracked entity under the player (spec §3 Orb, §4.6 Behavior
// categories attached per orb). A bot's orb additionally carries an
// AiBehavior wrapping the same PlayerInputBehavior, so bots and humans
// drive identical orb control through one interface (spec §1 "Bot AI is
// treated as an input producer plugged into the same player-input
// interface a human uses").
func (s *Session) spawnOrb(p *Player, pos mathutil.Vector2) {
	node := scene.NewNode(wire.EntityOrb)
	s.graph.Add(node, nil)
	s.graph.Update()
	node.SetLocalPosition(pos)

	var input *behavior.PlayerInputBehavior
	if p.Kind == wire.PlayerBot {
		ai := behavior.NewAiBehavior(s.graph)
		s.graph.AddBehavior(node, ai)
		input = ai.PlayerInputBehavior
	} else {
		input = behavior.NewPlayerInputBehavior()
		s.graph.AddBehavior(node, input)
	}
	collider := behavior.NewColliderBehavior(s.graph, s.sim, OrbColliderRadius)
	s.graph.AddBehavior(node, collider)
	s.graph.Update()

	o := entity.NewOrb(node, p.Identity, input)
	p.Orb = o

	for slot := range input.Weapons {
		slot := wire.WeaponType(slot)
		input.Weapons[slot].OnFire = func(firedSlot wire.WeaponType) {
			s.onWeaponFire(p, o, firedSlot)
		}
	}

	s.AddEntity(o)
}
