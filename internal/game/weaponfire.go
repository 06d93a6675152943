package game

import (
	"github.com/foundrylabs/arenacore/internal/behavior"
	"github.com/foundrylabs/arenacore/internal/entity"
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/weapons"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// ProjectileRadius is the collision circle radius for bullets and rockets;
// no corpus or spec value is given, chosen small relative to OrbColliderRadius.
const ProjectileRadius = 6.0

// ProjectileSpeed and RocketSpeed are invented tuning values; the spec
// fixes only Template.Range and Damage, not a muzzle velocity.
const (
	ProjectileSpeed = 1200.0
	RocketSpeed     = 500.0
)

// onWeaponFire is the WeaponBehavior.OnFire callback wired into every
// orb's weapon slots at spawn time. LightingGun is modeled as an
// instantaneous ray-cast beam (spec §9 open question resolution); every
// other slot spawns a physical projectile node (spec §3 Entity "bullet,
// rocket").
func (s *Session) onWeaponFire(p *Player, o *entity.Orb, slot wire.WeaponType) {
	tmpl := weapons.Templates[slot]
	if slot == weapons.SlotLightingGun {
		s.fireBeam(p, o, tmpl)
		return
	}

	kind := wire.EntityBullet
	speed := ProjectileSpeed
	if slot == weapons.SlotRocketLauncher {
		kind = wire.EntityRocket
		speed = RocketSpeed
	}

	orientation := o.Node().WorldTransform().Orientation
	dir := mathutil.FromAngle(orientation)
	velocity := dir.Mul(speed)

	node := scene.NewNode(kind)
	s.graph.Add(node, nil)
	s.graph.Update()
	node.SetLocalPosition(o.Node().WorldPosition().Add(dir.Mul(OrbColliderRadius)))

	proj := s.projectiles.Acquire()
	proj.Reinit(node, p.Identity, kind, velocity, tmpl.Damage, func(*scene.Node) {
		s.RemoveEntity(proj)
		s.projectiles.Release(proj)
	})

	s.graph.AddBehavior(node, behavior.NewColliderBehavior(s.graph, s.sim, ProjectileRadius))
	if tmpl.Range > 0 && speed > 0 {
		s.graph.AddBehavior(node, behavior.NewTimeToLiveBehavior(s.graph, tmpl.Range/speed))
	}
	s.graph.Update()

	s.AddEntity(proj)
}

// fireBeam ray-casts along the orb's facing direction up to the weapon's
// range, applying damage directly to whatever orb it first hits, and
// maintains a LightingBolt entity purely for its visual/collision-length
// broadcast (spec §3 Entity "lighting-bolt"; §4.6 WeaponBehavior
// continuous firing).
func (s *Session) fireBeam(p *Player, o *entity.Orb, tmpl weapons.Template) {
	orientation := o.Node().WorldTransform().Orientation
	dir := mathutil.FromAngle(orientation)
	origin := o.Node().WorldPosition()

	hitNode, hitLength, hit := s.sim.RayCast(origin, dir, tmpl.Range, func(c *physics.Collider) bool {
		return c.Node.Payload != o && c.Node.Payload != nil
	})

	bolt := s.beamFor(p, o)
	length := tmpl.Range
	if hit {
		length = hitLength
		if victim, ok := hitNode.Payload.(*entity.Orb); ok && victim.Owner() != p.Identity {
			victim.LastAttacker = p.Identity
			victim.TakeDamage(tmpl.Damage)
		}
	}
	bolt.SetLength(length)
}

// beamFor returns the player's persistent LightingBolt entity, creating
// and registering one on first fire this respawn.
func (s *Session) beamFor(p *Player, o *entity.Orb) *entity.LightingBolt {
	if b, ok := s.beams[p.Identity]; ok {
		return b
	}
	node := scene.NewNode(wire.EntityLightingBolt)
	s.graph.Add(node, nil)
	s.graph.Update()
	node.SetLocalPosition(o.Node().WorldPosition())
	b := entity.NewLightingBolt(node, p.Identity)
	s.beams[p.Identity] = b
	s.AddEntity(b)
	return b
}

// StopBeam removes the player's active lighting-bolt entity, if any. Call
// this when the player stops firing their primary/secondary LightingGun
// slot (spec §4.6 WeaponBehavior "fires-continuously" ends when the
// trigger releases).
func (s *Session) StopBeam(p *Player) {
	b, ok := s.beams[p.Identity]
	if !ok {
		return
	}
	delete(s.beams, p.Identity)
	s.RemoveEntity(b)
}
