package entity

import (
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// Projectile models both Bullet and Rocket (spec §3 Entity type tags);
// they differ only in their EntityType tag and damage/speed tuning, which
// callers set at construction.
type Projectile struct {
	Entity

	Velocity2 mathutil.Vector2
	Damage    float64
	spent     bool

	remove func(*scene.Node)
}

// NewProjectile constructs a bullet or rocket owned by owner, moving at
// velocity, dealing damage on hit. kind must be EntityBullet or
// EntityRocket. remove is called to detach the projectile's node once it
// has hit something or expired.
func NewProjectile(node *scene.Node, owner identity.Handle, kind wire.EntityType, velocity mathutil.Vector2, damage float64, remove func(*scene.Node)) *Projectile {
	p := &Projectile{}
	p.Reinit(node, owner, kind, velocity, damage, remove)
	return p
}

// Reinit reconfigures a pooled Projectile for reuse, setting exactly the
// fields NewProjectile sets on a fresh one (spec §4.4 Pool allocator
// "typed object pools for every hot game object... explicitly acquired").
// Callers acquire the instance from a Pool[Projectile] first, then call
// Reinit to give it its per-shot identity.
func (p *Projectile) Reinit(node *scene.Node, owner identity.Handle, kind wire.EntityType, velocity mathutil.Vector2, damage float64, remove func(*scene.Node)) {
	p.Entity = newEntity(node, owner, kind)
	p.Velocity2 = velocity
	p.Damage = damage
	p.spent = false
	p.remove = remove
	node.Payload = p
}

// ClearForPool drops every reference the projectile holds before it goes
// back to its pool, so an idle pooled instance doesn't keep its last scene
// node or remove closure reachable. Used as Pool[Projectile]'s release
// hook.
func (p *Projectile) ClearForPool() {
	p.Entity = Entity{}
	p.Velocity2 = mathutil.Vector2{}
	p.Damage = 0
	p.spent = false
	p.remove = nil
}

// Velocity satisfies physics.Mover.
func (p *Projectile) Velocity() mathutil.Vector2 { return p.Velocity2 }

func (p *Projectile) HandleWallCollision() {
	p.detonate()
}

func (p *Projectile) HandleCollision(other physics.Collidable) {
	if o, ok := other.(*Orb); ok {
		if o.Owner() == p.Owner() {
			return // no friendly fire against the firing player's own orb
		}
		p.applyHitTo(o)
	}
}

func (p *Projectile) applyHitTo(o *Orb) {
	if p.spent {
		return
	}
	if o.Owner() == p.Owner() {
		return
	}
	o.LastAttacker = p.Owner()
	o.TakeDamage(p.Damage)
	p.detonate()
}

func (p *Projectile) detonate() {
	if p.spent {
		return
	}
	p.spent = true
	if p.remove != nil {
		p.remove(p.Node())
	}
}

// BroadcastUpdates emits a position update every tick (spec §4.8).
func (p *Projectile) BroadcastUpdates(b Broadcaster) {
	b.Enqueue(p.transformUpdate())
}
