package behavior

import (
	"github.com/foundrylabs/arenacore/internal/mathutil"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// Alive is implemented by a spawned collectible's payload so SpawnBehavior
// can tell whether its previous spawn is still around.
type Alive interface {
	IsAlive() bool
}

// SpawnBehavior is a cooldown-driven spawner for a single collectible slot
// (spec §4.6 SpawnBehavior). Spawn is called with the configured type and
// position once the cooldown elapses and no live instance remains.
type SpawnBehavior struct {
	node     *scene.Node
	Type     wire.EntityType
	Position mathutil.Vector2
	Cooldown float64

	remaining float64
	current   Alive

	Spawn func(t wire.EntityType, pos mathutil.Vector2) Alive
}

// NewSpawnBehavior constructs a spawner for a collectible type at a fixed
// position. Spawn must not be nil; it fabricates and adds the entity.
func NewSpawnBehavior(t wire.EntityType, pos mathutil.Vector2, cooldown float64, spawn func(wire.EntityType, mathutil.Vector2) Alive) *SpawnBehavior {
	if !t.IsCollectible() {
		panic("behavior: SpawnBehavior configured with a non-collectible type")
	}
	return &SpawnBehavior{Type: t, Position: pos, Cooldown: cooldown, Spawn: spawn}
}

func (s *SpawnBehavior) OnAttached(n *scene.Node) { s.node = n }
func (s *SpawnBehavior) OnDetached()              {}

func (s *SpawnBehavior) Execute(dt float64) {
	if s.current != nil && s.current.IsAlive() {
		return
	}
	if s.remaining > 0 {
		s.remaining -= dt
		return
	}
	s.current = s.Spawn(s.Type, s.Position)
	s.remaining = s.Cooldown
}
