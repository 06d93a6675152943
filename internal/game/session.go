// Package game implements server logic: assigning network identities,
// producing add/remove/update broadcasts, resolving player input into orb
// control, respawn policy, chat, and rename (spec §4.8).
package game

import (
	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/entity"
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/level"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/pool"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// MaxPlayers bounds session capacity (spec §6).
const MaxPlayers = 8

// PlayerStatsUpdateFrequency is how often PlayerStats broadcasts go out
// (spec §6 "≈ 1 Hz").
const PlayerStatsUpdateFrequency = 1.0

// Outbox delivers a message to every currently-synced client (spec §4.8
// broadcast_entity_updates / broadcast_player_stats). The host supplies the
// concrete implementation backed by the client collection.
type Outbox interface {
	Broadcast(msg wire.Message)
}

// ClientConn is the subset of a client's connection server logic needs to
// send a targeted (non-broadcast) message, e.g. the join snapshot.
type ClientConn interface {
	Enqueue(msg wire.Message)
}

// Session owns the scene graph, physics simulation, level, identity
// allocator, and player roster for one running game (spec §4.8, §5
// "the server thread owns... the server logic").
type Session struct {
	log   *zap.Logger
	graph *scene.Graph
	sim   *physics.Simulation
	level *level.Grid

	identities *identity.Allocator
	entities   *identity.Map[entity.GameEntity]

	players   []*Player
	byPlayer  map[identity.Handle]*Player
	colors    *colorPool
	outbox    Outbox

	beams map[identity.Handle]*entity.LightingBolt

	projectiles *pool.Pool[entity.Projectile]

	statsAccum         float64
	weaponPickupCursor int
}

// NewSession constructs a Session over an already-built scene graph,
// physics simulation, and level.
func NewSession(graph *scene.Graph, sim *physics.Simulation, lvl *level.Grid, log *zap.Logger) *Session {
	return &Session{
		log:        log,
		graph:      graph,
		sim:        sim,
		level:      lvl,
		identities: identity.NewAllocator(1 << 16),
		entities:   identity.NewMap[entity.GameEntity](1 << 16),
		byPlayer:   make(map[identity.Handle]*Player),
		colors:     newColorPool(),
		beams:      make(map[identity.Handle]*entity.LightingBolt),
		projectiles: pool.New(
			func() *entity.Projectile { return &entity.Projectile{} },
			nil,
			func(p *entity.Projectile) { p.ClearForPool() },
		),
	}
}

// SetOutbox installs the broadcast sink; the host wires this to its client
// collection once the listener socket is up.
func (s *Session) SetOutbox(o Outbox) { s.outbox = o }

func (s *Session) broadcast(msg wire.Message) {
	if s.outbox != nil {
		s.outbox.Broadcast(msg)
	}
}

// AddEntity allocates a network identity for e, broadcasts EntityAdd, and
// calls its OnAdded hook (spec §4.8 "On entity added").
func (s *Session) AddEntity(e entity.GameEntity) {
	h := s.identities.Allocate()
	e.SetIdentity(h)
	s.entities.Set(h, e)
	pos := e.Node().WorldPosition()
	s.broadcast(&wire.EntityAdd{
		Identity:    h,
		Owner:       e.Owner(),
		EntityType:  e.Type(),
		Position:    pos,
		Orientation: e.Node().WorldTransform().Orientation,
	})
	e.OnAdded()
}

// RemoveEntity calls the entity's OnRemoved hook, broadcasts EntityRemove,
// and frees its identity (spec §4.8 "On entity removed").
func (s *Session) RemoveEntity(e entity.GameEntity) {
	e.OnRemoved()
	h := e.Identity()
	s.broadcast(&wire.EntityRemove{Identity: h})
	s.entities.Delete(h)
	s.identities.Free(h)
	s.graph.Remove(e.Node())
}

// SendStateSnapshot enqueues PlayerJoin for every current player, then
// EntityAdd for every entity in pre-order, then ClientSynced, directly to
// conn (not broadcast) so a freshly-connecting client catches up on
// existing world state before joining the broadcast set (spec §4.8).
func (s *Session) SendStateSnapshot(conn ClientConn, clientPlayer *Player) {
	for _, p := range s.players {
		conn.Enqueue(&wire.PlayerJoin{Identity: p.Identity, Name: p.Name, Kind: p.Kind})
	}
	s.graph.PreOrder(func(n *scene.Node) {
		e, ok := n.Payload.(entity.GameEntity)
		if !ok {
			return
		}
		conn.Enqueue(&wire.EntityAdd{
			Identity:    e.Identity(),
			Owner:       e.Owner(),
			EntityType:  e.Type(),
			Position:    n.WorldPosition(),
			Orientation: n.WorldTransform().Orientation,
		})
	})
	conn.Enqueue(&wire.ClientSynced{Local: clientPlayer.Identity})
}

// BroadcastEntityUpdates calls BroadcastUpdates on every entity in
// pre-order, once per tick after physics and behaviors (spec §4.8).
func (s *Session) BroadcastEntityUpdates() {
	b := broadcasterFunc(s.broadcast)
	s.graph.PreOrder(func(n *scene.Node) {
		if e, ok := n.Payload.(entity.GameEntity); ok {
			e.BroadcastUpdates(b)
		}
	})
}

// broadcasterFunc adapts a plain func to entity.Broadcaster.
type broadcasterFunc func(wire.Message)

func (f broadcasterFunc) Enqueue(msg wire.Message) { f(msg) }

// BroadcastPlayerStats emits one PlayerStats per non-server player (spec
// §4.8).
func (s *Session) BroadcastPlayerStats() {
	for _, p := range s.players {
		s.broadcast(&wire.PlayerStats{
			Identity: p.Identity,
			Kills:    p.Kills,
			Deaths:   p.Deaths,
			PingMs:   p.PingMs,
		})
	}
}

// Update advances per-tick orb state (health regen/decay, power-up
// countdown) and the player-stats broadcast timer; call once per tick
// before BroadcastEntityUpdates (spec §4.8 "every 1/PlayerStatsUpdateFrequency
// seconds").
func (s *Session) Update(dt float64) {
	for _, p := range s.players {
		if p.Orb == nil {
			continue
		}
		if p.Orb.IsAlive() {
			p.Orb.Tick(dt)
			continue
		}
		s.handleOrbDeath(p)
	}

	s.statsAccum += dt
	period := 1.0 / PlayerStatsUpdateFrequency
	for s.statsAccum >= period {
		s.statsAccum -= period
		s.BroadcastPlayerStats()
	}
}

// Players returns the live roster, in join order.
func (s *Session) Players() []*Player { return s.players }

// PlayerCount reports the current roster size, used for the §4.9 "session
// not full" capacity check.
func (s *Session) PlayerCount() int { return len(s.players) }

// Graph, Simulation, and Level expose the pieces client/host code needs to
// drive ticks and respawn collision checks.
func (s *Session) Graph() *scene.Graph          { return s.graph }
func (s *Session) Simulation() *physics.Simulation { return s.sim }
func (s *Session) Level() *level.Grid           { return s.level }
