// Package host implements the client collection and the fixed-step host
// loop: a single-threaded, cooperative tick that owns the listener
// socket, the game session, and the set of connected clients (spec §4.10,
// §5 "the server thread... a single-threaded cooperative loop").
package host

import (
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/client"
	"github.com/foundrylabs/arenacore/internal/config"
	"github.com/foundrylabs/arenacore/internal/game"
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/level"
	"github.com/foundrylabs/arenacore/internal/netconn"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// State is one node of the host's stopped → starting → running → stopping
// → stopped state machine (spec §4.10).
type State int

const (
	Stopped State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Beacon is the subset of the discovery beacon the host drives once per
// tick; satisfied by *discovery.Beacon.
type Beacon interface {
	Tick(dt float64)
	Close() error
}

// botCommand is one entry in the main-thread-to-server-thread command
// queue (spec §5 "lock-free multi-producer/single-consumer queue"); a
// buffered Go channel serves the same role here, read only by the host's
// own tick goroutine.
type botCommand struct {
	add    bool
	name   string
	remove identity.Handle
}

// Host owns the listener socket, scene graph, physics simulation, level,
// game session, and client collection for one running server (spec §4.10,
// §5).
type Host struct {
	log *zap.Logger
	cfg *config.Config

	pc net.PacketConn

	graph   *scene.Graph
	sim     *physics.Simulation
	level   *level.Grid
	session *game.Session

	clients  []*client.Client
	byRemote map[string]*client.Client

	beacon Beacon

	botCmds chan botCommand
	stopCh  chan struct{}
	doneCh  chan struct{}

	state State

	readBuf []byte
}

// New constructs a Host in the Stopped state; call Start to bind the
// socket and begin ticking.
func New(cfg *config.Config, log *zap.Logger) *Host {
	return &Host{
		cfg:      cfg,
		log:      log,
		byRemote: make(map[string]*client.Client),
		botCmds:  make(chan botCommand, 64),
		readBuf:  make([]byte, cfg.Network.MaxPacketSize),
	}
}

// SetBeacon installs the discovery beacon the host ticks alongside the
// game loop; optional (spec §4.11 "Enabled" config flag).
func (h *Host) SetBeacon(b Beacon) { h.beacon = b }

// State returns the host's current lifecycle state.
func (h *Host) State() State { return h.state }

// Start binds the listener socket, loads the level, constructs the game
// session, and spawns the server thread (spec §4.10 "Start binds the
// socket, constructs the game session, spawns the server thread").
func (h *Host) Start() error {
	h.state = Starting

	lvl, err := loadLevel(h.cfg.Level.Path)
	if err != nil {
		return fmt.Errorf("host: load level: %w", err)
	}
	h.level = lvl

	addr := &net.UDPAddr{IP: net.IPv6unspecified, Port: h.cfg.Server.Port}
	pc, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("host: listen: %w", err)
	}
	h.pc = pc

	h.graph = scene.NewGraph()
	h.sim = physics.New()
	h.session = game.NewSession(h.graph, h.sim, h.level, h.log)
	h.session.SetOutbox(h)
	h.session.SpawnCollectibles()

	h.stopCh = make(chan struct{})
	h.doneCh = make(chan struct{})
	h.state = Running

	go h.run()
	return nil
}

// Stop signals cancellation and blocks until the server thread has
// disposed every owned resource in reverse construction order (spec §5
// "Cancellation").
func (h *Host) Stop() {
	if h.state != Running {
		return
	}
	h.state = Stopping
	close(h.stopCh)
	<-h.doneCh
	h.state = Stopped
}

// AddBot queues a bot-add command for the next tick (spec §5 "drains the
// bot-command queue once per tick").
func (h *Host) AddBot(name string) {
	select {
	case h.botCmds <- botCommand{add: true, name: name}:
	default:
		if h.log != nil {
			h.log.Warn("bot command queue full, dropping add_bot", zap.String("name", name))
		}
	}
}

// RemoveBot queues a bot-remove command for the next tick.
func (h *Host) RemoveBot(id identity.Handle) {
	select {
	case h.botCmds <- botCommand{remove: id}:
	default:
		if h.log != nil {
			h.log.Warn("bot command queue full, dropping remove_bot")
		}
	}
}

func (h *Host) run() {
	defer close(h.doneCh)

	interval := time.Second
	if h.cfg.Network.TickRate > 0 {
		interval = time.Duration(float64(time.Second) / h.cfg.Network.TickRate)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-h.stopCh:
			h.dispose()
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			h.tick(dt)
		}
	}
}

// tick runs one fixed step in the exact order spec §5 fixes: discovery →
// accept → per-client dispatch → respawn updates → physics integration →
// collision pass → behavior execution → entity update broadcast → send.
func (h *Host) tick(dt float64) {
	if h.beacon != nil {
		h.beacon.Tick(dt)
	}

	h.drainBotCommands()
	h.accept()

	for _, c := range h.clients {
		c.Pump()
	}

	h.sweepDeadClients()

	for _, c := range h.clients {
		if c.State() == client.Synced {
			c.Tick(dt)
		}
	}

	h.sim.Update(dt, h.graph, h.level)
	h.graph.ExecuteBehaviors(dt)
	h.graph.Update()

	h.session.Update(dt)
	h.session.BroadcastEntityUpdates()

	for _, c := range h.clients {
		if err := c.Flush(); err != nil && h.log != nil {
			h.log.Debug("flush failed, will be swept next tick", zap.Error(err))
		}
	}
}

func (h *Host) drainBotCommands() {
	for {
		select {
		case cmd := <-h.botCmds:
			if cmd.add {
				if _, err := h.session.AddBot(cmd.name); err != nil && h.log != nil {
					h.log.Warn("add_bot failed", zap.Error(err))
				}
			} else {
				h.session.RemoveBot(cmd.remove)
			}
		default:
			return
		}
	}
}

// accept drains the listener socket until no datagram is immediately
// available, routing each to its existing Connection by endpoint equality
// or creating a new Connection+Client pair (spec §4.10).
func (h *Host) accept() {
	for {
		h.pc.SetReadDeadline(time.Now())
		n, addr, err := h.pc.ReadFrom(h.readBuf)
		if err != nil {
			return
		}
		data := h.readBuf[:n]

		key := addr.String()
		c, ok := h.byRemote[key]
		if !ok {
			conn := netconn.New(h.pc, addr, h.cfg.Network.ProtocolRevision, h.cfg.Network.MaxPacketSize, h.log)
			conn.SetTimeout(h.cfg.Network.ConnectionTimeout)
			conn.SetMaxRetries(h.cfg.Network.ReliableRetries)
			c = client.New(conn, addr, h.session, h.cfg.Network.ProtocolRevision, h.log)
			h.clients = append(h.clients, c)
			h.byRemote[key] = c
		}
		c.Receive(data)
	}
}

// sweepDeadClients removes every client whose connection has dropped or
// whose state machine reached Disconnected, via swap-with-last and pop
// (spec §4.10 "SafeDispose, swap-with-last, pop").
func (h *Host) sweepDeadClients() {
	for i := 0; i < len(h.clients); {
		c := h.clients[i]
		if !c.IsDropped() && c.State() != client.Disconnected {
			i++
			continue
		}

		if p := c.Player(); p != nil {
			reason := c.LeaveReason()
			if reason == wire.LeaveUnknown {
				reason = wire.LeaveConnectionDropped
			}
			h.session.RemovePlayer(p, reason)
		}

		delete(h.byRemote, c.Remote().String())
		last := len(h.clients) - 1
		h.clients[i] = h.clients[last]
		h.clients = h.clients[:last]
	}
}

// Broadcast satisfies game.Outbox, enqueuing msg on every synced client's
// connection (spec §4.8 "eligible for broadcast").
func (h *Host) Broadcast(msg wire.Message) {
	for _, c := range h.clients {
		if c.State() == client.Synced {
			c.Enqueue(msg)
		}
	}
}

// dispose tears down every owned resource in reverse construction order:
// cancellation token (already closed by Stop), client collection, game
// session, listener socket, discovery beacon (spec §5 "Cancellation").
func (h *Host) dispose() {
	h.clients = nil
	h.byRemote = make(map[string]*client.Client)
	h.graph.Dispose()
	if h.pc != nil {
		h.pc.Close()
	}
	if h.beacon != nil {
		h.beacon.Close()
	}
}

func loadLevel(path string) (*level.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return level.Decode(data)
}
