// Package client implements the per-client state machine: handshake,
// state snapshot, synced dispatch, misbehavior kick, and disconnection
// (spec §4.9).
package client

import (
	"net"

	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/game"
	"github.com/foundrylabs/arenacore/internal/netconn"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// State is one node of the awaiting-connect → awaiting-sync → synced →
// disconnecting → disconnected state machine (spec §4.9).
type State int

const (
	AwaitingConnect State = iota
	AwaitingSync
	Synced
	Disconnecting
	Disconnected
)

func (s State) String() string {
	switch s {
	case AwaitingConnect:
		return "awaiting-connect"
	case AwaitingSync:
		return "awaiting-sync"
	case Synced:
		return "synced"
	case Disconnecting:
		return "disconnecting"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Client is one connected remote endpoint's session state, layered over a
// netconn.Connection (spec §3 Connection, §4.9 Client session).
type Client struct {
	log     *zap.Logger
	conn    *netconn.Connection
	session *game.Session
	remote  net.Addr

	revision uint8

	state       State
	leaveReason wire.LeaveReason

	player *game.Player

	hasInputFrame  bool
	lastInputFrame uint32
}

// New constructs a Client awaiting its ClientConnect handshake.
func New(conn *netconn.Connection, remote net.Addr, session *game.Session, revision uint8, log *zap.Logger) *Client {
	return &Client{
		log:      log,
		conn:     conn,
		session:  session,
		remote:   remote,
		revision: revision,
		state:    AwaitingConnect,
	}
}

// Enqueue satisfies game.ClientConn, routing a targeted message (e.g. the
// join snapshot) through the underlying connection.
func (c *Client) Enqueue(msg wire.Message) { c.conn.Enqueue(msg) }

// Remote returns the client's UDP endpoint, used by the host to key its
// client collection (spec §4.10 "accepts new endpoints... keyed by
// endpoint").
func (c *Client) Remote() net.Addr { return c.remote }

// State returns the client's current lifecycle state.
func (c *Client) State() State { return c.state }

// Player returns the associated player, or nil before the handshake
// completes.
func (c *Client) Player() *game.Player { return c.player }

// LeaveReason reports why the client is being removed, valid once the
// state reaches Disconnecting or Disconnected.
func (c *Client) LeaveReason() wire.LeaveReason { return c.leaveReason }

// IsDropped reports whether the transport has declared this endpoint
// dropped (timeout or protocol violation at the connection layer).
func (c *Client) IsDropped() bool { return c.conn.IsDropped() }

// Ping returns the connection's smoothed round-trip estimate.
func (c *Client) Ping() float64 { return c.conn.Ping() }

// Flush drains the connection's outgoing queue onto the wire.
func (c *Client) Flush() error { return c.conn.Flush() }

// Receive hands a freshly-demultiplexed datagram to the underlying
// connection's inbox.
func (c *Client) Receive(data []byte) { c.conn.Receive(data) }

// Pump dispatches every buffered inbound datagram through the client's
// state machine, then advances awaiting-sync → synced once the snapshot
// has fully drained (spec §4.9).
func (c *Client) Pump() {
	c.conn.Dispatch(c.handle)

	if c.state == AwaitingSync && c.conn.PendingReliableCount() == 0 {
		c.state = Synced
	}
	if c.state == Disconnecting && (c.conn.PendingReliableCount() == 0 || c.conn.IsDropped()) {
		c.state = Disconnected
	}
}

// Tick advances the session's player-specific per-frame bookkeeping. The
// host calls this once per tick for every synced client (spec §4.9 "per
// tick, for each synced client with no live orb, decrement remaining-
// respawn-delay and call respawn_player").
func (c *Client) Tick(dt float64) {
	if c.state != Synced || c.player == nil {
		return
	}
	if c.player.Orb == nil || !c.player.Orb.IsAlive() {
		if c.player.RemainingRespawnDelay > 0 {
			c.player.RemainingRespawnDelay -= dt
			if c.player.RemainingRespawnDelay < 0 {
				c.player.RemainingRespawnDelay = 0
			}
		}
		c.session.RespawnPlayer(c.player)
	}
}

// kick moves the client straight to Disconnected, recording reason for
// the host's next disposal sweep (spec §4.9 "kick as misbehaved").
func (c *Client) kick(reason wire.LeaveReason) {
	c.state = Disconnected
	c.leaveReason = reason
}

// reject sends a ClientRejected and moves to Disconnecting so the host
// keeps flushing until it drains (or the transport gives up), instead of
// closing out from under an unsent rejection (spec §4.9 "send Rejected,
// drop").
func (c *Client) reject(reason wire.RejectReason) {
	c.conn.Enqueue(&wire.ClientRejected{Reason: reason})
	c.state = Disconnecting
}
