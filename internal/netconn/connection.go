// Package netconn implements Connection: bidirectional reliable-or-
// sequenced delivery over UDP to one remote endpoint (spec §4.2).
package netconn

import (
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/wire"
)

// DefaultTimeout is how long without an accepted packet before a
// connection is declared dropped (spec §6 "e.g. 10 s").
const DefaultTimeout = 10 * time.Second

// DefaultMaxRetries bounds reliable-ordered resend attempts before the
// connection is dropped (spec §4.2 "until the retry budget is exhausted").
const DefaultMaxRetries = 10

// rttSmoothing is the EMA weight applied to each new RTT sample
// (spec §4.2 "α ≈ 0.1").
const rttSmoothing = 0.1

type reliableEntry struct {
	msg         wire.Message
	firstSentAt time.Time
	lastSentSeq uint32
	attempts    int
}

// Connection owns one UDP endpoint pair (spec §3 Connection).
type Connection struct {
	log    *zap.Logger
	pc     net.PacketConn
	Remote net.Addr

	revision      uint8
	maxPacketSize int
	timeout       time.Duration
	maxRetries    int

	sendSeq uint32

	recvSeq     uint32
	recvBitmask uint32

	reliableQueue   []*reliableEntry
	pendingOutgoing []wire.Message
	inbox           [][]byte

	rttMillis    float64
	lastRecvTime time.Time
	dropped      bool

	bytesSent, bytesRecv     uint64
	packetsSent, packetsRecv uint64
}

// New constructs a Connection bound to remote, sending over pc.
func New(pc net.PacketConn, remote net.Addr, revision uint8, maxPacketSize int, log *zap.Logger) *Connection {
	return &Connection{
		pc:            pc,
		Remote:        remote,
		revision:      revision,
		maxPacketSize: maxPacketSize,
		timeout:       DefaultTimeout,
		maxRetries:    DefaultMaxRetries,
		lastRecvTime:  time.Now(),
		log:           log,
	}
}

// Enqueue appends msg to the outgoing queue; its reliability class is
// derived from its message type (spec §4.2 enqueue).
func (c *Connection) Enqueue(msg wire.Message) {
	c.pendingOutgoing = append(c.pendingOutgoing, msg)
}

// Receive hands a freshly-received datagram to the connection's inbox for
// the next Dispatch call. The host demultiplexes by remote endpoint
// before calling this (spec §4.10).
func (c *Connection) Receive(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	c.inbox = append(c.inbox, cp)
	c.bytesRecv += uint64(len(data))
	c.packetsRecv++
}

// Ping returns the smoothed round-trip estimate in milliseconds
// (spec §4.2 "ping").
func (c *Connection) Ping() float64 { return c.rttMillis }

// IsDropped reports whether the connection has timed out or hit a
// protocol violation (spec §4.2 "is_dropped").
func (c *Connection) IsDropped() bool {
	return c.dropped || time.Since(c.lastRecvTime) > c.timeout
}

// MarkDropped forces the connection into the dropped state, e.g. after a
// transport send failure (spec §7 "transport failure").
func (c *Connection) MarkDropped() { c.dropped = true }

// SetTimeout overrides the drop timeout (default DefaultTimeout).
func (c *Connection) SetTimeout(d time.Duration) { c.timeout = d }

// SetMaxRetries overrides the reliable-ordered retry budget (default
// DefaultMaxRetries).
func (c *Connection) SetMaxRetries(n int) { c.maxRetries = n }

// BytesSent, BytesReceived, PacketsSent, and PacketsReceived are
// per-connection traffic counters, read by a caller wanting visibility
// into one client's transport activity (no separate metrics subsystem
// exists; these are plain accessors over internal counters).
func (c *Connection) BytesSent() uint64       { return c.bytesSent }
func (c *Connection) BytesReceived() uint64   { return c.bytesRecv }
func (c *Connection) PacketsSent() uint64     { return c.packetsSent }
func (c *Connection) PacketsReceived() uint64 { return c.packetsRecv }

// PendingReliableCount reports how many reliable-ordered messages are
// still awaiting an ack. The client session polls this to approximate the
// awaiting-sync → synced transition once the join snapshot has drained
// (spec §4.9 "snapshot flushed, acked").
func (c *Connection) PendingReliableCount() int {
	n := len(c.reliableQueue)
	for _, m := range c.pendingOutgoing {
		if m.Type().Reliability() == wire.ReliableOrdered {
			n++
		}
	}
	return n
}

func (c *Connection) recordAck(header wire.Header) {
	kept := c.reliableQueue[:0]
	for _, e := range c.reliableQueue {
		if acked(header, e.lastSentSeq) {
			if e.attempts == 1 {
				latency := time.Since(e.firstSentAt).Seconds() * 1000
				if c.rttMillis == 0 {
					c.rttMillis = latency
				} else {
					c.rttMillis = c.rttMillis*(1-rttSmoothing) + latency*rttSmoothing
				}
			}
			continue
		}
		kept = append(kept, e)
	}
	c.reliableQueue = kept
}

func acked(header wire.Header, sentSeq uint32) bool {
	if sentSeq == header.PeerLastRecSeq {
		return true
	}
	if sentSeq > header.PeerLastRecSeq {
		return false
	}
	delta := header.PeerLastRecSeq - sentSeq
	if delta == 0 || delta > 32 {
		return false
	}
	return header.AckBit(int(delta - 1))
}
