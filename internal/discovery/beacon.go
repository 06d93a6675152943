// Package discovery implements the LAN discovery beacon: a UDP multicast
// announcement sent at a fixed cadence so clients on the local network can
// find a running server without knowing its address in advance (spec
// §4.11).
package discovery

import (
	"encoding/binary"
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/config"
)

// nameFieldLength is the fixed width of the server-name field in the
// beacon buffer (spec §4.11 "server-name:string[32]").
const nameFieldLength = 32

// appID is the magic value advertised in the beacon, matching the wire
// protocol's packet magic so a client can tell a beacon and a game packet
// apart by size and context alone (spec §4.11 "app-id:u32").
const appID uint32 = 0x41524e41 // "ARNA"

// Beacon owns a UDP socket that sends to a multicast group address and
// re-sends a precomputed announcement buffer once every
// config.Discovery.Frequency (spec §4.11). The socket does not join the
// group.
type Beacon struct {
	log *zap.Logger
	cfg config.DiscoveryConfig

	groupAddr *net.UDPAddr
	conn      net.PacketConn

	buf []byte

	accum          float64
	consecFailures int
	disabled       bool
}

// New precomputes the announcement buffer and opens the multicast socket.
// A socket-open failure at construction is not fatal; Tick retries on the
// same schedule as a later send failure (spec §4.11 "recreates it on the
// next attempt").
func New(cfg config.DiscoveryConfig, serverName string, serverPort int, revision uint8, log *zap.Logger) *Beacon {
	b := &Beacon{
		log: log,
		cfg: cfg,
		buf: encodeBeacon(revision, serverPort, serverName),
	}
	addr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(cfg.MulticastGroup, strconv.Itoa(cfg.Port)))
	if err != nil {
		if log != nil {
			log.Warn("discovery: resolve multicast group failed", zap.Error(err))
		}
		return b
	}
	b.groupAddr = addr
	b.openSocket()
	return b
}

func encodeBeacon(revision uint8, port int, name string) []byte {
	buf := make([]byte, 4+1+2+nameFieldLength)
	binary.BigEndian.PutUint32(buf[0:4], appID)
	buf[4] = revision
	binary.BigEndian.PutUint16(buf[5:7], uint16(port))
	n := copy(buf[7:7+nameFieldLength], name)
	for i := 7 + n; i < 7+nameFieldLength; i++ {
		buf[i] = 0
	}
	return buf
}

func (b *Beacon) openSocket() {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		b.conn = nil
		return
	}
	b.conn = conn
}

// Tick accumulates elapsed time and sends the announcement once every
// Frequency (a period, not a rate), disabling the beacon after RetryCount consecutive
// failures (spec §4.11).
func (b *Beacon) Tick(dt float64) {
	if b.disabled || !b.cfg.Enabled || b.groupAddr == nil {
		return
	}
	b.accum += dt
	period := b.cfg.Frequency.Seconds()
	if period <= 0 {
		period = 1
	}
	for b.accum >= period {
		b.accum -= period
		b.send()
	}
}

func (b *Beacon) send() {
	if b.conn == nil {
		b.openSocket()
		if b.conn == nil {
			b.onFailure()
			return
		}
	}
	if _, err := b.conn.WriteTo(b.buf, b.groupAddr); err != nil {
		b.conn.Close()
		b.conn = nil
		b.onFailure()
		return
	}
	b.consecFailures = 0
}

func (b *Beacon) onFailure() {
	b.consecFailures++
	if b.consecFailures >= b.cfg.RetryCount {
		b.disabled = true
		if b.log != nil {
			b.log.Warn("discovery: disabling beacon after repeated send failures",
				zap.Int("attempts", b.consecFailures))
		}
	}
}

// Close releases the beacon's socket.
func (b *Beacon) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}
