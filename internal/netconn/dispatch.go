package netconn

import (
	"time"

	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/wire"
)

// Handler processes one message dispatched from an inbound packet.
type Handler func(wire.Message) error

// Dispatch decodes every datagram queued since the last call and invokes
// handler for each accepted message, in packet arrival order (spec §4.2
// dispatch). A malformed packet marks the connection dropped and stops
// processing the remaining inbox for this call.
func (c *Connection) Dispatch(handler Handler) {
	inbox := c.inbox
	c.inbox = nil
	for _, datagram := range inbox {
		if c.dropped {
			return
		}
		pkt, err := wire.DecodePacket(datagram)
		if err != nil {
			if c.log != nil {
				c.log.Debug("dropping connection: malformed packet", zap.Error(err))
			}
			c.dropped = true
			return
		}
		if pkt.Header.AppID != wire.AppID || pkt.Header.Revision != c.revision {
			c.dropped = true
			return
		}
		c.lastRecvTime = time.Now()
		c.recordAck(pkt.Header)

		stale, accept := c.acceptPacketSeq(pkt.Header.SendSeq)
		if !accept {
			continue
		}
		for _, m := range pkt.Messages {
			if stale && m.Type().Reliability() == wire.UnreliableSequenced {
				continue
			}
			if err := handler(m); err != nil {
				if c.log != nil {
					c.log.Warn("handler rejected message", zap.Error(err))
				}
			}
		}
	}
}

// acceptPacketSeq applies the replay window: packets newer than any seen
// before are always accepted and advance recvSeq; packets within the last
// 32 seqs are accepted once (covers legitimate reordering) and flagged
// stale so only their unreliable-sequenced messages get dropped; anything
// older, or already seen, is discarded outright.
func (c *Connection) acceptPacketSeq(seq uint32) (stale bool, accept bool) {
	switch {
	case seq > c.recvSeq:
		shift := seq - c.recvSeq
		if c.recvSeq == 0 {
			c.recvBitmask = 0
		} else if shift >= 32 {
			c.recvBitmask = 0
		} else {
			c.recvBitmask = (c.recvBitmask << shift) | (1 << (shift - 1))
		}
		c.recvSeq = seq
		return false, true
	case seq == c.recvSeq:
		return true, false
	default:
		delta := c.recvSeq - seq
		if delta > 32 {
			return true, false
		}
		bit := uint32(1) << (delta - 1)
		if c.recvBitmask&bit != 0 {
			return true, false
		}
		c.recvBitmask |= bit
		return true, true
	}
}
