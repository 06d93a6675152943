package netconn

import (
	"time"

	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/wire"
)

// ErrRetryBudgetExhausted is reported to the caller of Flush once a
// reliable-ordered message has been sent maxRetries times without an ack
// (spec §4.2 "until the retry budget is exhausted, after which the
// connection is dropped").
type ErrRetryBudgetExhausted struct{}

func (ErrRetryBudgetExhausted) Error() string { return "netconn: reliable retry budget exhausted" }

// Flush coalesces pending and unacked-retry messages into one packet and
// sends it. It always sends, even with zero application messages, so acks
// keep flowing (spec §4.2 flush).
func (c *Connection) Flush() error {
	outSeq := c.sendSeq + 1

	var reliable, unreliable []wire.Message
	for _, m := range c.pendingOutgoing {
		if m.Type().Reliability() == wire.ReliableOrdered {
			reliable = append(reliable, m)
		} else {
			unreliable = append(unreliable, m)
		}
	}
	c.pendingOutgoing = nil

	for _, m := range reliable {
		c.reliableQueue = append(c.reliableQueue, &reliableEntry{msg: m, firstSentAt: time.Now()})
	}

	budgetExhausted := false
	pkt := wire.Packet{Header: wire.Header{
		AppID:          wire.AppID,
		Revision:       c.revision,
		SendSeq:        outSeq,
		PeerLastRecSeq: c.recvSeq,
		PeerAckBitmask: c.recvBitmask,
	}}
	for _, e := range c.reliableQueue {
		if e.attempts >= c.maxRetries {
			budgetExhausted = true
			continue
		}
		e.lastSentSeq = outSeq
		e.attempts++
		pkt.Messages = append(pkt.Messages, e.msg)
	}
	pkt.Messages = append(pkt.Messages, unreliable...)

	w := wire.NewWriter()
	if err := wire.EncodePacket(w, pkt); err != nil {
		return err
	}
	// Oversize payloads fail to encode cleanly over the wire budget; drop
	// trailing unreliable-sequenced messages first rather than fragment
	// (spec §4.2 "the server must choose a smaller broadcast set").
	for w.Len() > c.maxPacketSize && len(pkt.Messages) > 0 && pkt.Messages[len(pkt.Messages)-1].Type().Reliability() == wire.UnreliableSequenced {
		pkt.Messages = pkt.Messages[:len(pkt.Messages)-1]
		w = wire.NewWriter()
		if err := wire.EncodePacket(w, pkt); err != nil {
			return err
		}
	}
	if w.Len() > c.maxPacketSize && c.log != nil {
		c.log.Warn("packet exceeds max size even after dropping unreliable messages", zap.Int("bytes", w.Len()), zap.Int("max", c.maxPacketSize))
	}

	c.sendSeq = outSeq
	if _, err := c.pc.WriteTo(w.Bytes(), c.Remote); err != nil {
		c.dropped = true
		return err
	}
	c.bytesSent += uint64(w.Len())
	c.packetsSent++
	if budgetExhausted {
		c.dropped = true
		return ErrRetryBudgetExhausted{}
	}
	return nil
}
