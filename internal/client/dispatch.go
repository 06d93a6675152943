package client

import (
	"go.uber.org/zap"

	"github.com/foundrylabs/arenacore/internal/wire"
)

// handle is the netconn.Handler wired into Dispatch; it routes one decoded
// message through the state machine's transition table (spec §4.9).
func (c *Client) handle(msg wire.Message) error {
	switch c.state {
	case AwaitingConnect:
		c.handleAwaitingConnect(msg)
	case AwaitingSync, Synced:
		c.handleSynced(msg)
	default:
		// Disconnecting/Disconnected clients are removed on the next host
		// sweep; anything still arriving from them is ignored.
	}
	return nil
}

func (c *Client) handleAwaitingConnect(msg wire.Message) {
	connect, ok := msg.(*wire.ClientConnect)
	if !ok {
		// Anything but the handshake before the handshake completes is
		// simply ignored; the client has no player yet to misbehave as.
		return
	}

	if connect.Revision != c.revision {
		c.reject(wire.RejectVersionMismatch)
		return
	}

	p, err := c.session.CreatePlayer(connect.Name, wire.PlayerHuman)
	if err != nil {
		c.reject(wire.RejectFull)
		return
	}

	c.player = p
	c.session.SendStateSnapshot(c, p)
	c.state = AwaitingSync
}

func (c *Client) handleSynced(msg wire.Message) {
	switch m := msg.(type) {
	case *wire.Disconnect:
		c.kick(wire.LeaveDisconnect)
	case *wire.PlayerInput:
		c.handlePlayerInput(m)
	case *wire.PlayerChat:
		c.session.HandlePlayerChat(c.player, m.Text)
	case *wire.PlayerName:
		c.session.RenamePlayer(c.player, m.Name)
	default:
		if c.log != nil {
			c.log.Warn("kicking client for unexpected message type", zap.String("state", c.state.String()))
		}
		c.kick(wire.LeaveMisbehaved)
	}
}
