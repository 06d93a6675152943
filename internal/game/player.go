package game

import (
	"fmt"
	"strings"

	"github.com/foundrylabs/arenacore/internal/entity"
	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/wire"
)

// Player is one connected human or bot (spec §3 Player).
type Player struct {
	Name     string
	Kind     wire.PlayerKind
	Color    int
	Identity identity.Handle

	Kills, Deaths uint32
	PingMs        uint32

	LeaveReason           wire.LeaveReason
	RemainingRespawnDelay float64

	Orb *entity.Orb

	Server bool
}

// ErrSessionFull is returned by CreatePlayer when the roster is at
// MaxPlayers (spec §8 scenario 2 "Full server").
type ErrSessionFull struct{}

func (ErrSessionFull) Error() string { return "game: session full" }

// CreatePlayer allocates a player, uniquifying name against the current
// roster, and broadcasts PlayerJoin (spec §4.8 create_player).
func (s *Session) CreatePlayer(name string, kind wire.PlayerKind) (*Player, error) {
	if len(s.players) >= MaxPlayers {
		return nil, ErrSessionFull{}
	}
	p := &Player{
		Name:     s.uniquifyName(name),
		Kind:     kind,
		Color:    s.colors.acquire(),
		Identity: s.identities.Allocate(),
	}
	s.players = append(s.players, p)
	s.byPlayer[p.Identity] = p
	s.broadcast(&wire.PlayerJoin{Identity: p.Identity, Name: p.Name, Kind: p.Kind})
	return p, nil
}

// AddBot creates a bot player and immediately respawns it, since unlike a
// human client it has no handshake to wait on (spec §6 CLI surface
// add_bot, §1 "Bot AI is treated as an input producer plugged into the
// same player-input interface a human uses").
func (s *Session) AddBot(name string) (*Player, error) {
	p, err := s.CreatePlayer(name, wire.PlayerBot)
	if err != nil {
		return nil, err
	}
	s.RespawnPlayer(p)
	return p, nil
}

// RemoveBot removes the bot player at identity, if one exists (spec §6 CLI
// surface remove_bot).
func (s *Session) RemoveBot(h identity.Handle) {
	p, ok := s.byPlayer[h]
	if !ok || p.Kind != wire.PlayerBot {
		return
	}
	s.RemovePlayer(p, wire.LeaveDisconnect)
}

// RemovePlayer removes every entity the player owns, broadcasts
// PlayerLeave{reason}, and releases the player's color and identity
// (spec §4.8 remove_player).
func (s *Session) RemovePlayer(p *Player, reason wire.LeaveReason) {
	var owned []entity.GameEntity
	s.entities.Each(func(h identity.Handle, e entity.GameEntity) {
		if e.Owner() == p.Identity {
			owned = append(owned, e)
		}
	})
	for _, e := range owned {
		s.RemoveEntity(e)
	}
	p.LeaveReason = reason
	s.broadcast(&wire.PlayerLeave{Identity: p.Identity, Reason: reason})
	s.colors.release(p.Color)
	s.identities.Free(p.Identity)
	delete(s.byPlayer, p.Identity)
	for i, other := range s.players {
		if other == p {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
}

// RenamePlayer uniquifies name, skips if display-equal to the player's
// current name, and otherwise broadcasts PlayerName (spec §4.8
// rename_player).
func (s *Session) RenamePlayer(p *Player, name string) {
	unique := s.uniquifyName(name)
	if displayEqual(unique, p.Name) {
		return
	}
	p.Name = unique
	s.broadcast(&wire.PlayerName{Identity: p.Identity, Name: p.Name})
}

// HandlePlayerChat relays a chat line to every synced client (the sender
// included), tagged with
// the sender's identity, truncating to the wire limit (spec §2 "chat and
// rename", §4.8).
func (s *Session) HandlePlayerChat(p *Player, text string) {
	if len(text) > wire.ChatMaxLength {
		text = text[:wire.ChatMaxLength]
	}
	s.broadcast(&wire.PlayerChat{Identity: p.Identity, Text: text})
}

// PlayerByIdentity looks up a player by network identity.
func (s *Session) PlayerByIdentity(h identity.Handle) (*Player, bool) {
	p, ok := s.byPlayer[h]
	return p, ok
}

func displayEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// uniquifyName appends " (n)" until name is not display-equal to any
// current player's name (spec §4.8 "case-insensitive display-equal check
// over existing non-server players that have not left").
func (s *Session) uniquifyName(name string) string {
	candidate := name
	for n := 2; s.nameTaken(candidate); n++ {
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	return candidate
}

func (s *Session) nameTaken(candidate string) bool {
	for _, p := range s.players {
		if displayEqual(p.Name, candidate) {
			return true
		}
	}
	return false
}
