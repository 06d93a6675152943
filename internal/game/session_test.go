package game

import (
	"strings"
	"testing"

	"github.com/foundrylabs/arenacore/internal/level"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

type recordingOutbox struct {
	messages []wire.Message
}

func (r *recordingOutbox) Broadcast(msg wire.Message) { r.messages = append(r.messages, msg) }

func newTestSession() (*Session, *recordingOutbox) {
	lvl := level.New(4, 4)
	lvl.Set(1, 1, level.BlockPlayerStart)
	s := NewSession(scene.NewGraph(), physics.New(), lvl, nil)
	ob := &recordingOutbox{}
	s.SetOutbox(ob)
	return s, ob
}

func TestCreatePlayerUniquifiesName(t *testing.T) {
	s, ob := newTestSession()
	a, err := s.CreatePlayer("alice", wire.PlayerHuman)
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := s.CreatePlayer("ALICE", wire.PlayerHuman)
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.Name != "alice" || b.Name != "alice (2)" {
		t.Fatalf("expected uniquified names, got %q %q", a.Name, b.Name)
	}
	if len(ob.messages) != 2 {
		t.Fatalf("expected 2 broadcast PlayerJoin messages, got %d", len(ob.messages))
	}
}

func TestCreatePlayerRejectsWhenFull(t *testing.T) {
	s, _ := newTestSession()
	for i := 0; i < MaxPlayers; i++ {
		if _, err := s.CreatePlayer("p", wire.PlayerHuman); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := s.CreatePlayer("overflow", wire.PlayerHuman); err == nil {
		t.Fatalf("expected ErrSessionFull on the 9th player")
	}
}

func TestRemovePlayerReleasesColorAndBroadcastsLeave(t *testing.T) {
	s, ob := newTestSession()
	p, _ := s.CreatePlayer("alice", wire.PlayerHuman)
	color := p.Color
	s.RemovePlayer(p, wire.LeaveDisconnect)

	q, _ := s.CreatePlayer("bob", wire.PlayerHuman)
	if q.Color != color {
		t.Fatalf("expected released color %d reused, got %d", color, q.Color)
	}
	found := false
	for _, m := range ob.messages {
		if leave, ok := m.(*wire.PlayerLeave); ok && leave.Reason == wire.LeaveDisconnect {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a PlayerLeave{disconnect} broadcast")
	}
}

func TestRenamePlayerSkipsIfDisplayEqual(t *testing.T) {
	s, ob := newTestSession()
	p, _ := s.CreatePlayer("alice", wire.PlayerHuman)
	before := len(ob.messages)
	s.RenamePlayer(p, "ALICE")
	if len(ob.messages) != before {
		t.Fatalf("expected no PlayerName broadcast for a display-equal rename")
	}
	s.RenamePlayer(p, "alicia")
	if p.Name != "alicia" || len(ob.messages) != before+1 {
		t.Fatalf("expected rename to take effect and broadcast once")
	}
}

func TestRespawnPlayerSpawnsOrbAtPlayerStart(t *testing.T) {
	s, _ := newTestSession()
	p, _ := s.CreatePlayer("alice", wire.PlayerHuman)
	s.RespawnPlayer(p)
	if p.Orb == nil {
		t.Fatalf("expected an orb to be spawned")
	}
	want := s.level.IndexPosition(s.level.PlayerStarts()[0])
	got := p.Orb.Node().WorldPosition()
	if got != want {
		t.Fatalf("expected orb at player-start %v, got %v", want, got)
	}
}

func TestRespawnPlayerDoesNothingDuringDelay(t *testing.T) {
	s, _ := newTestSession()
	p, _ := s.CreatePlayer("alice", wire.PlayerHuman)
	p.RemainingRespawnDelay = 1.0
	s.RespawnPlayer(p)
	if p.Orb != nil {
		t.Fatalf("expected no respawn while delay counts down")
	}
}

func TestHandlePlayerInputIgnoredWithoutOrb(t *testing.T) {
	s, _ := newTestSession()
	p, _ := s.CreatePlayer("alice", wire.PlayerHuman)
	s.HandlePlayerInput(p, &wire.PlayerInput{}, InputMask{Up: 1})
}

func TestHandlePlayerChatBroadcastsAndTruncates(t *testing.T) {
	s, ob := newTestSession()
	p, _ := s.CreatePlayer("alice", wire.PlayerHuman)
	before := len(ob.messages)

	long := strings.Repeat("x", wire.ChatMaxLength+10)
	s.HandlePlayerChat(p, long)

	if len(ob.messages) != before+1 {
		t.Fatalf("expected one PlayerChat broadcast, got %d new messages", len(ob.messages)-before)
	}
	chat, ok := ob.messages[len(ob.messages)-1].(*wire.PlayerChat)
	if !ok {
		t.Fatalf("expected *wire.PlayerChat, got %T", ob.messages[len(ob.messages)-1])
	}
	if chat.Identity != p.Identity {
		t.Fatalf("expected chat tagged with sender identity")
	}
	if len(chat.Text) != wire.ChatMaxLength {
		t.Fatalf("expected text truncated to %d, got %d", wire.ChatMaxLength, len(chat.Text))
	}
}
