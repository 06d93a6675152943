package host

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foundrylabs/arenacore/internal/client"
	"github.com/foundrylabs/arenacore/internal/config"
	"github.com/foundrylabs/arenacore/internal/game"
	"github.com/foundrylabs/arenacore/internal/level"
	"github.com/foundrylabs/arenacore/internal/physics"
	"github.com/foundrylabs/arenacore/internal/scene"
	"github.com/foundrylabs/arenacore/internal/wire"
)

func writeTestLevel(t *testing.T) string {
	t.Helper()
	lvl := level.New(4, 4)
	lvl.Set(1, 1, level.BlockPlayerStart)
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.lvl")
	if err := os.WriteFile(path, lvl.Encode(), 0o644); err != nil {
		t.Fatalf("write level: %v", err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Level.Path = writeTestLevel(t)
	cfg.Network.TickRate = 1000
	return &cfg
}

func TestHostStartStopDisposesCleanly(t *testing.T) {
	cfg := testConfig(t)
	h := New(cfg, nil)

	if err := h.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if h.State() != Running {
		t.Fatalf("expected Running after Start, got %s", h.State())
	}

	h.Stop()
	if h.State() != Stopped {
		t.Fatalf("expected Stopped after Stop, got %s", h.State())
	}
}

// newUnstartedHost builds a Host with its listener, level, and session
// wired up exactly as Start does, without spawning the tick goroutine, so
// the test can drive accept()/Pump() directly without racing run().
func newUnstartedHost(t *testing.T, cfg *config.Config) *Host {
	t.Helper()
	h := New(cfg, nil)

	lvl, err := loadLevel(cfg.Level.Path)
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	h.level = lvl

	pc, err := net.ListenUDP("udp", &net.UDPAddr{})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { pc.Close() })
	h.pc = pc

	h.graph = scene.NewGraph()
	h.sim = physics.New()
	h.session = game.NewSession(h.graph, h.sim, h.level, nil)
	h.session.SetOutbox(h)
	h.session.SpawnCollectibles()
	return h
}

func TestHostAcceptCreatesClientOnFirstDatagram(t *testing.T) {
	cfg := testConfig(t)
	h := newUnstartedHost(t, cfg)

	udpAddr := h.pc.LocalAddr()
	conn, err := net.DialUDP("udp", nil, udpAddr.(*net.UDPAddr))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	w := wire.NewWriter()
	pkt := wire.Packet{
		Header:   wire.Header{AppID: wire.AppID, Revision: cfg.Network.ProtocolRevision, SendSeq: 1},
		Messages: []wire.Message{&wire.ClientConnect{Revision: cfg.Network.ProtocolRevision, Name: "alice"}},
	}
	if err := wire.EncodePacket(w, pkt); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := conn.Write(w.Bytes()); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.accept()
		for _, c := range h.clients {
			c.Pump()
		}
		if len(h.clients) == 1 && h.clients[0].State() == client.AwaitingSync {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected one client reaching AwaitingSync, clients=%d", len(h.clients))
}
