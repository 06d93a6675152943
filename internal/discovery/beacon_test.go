package discovery

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/foundrylabs/arenacore/internal/config"
)

func TestEncodeBeaconLayout(t *testing.T) {
	buf := encodeBeacon(3, 29015, "arena")

	if len(buf) != 4+1+2+nameFieldLength {
		t.Fatalf("unexpected buffer length %d", len(buf))
	}
	if got := binary.BigEndian.Uint32(buf[0:4]); got != appID {
		t.Fatalf("app id = %x, want %x", got, appID)
	}
	if buf[4] != 3 {
		t.Fatalf("revision = %d, want 3", buf[4])
	}
	if got := binary.BigEndian.Uint16(buf[5:7]); got != 29015 {
		t.Fatalf("port = %d, want 29015", got)
	}
	name := string(buf[7 : 7+5])
	if name != "arena" {
		t.Fatalf("name = %q, want arena", name)
	}
	for i := 12; i < 7+nameFieldLength; i++ {
		if buf[i] != 0 {
			t.Fatalf("expected zero padding at byte %d, got %d", i, buf[i])
		}
	}
}

func TestBeaconDisablesAfterRetryCountFailures(t *testing.T) {
	cfg := config.DiscoveryConfig{
		Enabled:        true,
		MulticastGroup: "239.255.42.99",
		Port:           29016,
		Frequency:      time.Millisecond,
		RetryCount:     3,
	}
	b := New(cfg, "arena", 29015, 1, nil)
	defer b.Close()

	for i := 0; i < cfg.RetryCount; i++ {
		b.onFailure()
	}
	if !b.disabled {
		t.Fatalf("expected beacon to disable itself after %d failures", cfg.RetryCount)
	}
}
