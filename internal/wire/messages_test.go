package wire

import (
	"testing"

	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/mathutil"
)

func roundTrip(t *testing.T, m Message) Message {
	t.Helper()
	w := NewWriter()
	if err := EncodeMessage(w, m); err != nil {
		t.Fatalf("encode: %v", err)
	}
	r := NewReader(w.Bytes())
	got, err := DecodeMessage(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("leftover bytes after decode: %d", r.Remaining())
	}
	return got
}

func TestPlayerJoinRoundTrip(t *testing.T) {
	in := &PlayerJoin{
		Identity: identity.Handle{Index: 3, Generation: 7},
		Name:     "sprocket",
		Kind:     PlayerHuman,
	}
	got, ok := roundTrip(t, in).(*PlayerJoin)
	if !ok {
		t.Fatalf("wrong type")
	}
	if *got != *in {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}

func TestPlayerChatEmptyAndMaxLength(t *testing.T) {
	empty := &PlayerChat{Identity: identity.Handle{Index: 1}, Text: ""}
	got := roundTrip(t, empty).(*PlayerChat)
	if got.Text != "" {
		t.Fatalf("expected empty string, got %q", got.Text)
	}

	maxText := make([]byte, ChatMaxLength)
	for i := range maxText {
		maxText[i] = 'x'
	}
	full := &PlayerChat{Identity: identity.Handle{Index: 1}, Text: string(maxText)}
	got2 := roundTrip(t, full).(*PlayerChat)
	if len(got2.Text) != ChatMaxLength {
		t.Fatalf("got length %d, want %d", len(got2.Text), ChatMaxLength)
	}
}

func TestPlayerChatRejectsOverLength(t *testing.T) {
	overLong := make([]byte, ChatMaxLength+1)
	m := &PlayerChat{Identity: identity.Handle{Index: 1}, Text: string(overLong)}
	w := NewWriter()
	if err := EncodeMessage(w, m); err == nil {
		t.Fatalf("expected error encoding over-length chat text")
	}
}

func TestPlayerInputRoundTripMaxSeq(t *testing.T) {
	in := &PlayerInput{
		Identity:      identity.Handle{Index: 42, Generation: 1},
		FrameNumber:   0xFFFFFFFF,
		Target:        mathutil.Vector2{X: 12.5, Y: -3.25},
		Up:            0xFF,
		Down:          0x00,
		Left:          0b10101010,
		Right:         0b01010101,
		FirePrimary:   1,
		FireSecondary: 0,
		PrimaryWeapon: WeaponType(2),
	}
	got, ok := roundTrip(t, in).(*PlayerInput)
	if !ok {
		t.Fatalf("wrong type")
	}
	if got.FrameNumber != in.FrameNumber {
		t.Fatalf("frame number mismatch: got %d want %d", got.FrameNumber, in.FrameNumber)
	}
	if got.Target != in.Target {
		t.Fatalf("target mismatch: got %+v want %+v", got.Target, in.Target)
	}
	if got.Up != in.Up || got.Left != in.Left || got.Right != in.Right {
		t.Fatalf("input masks mismatch: got %+v want %+v", got, in)
	}
}

func TestEntityAddRoundTrip(t *testing.T) {
	in := &EntityAdd{
		Identity:    identity.Handle{Index: 5, Generation: 2},
		Owner:       identity.Handle{Index: 9, Generation: 1},
		EntityType:  EntityBullet,
		Position:    mathutil.Vector2{X: 1, Y: 2},
		Orientation: 1.5707963267948966,
	}
	got, ok := roundTrip(t, in).(*EntityAdd)
	if !ok {
		t.Fatalf("wrong type")
	}
	if got.Identity != in.Identity || got.Owner != in.Owner || got.EntityType != in.EntityType {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}

func TestUpdateOrbRoundTrip(t *testing.T) {
	in := &UpdateOrb{
		Identity:      identity.Handle{Index: 1},
		PowerUp:       PowerUpQuadDamage,
		RemainingTime: 4.5,
		Health:        100,
		Primary:       WeaponType(0),
		Secondary:     WeaponType(3),
		SeqNum:        99,
	}
	for i := range in.WeaponEnergy {
		in.WeaponEnergy[i] = float32(i) * 10
	}
	got, ok := roundTrip(t, in).(*UpdateOrb)
	if !ok {
		t.Fatalf("wrong type")
	}
	if got.WeaponEnergy != in.WeaponEnergy {
		t.Fatalf("weapon energy mismatch: got %v want %v", got.WeaponEnergy, in.WeaponEnergy)
	}
	if got.PowerUp != in.PowerUp || got.SeqNum != in.SeqNum {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}

func TestDecodeMessageUnknownTag(t *testing.T) {
	w := NewWriter()
	w.WriteU8(0xFE)
	r := NewReader(w.Bytes())
	_, err := DecodeMessage(r)
	if err == nil {
		t.Fatalf("expected error for unknown message tag")
	}
	if _, ok := err.(*ErrUnknownMessageType); !ok {
		t.Fatalf("expected ErrUnknownMessageType, got %T: %v", err, err)
	}
}

func TestDecodeMessageTruncatedPayload(t *testing.T) {
	w := NewWriter()
	w.WriteU8(uint8(MsgPlayerKill))
	w.WriteU32(1) // only the killer handle, victim handle missing
	r := NewReader(w.Bytes())
	_, err := DecodeMessage(r)
	if err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReliabilityClassification(t *testing.T) {
	cases := []struct {
		t    MessageType
		want ReliabilityClass
	}{
		{MsgPlayerJoin, ReliableOrdered},
		{MsgPlayerChat, ReliableOrdered},
		{MsgEntityAdd, ReliableOrdered},
		{MsgUpdateTransform, UnreliableSequenced},
		{MsgPlayerInput, UnreliableSequenced},
		{MsgPlayerStats, UnreliableSequenced},
	}
	for _, c := range cases {
		if got := c.t.Reliability(); got != c.want {
			t.Errorf("MessageType(%d).Reliability() = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestPacketRoundTripMultipleMessages(t *testing.T) {
	p := Packet{
		Header: Header{
			AppID:          AppID,
			Revision:       1,
			SendSeq:        10,
			PeerLastRecSeq: 9,
			PeerAckBitmask: 0b111,
		},
		Messages: []Message{
			&PlayerJoin{Identity: identity.Handle{Index: 1}, Name: "a", Kind: PlayerHuman},
			&EntityRemove{Identity: identity.Handle{Index: 2}},
		},
	}
	w := NewWriter()
	if err := EncodePacket(w, p); err != nil {
		t.Fatalf("encode packet: %v", err)
	}
	got, err := DecodePacket(w.Bytes())
	if err != nil {
		t.Fatalf("decode packet: %v", err)
	}
	if got.Header != p.Header {
		t.Fatalf("header mismatch: got %+v want %+v", got.Header, p.Header)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Messages))
	}
}
