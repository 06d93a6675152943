package wire

import (
	"fmt"

	"github.com/foundrylabs/arenacore/internal/identity"
	"github.com/foundrylabs/arenacore/internal/mathutil"
)

// MessageType is the 1-byte tag framing every message (spec §4.1).
type MessageType uint8

const (
	MsgClientConnect MessageType = iota + 1
	MsgClientRejected
	MsgClientSynced
	MsgDisconnect
	MsgPlayerJoin
	MsgPlayerLeave
	MsgPlayerName
	MsgPlayerChat
	MsgPlayerKill
	MsgPlayerStats
	MsgPlayerInput
	MsgEntityAdd
	MsgEntityRemove
	MsgUpdateTransform
	MsgUpdateOrb
	MsgUpdateLightingBolt
)

// ReliabilityClass controls how Connection schedules and redelivers a
// message (spec §3 "Each message variant declares a reliability class").
type ReliabilityClass uint8

const (
	ReliableOrdered ReliabilityClass = iota
	UnreliableSequenced
)

// Reliability returns the fixed reliability class for a message type. This
// table is identical on both ends of the wire (spec §6).
func (t MessageType) Reliability() ReliabilityClass {
	switch t {
	case MsgClientConnect, MsgClientRejected, MsgClientSynced, MsgDisconnect,
		MsgPlayerJoin, MsgPlayerLeave, MsgPlayerName, MsgPlayerChat, MsgPlayerKill:
		return ReliableOrdered
	case MsgEntityAdd, MsgEntityRemove:
		return ReliableOrdered
	case MsgUpdateTransform, MsgUpdateOrb, MsgUpdateLightingBolt, MsgPlayerStats, MsgPlayerInput:
		return UnreliableSequenced
	default:
		return ReliableOrdered
	}
}

// Message is a decoded wire message. Concrete types live in this file;
// dispatch on Type(), not a class hierarchy (spec §9 design notes).
type Message interface {
	Type() MessageType
	encode(w *Writer) error
}

// Sequenced is implemented by messages carrying a per-field anti-replay
// sequence number (spec §3 Entity "last-accepted sequence number").
type Sequenced interface {
	Message
	Seq() uint32
}

// ---- ClientConnect ----

type ClientConnect struct {
	Revision uint8
	Name     string
}

func (m *ClientConnect) Type() MessageType { return MsgClientConnect }
func (m *ClientConnect) encode(w *Writer) error {
	w.WriteU8(m.Revision)
	return w.WriteString(m.Name, PlayerNameLength)
}
func decodeClientConnect(r *Reader) (Message, error) {
	m := &ClientConnect{}
	var err error
	if m.Revision, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if m.Name, err = r.ReadString(PlayerNameLength); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- ClientRejected ----

type ClientRejected struct {
	Reason RejectReason
}

func (m *ClientRejected) Type() MessageType { return MsgClientRejected }
func (m *ClientRejected) encode(w *Writer) error {
	w.WriteU8(uint8(m.Reason))
	return nil
}
func decodeClientRejected(r *Reader) (Message, error) {
	v, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	return &ClientRejected{Reason: RejectReason(v)}, nil
}

// ---- ClientSynced ----

type ClientSynced struct {
	Local identity.Handle
}

func (m *ClientSynced) Type() MessageType { return MsgClientSynced }
func (m *ClientSynced) encode(w *Writer) error {
	w.WriteU32(m.Local.Encode())
	return nil
}
func decodeClientSynced(r *Reader) (Message, error) {
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &ClientSynced{Local: identity.DecodeHandle(v)}, nil
}

// ---- Disconnect ----

type Disconnect struct{}

func (m *Disconnect) Type() MessageType          { return MsgDisconnect }
func (m *Disconnect) encode(w *Writer) error     { return nil }
func decodeDisconnect(r *Reader) (Message, error) { return &Disconnect{}, nil }

// ---- PlayerJoin ----

type PlayerJoin struct {
	Identity identity.Handle
	Name     string
	Kind     PlayerKind
}

func (m *PlayerJoin) Type() MessageType { return MsgPlayerJoin }
func (m *PlayerJoin) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	if err := w.WriteString(m.Name, PlayerNameLength); err != nil {
		return err
	}
	w.WriteU8(uint8(m.Kind))
	return nil
}
func decodePlayerJoin(r *Reader) (Message, error) {
	m := &PlayerJoin{}
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Identity = identity.DecodeHandle(idv)
	if m.Name, err = r.ReadString(PlayerNameLength); err != nil {
		return nil, err
	}
	kind, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	m.Kind = PlayerKind(kind)
	return m, nil
}

// ---- PlayerLeave ----

type PlayerLeave struct {
	Identity identity.Handle
	Reason   LeaveReason
}

func (m *PlayerLeave) Type() MessageType { return MsgPlayerLeave }
func (m *PlayerLeave) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	w.WriteU8(uint8(m.Reason))
	return nil
}
func decodePlayerLeave(r *Reader) (Message, error) {
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	reason, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	return &PlayerLeave{Identity: identity.DecodeHandle(idv), Reason: LeaveReason(reason)}, nil
}

// ---- PlayerName ----

type PlayerName struct {
	Identity identity.Handle
	Name     string
}

func (m *PlayerName) Type() MessageType { return MsgPlayerName }
func (m *PlayerName) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	return w.WriteString(m.Name, PlayerNameLength)
}
func decodePlayerName(r *Reader) (Message, error) {
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadString(PlayerNameLength)
	if err != nil {
		return nil, err
	}
	return &PlayerName{Identity: identity.DecodeHandle(idv), Name: name}, nil
}

// ---- PlayerChat ----

type PlayerChat struct {
	Identity identity.Handle
	Text     string
}

func (m *PlayerChat) Type() MessageType { return MsgPlayerChat }
func (m *PlayerChat) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	return w.WriteString(m.Text, ChatMaxLength)
}
func decodePlayerChat(r *Reader) (Message, error) {
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	text, err := r.ReadString(ChatMaxLength)
	if err != nil {
		return nil, err
	}
	return &PlayerChat{Identity: identity.DecodeHandle(idv), Text: text}, nil
}

// ---- PlayerKill ----

type PlayerKill struct {
	Killer identity.Handle
	Victim identity.Handle
}

func (m *PlayerKill) Type() MessageType { return MsgPlayerKill }
func (m *PlayerKill) encode(w *Writer) error {
	w.WriteU32(m.Killer.Encode())
	w.WriteU32(m.Victim.Encode())
	return nil
}
func decodePlayerKill(r *Reader) (Message, error) {
	k, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &PlayerKill{Killer: identity.DecodeHandle(k), Victim: identity.DecodeHandle(v)}, nil
}

// ---- PlayerStats ----

type PlayerStats struct {
	Identity identity.Handle
	Kills    uint32
	Deaths   uint32
	PingMs   uint32
}

func (m *PlayerStats) Type() MessageType { return MsgPlayerStats }
func (m *PlayerStats) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	w.WriteU32(m.Kills)
	w.WriteU32(m.Deaths)
	w.WriteU32(m.PingMs)
	return nil
}
func decodePlayerStats(r *Reader) (Message, error) {
	m := &PlayerStats{}
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Identity = identity.DecodeHandle(idv)
	if m.Kills, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if m.Deaths, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if m.PingMs, err = r.ReadU32(); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- PlayerInput ----

// PlayerInput carries an 8-bit recency mask per action (spec GLOSSARY
// "Input mask": bit i means "pressed during frame FrameNumber-i").
type PlayerInput struct {
	Identity      identity.Handle
	FrameNumber   uint32
	Target        mathutil.Vector2
	Up            uint8
	Down          uint8
	Left          uint8
	Right         uint8
	FirePrimary   uint8
	FireSecondary uint8
	PrimaryWeapon WeaponType
}

func (m *PlayerInput) Type() MessageType { return MsgPlayerInput }
func (m *PlayerInput) Seq() uint32       { return m.FrameNumber }
func (m *PlayerInput) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	w.WriteU32(m.FrameNumber)
	w.WriteF32(float32(m.Target.X))
	w.WriteF32(float32(m.Target.Y))
	w.WriteU8(m.Up)
	w.WriteU8(m.Down)
	w.WriteU8(m.Left)
	w.WriteU8(m.Right)
	w.WriteU8(m.FirePrimary)
	w.WriteU8(m.FireSecondary)
	w.WriteU8(uint8(m.PrimaryWeapon))
	return nil
}
func decodePlayerInput(r *Reader) (Message, error) {
	m := &PlayerInput{}
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Identity = identity.DecodeHandle(idv)
	if m.FrameNumber, err = r.ReadU32(); err != nil {
		return nil, err
	}
	tx, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	ty, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	m.Target = mathutil.Vector2{X: float64(tx), Y: float64(ty)}
	fields := []*uint8{&m.Up, &m.Down, &m.Left, &m.Right, &m.FirePrimary, &m.FireSecondary}
	for _, f := range fields {
		if *f, err = r.ReadU8(); err != nil {
			return nil, err
		}
	}
	w8, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	m.PrimaryWeapon = WeaponType(w8)
	return m, nil
}

// ---- EntityAdd ----

type EntityAdd struct {
	Identity    identity.Handle
	Owner       identity.Handle
	EntityType  EntityType
	Position    mathutil.Vector2
	Orientation float64
}

func (m *EntityAdd) Type() MessageType { return MsgEntityAdd }
func (m *EntityAdd) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	w.WriteU32(m.Owner.Encode())
	w.WriteU8(uint8(m.EntityType))
	w.WriteF32(float32(m.Position.X))
	w.WriteF32(float32(m.Position.Y))
	w.WriteF32(float32(m.Orientation))
	return nil
}
func decodeEntityAdd(r *Reader) (Message, error) {
	m := &EntityAdd{}
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Identity = identity.DecodeHandle(idv)
	ownerv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Owner = identity.DecodeHandle(ownerv)
	et, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	m.EntityType = EntityType(et)
	px, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	py, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	m.Position = mathutil.Vector2{X: float64(px), Y: float64(py)}
	orient, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	m.Orientation = float64(orient)
	return m, nil
}

// ---- EntityRemove ----

type EntityRemove struct {
	Identity identity.Handle
}

func (m *EntityRemove) Type() MessageType { return MsgEntityRemove }
func (m *EntityRemove) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	return nil
}
func decodeEntityRemove(r *Reader) (Message, error) {
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &EntityRemove{Identity: identity.DecodeHandle(idv)}, nil
}

// ---- UpdateTransform ----

type UpdateTransform struct {
	Identity    identity.Handle
	Position    mathutil.Vector2
	Orientation float64
	SeqNum      uint32
}

func (m *UpdateTransform) Type() MessageType { return MsgUpdateTransform }
func (m *UpdateTransform) Seq() uint32       { return m.SeqNum }
func (m *UpdateTransform) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	w.WriteF32(float32(m.Position.X))
	w.WriteF32(float32(m.Position.Y))
	w.WriteF32(float32(m.Orientation))
	w.WriteU32(m.SeqNum)
	return nil
}
func decodeUpdateTransform(r *Reader) (Message, error) {
	m := &UpdateTransform{}
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Identity = identity.DecodeHandle(idv)
	px, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	py, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	m.Position = mathutil.Vector2{X: float64(px), Y: float64(py)}
	orient, err := r.ReadF32()
	if err != nil {
		return nil, err
	}
	m.Orientation = float64(orient)
	if m.SeqNum, err = r.ReadU32(); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- UpdateOrb ----

type UpdateOrb struct {
	Identity      identity.Handle
	WeaponEnergy  [NumWeaponSlots]float32
	PowerUp       PowerUp
	RemainingTime float32
	Health        float32
	Primary       WeaponType
	Secondary     WeaponType
	SeqNum        uint32
}

func (m *UpdateOrb) Type() MessageType { return MsgUpdateOrb }
func (m *UpdateOrb) Seq() uint32       { return m.SeqNum }
func (m *UpdateOrb) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	for _, e := range m.WeaponEnergy {
		w.WriteF32(e)
	}
	w.WriteU8(uint8(m.PowerUp))
	w.WriteF32(m.RemainingTime)
	w.WriteF32(m.Health)
	w.WriteU8(uint8(m.Primary))
	w.WriteU8(uint8(m.Secondary))
	w.WriteU32(m.SeqNum)
	return nil
}
func decodeUpdateOrb(r *Reader) (Message, error) {
	m := &UpdateOrb{}
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Identity = identity.DecodeHandle(idv)
	for i := range m.WeaponEnergy {
		if m.WeaponEnergy[i], err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	pu, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	m.PowerUp = PowerUp(pu)
	if m.RemainingTime, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if m.Health, err = r.ReadF32(); err != nil {
		return nil, err
	}
	prim, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	m.Primary = WeaponType(prim)
	sec, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	m.Secondary = WeaponType(sec)
	if m.SeqNum, err = r.ReadU32(); err != nil {
		return nil, err
	}
	return m, nil
}

// ---- UpdateLightingBolt ----

type UpdateLightingBolt struct {
	Identity identity.Handle
	Length   float32
	SeqNum   uint32
}

func (m *UpdateLightingBolt) Type() MessageType { return MsgUpdateLightingBolt }
func (m *UpdateLightingBolt) Seq() uint32        { return m.SeqNum }
func (m *UpdateLightingBolt) encode(w *Writer) error {
	w.WriteU32(m.Identity.Encode())
	w.WriteF32(m.Length)
	w.WriteU32(m.SeqNum)
	return nil
}
func decodeUpdateLightingBolt(r *Reader) (Message, error) {
	m := &UpdateLightingBolt{}
	idv, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	m.Identity = identity.DecodeHandle(idv)
	var err2 error
	if m.Length, err2 = r.ReadF32(); err2 != nil {
		return nil, err2
	}
	if m.SeqNum, err2 = r.ReadU32(); err2 != nil {
		return nil, err2
	}
	return m, nil
}

// decoders maps each MessageType to its decode function. A type not present
// here is, by definition, unrecognized (spec §6: "A receiver that sees a
// msg_type it does not recognize drops the connection").
var decoders = map[MessageType]func(*Reader) (Message, error){
	MsgClientConnect:      decodeClientConnect,
	MsgClientRejected:     decodeClientRejected,
	MsgClientSynced:       decodeClientSynced,
	MsgDisconnect:         decodeDisconnect,
	MsgPlayerJoin:         decodePlayerJoin,
	MsgPlayerLeave:        decodePlayerLeave,
	MsgPlayerName:         decodePlayerName,
	MsgPlayerChat:         decodePlayerChat,
	MsgPlayerKill:         decodePlayerKill,
	MsgPlayerStats:        decodePlayerStats,
	MsgPlayerInput:        decodePlayerInput,
	MsgEntityAdd:          decodeEntityAdd,
	MsgEntityRemove:       decodeEntityRemove,
	MsgUpdateTransform:    decodeUpdateTransform,
	MsgUpdateOrb:          decodeUpdateOrb,
	MsgUpdateLightingBolt: decodeUpdateLightingBolt,
}

// ErrUnknownMessageType is returned when a packet names a msg_type with no
// registered decoder.
type ErrUnknownMessageType struct {
	Type MessageType
}

func (e *ErrUnknownMessageType) Error() string {
	return fmt.Sprintf("wire: unknown message type %d", e.Type)
}
