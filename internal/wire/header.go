package wire

// AppID is the protocol magic identifying this game's packets.
const AppID uint32 = 0x41524e41 // "ARNA"

// HeaderSize is the fixed byte size of Header.Encode's output.
const HeaderSize = 4 + 1 + 4 + 4 + 4

// Header is the fixed prefix of every packet (spec §4.1 / §6).
type Header struct {
	AppID          uint32
	Revision       uint8
	SendSeq        uint32
	PeerLastRecSeq uint32
	PeerAckBitmask uint32
}

// Encode appends the header fields to w.
func (h Header) Encode(w *Writer) {
	w.WriteU32(h.AppID)
	w.WriteU8(h.Revision)
	w.WriteU32(h.SendSeq)
	w.WriteU32(h.PeerLastRecSeq)
	w.WriteU32(h.PeerAckBitmask)
}

// DecodeHeader reads a Header from r.
func DecodeHeader(r *Reader) (Header, error) {
	var h Header
	var err error
	if h.AppID, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.Revision, err = r.ReadU8(); err != nil {
		return h, err
	}
	if h.SendSeq, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.PeerLastRecSeq, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.PeerAckBitmask, err = r.ReadU32(); err != nil {
		return h, err
	}
	return h, nil
}

// AckBit reports whether bit i (0-based, i in [0,32)) of the ack bitmask is
// set, meaning PeerLastRecSeq-(i+1) was acked.
func (h Header) AckBit(i int) bool {
	if i < 0 || i >= 32 {
		return false
	}
	return h.PeerAckBitmask&(1<<uint(i)) != 0
}
