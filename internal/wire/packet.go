package wire

// EncodeMessage frames a single message as a 1-byte type tag followed by its
// payload (spec §4.1 "repeated framed messages").
func EncodeMessage(w *Writer, m Message) error {
	w.WriteU8(uint8(m.Type()))
	return m.encode(w)
}

// DecodeMessage reads one framed message: a 1-byte type tag followed by its
// payload, dispatching to the registered decoder for that tag.
func DecodeMessage(r *Reader) (Message, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	t := MessageType(tag)
	dec, ok := decoders[t]
	if !ok {
		return nil, &ErrUnknownMessageType{Type: t}
	}
	return dec(r)
}

// Packet is a decoded datagram: its header plus every framed message it
// carried, in order.
type Packet struct {
	Header   Header
	Messages []Message
}

// EncodePacket writes the header followed by each message's frame.
func EncodePacket(w *Writer, p Packet) error {
	p.Header.Encode(w)
	for _, m := range p.Messages {
		if err := EncodeMessage(w, m); err != nil {
			return err
		}
	}
	return nil
}

// DecodePacket reads a header followed by framed messages until the buffer
// is exhausted. A message that fails to decode aborts the whole packet
// (spec §4.2: malformed message drops the connection), so callers should
// treat any returned error as fatal for the originating connection.
func DecodePacket(data []byte) (Packet, error) {
	r := NewReader(data)
	h, err := DecodeHeader(r)
	if err != nil {
		return Packet{}, err
	}
	p := Packet{Header: h}
	for r.Remaining() > 0 {
		m, err := DecodeMessage(r)
		if err != nil {
			return Packet{}, err
		}
		p.Messages = append(p.Messages, m)
	}
	return p, nil
}
