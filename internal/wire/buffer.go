package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrTruncated is returned by Reader methods when the buffer runs out of
// bytes mid-field; callers treat this as a protocol violation (spec §4.2:
// "Unknown/malformed message → the connection is marked dropped").
var ErrTruncated = errors.New("wire: truncated message")

// Writer builds a big-endian framed payload. Unlike the teacher's
// little-endian Writer (networking/shared/messages.go), spec §4.1 mandates
// big-endian on the wire.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer with a small initial capacity.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// WriteString writes a 16-bit length-prefixed UTF-8 string. maxLen bounds the
// number of bytes (not runes) accepted and a longer string is an error;
// callers pass the per-field caps named in spec §4.1 (32 for names, 255
// for chat) as maxLen.
func (w *Writer) WriteString(s string, maxLen int) error {
	b := []byte(s)
	if len(b) > maxLen {
		return fmt.Errorf("wire: string exceeds max length %d", maxLen)
	}
	w.WriteU16(uint16(len(b)))
	w.buf = append(w.buf, b...)
	return nil
}

// WriteBytes appends raw bytes with no length prefix.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader reads big-endian fields from a fixed buffer, reporting
// ErrTruncated instead of silently zero-filling on underflow.
type Reader struct {
	data []byte
	off  int
}

// NewReader wraps data for sequential reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) ReadU8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrTruncated
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *Reader) ReadU16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadString reads a 16-bit length-prefixed UTF-8 string, rejecting lengths
// beyond maxLen before allocating (spec §4.1 hard caps).
func (r *Reader) ReadString(maxLen int) (string, error) {
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	if int(n) > maxLen {
		return "", fmt.Errorf("wire: string length %d exceeds max %d", n, maxLen)
	}
	if r.Remaining() < int(n) {
		return "", ErrTruncated
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrTruncated
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}
