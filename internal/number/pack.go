package number

import (
	"encoding/hex"
	"fmt"
)

// PackedSize is the size of a packed number in bytes.
const PackedSize = 32

const ordinalBits = 20

// Pack encodes the number into 256 bits, least significant bit first:
// for each field, 20 bits of two's-complement ordinal followed by its sign
// bit, then the 4-bit checksum in the top nibble.
func (n Number) Pack() [PackedSize]byte {
	var w bitWriter
	for i := range n.ordinals {
		w.write(uint64(n.ordinals[i])&(1<<ordinalBits-1), ordinalBits)
		var s uint64
		if n.signs[i] {
			s = 1
		}
		w.write(s, 1)
	}
	w.write(uint64(n.checksum), 4)
	return w.buf
}

// Unpack decodes a packed number and verifies its checksum.
func Unpack(b [PackedSize]byte) (Number, error) {
	r := bitReader{buf: b}
	var n Number
	for i := range n.ordinals {
		raw := int32(r.read(ordinalBits))
		// Sign-extend from 20 bits.
		n.ordinals[i] = raw << (32 - ordinalBits) >> (32 - ordinalBits)
		n.signs[i] = r.read(1) == 1
	}
	n.checksum = uint8(r.read(4))
	if err := n.Verify(); err != nil {
		return Number{}, err
	}
	return n, nil
}

// Hex returns the packed form as lowercase hex.
func (n Number) Hex() string {
	p := n.Pack()
	return hex.EncodeToString(p[:])
}

// ParseHex decodes the output of Hex.
func ParseHex(s string) (Number, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != PackedSize {
		return Number{}, &Error{
			Code:    ErrCodeInvalidLiteral,
			Message: fmt.Sprintf("want %d hex-encoded bytes", PackedSize),
		}
	}
	var b [PackedSize]byte
	copy(b[:], raw)
	return Unpack(b)
}

type bitWriter struct {
	buf [PackedSize]byte
	pos int
}

func (w *bitWriter) write(v uint64, bits int) {
	for k := 0; k < bits; k++ {
		if v&(1<<k) != 0 {
			w.buf[w.pos/8] |= 1 << (w.pos % 8)
		}
		w.pos++
	}
}

type bitReader struct {
	buf [PackedSize]byte
	pos int
}

func (r *bitReader) read(bits int) uint64 {
	var v uint64
	for k := 0; k < bits; k++ {
		if r.buf[r.pos/8]&(1<<(r.pos%8)) != 0 {
			v |= 1 << k
		}
		r.pos++
	}
	return v
}
