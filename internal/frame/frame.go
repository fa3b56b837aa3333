// Package frame implements the length-prefixed bit framing shared by
// every carrier engine. A framed payload is a 32-bit big-endian byte
// length followed by the payload bits, most-significant bit first per
// byte. The format is the only persisted encoding the codec owns and
// must stay stable across versions.
package frame

import (
	"errors"
	"math"

	bitstream "github.com/yyyoichi/bitstream-go"
)

var (
	ErrPayloadTooLarge = errors.New("payload length exceeds 32-bit header range")
	ErrTruncated       = errors.New("bit source exhausted before declared payload end")
)

// HeaderBits is the fixed width of the length header.
const HeaderBits = 32

// BitLen returns the framed size in bits of a payload of n bytes.
func BitLen(n int) int {
	return HeaderBits + n*8
}

// A Source yields carrier bits in the engine's traversal order.
// It reports ok=false once the carrier has no further embeddable units.
type Source func() (bit bool, ok bool)

// Frame encodes payload into its framed bit sequence and returns a
// positioned reader over it. The reader's Bits() reports the exact
// frame length.
func Frame(payload []byte) (*bitstream.BitReader[uint64], error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, ErrPayloadTooLarge
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	n := uint32(len(payload))
	w.Write8(0, 8, byte(n>>24))
	w.Write8(0, 8, byte(n>>16))
	w.Write8(0, 8, byte(n>>8))
	w.Write8(0, 8, byte(n))
	for _, b := range payload {
		w.Write8(0, 8, b)
	}
	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(w.Bits())
	return r, nil
}

// Unframe reads the 32-bit length header from src, then exactly
// length×8 payload bits, reassembling bytes MSB-first. It fails with
// ErrTruncated when src runs dry before the declared end; no partial
// payload is ever returned.
func Unframe(src Source) ([]byte, error) {
	var length uint32
	for range HeaderBits {
		bit, ok := src()
		if !ok {
			return nil, ErrTruncated
		}
		length <<= 1
		if bit {
			length |= 1
		}
	}
	// A wrong or damaged carrier can claim any length; cap the
	// allocation hint and let ErrTruncated surface naturally.
	hint := length
	if hint > 1<<20 {
		hint = 1 << 20
	}
	payload := make([]byte, 0, hint)
	for range length {
		var b byte
		for range 8 {
			bit, ok := src()
			if !ok {
				return nil, ErrTruncated
			}
			b <<= 1
			if bit {
				b |= 1
			}
		}
		payload = append(payload, b)
	}
	return payload, nil
}
