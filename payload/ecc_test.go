package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/golay"
)

func TestECC_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("ok")},
		{"text", []byte("golay protected payload")},
		{"binary", []byte{0x00, 0xff, 0x55, 0xaa, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeECC(tt.data, DefaultShuffleSeed)
			got := DecodeECC(encoded, len(tt.data), DefaultShuffleSeed)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestECC_CorrectsIsolatedBitErrors(t *testing.T) {
	data := []byte("survives bit damage")
	encoded := EncodeECC(data, DefaultShuffleSeed)
	require.Equal(t, EncodedLen(len(data)), len(encoded))

	// Flip one bit in three well-separated bytes; the shuffle spreads
	// them across codewords and Golay corrects each.
	damaged := make([]byte, len(encoded))
	copy(damaged, encoded)
	damaged[0] ^= 0x10
	damaged[len(damaged)/2] ^= 0x01
	damaged[len(damaged)-1] ^= 0x80

	got := DecodeECC(damaged, len(data), DefaultShuffleSeed)
	assert.Equal(t, data, got)
}

func TestECC_ExpansionIsBounded(t *testing.T) {
	// Golay packs 12 data bits into a 23-bit codeword, so the byte
	// expansion lands a little under double.
	for _, n := range []int{1, 16, 100} {
		got := EncodedLen(n)
		assert.Equal(t, (golay.EncodedBits(n*8)+7)/8, got, "n=%d", n)
		assert.GreaterOrEqual(t, got, (23*n+11)/12, "n=%d", n)
		assert.LessOrEqual(t, got, 2*n+3, "n=%d", n)
	}
}
