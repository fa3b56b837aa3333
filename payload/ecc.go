package payload

import (
	"math/rand"

	bitstream "github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

var DefaultShuffleSeed int64 = 1234567890

// EncodeECC expands data with Golay error correction and a
// deterministic bit shuffle seeded by seed. The shuffle spreads burst
// damage in the carrier across independent codewords so the code can
// correct it. DecodeECC with the same seed and the original byte length
// reverses the expansion.
func EncodeECC(data []byte, seed int64) []byte {
	if len(data) == 0 {
		return nil
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range data {
		w.Write8(0, 8, b)
	}

	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(w.Data(), w.Bits())
	encodedLen := enc.Bits()

	index := generatePermutation(seed, encodedLen)
	r := bitstream.NewBitReader(encoded, 0, 0)
	out := bitstream.NewBitWriter[uint64](0, 0)
	for i := range encodedLen {
		bit, _ := r.ReadBitAt(index[i])
		out.WriteBool(bit)
	}
	return wordsToBytes(out.Data(), encodedLen)
}

// DecodeECC reverses EncodeECC, correcting isolated bit errors picked
// up in transit. size is the original payload length in bytes; seed
// must match the encoding seed.
func DecodeECC(data []byte, size int, seed int64) []byte {
	if size == 0 {
		return nil
	}
	encodedLen := golay.EncodedBits(size * 8)

	// reverse shuffle: create same permutation then apply inverse
	index := generatePermutation(seed, encodedLen)
	r := bitstream.NewBitReader(bytesToWords(data), 0, 0)
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := range encodedLen {
		bit, _ := r.ReadBitAt(i)
		w.WriteBitAt(index[i], bit)
	}

	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), encodedLen)
	_ = dec.Decode(&decoded)

	out := bitstream.NewBitReader(decoded, 0, 0)
	result := make([]byte, size)
	for i := range result {
		result[i] = byte(out.Read8R(8, i))
	}
	return result
}

// EncodedLen returns the byte length of the ECC expansion of a payload
// of n bytes, for capacity planning.
func EncodedLen(n int) int {
	return (golay.EncodedBits(n*8) + 7) / 8
}

func generatePermutation(seed int64, length int) []int {
	index := make([]int, length)
	for i := range index {
		index[i] = i
	}
	rd := rand.New(rand.NewSource(seed))
	rd.Shuffle(length, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}

func wordsToBytes(words []uint64, bits int) []byte {
	r := bitstream.NewBitReader(words, 0, 0)
	out := make([]byte, (bits+7)/8)
	for i := range out {
		out[i] = byte(r.Read8R(8, i))
	}
	return out
}

func bytesToWords(data []byte) []uint64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range data {
		w.Write8(0, 8, b)
	}
	return w.Data()
}
