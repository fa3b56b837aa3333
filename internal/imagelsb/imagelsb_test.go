package imagelsb

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bitstream "github.com/yyyoichi/bitstream-go"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := uint8(x * 255 / w)
			g := uint8(y * 255 / h)
			b := uint8((x + y) * 255 / (w + h))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

func bitReader(bits []bool) *bitstream.BitReader[uint64] {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range bits {
		w.WriteBool(b)
	}
	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(len(bits))
	return r
}

func collect(src func() (bool, bool), n int) []bool {
	out := make([]bool, 0, n)
	for range n {
		b, ok := src()
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out
}

func TestCapacity(t *testing.T) {
	bounds := image.Rect(0, 0, 8, 8)
	assert.Equal(t, 192, Capacity(Config{Depth: 1}, bounds))
	assert.Equal(t, 384, Capacity(Config{Depth: 2}, bounds))
	assert.Equal(t, 256, Capacity(Config{Depth: 1, UseAlpha: true}, bounds))
}

func TestEmbed_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"depth 1", Config{Depth: 1}},
		{"depth 2", Config{Depth: 2}},
		{"depth 4", Config{Depth: 4}},
		{"alpha included", Config{Depth: 1, UseAlpha: true}},
		{"shuffled", Config{Depth: 1, ShuffleSeed: 42}},
		{"shuffled depth 2", Config{Depth: 2, ShuffleSeed: 99}},
	}
	bits := []bool{true, false, true, true, false, false, true, false, true, true, true, false}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := gradient(16, 16)
			out := Embed(tt.cfg, src, bitReader(bits))
			got := collect(NewSource(tt.cfg, out), len(bits))
			assert.Equal(t, bits, got)
		})
	}
}

func TestEmbed_Neutrality(t *testing.T) {
	// At depth 1 every channel byte moves by at most 1.
	cfg := Config{Depth: 1}
	src := gradient(16, 16)
	bits := make([]bool, 192)
	for i := range bits {
		bits[i] = i%3 == 0
	}
	out := Embed(cfg, src, bitReader(bits))
	require.Equal(t, len(src.Pix), len(out.Pix))
	for i := range src.Pix {
		d := int(src.Pix[i]) - int(out.Pix[i])
		if d < 0 {
			d = -d
		}
		assert.LessOrEqual(t, d, 1, "pix byte %d", i)
	}
}

func TestEmbed_AlphaUntouchedByDefault(t *testing.T) {
	cfg := Config{Depth: 4}
	src := gradient(8, 8)
	bits := make([]bool, Capacity(cfg, src.Bounds()))
	for i := range bits {
		bits[i] = true
	}
	out := Embed(cfg, src, bitReader(bits))
	for i := 3; i < len(out.Pix); i += 4 {
		assert.Equal(t, src.Pix[i], out.Pix[i], "alpha byte %d", i)
	}
}

func TestEmbed_DoesNotMutateSource(t *testing.T) {
	cfg := Config{Depth: 1}
	src := gradient(8, 8)
	before := make([]byte, len(src.Pix))
	copy(before, src.Pix)

	Embed(cfg, src, bitReader([]bool{true, true, true, true}))
	assert.Equal(t, before, src.Pix)
}

func TestEmbed_UnitsBeyondFrameUntouched(t *testing.T) {
	cfg := Config{Depth: 1}
	src := gradient(8, 8)
	out := Embed(cfg, src, bitReader([]bool{true, false, true}))
	// Only the first pixel's R, G, B bytes may differ.
	for i := 4; i < len(src.Pix); i++ {
		assert.Equal(t, src.Pix[i], out.Pix[i], "pix byte %d", i)
	}
}

func TestNewSource_Exhausts(t *testing.T) {
	cfg := Config{Depth: 1}
	src := gradient(2, 2)
	got := collect(NewSource(cfg, src), 100)
	assert.Len(t, got, 12)
}
