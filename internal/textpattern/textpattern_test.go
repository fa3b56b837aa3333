package textpattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bitstream "github.com/yyyoichi/bitstream-go"
)

func testConfig() Config {
	return Config{Variants: DefaultVariants}
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

func TestParse_Lossless(t *testing.T) {
	tests := []string{
		"one two three",
		"  leading spaces",
		"trailing spaces   ",
		"\ttabs\tand  runs \n of\nnewlines\n",
		"single",
		"",
		"   ",
	}
	for _, text := range tests {
		d := parse(text)
		assert.Equal(t, text, d.build(), "%q", text)
	}
}

func TestCapacity(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, 0, Capacity(cfg, ""))
	assert.Equal(t, 0, Capacity(cfg, "word"))
	assert.Equal(t, 1, Capacity(cfg, "two words"))
	assert.Equal(t, 4, Capacity(cfg, "a b\tc\nd  e"))
}

func TestEmbed_RoundTrip(t *testing.T) {
	cfg := testConfig()
	text := strings.Repeat("lorem ipsum dolor sit amet ", 5)
	bits := []bool{true, false, false, true, true, true, false, true}

	out, err := Embed(cfg, text, bitReader(bits))
	require.NoError(t, err)
	got := collect(NewSource(cfg, out), len(bits))
	assert.Equal(t, bits, got)
}

func TestEmbed_TokensUnchanged(t *testing.T) {
	cfg := testConfig()
	text := "the quick   brown\tfox jumps"
	bits := []bool{true, true, false, true}

	out, err := Embed(cfg, text, bitReader(bits))
	require.NoError(t, err)
	assert.Equal(t, strings.Fields(text), strings.Fields(out))
}

func TestEmbed_PreservesSurroundingWhitespace(t *testing.T) {
	cfg := testConfig()
	text := "  alpha beta gamma delta\n"
	out, err := Embed(cfg, text, bitReader([]bool{true}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "  "))
	assert.True(t, strings.HasSuffix(out, "\n"))
	// Gaps beyond the single frame bit keep their original text.
	d := parse(out)
	assert.Equal(t, " ", d.gaps[1])
	assert.Equal(t, " ", d.gaps[2])
}

func TestEmbed_ShortCarrier(t *testing.T) {
	cfg := testConfig()
	for _, text := range []string{"", "word", "  word  "} {
		_, err := Embed(cfg, text, bitReader([]bool{true}))
		assert.ErrorIs(t, err, ErrShortCarrier, "%q", text)
	}
}

func TestEmbed_CustomVariants(t *testing.T) {
	cfg := Config{Variants: Variants{Zero: " ", One: "  "}}
	text := "alpha beta gamma delta epsilon zeta"
	bits := []bool{false, true, true, false, true}

	out, err := Embed(cfg, text, bitReader(bits))
	require.NoError(t, err)
	assert.Equal(t, bits, collect(NewSource(cfg, out), len(bits)))
	assert.Equal(t, strings.Fields(text), strings.Fields(out))
}

func TestNewSource_Exhausts(t *testing.T) {
	cfg := testConfig()
	got := collect(NewSource(cfg, "a b c"), 100)
	assert.Len(t, got, 2)
}
