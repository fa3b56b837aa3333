// Package textpattern embeds bits in the whitespace between text
// tokens. Tokens are maximal runs of non-whitespace runes; each of the
// tokenCount-1 inter-token gaps carries one bit by being rewritten to
// one of two visually near-equivalent whitespace variants. Token
// content, leading and trailing whitespace, and gaps beyond the frame
// are preserved byte for byte.
package textpattern

import (
	"errors"
	"strings"
	"unicode"

	bitstream "github.com/yyyoichi/bitstream-go"
	"golang.org/x/text/unicode/norm"
)

var ErrShortCarrier = errors.New("text has fewer than two tokens")

// Variants is the gap alphabet: the whitespace written for a zero bit
// and for a one bit. Both must consist of whitespace runes only so that
// tokenization is invariant to the choice.
type Variants struct {
	Zero, One string
}

var DefaultVariants = Variants{Zero: " ", One: "  "}

type Config struct {
	Variants Variants
}

// doc is a lossless decomposition of a text into tokens and the
// whitespace around them.
type doc struct {
	leading  string
	tokens   []string
	gaps     []string // between consecutive tokens, len(tokens)-1
	trailing string
}

// parse normalizes text to NFC and splits it. Normalization runs on
// both the embed and extract paths so traversal is identical.
func parse(text string) doc {
	text = norm.NFC.String(text)
	var d doc
	i := 0
	for i < len(text) {
		ws := spanSpace(text[i:])
		tok := spanToken(text[i+len(ws):])
		if tok == "" {
			// trailing whitespace only
			if len(d.tokens) == 0 {
				d.leading += ws
			} else {
				d.trailing = ws
			}
			break
		}
		if len(d.tokens) == 0 {
			d.leading = ws
		} else {
			d.gaps = append(d.gaps, ws)
		}
		d.tokens = append(d.tokens, tok)
		i += len(ws) + len(tok)
	}
	return d
}

func (d doc) build() string {
	var b strings.Builder
	b.WriteString(d.leading)
	for i, tok := range d.tokens {
		if i > 0 {
			b.WriteString(d.gaps[i-1])
		}
		b.WriteString(tok)
	}
	b.WriteString(d.trailing)
	return b.String()
}

func spanSpace(s string) string {
	end := len(s)
	for i, r := range s {
		if !unicode.IsSpace(r) {
			end = i
			break
		}
	}
	return s[:end]
}

func spanToken(s string) string {
	end := len(s)
	for i, r := range s {
		if unicode.IsSpace(r) {
			end = i
			break
		}
	}
	return s[:end]
}

// Capacity returns the number of embeddable bits: one per inter-token
// gap. It depends on carrier shape only.
func Capacity(c Config, text string) int {
	n := len(strings.Fields(text))
	if n < 2 {
		return 0
	}
	return n - 1
}

// Embed rewrites the first frame-length gaps of text according to the
// bit values and returns the new text. The caller has already verified
// capacity; Embed fails only when the text has no gap at all.
func Embed(c Config, text string, bits *bitstream.BitReader[uint64]) (string, error) {
	d := parse(text)
	if len(d.tokens) < 2 {
		return "", ErrShortCarrier
	}
	total := bits.Bits()
	for i := 0; i < total && i < len(d.gaps); i++ {
		if b, _ := bits.ReadBitAt(i); b {
			d.gaps[i] = c.Variants.One
		} else {
			d.gaps[i] = c.Variants.Zero
		}
	}
	return d.build(), nil
}

// NewSource returns a lazy bit source over the inter-token gaps of
// text, in order. A gap equal to the one-variant reads as 1, anything
// else as 0. text itself is never modified.
func NewSource(c Config, text string) func() (bool, bool) {
	d := parse(text)
	i := 0
	return func() (bool, bool) {
		if i >= len(d.gaps) {
			return false, false
		}
		bit := d.gaps[i] == c.Variants.One
		i++
		return bit, true
	}
}
