// Package imagelsb embeds bits in the low-order bits of image channel
// values. Embeddable units are the R, G, B (optionally A) bytes of an
// RGBA rendering of the carrier, visited pixel row-major and channel
// minor. Each unit holds Depth bits, written MSB-first within the unit.
package imagelsb

import (
	"image"
	"image/draw"
	"math/rand"

	bitstream "github.com/yyyoichi/bitstream-go"
)

type Config struct {
	// Depth is the number of low-order bits used per channel value, 1..4.
	Depth int
	// UseAlpha includes the alpha byte in the traversal. Off by default
	// so fully opaque carriers stay fully opaque.
	UseAlpha bool
	// ShuffleSeed, when non-zero, replaces the sequential unit order
	// with a deterministic seeded permutation. The same seed must be
	// configured for extraction.
	ShuffleSeed int64
}

func (c Config) channels() int {
	if c.UseAlpha {
		return 4
	}
	return 3
}

// Capacity returns the number of embeddable bits for a carrier of the
// given bounds. It depends on carrier shape only.
func Capacity(c Config, bounds image.Rectangle) int {
	return bounds.Dx() * bounds.Dy() * c.channels() * c.Depth
}

// clone renders src into a fresh RGBA image. Both embedding and
// extraction read channel bytes from this rendering so the two sides
// always agree on values. The rendering is alpha-premultiplied, so
// translucent carriers only survive encoders that keep premultiplied
// channels.
func clone(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// pixOffset maps a unit index to its byte offset in RGBA Pix data.
func (c Config) pixOffset(img *image.RGBA, unit int) int {
	ch := c.channels()
	pixel := unit / ch
	channel := unit % ch
	width := img.Bounds().Dx()
	x := pixel % width
	y := pixel / width
	return y*img.Stride + x*4 + channel
}

// order returns the unit visiting order, or nil for the sequential one.
func (c Config) order(units int) []int {
	if c.ShuffleSeed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(c.ShuffleSeed)).Perm(units)
}

// Embed writes the framed bits into a copy of src and returns the copy.
// src itself is never modified. Units beyond the frame keep their
// original values exactly. The caller has already verified capacity.
func Embed(c Config, src image.Image, bits *bitstream.BitReader[uint64]) *image.RGBA {
	dst := clone(src)
	var (
		units = Capacity(c, src.Bounds()) / c.Depth
		order = c.order(units)
		mask  = byte(1<<c.Depth - 1)
		total = bits.Bits()
		bi    = 0
	)
	for u := 0; u < units && bi < total; u++ {
		unit := u
		if order != nil {
			unit = order[u]
		}
		// Gather up to Depth bits, MSB-first; a short trailing chunk is
		// padded with zero bits on the right.
		var chunk byte
		for range c.Depth {
			chunk <<= 1
			if bi < total {
				if b, _ := bits.ReadBitAt(bi); b {
					chunk |= 1
				}
				bi++
			}
		}
		idx := c.pixOffset(dst, unit)
		dst.Pix[idx] = dst.Pix[idx]&^mask | chunk
	}
	return dst
}

// NewSource returns a lazy bit source over the low-order bits of src in
// the same unit order used by Embed. src is read-only; the consumer
// decides how many bits to take.
func NewSource(c Config, src image.Image) func() (bool, bool) {
	var (
		img   = clone(src)
		units = Capacity(c, src.Bounds()) / c.Depth
		order = c.order(units)
		u     = 0
		shift = c.Depth // bit position within the current unit
	)
	return func() (bool, bool) {
		if u >= units {
			return false, false
		}
		unit := u
		if order != nil {
			unit = order[u]
		}
		shift--
		v := img.Pix[c.pixOffset(img, unit)]
		bit := v>>shift&1 == 1
		if shift == 0 {
			shift = c.Depth
			u++
		}
		return bit, true
	}
}
