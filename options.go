package stegano

import (
	"fmt"
	"unicode"

	"github.com/yyyoichi/stegano_zero/internal/textpattern"
)

type Option func(*Codec) error

// WithLSBDepth uses the given number of low-order bits per image
// channel value, between 1 and 4. Depth 1 changes each channel value by
// at most one; higher depths trade visual neutrality for capacity.
func WithLSBDepth(bits int) Option {
	return func(c *Codec) error {
		if bits < 1 || bits > 4 {
			return fmt.Errorf("lsb depth must be between 1 and 4, got %d", bits)
		}
		c.image.Depth = bits
		return nil
	}
}

// WithAlphaChannel includes the alpha byte in the image traversal,
// raising capacity by a third. Extraction must use the same setting.
func WithAlphaChannel() Option {
	return func(c *Codec) error {
		c.image.UseAlpha = true
		return nil
	}
}

// WithShuffleSeed replaces the sequential image traversal with a
// deterministic permutation seeded by seed, scattering the payload over
// the whole image instead of its top rows. Extraction must use the same
// seed. A zero seed keeps the sequential order.
func WithShuffleSeed(seed int64) Option {
	return func(c *Codec) error {
		c.image.ShuffleSeed = seed
		return nil
	}
}

// WithFrameSize sets the audio transform frame length in samples.
// Smaller frames raise capacity, larger frames spread each bit's energy
// more thinly.
func WithFrameSize(n int) Option {
	return func(c *Codec) error {
		if n < 8 {
			return fmt.Errorf("frame size must be at least 8 samples, got %d", n)
		}
		c.audio.FrameSize = n
		return nil
	}
}

// WithCoeffsPerFrame carries k bits per audio frame in the k lowest
// non-DC coefficients, multiplying capacity by k.
func WithCoeffsPerFrame(k int) Option {
	return func(c *Codec) error {
		if k < 1 {
			return fmt.Errorf("coefficients per frame must be positive, got %d", k)
		}
		c.audio.CoeffsPerFrame = k
		return nil
	}
}

// WithQuantStep sets the quantization step of the audio bit encoding.
// Larger values survive more sample-domain noise but perturb the signal
// more. The default suits the DCT transform; the FFT transform's
// unnormalized coefficients usually need a larger step.
func WithQuantStep(step float64) Option {
	return func(c *Codec) error {
		if step <= 0 {
			return fmt.Errorf("quantization step must be positive, got %v", step)
		}
		c.audio.QuantStep = step
		return nil
	}
}

// WithSampleBitDepth bounds the valid audio sample range used for
// clamping after the inverse transform. Supported depths are 8, 16, 24
// and 32.
func WithSampleBitDepth(depth int) Option {
	return func(c *Codec) error {
		switch depth {
		case 8, 16, 24, 32:
			c.audio.SampleBitDepth = depth
			return nil
		}
		return fmt.Errorf("unsupported sample bit depth %d", depth)
	}
}

// WithTransform injects a custom audio frequency transform. Its frame
// length must match the configured frame size.
func WithTransform(t Transform) Option {
	return func(c *Codec) error {
		c.audio.Transform = t
		return nil
	}
}

// WithTextVariants sets the whitespace pair written for zero and one
// bits between text tokens. Both variants must be distinct, non-empty,
// and whitespace-only so that tokenization stays invariant to the bit
// values.
func WithTextVariants(zero, one string) Option {
	return func(c *Codec) error {
		if zero == "" || one == "" || zero == one {
			return fmt.Errorf("text variants must be distinct and non-empty")
		}
		for _, v := range []string{zero, one} {
			for _, r := range v {
				if !unicode.IsSpace(r) {
					return fmt.Errorf("text variant %q contains non-whitespace rune %q", v, r)
				}
			}
		}
		c.text.Variants = textpattern.Variants{Zero: zero, One: one}
		return nil
	}
}
