// Package stegano hides byte payloads inside in-memory carriers and
// recovers them from the modified carrier alone. Three carrier media
// are supported: still images (channel-value LSB), PCM audio
// (frequency-domain quantization), and plain text (inter-token
// whitespace patterns).
//
// The codec is stateless and never performs file access; it operates on
// decoded pixel, sample, or text data supplied by the caller and
// returns new data of the same structural type. Decoding and encoding
// media containers is the caller's concern.
//
// Every engine shares one wire format: a 32-bit big-endian byte-length
// header followed by the payload bits, MSB-first per byte, distributed
// over the carrier's embeddable units in a fixed traversal order.
package stegano

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/yyyoichi/stegano_zero/internal/audiofreq"
	"github.com/yyyoichi/stegano_zero/internal/frame"
	"github.com/yyyoichi/stegano_zero/internal/imagelsb"
	"github.com/yyyoichi/stegano_zero/internal/textpattern"
)

var (
	// ErrCapacityExceeded reports that the framed payload needs more
	// bits than the carrier can hold. The carrier is never partially
	// written.
	ErrCapacityExceeded = errors.New("framed payload exceeds carrier capacity")
	// ErrPayloadTooLarge reports a payload whose byte length does not
	// fit the 32-bit length header.
	ErrPayloadTooLarge = errors.New("payload too large for length header")
	// ErrTruncatedStream reports that extraction found fewer bits than
	// the length header declared: a wrong, damaged, or recompressed
	// carrier.
	ErrTruncatedStream = errors.New("carrier holds fewer bits than declared")
	// ErrInsufficientCarrier reports a carrier with too few embeddable
	// units regardless of payload size, such as audio shorter than one
	// transform frame or text with fewer than two tokens.
	ErrInsufficientCarrier = errors.New("carrier has too few embeddable units")
	// ErrCarrierClipped reports an audio carrier pinned so close to full
	// scale that clamping to the sample bit depth would destroy the
	// embedded bits. The carrier is never partially written; use a
	// smaller quantization step or a carrier with more headroom.
	ErrCarrierClipped = errors.New("carrier amplitude leaves no headroom for embedding")
)

// Transform is the injectable audio frequency transform strategy.
type Transform = audiofreq.Transform

// FrameBits returns the framed size in bits of a payload of n bytes,
// for capacity planning before an embed call.
func FrameBits(n int) int {
	return frame.BitLen(n)
}

// Codec holds the per-medium embedding policies. A Codec is immutable
// after New and safe for concurrent use; the zero configuration of
// every option is replaced by a documented default. Embed and extract
// must run with identical options or the bit traversal will not line
// up.
type Codec struct {
	image imagelsb.Config
	audio audiofreq.Config
	text  textpattern.Config
}

// New initializes a codec. For default values, refer to the init
// function.
func New(opts ...Option) (*Codec, error) {
	c := new(Codec)
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Codec) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.image.Depth == 0 {
		c.image.Depth = 1
	}
	if c.audio.FrameSize == 0 {
		c.audio.FrameSize = 64
	}
	if c.audio.CoeffsPerFrame == 0 {
		c.audio.CoeffsPerFrame = 1
	}
	if c.audio.QuantStep == 0 {
		c.audio.QuantStep = 32
	}
	if c.audio.SampleBitDepth == 0 {
		c.audio.SampleBitDepth = 16
	}
	if c.audio.Transform == nil {
		c.audio.Transform = audiofreq.NewDCT(c.audio.FrameSize)
	}
	if c.text.Variants == (textpattern.Variants{}) {
		c.text.Variants = textpattern.DefaultVariants
	}
	if c.audio.Transform.Len() != c.audio.FrameSize {
		return fmt.Errorf("transform frame length %d does not match frame size %d",
			c.audio.Transform.Len(), c.audio.FrameSize)
	}
	if c.audio.CoeffsPerFrame >= c.audio.FrameSize/2 {
		return fmt.Errorf("coefficients per frame %d too large for frame size %d",
			c.audio.CoeffsPerFrame, c.audio.FrameSize)
	}
	return nil
}

// ImageCapacity returns the embeddable bits of an image carrier. It is
// a function of the image bounds only.
func (c *Codec) ImageCapacity(src image.Image) int {
	return imagelsb.Capacity(c.image, src.Bounds())
}

// AudioCapacity returns the embeddable bits of a sample sequence.
func (c *Codec) AudioCapacity(samples []int) int {
	return audiofreq.Capacity(c.audio, len(samples))
}

// TextCapacity returns the embeddable bits of a text carrier.
func (c *Codec) TextCapacity(text string) int {
	return textpattern.Capacity(c.text, text)
}

// EmbedImage hides payload in the low-order channel bits of src and
// returns the modified copy. src is never mutated.
//
// Traversal is pixel row-major, channel minor over R, G, B; the alpha
// byte is skipped unless the codec was built with WithAlphaChannel.
//
// The bits live in the premultiplied-alpha RGBA rendering of src.
// Encoders that store non-premultiplied channels, such as PNG for
// non-opaque images, rewrite those bytes on save, so carriers with
// translucent pixels may not survive a file round trip. Fully opaque
// carriers are unaffected.
func (c *Codec) EmbedImage(ctx context.Context, src image.Image, payload []byte) (image.Image, error) {
	bits, err := frame.Frame(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	if capacity := c.ImageCapacity(src); bits.Bits() > capacity {
		return nil, fmt.Errorf("%w: frame %d bits, capacity %d bits", ErrCapacityExceeded, bits.Bits(), capacity)
	}
	return imagelsb.Embed(c.image, src, bits), nil
}

// ExtractImage recovers the payload embedded in src. src is read-only.
func (c *Codec) ExtractImage(ctx context.Context, src image.Image) ([]byte, error) {
	payload, err := frame.Unframe(imagelsb.NewSource(c.image, src))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedStream, err)
	}
	return payload, nil
}

// EmbedAudio hides payload in the frequency domain of the PCM samples
// and returns the modified copy. samples is never mutated.
//
// Samples are processed in fixed frames; each frame carries bits in the
// quantization buckets of its lowest non-DC transform coefficients.
// Untouched frames and the trailing partial frame keep their exact
// values. Every written frame is verified to extract back correctly;
// carriers pinned near full scale fail with ErrCarrierClipped instead
// of round-tripping garbage.
func (c *Codec) EmbedAudio(ctx context.Context, samples []int, payload []byte) ([]int, error) {
	if len(samples) < c.audio.FrameSize {
		return nil, fmt.Errorf("%w: %d samples, frame size %d", ErrInsufficientCarrier, len(samples), c.audio.FrameSize)
	}
	bits, err := frame.Frame(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	if capacity := c.AudioCapacity(samples); bits.Bits() > capacity {
		return nil, fmt.Errorf("%w: frame %d bits, capacity %d bits", ErrCapacityExceeded, bits.Bits(), capacity)
	}
	out, err := audiofreq.Embed(c.audio, samples, bits)
	if errors.Is(err, audiofreq.ErrClipped) {
		return nil, fmt.Errorf("%w: %w", ErrCarrierClipped, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientCarrier, err)
	}
	return out, nil
}

// ExtractAudio recovers the payload embedded in samples. samples is
// read-only.
func (c *Codec) ExtractAudio(ctx context.Context, samples []int) ([]byte, error) {
	src, err := audiofreq.NewSource(c.audio, samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientCarrier, err)
	}
	payload, err := frame.Unframe(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedStream, err)
	}
	return payload, nil
}

// EmbedText hides payload in the inter-token whitespace of text and
// returns the modified text. Token content is never altered; gaps
// beyond the frame, leading and trailing whitespace are preserved.
//
// The input is NFC-normalized before tokenization on both the embed and
// extract paths so the gap traversal is identical.
func (c *Codec) EmbedText(ctx context.Context, text string, payload []byte) (string, error) {
	if textpattern.Capacity(c.text, text) == 0 {
		return "", fmt.Errorf("%w: fewer than two tokens", ErrInsufficientCarrier)
	}
	bits, err := frame.Frame(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	if capacity := c.TextCapacity(text); bits.Bits() > capacity {
		return "", fmt.Errorf("%w: frame %d bits, capacity %d bits", ErrCapacityExceeded, bits.Bits(), capacity)
	}
	out, err := textpattern.Embed(c.text, text, bits)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInsufficientCarrier, err)
	}
	return out, nil
}

// ExtractText recovers the payload embedded in text.
func (c *Codec) ExtractText(ctx context.Context, text string) ([]byte, error) {
	payload, err := frame.Unframe(textpattern.NewSource(c.text, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedStream, err)
	}
	return payload, nil
}

// EmbedImage embeds a payload into an image with the specified options.
// This is a convenience function that creates a Codec and calls its
// EmbedImage method.
func EmbedImage(ctx context.Context, src image.Image, payload []byte, opts ...Option) (image.Image, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.EmbedImage(ctx, src, payload)
}

// ExtractImage extracts a payload from an image with the specified options.
func ExtractImage(ctx context.Context, src image.Image, opts ...Option) ([]byte, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.ExtractImage(ctx, src)
}

// EmbedAudio embeds a payload into PCM samples with the specified options.
func EmbedAudio(ctx context.Context, samples []int, payload []byte, opts ...Option) ([]int, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.EmbedAudio(ctx, samples, payload)
}

// ExtractAudio extracts a payload from PCM samples with the specified options.
func ExtractAudio(ctx context.Context, samples []int, opts ...Option) ([]byte, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.ExtractAudio(ctx, samples)
}

// EmbedText embeds a payload into text with the specified options.
func EmbedText(ctx context.Context, text string, payload []byte, opts ...Option) (string, error) {
	c, err := New(opts...)
	if err != nil {
		return "", err
	}
	return c.EmbedText(ctx, text, payload)
}

// ExtractText extracts a payload from text with the specified options.
func ExtractText(ctx context.Context, text string, opts ...Option) ([]byte, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.ExtractText(ctx, text)
}
