package stegano

import (
	"context"
	"image"
)

// Carrier is the shared capability surface over the three carrier
// variants. Each variant pins its own traversal order and bits-per-unit
// policy; the interface only unifies how callers drive them.
type Carrier interface {
	// CapacityBits is the number of bits this carrier instance can
	// hold, a function of its shape only.
	CapacityBits() int
	// Embed returns a new carrier of the same variant holding payload.
	// The receiver is never mutated.
	Embed(ctx context.Context, payload []byte) (Carrier, error)
	// Extract recovers the embedded payload. The receiver is read-only.
	Extract(ctx context.Context) ([]byte, error)
}

var (
	_ Carrier = (*ImageCarrier)(nil)
	_ Carrier = (*AudioCarrier)(nil)
	_ Carrier = (*TextCarrier)(nil)
)

// ImageCarrier tags an image with the codec that traverses it.
type ImageCarrier struct {
	Image image.Image
	codec *Codec
}

// NewImageCarrier wraps src for use through the Carrier interface.
func (c *Codec) NewImageCarrier(src image.Image) *ImageCarrier {
	return &ImageCarrier{Image: src, codec: c}
}

func (ic *ImageCarrier) CapacityBits() int {
	return ic.codec.ImageCapacity(ic.Image)
}

func (ic *ImageCarrier) Embed(ctx context.Context, payload []byte) (Carrier, error) {
	out, err := ic.codec.EmbedImage(ctx, ic.Image, payload)
	if err != nil {
		return nil, err
	}
	return &ImageCarrier{Image: out, codec: ic.codec}, nil
}

func (ic *ImageCarrier) Extract(ctx context.Context) ([]byte, error) {
	return ic.codec.ExtractImage(ctx, ic.Image)
}

// AudioCarrier tags a PCM sample sequence with the codec that
// traverses it.
type AudioCarrier struct {
	Samples []int
	codec   *Codec
}

// NewAudioCarrier wraps samples for use through the Carrier interface.
func (c *Codec) NewAudioCarrier(samples []int) *AudioCarrier {
	return &AudioCarrier{Samples: samples, codec: c}
}

func (ac *AudioCarrier) CapacityBits() int {
	return ac.codec.AudioCapacity(ac.Samples)
}

func (ac *AudioCarrier) Embed(ctx context.Context, payload []byte) (Carrier, error) {
	out, err := ac.codec.EmbedAudio(ctx, ac.Samples, payload)
	if err != nil {
		return nil, err
	}
	return &AudioCarrier{Samples: out, codec: ac.codec}, nil
}

func (ac *AudioCarrier) Extract(ctx context.Context) ([]byte, error) {
	return ac.codec.ExtractAudio(ctx, ac.Samples)
}

// TextCarrier tags a text with the codec that traverses it.
type TextCarrier struct {
	Text  string
	codec *Codec
}

// NewTextCarrier wraps text for use through the Carrier interface.
func (c *Codec) NewTextCarrier(text string) *TextCarrier {
	return &TextCarrier{Text: text, codec: c}
}

func (tc *TextCarrier) CapacityBits() int {
	return tc.codec.TextCapacity(tc.Text)
}

func (tc *TextCarrier) Embed(ctx context.Context, payload []byte) (Carrier, error) {
	out, err := tc.codec.EmbedText(ctx, tc.Text, payload)
	if err != nil {
		return nil, err
	}
	return &TextCarrier{Text: out, codec: tc.codec}, nil
}

func (tc *TextCarrier) Extract(ctx context.Context) ([]byte, error) {
	return tc.codec.ExtractText(ctx, tc.Text)
}
