// Package audiofreq embeds bits in the frequency domain of PCM sample
// sequences. The samples are cut into fixed-size frames; each frame is
// forward-transformed, a deterministic subset of low-frequency
// coefficients is quantized to encode one bit each, and the frame is
// inverse-transformed back to samples. Samples are rounded and clamped
// to the carrier's sample bit depth, so the quantization step must
// leave enough margin to survive that rounding.
package audiofreq

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	bitstream "github.com/yyyoichi/bitstream-go"
)

var (
	ErrShortCarrier = errors.New("sample sequence shorter than one frame")
	// ErrClipped reports a frame whose quantized coefficients pushed
	// samples past the bit depth range, so clamping removed enough
	// energy to flip an embedded bucket.
	ErrClipped = errors.New("bit depth clamping destroyed embedded bits")
)

// Transform converts one frame of samples into frequency coefficients
// and back. Implementations must be safe for concurrent Exec calls.
type Transform interface {
	// Len is the frame length in samples.
	Len() int
	// Exec computes the forward transform of frame and returns the
	// coefficients with a closure writing the inverse transform of the
	// (possibly modified) coefficients back into frame.
	Exec(frame []float64) (coeffs []float64, inverse func())
	// Slots returns the indices into the coefficient slice that carry
	// hidden bits, lowest non-DC frequency first.
	Slots(k int) []int
}

type Config struct {
	// FrameSize is the transform frame length in samples.
	FrameSize int
	// CoeffsPerFrame is the number of bits carried per frame.
	CoeffsPerFrame int
	// QuantStep is the quantization step of the bit encoding. Larger
	// values are more robust against rounding noise but more audible.
	QuantStep float64
	// SampleBitDepth bounds the valid sample range used for clamping.
	SampleBitDepth int
	// Transform is the frequency transform strategy.
	Transform Transform
}

// Capacity returns the number of embeddable bits for a carrier of
// sampleCount samples. It depends on carrier shape only.
func Capacity(c Config, sampleCount int) int {
	return sampleCount / c.FrameSize * c.CoeffsPerFrame
}

func (c Config) sampleRange() (lo, hi float64) {
	half := int64(1) << (c.SampleBitDepth - 1)
	return float64(-half), float64(half - 1)
}

// quantize moves coefficient v to the center of the nearest bucket
// matching bit: offset step/4 inside the bucket for a zero bit, 3step/4
// for a one bit. readBit recovers the bit as long as the coefficient
// has drifted by less than step/4.
func quantize(v, step float64, bit bool) float64 {
	offset := step / 4
	if bit {
		offset = 3 * step / 4
	}
	return math.Floor(v/step)*step + offset
}

func readBit(v, step float64) bool {
	return v-math.Floor(v/step)*step >= step/2
}

// Embed writes the framed bits into a copy of samples and returns the
// copy. samples itself is never modified; frames beyond the frame bits
// and trailing samples shorter than one frame keep their exact values.
// The caller has already verified capacity.
//
// Every written frame is read back through the forward transform before
// Embed returns. Rounding noise stays inside the decision margin, but a
// carrier pinned near full scale gets clamped and the clamp can flip a
// quantization bucket; such embeds fail with ErrClipped rather than
// produce a carrier that extracts garbage.
func Embed(c Config, samples []int, bits *bitstream.BitReader[uint64]) ([]int, error) {
	if len(samples) < c.FrameSize {
		return nil, ErrShortCarrier
	}
	out := make([]int, len(samples))
	copy(out, samples)

	// Materialize the bit sequence so workers never share the reader.
	total := bits.Bits()
	values := make([]bool, total)
	for i := range values {
		values[i], _ = bits.ReadBitAt(i)
	}

	var (
		slots   = c.Transform.Slots(c.CoeffsPerFrame)
		nFrames = (total + c.CoeffsPerFrame - 1) / c.CoeffsPerFrame
		lo, hi  = c.sampleRange()
		clipped atomic.Bool
	)
	// Frame f carries bits [f*k, f*k+k); the assignment is fixed, so
	// frames can be processed on any worker without reordering the
	// abstract bit sequence.
	forEachFrame(nFrames, func(f int) {
		frame := make([]float64, c.FrameSize)
		for i := range frame {
			frame[i] = float64(out[f*c.FrameSize+i])
		}
		coeffs, inverse := c.Transform.Exec(frame)
		for j, slot := range slots {
			at := f*c.CoeffsPerFrame + j
			if at >= total {
				break
			}
			coeffs[slot] = quantize(coeffs[slot], c.QuantStep, values[at])
		}
		inverse()
		for i, v := range frame {
			v = math.Round(v)
			if v < lo {
				v = lo
			}
			if v > hi {
				v = hi
			}
			out[f*c.FrameSize+i] = int(v)
			frame[i] = v
		}
		// Read the written frame back exactly the way extraction will.
		written, _ := c.Transform.Exec(frame)
		for j, slot := range slots {
			at := f*c.CoeffsPerFrame + j
			if at >= total {
				break
			}
			if readBit(written[slot], c.QuantStep) != values[at] {
				clipped.Store(true)
				return
			}
		}
	})
	if clipped.Load() {
		return nil, ErrClipped
	}
	return out, nil
}

// NewSource returns a lazy bit source reading the quantization buckets
// of the embedding coefficients, frame by frame. samples is read-only.
func NewSource(c Config, samples []int) (func() (bool, bool), error) {
	if len(samples) < c.FrameSize {
		return nil, ErrShortCarrier
	}
	var (
		slots   = c.Transform.Slots(c.CoeffsPerFrame)
		nFrames = len(samples) / c.FrameSize
		f       = 0
		j       = 0
		coeffs  []float64
	)
	return func() (bool, bool) {
		if f >= nFrames {
			return false, false
		}
		if coeffs == nil {
			frame := make([]float64, c.FrameSize)
			for i := range frame {
				frame[i] = float64(samples[f*c.FrameSize+i])
			}
			coeffs, _ = c.Transform.Exec(frame)
		}
		bit := readBit(coeffs[slots[j]], c.QuantStep)
		j++
		if j == len(slots) {
			j = 0
			f++
			coeffs = nil
		}
		return bit, true
	}, nil
}

// embedWorkers bounds the goroutines used per Embed call.
const embedWorkers = 3

func forEachFrame(nFrames int, fn func(f int)) {
	workers := embedWorkers
	if workers > nFrames {
		workers = nFrames
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func(w int) {
			defer wg.Done()
			for f := w; f < nFrames; f += workers {
				fn(f)
			}
		}(w)
	}
	wg.Wait()
}
