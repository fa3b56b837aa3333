package audiofreq

import "gonum.org/v1/gonum/dsp/fourier"

// Fourier is an alternative transform built on gonum's real FFT. The
// coefficient slice interleaves real and imaginary parts of the
// half-spectrum; bits live in the real parts of the lowest non-DC
// coefficients. The gonum transform is unnormalized, so the inverse
// divides by the frame length.
//
// FFT coefficients scale with the frame length, so a larger QuantStep
// than the DCT default is usually needed.
type Fourier struct {
	n int
}

func NewFourier(n int) *Fourier {
	return &Fourier{n: n}
}

func (f *Fourier) Len() int { return f.n }

func (f *Fourier) Exec(frame []float64) ([]float64, func()) {
	// fourier.FFT keeps scratch state; allocate per call so concurrent
	// Exec calls stay independent.
	fft := fourier.NewFFT(f.n)
	coeff := fft.Coefficients(nil, frame)
	flat := make([]float64, 2*len(coeff))
	for i, c := range coeff {
		flat[2*i] = real(c)
		flat[2*i+1] = imag(c)
	}
	inverse := func() {
		for i := range coeff {
			coeff[i] = complex(flat[2*i], flat[2*i+1])
		}
		seq := fft.Sequence(nil, coeff)
		for i := range frame {
			frame[i] = seq[i] / float64(f.n)
		}
	}
	return flat, inverse
}

func (f *Fourier) Slots(k int) []int {
	slots := make([]int, k)
	for i := range slots {
		slots[i] = 2 * (i + 1)
	}
	return slots
}
