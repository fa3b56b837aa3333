package dct

import "math"

// DCT computes the one-dimensional orthonormal DCT-II of fixed-length
// sample frames using a precomputed basis. Because the basis is
// orthonormal, the inverse transform is its transpose.
type DCT struct {
	n   int
	phi []float64
}

func New(n int) *DCT {
	d := &DCT{n: n}
	nf := float64(n)

	d.phi = make([]float64, n*n)
	for j := range n {
		// i = 0
		d.phi[j] = 1.0 / math.Sqrt(nf)
	}
	for i := 1; i < n; i++ {
		for j := range n {
			d.phi[i*n+j] = math.Sqrt(2.0/nf) *
				math.Cos(
					(float64(i)*math.Pi*(float64(j)*2+1))/
						(2.0*nf),
				)
		}
	}
	return d
}

func (d *DCT) Len() int { return d.n }

// Exec computes the forward transform of data and returns the
// coefficients together with a closure that writes the inverse
// transform of the (possibly modified) coefficients back into data.
func (d *DCT) Exec(data []float64) ([]float64, func()) {
	n := d.n
	phi := d.phi
	result := make([]float64, n)

	// Forward DCT
	for i := range n {
		sum := 0.0
		for j := range n {
			sum += phi[i*n+j] * data[j]
		}
		result[i] = sum
	}

	// Return inverse DCT function
	idct := func() {
		for j := range n {
			sum := 0.0
			for i := range n {
				sum += phi[i*n+j] * result[i]
			}
			data[j] = sum
		}
	}
	return result, idct
}
