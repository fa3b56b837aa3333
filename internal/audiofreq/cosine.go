package audiofreq

import "github.com/yyyoichi/stegano_zero/internal/dct"

var dctCache = dct.NewCache()

// cosine is the default transform: a precomputed-basis orthonormal
// DCT-II. Bits live in the lowest non-DC coefficients, indices 1..k.
type cosine struct {
	*dct.DCT
}

// NewDCT returns a DCT transform for frames of n samples. Instances are
// cached per frame length.
func NewDCT(n int) Transform {
	return cosine{dctCache.New(n)}
}

func (c cosine) Slots(k int) []int {
	slots := make([]int, k)
	for i := range slots {
		slots[i] = i + 1
	}
	return slots
}
