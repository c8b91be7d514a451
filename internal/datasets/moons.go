package datasets

import (
	"math"
	"math/rand"
)

// MakeMoons generates two interleaving half circles.
//
// The outer moon (label 0) is (cos t, sin t) and the inner moon (label 1)
// is (1 - cos t, 0.5 - sin t) for t evenly spaced over [0, π]. The outer
// moon gets n/2 points and the inner one the rest. Samples are shuffled
// and then Gaussian noise with standard deviation noise is added to every
// coordinate. A non-positive n yields an empty dataset.
func MakeMoons(n int, noise float64, rng *rand.Rand) *Dataset {
	n = max(n, 0)
	nOut := n / 2
	nIn := n - nOut

	d := &Dataset{
		X: make([][]float64, 0, n),
		Y: make([]float64, 0, n),
	}
	for _, t := range linspace(0, math.Pi, nOut) {
		d.X = append(d.X, []float64{math.Cos(t), math.Sin(t)})
		d.Y = append(d.Y, 0)
	}
	for _, t := range linspace(0, math.Pi, nIn) {
		d.X = append(d.X, []float64{1 - math.Cos(t), 1 - math.Sin(t) - 0.5})
		d.Y = append(d.Y, 1)
	}

	d.Shuffle(rng)

	if noise > 0 {
		for _, row := range d.X {
			for j := range row {
				row[j] += rng.NormFloat64() * noise
			}
		}
	}
	return d
}

// linspace returns n evenly spaced values over [lo, hi], endpoints
// included.
func linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	xs[n-1] = hi
	return xs
}
