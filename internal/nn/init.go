package nn

import "math/rand"

// Initializer returns the starting value of the next parameter.
type Initializer func() float64

// Uniform draws parameters from U(lo, hi) using rng.
//
// The classic choice for this network is Uniform(rng, -1, 1) for both
// weights and biases.
func Uniform(rng *rand.Rand, lo, hi float64) Initializer {
	return func() float64 {
		//nolint:gosec // weight initialization is not security-critical
		return lo + rng.Float64()*(hi-lo)
	}
}

// Constant initializes every parameter to c. Useful when weights are loaded
// from a checkpoint right after construction.
func Constant(c float64) Initializer {
	return func() float64 {
		return c
	}
}
