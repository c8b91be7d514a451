// Package datasets provides the small two-dimensional classification
// datasets used to train and evaluate networks built on the scalar engine.
//
// Labels are stored as 0/1 class ids. Signed converts them to the ±1
// targets the hinge loss expects.
package datasets

import (
	"fmt"
	"math/rand"
)

// Dataset holds feature rows and one label per row.
type Dataset struct {
	X [][]float64 // [num_samples, num_features]
	Y []float64   // [num_samples]
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Y)
}

// Features returns the width of a feature row, or 0 for an empty dataset.
func (d *Dataset) Features() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Signed returns the 0/1 labels mapped to ±1: y*2 - 1.
func (d *Dataset) Signed() []float64 {
	ys := make([]float64, len(d.Y))
	for i, y := range d.Y {
		ys[i] = y*2 - 1
	}
	return ys
}

// Subset returns the samples at idx. Rows are shared, not copied.
func (d *Dataset) Subset(idx []int) *Dataset {
	sub := &Dataset{
		X: make([][]float64, len(idx)),
		Y: make([]float64, len(idx)),
	}
	for i, j := range idx {
		sub.X[i] = d.X[j]
		sub.Y[i] = d.Y[j]
	}
	return sub
}

// Batch samples size rows without replacement. A size of zero or one at
// least as large as the dataset returns d itself.
func (d *Dataset) Batch(rng *rand.Rand, size int) *Dataset {
	if size <= 0 || size >= d.Len() {
		return d
	}
	return d.Subset(rng.Perm(d.Len())[:size])
}

// Shuffle permutes the samples in place.
func (d *Dataset) Shuffle(rng *rand.Rand) {
	rng.Shuffle(d.Len(), func(i, j int) {
		d.X[i], d.X[j] = d.X[j], d.X[i]
		d.Y[i], d.Y[j] = d.Y[j], d.Y[i]
	})
}

// String implements fmt.Stringer.
func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset(samples=%d, features=%d)", d.Len(), d.Features())
}
