package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/datasets"
	"github.com/born-ml/micrograd/internal/trainer"
)

func runMoons(args []string) error {
	def := trainer.DefaultConfig()
	fs := flag.NewFlagSet("moons", flag.ContinueOnError)
	samples := fs.Int("samples", def.Samples, "number of samples")
	noise := fs.Float64("noise", def.Noise, "Gaussian noise standard deviation")
	seed := fs.Int64("seed", def.Seed, "random seed")
	out := fs.String("out", "", "output CSV file; empty writes to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *samples < 1 {
		return errors.Errorf("-samples must be positive, got %d", *samples)
	}

	//nolint:gosec // data generation is not security-critical
	d := datasets.MakeMoons(*samples, *noise, rand.New(rand.NewSource(*seed)))
	if *out == "" {
		return datasets.WriteCSV(os.Stdout, d)
	}
	return datasets.SaveCSV(*out, d)
}
