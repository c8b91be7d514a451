package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/checkpoint"
	"github.com/born-ml/micrograd/internal/datasets"
	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/born-ml/micrograd/internal/trainer"
)

func runBoundary(args []string) error {
	def := trainer.DefaultConfig()
	fs := flag.NewFlagSet("boundary", flag.ContinueOnError)
	modelPath := fs.String("model", "", "checkpoint written by train (required)")
	dataset := fs.String("dataset", "", "CSV dataset to overlay; empty generates moons")
	seed := fs.Int64("seed", def.Seed, "seed for generated moons")
	h := fs.Float64("step", 0.25, "mesh spacing")
	workers := fs.Int("workers", 0, "parallel workers, 0 = one per physical core")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" {
		return errors.New("-model is required")
	}

	model, _, err := checkpoint.LoadModel(*modelPath)
	if err != nil {
		return err
	}

	cfg := def
	cfg.Dataset = *dataset
	cfg.Seed = *seed
	var d *datasets.Dataset
	if d, err = trainer.LoadData(cfg); err != nil {
		return err
	}

	pcfg := parallel.DefaultConfig()
	if *workers > 0 {
		pcfg.NumWorkers = *workers
	}
	grid, err := trainer.DecisionGrid(model, d, *h, pcfg)
	if err != nil {
		return err
	}
	return grid.Render(os.Stdout, d)
}
