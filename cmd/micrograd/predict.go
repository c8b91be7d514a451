package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/checkpoint"
	"github.com/born-ml/micrograd/internal/datasets"
	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/born-ml/micrograd/internal/trainer"
)

// runPredict scores either the inputs given as arguments ("0.5,-0.2 1,0")
// or every row of a CSV dataset.
func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	modelPath := fs.String("model", "", "checkpoint written by train (required)")
	dataset := fs.String("dataset", "", "CSV dataset to score and evaluate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" {
		return errors.New("-model is required")
	}

	model, header, err := checkpoint.LoadModel(*modelPath)
	if err != nil {
		return err
	}
	fmt.Printf("loaded %s from run %s\n", model, header.RunID)

	if *dataset != "" {
		d, err := datasets.LoadCSV(*dataset)
		if err != nil {
			return err
		}
		if d.Features() != model.Inputs() {
			return errors.Errorf("dataset has %d features, model expects %d", d.Features(), model.Inputs())
		}
		scores := model.PredictBatch(d.X, parallel.DefaultConfig())
		for i, s := range scores {
			fmt.Printf("%v -> %+.6f (label %g)\n", d.X[i], s[0], d.Y[i])
		}
		fmt.Printf("accuracy %.1f%%\n", trainer.Evaluate(model, d, parallel.DefaultConfig())*100)
		return nil
	}

	if fs.NArg() == 0 {
		return errors.New("no inputs: pass comma-separated feature rows or -dataset")
	}
	for _, arg := range fs.Args() {
		x, err := parseFloats(arg)
		if err != nil {
			return errors.Wrapf(err, "input %q", arg)
		}
		if len(x) != model.Inputs() {
			return errors.Errorf("input %q has %d features, model expects %d", arg, len(x), model.Inputs())
		}
		score := model.Predict(x)[0]
		class := 0
		if score > 0 {
			class = 1
		}
		fmt.Printf("%v -> %+.6f (class %d)\n", x, score, class)
	}
	return nil
}
