package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/checkpoint"
	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/gradcheck"
	"github.com/born-ml/micrograd/internal/nn"
)

// runGradcheck checks the reference expressions, or the input gradient of
// a saved model's score when -model is given.
func runGradcheck(args []string) error {
	fs := flag.NewFlagSet("gradcheck", flag.ContinueOnError)
	modelPath := fs.String("model", "", "check the input gradient of this checkpoint")
	at := fs.String("x", "0.5,-0.25", "comma-separated input for -model")
	step := fs.Float64("step", gradcheck.DefaultStep, "finite-difference step")
	tol := fs.Float64("tol", gradcheck.DefaultTolerance, "allowed relative error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts := gradcheck.Options{Step: *step, Tolerance: *tol}

	if *modelPath != "" {
		model, _, err := checkpoint.LoadModel(*modelPath)
		if err != nil {
			return err
		}
		x, err := parseFloats(*at)
		if err != nil {
			return errors.Wrap(err, "invalid -x")
		}
		if len(x) != model.Inputs() {
			return errors.Errorf("-x has %d values, model expects %d", len(x), model.Inputs())
		}

		weights := model.Weights()
		score := func(g *engine.Graph, in []engine.Value) engine.Value {
			m := nn.NewMLP(g, model.Inputs(), model.Outputs(), nn.Constant(0))
			for i, p := range m.Parameters() {
				p.SetData(weights[i])
			}
			return m.Forward(in)[0]
		}
		return report(model.String(), score, x, opts)
	}

	failed := 0
	for _, e := range gradcheck.Expressions() {
		if err := report(e.Name, e.F, e.X, opts); err != nil {
			fmt.Println(err)
			failed++
		}
	}
	if failed > 0 {
		return errors.WithMessagef(gradcheck.ErrMismatch, "%d expressions failed", failed)
	}
	return nil
}

func report(name string, f gradcheck.Func, x []float64, opts gradcheck.Options) error {
	r, err := gradcheck.Check(f, x, opts)
	status := "ok"
	if err != nil {
		status = "FAIL"
	}
	fmt.Printf("%s [%s]\n%s", name, status, r)
	return err
}
