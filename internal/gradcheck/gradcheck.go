// Package gradcheck compares gradients from reverse-mode differentiation
// with central finite differences.
//
// The function under test is rebuilt on a fresh graph for every evaluation,
// so it must be a pure function of its inputs.
//
// Example:
//
//	f := func(g *engine.Graph, x []engine.Value) engine.Value {
//	    return x[0].Mul(x[1]).Tanh()
//	}
//	report, err := gradcheck.Check(f, []float64{0.3, -1.2}, gradcheck.Options{})
package gradcheck

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/micrograd/internal/engine"
)

// ErrMismatch is returned when an analytic gradient disagrees with the
// finite-difference estimate.
var ErrMismatch = errors.New("gradient mismatch")

// Default settings.
const (
	DefaultStep      = 1e-6
	DefaultTolerance = 1e-4
)

// Func builds a scalar objective on g from the given input leaves.
type Func func(g *engine.Graph, inputs []engine.Value) engine.Value

// Options configures a gradient check.
type Options struct {
	Step      float64 // Finite-difference step (default: 1e-6)
	Tolerance float64 // Allowed error, relative to max(1, |numeric|) (default: 1e-4)
}

func (o Options) withDefaults() Options {
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// Result is the comparison for one input.
type Result struct {
	Index    int
	Analytic float64
	Numeric  float64
	Err      float64 // |analytic - numeric| / max(1, |numeric|)
}

// Report collects the per-input results of a check.
type Report struct {
	Value   float64 // Objective value at the checked point
	Results []Result
	MaxErr  float64
}

// String renders the report as one line per input.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "f(x) = %.6g, max error %.3g\n", r.Value, r.MaxErr)
	for _, res := range r.Results {
		fmt.Fprintf(&sb, "  x[%d]: analytic %+.8f  numeric %+.8f  err %.3g\n",
			res.Index, res.Analytic, res.Numeric, res.Err)
	}
	return sb.String()
}

// Analytic evaluates f at x and returns its value and the gradient computed
// by backpropagation.
func Analytic(f Func, x []float64) (float64, []float64) {
	g := engine.NewGraph()
	inputs := g.Leaves(x...)
	out := f(g, inputs)
	out.Backward()

	grad := make([]float64, len(inputs))
	for i, in := range inputs {
		grad[i] = in.Grad()
	}
	return out.Data(), grad
}

// Numeric estimates the gradient of f at x with central differences.
func Numeric(f Func, x []float64, step float64) []float64 {
	eval := func(p []float64) float64 {
		g := engine.NewGraph()
		return f(g, g.Leaves(p...)).Data()
	}
	return fd.Gradient(nil, eval, x, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
}

// Check compares the analytic and numeric gradients of f at x. The report
// is always returned; the error wraps ErrMismatch when any input exceeds
// the tolerance.
func Check(f Func, x []float64, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	value, analytic := Analytic(f, x)
	numeric := Numeric(f, x, opts.Step)

	report := &Report{Value: value, Results: make([]Result, len(x))}
	worst := -1
	for i := range x {
		e := math.Abs(analytic[i]-numeric[i]) / math.Max(1, math.Abs(numeric[i]))
		if math.IsNaN(e) {
			e = math.Inf(1)
		}
		report.Results[i] = Result{Index: i, Analytic: analytic[i], Numeric: numeric[i], Err: e}
		if e > report.MaxErr || worst < 0 {
			report.MaxErr = e
			worst = i
		}
	}

	if report.MaxErr > opts.Tolerance {
		r := report.Results[worst]
		return report, errors.WithMessagef(ErrMismatch,
			"input %d: analytic %g, numeric %g (err %.3g > %.3g)",
			r.Index, r.Analytic, r.Numeric, r.Err, opts.Tolerance)
	}
	return report, nil
}
