package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// HingeLoss computes the max-margin loss for labels in {-1, +1}.
//
// Loss = mean(relu(1 - yᵢ·scoreᵢ))
//
// A sample stops contributing once it is classified with a margin of at
// least one.
func HingeLoss(scores []engine.Value, ys []float64) engine.Value {
	g := checkBatch("HingeLoss", scores, ys)

	losses := make([]engine.Value, len(scores))
	for i, s := range scores {
		margin := g.Add(engine.Scalar(1), g.Mul(engine.Scalar(-ys[i]), s))
		losses[i] = margin.ReLU()
	}
	return mean(g, losses)
}

// MSELoss computes the mean squared error.
//
// Loss = mean((predictionᵢ - targetᵢ)²)
func MSELoss(predictions []engine.Value, targets []float64) engine.Value {
	g := checkBatch("MSELoss", predictions, targets)

	squares := make([]engine.Value, len(predictions))
	for i, p := range predictions {
		squares[i] = p.Sub(engine.Scalar(targets[i])).Pow(2)
	}
	return mean(g, squares)
}

// L2 computes alpha · Σ p² over params. Returns a zero leaf for no params.
func L2(g *engine.Graph, params []engine.Value, alpha float64) engine.Value {
	squares := make([]engine.Value, len(params))
	for i, p := range params {
		squares[i] = p.Mul(p)
	}
	return g.Mul(engine.Scalar(alpha), g.Sum(engine.Scalar(0), squares...))
}

// Accuracy returns the fraction of scores whose sign matches the label sign.
// Zero scores count as negative predictions.
func Accuracy(scores []engine.Value, ys []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	correct := 0
	for i, s := range scores {
		if (ys[i] > 0) == (s.Data() > 0) {
			correct++
		}
	}
	return float64(correct) / float64(len(scores))
}

func mean(g *engine.Graph, vs []engine.Value) engine.Value {
	return g.Sum(engine.Scalar(0), vs...).Mul(engine.Scalar(1 / float64(len(vs))))
}

func checkBatch(name string, vs []engine.Value, ys []float64) *engine.Graph {
	if len(vs) == 0 {
		panic(fmt.Sprintf("%s: empty batch", name))
	}
	if len(vs) != len(ys) {
		panic(fmt.Sprintf("%s: %d predictions for %d targets", name, len(vs), len(ys)))
	}
	return vs[0].Graph()
}
