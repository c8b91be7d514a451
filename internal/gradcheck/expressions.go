package gradcheck

import "github.com/born-ml/micrograd/internal/engine"

// Expression is a named objective together with the point it is checked at.
type Expression struct {
	Name string
	F    Func
	X    []float64
}

// Expressions returns the reference expressions exercised by the gradcheck
// command. Together they use every operation of the engine, shared
// subexpressions and literal operands on both sides.
func Expressions() []Expression {
	return []Expression{
		{Name: "sanity", F: sanity, X: []float64{-4}},
		{Name: "more_ops", F: moreOps, X: []float64{-4, 2}},
		{Name: "transcendental", F: transcendental, X: []float64{0.7, -0.3}},
	}
}

// sanity builds y = h + q + q·x with z = 2x + 2 + x, q = relu(z) + z·x,
// h = relu(z·z). At x = -4: y = -20, dy/dx = 46.
func sanity(g *engine.Graph, in []engine.Value) engine.Value {
	x := in[0]
	z := g.Mul(engine.Scalar(2), x).Add(engine.Scalar(2)).Add(x)
	q := z.ReLU().Add(z.Mul(x))
	h := z.Mul(z).ReLU()
	return h.Add(q).Add(q.Mul(x))
}

// moreOps mixes subtraction, division and powers. At (a, b) = (-4, 2):
// value 24.7041, gradient (138.8338, 645.5773).
func moreOps(g *engine.Graph, in []engine.Value) engine.Value {
	a, b := in[0], in[1]
	c := a.Add(b)
	d := a.Mul(b).Add(b.Pow(3))
	c = c.Add(c.Add(engine.Scalar(1)))
	c = c.Add(g.Add(engine.Scalar(1), c).Add(a.Neg()))
	d = d.Add(d.Mul(engine.Scalar(2)).Add(b.Add(a).ReLU()))
	d = d.Add(g.Mul(engine.Scalar(3), d).Add(b.Sub(a).ReLU()))
	e := c.Sub(d)
	f := e.Pow(2)
	out := f.Div(engine.Scalar(2))
	return out.Add(g.Div(engine.Scalar(10), f))
}

func transcendental(g *engine.Graph, in []engine.Value) engine.Value {
	x, y := in[0], in[1]
	t := x.Mul(y).Tanh()
	s := y.Softmax()
	l := x.Mul(x).Add(engine.Scalar(1)).Log()
	return t.Add(s.Mul(l)).Add(g.Sub(engine.Scalar(1), x.Exp()))
}
