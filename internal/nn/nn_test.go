package nn_test

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/gradcheck"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/parallel"
)

func TestNeuron_Forward(t *testing.T) {
	g := engine.NewGraph()
	x := g.Leaves(1, 2)

	tests := []struct {
		act  nn.Activation
		init float64
		want float64
	}{
		{nn.Linear, 0.5, 2.0},   // 0.5 + 0.5*1 + 0.5*2
		{nn.ReLU, -0.5, 0.0},    // relu(-2)
		{nn.Tanh, 0.25, 0.7616}, // tanh(1)
	}

	for _, tt := range tests {
		t.Run(tt.act.String(), func(t *testing.T) {
			n := nn.NewNeuron(g, 2, tt.act, nn.Constant(tt.init))
			assert.InDelta(t, tt.want, n.Forward(x).Data(), 1e-4)
			assert.Len(t, n.Parameters(), 3)
			assert.Equal(t, tt.act, n.Activation())
		})
	}
}

func TestNeuron_InputMismatchPanics(t *testing.T) {
	g := engine.NewGraph()
	n := nn.NewNeuron(g, 3, nn.ReLU, nn.Constant(1))
	assert.Panics(t, func() { n.Forward(g.Leaves(1, 2)) })
}

func TestNeuron_ParameterOrder(t *testing.T) {
	g := engine.NewGraph()
	next := 0.0
	counter := func() float64 { next++; return next }

	n := nn.NewNeuron(g, 2, nn.Linear, counter)
	params := n.Parameters()
	require.Len(t, params, 3)
	assert.Equal(t, 1.0, params[0].Data())
	assert.Equal(t, 2.0, params[1].Data())
	assert.Equal(t, 3.0, params[2].Data(), "bias comes last")
}

func TestLayer_Forward(t *testing.T) {
	g := engine.NewGraph()
	l := nn.NewLayer(g, 2, 3, nn.ReLU, nn.Constant(1))

	out := l.Forward(g.Leaves(1, 1))
	require.Len(t, out, 3)
	for _, v := range out {
		assert.Equal(t, 3.0, v.Data())
	}
	assert.Len(t, l.Parameters(), 9)
	assert.Len(t, l.Neurons(), 3)
}

func TestMLP_Structure(t *testing.T) {
	g := engine.NewGraph()
	rng := rand.New(rand.NewSource(1337))
	m := nn.NewMLP(g, 2, []int{16, 16, 1}, nn.Uniform(rng, -1, 1))

	assert.Equal(t, 337, nn.NumParams(m))
	assert.Equal(t, 337, g.Len(), "parameters are the only nodes after construction")
	require.Len(t, m.Layers(), 3)
	assert.Equal(t, nn.ReLU, m.Layers()[0].Neurons()[0].Activation())
	assert.Equal(t, nn.ReLU, m.Layers()[1].Neurons()[0].Activation())
	assert.Equal(t, nn.Linear, m.Layers()[2].Neurons()[0].Activation())
	assert.Equal(t, 2, m.Inputs())
	assert.Equal(t, []int{16, 16, 1}, m.Outputs())

	for _, p := range m.Parameters() {
		assert.True(t, p.IsLeaf())
		assert.GreaterOrEqual(t, p.Data(), -1.0)
		assert.Less(t, p.Data(), 1.0)
	}
	assert.Contains(t, m.String(), "Neuron(2, relu)")
}

func TestMLP_WeightsRoundTrip(t *testing.T) {
	g := engine.NewGraph()
	rng := rand.New(rand.NewSource(7))
	m := nn.NewMLP(g, 3, []int{4, 2}, nn.Uniform(rng, -1, 1))
	w := m.Weights()

	other := nn.NewMLP(engine.NewGraph(), 3, []int{4, 2}, nn.Constant(0))
	require.NoError(t, other.LoadWeights(w))
	assert.Equal(t, w, other.Weights())

	x := []float64{0.1, -0.4, 0.9}
	assert.Equal(t, m.Predict(x), other.Predict(x))

	err := other.LoadWeights(w[:3])
	require.Error(t, err)
	assert.True(t, errors.Is(err, nn.ErrWeightCount))
}

func TestMLP_PredictReleasesNodes(t *testing.T) {
	g := engine.NewGraph()
	m := nn.NewMLP(g, 2, []int{3, 1}, nn.Constant(0.1))
	before := g.Len()

	y := m.Predict([]float64{1, 2})
	require.Len(t, y, 1)
	assert.Equal(t, before, g.Len())
}

func TestMLP_ReplicateIndependent(t *testing.T) {
	g := engine.NewGraph()
	rng := rand.New(rand.NewSource(3))
	m := nn.NewMLP(g, 2, []int{8, 1}, nn.Uniform(rng, -1, 1))

	r := m.Replicate()
	assert.NotSame(t, m.Graph(), r.Graph())
	assert.Equal(t, m.Weights(), r.Weights())

	r.Parameters()[0].SetData(100)
	assert.NotEqual(t, 100.0, m.Parameters()[0].Data())
}

func TestMLP_PredictBatch(t *testing.T) {
	g := engine.NewGraph()
	rng := rand.New(rand.NewSource(11))
	m := nn.NewMLP(g, 2, []int{8, 8, 1}, nn.Uniform(rng, -1, 1))

	xs := make([][]float64, 100)
	for i := range xs {
		xs[i] = []float64{rng.Float64()*4 - 2, rng.Float64()*4 - 2}
	}

	ys := m.PredictBatch(xs, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4})
	require.Len(t, ys, len(xs))
	for i, x := range xs {
		assert.InDelta(t, m.Predict(x)[0], ys[i][0], 1e-12)
	}
}

func TestMLP_InputGradients(t *testing.T) {
	f := func(g *engine.Graph, x []engine.Value) engine.Value {
		rng := rand.New(rand.NewSource(5))
		init := nn.Uniform(rng, -1, 1)
		h := nn.NewLayer(g, 3, 4, nn.Tanh, init).Forward(x)
		return nn.NewLayer(g, 4, 1, nn.Linear, init).Forward(h)[0]
	}

	report, err := gradcheck.Check(f, []float64{0.3, -0.8, 1.1}, gradcheck.Options{})
	require.NoError(t, err, "%s", report)
}

// TestMLP_ParameterGradients perturbs parameters directly and rebuilds the
// loss on top of the same graph each time.
func TestMLP_ParameterGradients(t *testing.T) {
	g := engine.NewGraph()
	rng := rand.New(rand.NewSource(21))
	m := nn.NewMLP(g, 2, []int{4, 1}, nn.Uniform(rng, -1, 1))
	mark := g.Mark()

	xs := [][]float64{{0.5, 1.0}, {-1.0, 0.25}, {1.5, -0.5}}
	ys := []float64{1, -1, 1}
	loss := func() engine.Value {
		scores := make([]engine.Value, len(xs))
		for i, x := range xs {
			scores[i] = m.Forward(g.Leaves(x...))[0]
		}
		return nn.MSELoss(scores, ys).Add(nn.L2(g, m.Parameters(), 1e-2))
	}

	m.ZeroGrad()
	loss().Backward()
	analytic := make([]float64, nn.NumParams(m))
	for i, p := range m.Parameters() {
		analytic[i] = p.Grad()
	}
	g.Release(mark)

	const eps = 1e-6
	for i, p := range m.Parameters() {
		orig := p.Data()
		p.SetData(orig + eps)
		plus := loss().Data()
		g.Release(mark)
		p.SetData(orig - eps)
		minus := loss().Data()
		g.Release(mark)
		p.SetData(orig)

		numeric := (plus - minus) / (2 * eps)
		assert.InDelta(t, numeric, analytic[i], 1e-4, "param %d", i)
	}
}

func TestHingeLoss(t *testing.T) {
	g := engine.NewGraph()
	scores := g.Leaves(2, -0.5)
	ys := []float64{1, 1}

	loss := nn.HingeLoss(scores, ys)
	assert.InDelta(t, 0.75, loss.Data(), 1e-12)

	loss.Backward()
	assert.Equal(t, 0.0, scores[0].Grad(), "margin above one passes no gradient")
	assert.InDelta(t, -0.5, scores[1].Grad(), 1e-12)
}

func TestMSELoss(t *testing.T) {
	g := engine.NewGraph()
	preds := g.Leaves(1, 3)

	loss := nn.MSELoss(preds, []float64{0, 1})
	assert.InDelta(t, 2.5, loss.Data(), 1e-12)

	loss.Backward()
	assert.InDelta(t, 1.0, preds[0].Grad(), 1e-12) // 2*(1-0)/2
	assert.InDelta(t, 2.0, preds[1].Grad(), 1e-12) // 2*(3-1)/2
}

func TestL2(t *testing.T) {
	g := engine.NewGraph()
	params := g.Leaves(1, 2)

	reg := nn.L2(g, params, 0.5)
	assert.InDelta(t, 2.5, reg.Data(), 1e-12)

	reg.Backward()
	assert.InDelta(t, 1.0, params[0].Grad(), 1e-12)
	assert.InDelta(t, 2.0, params[1].Grad(), 1e-12)

	assert.Equal(t, 0.0, nn.L2(g, nil, 0.5).Data())
}

func TestLoss_BatchMismatchPanics(t *testing.T) {
	g := engine.NewGraph()
	assert.Panics(t, func() { nn.HingeLoss(g.Leaves(1), []float64{1, 1}) })
	assert.Panics(t, func() { nn.MSELoss(nil, nil) })
}

func TestAccuracy(t *testing.T) {
	g := engine.NewGraph()
	scores := g.Leaves(0.3, -2, 0, 1.5)
	ys := []float64{1, -1, 1, -1}

	assert.Equal(t, 0.5, nn.Accuracy(scores, ys))
	assert.Equal(t, 0.0, nn.Accuracy(nil, nil))
}

func TestParseActivation(t *testing.T) {
	for _, a := range []nn.Activation{nn.Linear, nn.ReLU, nn.Tanh} {
		got, ok := nn.ParseActivation(a.String())
		assert.True(t, ok)
		assert.Equal(t, a, got)
	}
	_, ok := nn.ParseActivation("gelu")
	assert.False(t, ok)
}

func TestZeroGrad(t *testing.T) {
	g := engine.NewGraph()
	m := nn.NewMLP(g, 2, []int{2, 1}, nn.Constant(0.5))
	for _, p := range m.Parameters() {
		p.SetGrad(3)
	}
	m.ZeroGrad()
	for _, p := range m.Parameters() {
		assert.Zero(t, p.Grad())
	}
}
