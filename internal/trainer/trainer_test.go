package trainer_test

import (
	"bytes"
	"context"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/checkpoint"
	"github.com/born-ml/micrograd/internal/datasets"
	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/born-ml/micrograd/internal/trainer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := trainer.DefaultConfig()

	assert.Equal(t, 100, cfg.Samples)
	assert.Equal(t, 0.1, cfg.Noise)
	assert.Equal(t, int64(1337), cfg.Seed)
	assert.Equal(t, []int{16, 16}, cfg.Hidden)
	assert.Equal(t, 100, cfg.Epochs)
	assert.Zero(t, cfg.BatchSize)
	assert.Equal(t, 1.0, cfg.LRStart)
	assert.Equal(t, 0.1, cfg.LREnd)
	assert.Equal(t, 1e-4, cfg.Alpha)
	assert.Equal(t, trainer.OptimizerSGD, cfg.Optimizer)
	assert.Equal(t, []int{16, 16, 1}, cfg.Layers())
	require.NoError(t, cfg.Validate())
}

func TestParseConfig_Overlay(t *testing.T) {
	cfg, err := trainer.ParseConfig([]byte("hidden: [8]\noptimizer: adam\nlr_start: 0.05\nbatch_size: 32\n"))
	require.NoError(t, err)

	assert.Equal(t, []int{8}, cfg.Hidden)
	assert.Equal(t, trainer.OptimizerAdam, cfg.Optimizer)
	assert.Equal(t, 0.05, cfg.LRStart)
	assert.Equal(t, 32, cfg.BatchSize)

	// Untouched fields keep their defaults.
	assert.Equal(t, 100, cfg.Epochs)
	assert.Equal(t, int64(1337), cfg.Seed)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := trainer.ParseConfig([]byte("hidden: [8"))
	require.Error(t, err)

	_, err = trainer.ParseConfig([]byte("optimizer: rmsprop\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, trainer.ErrInvalidConfig))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epochs: 20\nseed: 7\n"), 0o600))

	cfg, err := trainer.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Epochs)
	assert.Equal(t, int64(7), cfg.Seed)

	_, err = trainer.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *trainer.Config)
	}{
		{"too few samples", func(c *trainer.Config) { c.Samples = 1 }},
		{"negative noise", func(c *trainer.Config) { c.Noise = -0.1 }},
		{"no epochs", func(c *trainer.Config) { c.Epochs = 0 }},
		{"negative batch", func(c *trainer.Config) { c.BatchSize = -1 }},
		{"zero lr", func(c *trainer.Config) { c.LRStart = 0 }},
		{"negative lr end", func(c *trainer.Config) { c.LREnd = -1 }},
		{"negative alpha", func(c *trainer.Config) { c.Alpha = -1 }},
		{"unknown optimizer", func(c *trainer.Config) { c.Optimizer = "lbfgs" }},
		{"momentum one", func(c *trainer.Config) { c.Momentum = 1 }},
		{"negative log interval", func(c *trainer.Config) { c.LogEvery = -1 }},
		{"empty hidden layer", func(c *trainer.Config) { c.Hidden = []int{16, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := trainer.DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, trainer.ErrInvalidConfig))
		})
	}
}

func TestNew_EmptyDataset(t *testing.T) {
	_, err := trainer.New(trainer.DefaultConfig(), &datasets.Dataset{}, nil)
	assert.True(t, errors.Is(err, trainer.ErrEmptyDataset))

	_, err = trainer.New(trainer.DefaultConfig(), nil, nil)
	assert.True(t, errors.Is(err, trainer.ErrEmptyDataset))
}

// TestRun_Moons trains the default 2-16-16-1 network on 100 moons samples.
func TestRun_Moons(t *testing.T) {
	cfg := trainer.DefaultConfig()
	data, err := trainer.LoadData(cfg)
	require.NoError(t, err)

	var logs bytes.Buffer
	tr, err := trainer.New(cfg, data, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Equal(t, 337, nn.NumParams(tr.Model()))

	res, err := tr.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.History, 100)
	assert.Equal(t, tr.RunID(), res.RunID)
	assert.Equal(t, res.History[99], res.Final)
	for k, s := range res.History {
		assert.Equal(t, k, s.Step)
		assert.InDelta(t, 1.0-0.9*float64(k)/100, s.LR, 1e-12)
	}

	assert.Less(t, res.Final.Loss, res.History[0].Loss)
	assert.GreaterOrEqual(t, res.Final.Accuracy, 0.85)
	assert.GreaterOrEqual(t, trainer.Evaluate(tr.Model(), data, parallel.Sequential()), 0.85)

	// Only parameters survive on the graph.
	assert.Equal(t, nn.NumParams(tr.Model()), tr.Model().Graph().Len())

	out := logs.String()
	assert.Contains(t, out, "step 0: loss ")
	assert.Contains(t, out, "step 90: loss ")
	assert.Contains(t, out, "step 99: loss ")
	assert.NotContains(t, out, "step 5: loss ")
	assert.Contains(t, out, tr.RunID().String()[:8])
}

func TestRun_Deterministic(t *testing.T) {
	cfg := trainer.DefaultConfig()
	cfg.Samples = 40
	cfg.Hidden = []int{4}
	cfg.Epochs = 10
	data, err := trainer.LoadData(cfg)
	require.NoError(t, err)

	weights := func() []float64 {
		tr, err := trainer.New(cfg, data, nil)
		require.NoError(t, err)
		_, err = tr.Run(context.Background())
		require.NoError(t, err)
		return tr.Model().Weights()
	}
	assert.Equal(t, weights(), weights())
}

func TestRun_AdamMiniBatch(t *testing.T) {
	cfg := trainer.DefaultConfig()
	cfg.Optimizer = trainer.OptimizerAdam
	cfg.LRStart, cfg.LREnd = 0.05, 0.01
	cfg.BatchSize = 20
	cfg.Epochs = 30
	cfg.LogEvery = 0
	data, err := trainer.LoadData(cfg)
	require.NoError(t, err)

	tr, err := trainer.New(cfg, data, nil)
	require.NoError(t, err)
	before := tr.Model().Weights()

	res, err := tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.History, 30)
	assert.NotEqual(t, before, tr.Model().Weights())
	assert.Equal(t, nn.NumParams(tr.Model()), tr.Model().Graph().Len())
}

func TestRun_Canceled(t *testing.T) {
	cfg := trainer.DefaultConfig()
	data, err := trainer.LoadData(cfg)
	require.NoError(t, err)
	tr, err := trainer.New(cfg, data, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tr.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SavesCheckpoint(t *testing.T) {
	cfg := trainer.DefaultConfig()
	cfg.Epochs = 5
	cfg.Hidden = []int{8}
	cfg.Checkpoint = filepath.Join(t.TempDir(), "moons.mgrd")
	data, err := trainer.LoadData(cfg)
	require.NoError(t, err)

	tr, err := trainer.New(cfg, data, nil)
	require.NoError(t, err)
	res, err := tr.Run(context.Background())
	require.NoError(t, err)

	model, h, err := checkpoint.LoadModel(cfg.Checkpoint)
	require.NoError(t, err)
	assert.Equal(t, tr.Model().Weights(), model.Weights())
	assert.Equal(t, tr.RunID(), h.RunID)
	assert.Equal(t, []int{8, 1}, h.Architecture.Outputs)
	assert.Equal(t, "moons", h.Metadata["dataset"])
	assert.Equal(t, "8", h.Metadata["hidden"])
	require.NotNil(t, h.Training)
	assert.Equal(t, res.Final.Step, h.Training.Step)
	assert.Equal(t, res.Final.Loss, h.Training.Loss)
	assert.Equal(t, trainer.OptimizerSGD, h.Training.Optimizer)
}

func TestLoadData_CSV(t *testing.T) {
	src := datasets.MakeMoons(12, 0, rand.New(rand.NewSource(1)))
	path := filepath.Join(t.TempDir(), "moons.csv")
	require.NoError(t, datasets.SaveCSV(path, src))

	cfg := trainer.DefaultConfig()
	cfg.Dataset = path
	data, err := trainer.LoadData(cfg)
	require.NoError(t, err)
	assert.Equal(t, src.X, data.X)
	assert.Equal(t, src.Y, data.Y)
}

func TestEvaluate(t *testing.T) {
	// A single linear neuron computing x0 - x1.
	model := nn.NewMLP(engine.NewGraph(), 2, []int{1}, nn.Constant(0))
	require.NoError(t, model.LoadWeights([]float64{1, -1, 0}))

	d := &datasets.Dataset{
		X: [][]float64{{1, 0}, {0, 1}, {2, 1}, {1, 2}},
		Y: []float64{1, 0, 0, 0},
	}
	assert.Equal(t, 0.75, trainer.Evaluate(model, d, parallel.Sequential()))
	assert.Zero(t, trainer.Evaluate(model, &datasets.Dataset{}, parallel.Sequential()))
}

func TestDecisionGrid(t *testing.T) {
	model := nn.NewMLP(engine.NewGraph(), 2, []int{1}, nn.Constant(0))
	require.NoError(t, model.LoadWeights([]float64{1, 0, 0})) // score = x0

	d := &datasets.Dataset{
		X: [][]float64{{-1, 0}, {1, 1}},
		Y: []float64{0, 1},
	}
	grid, err := trainer.DecisionGrid(model, d, 0.5, parallel.DefaultConfig())
	require.NoError(t, err)

	// x covers [-2, 2), y covers [-1, 2).
	require.Len(t, grid.Xs, 8)
	require.Len(t, grid.Ys, 6)
	assert.InDelta(t, -2.0, grid.Xs[0], 1e-12)
	assert.InDelta(t, -1.0, grid.Ys[0], 1e-12)
	require.Len(t, grid.Scores, 6)
	for i, row := range grid.Scores {
		require.Len(t, row, 8)
		for j, s := range row {
			assert.InDelta(t, grid.Xs[j], s, 1e-12, "cell %d,%d", i, j)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, grid.Render(&buf, d))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)

	// Top row is y = 1.5; scores for x <= 0 are not positive.
	assert.Equal(t, ".....###", lines[0])
	// Sample (1, 1) is on row y = 1, column x = 1.
	assert.Equal(t, ".....#x#", lines[1])
	// Sample (-1, 0) is on row y = 0, column x = -1.
	assert.Equal(t, "..o..###", lines[3])
}

func TestDecisionGrid_Errors(t *testing.T) {
	model := nn.NewMLP(engine.NewGraph(), 3, []int{1}, nn.Constant(0))
	d := datasets.MakeMoons(10, 0, rand.New(rand.NewSource(1)))

	_, err := trainer.DecisionGrid(model, d, 0.25, parallel.Sequential())
	assert.True(t, errors.Is(err, trainer.ErrNotPlanar))

	planar := nn.NewMLP(engine.NewGraph(), 2, []int{1}, nn.Constant(0))
	_, err = trainer.DecisionGrid(planar, d, 0, parallel.Sequential())
	assert.Error(t, err)

	_, err = trainer.DecisionGrid(planar, d, math.NaN(), parallel.Sequential())
	assert.Error(t, err)
}

func TestDecisionGrid_TooLarge(t *testing.T) {
	model := nn.NewMLP(engine.NewGraph(), 2, []int{1}, nn.Constant(0))
	d := &datasets.Dataset{
		X: [][]float64{{-1, 0}, {1, 1}},
		Y: []float64{0, 1},
	}

	for _, h := range []float64{1e-9, 1e-3} {
		grid, err := trainer.DecisionGrid(model, d, h, parallel.Sequential())
		require.Error(t, err)
		assert.Nil(t, grid)
		assert.True(t, errors.Is(err, trainer.ErrGridTooLarge), "step %g: %v", h, err)
	}

	// 4/0.01 by 3/0.01 is 400 by 300 points.
	grid, err := trainer.DecisionGrid(model, d, 0.01, parallel.DefaultConfig())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(grid.Xs)*len(grid.Ys), trainer.MaxGridCells)
}
