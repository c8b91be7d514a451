// Package trainer drives the training of an MLP on a two-dimensional
// binary classification dataset: configuration, the optimization loop,
// evaluation and decision-boundary sampling.
package trainer

import (
	"context"
	"io"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/checkpoint"
	"github.com/born-ml/micrograd/internal/datasets"
	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/parallel"
)

// ErrEmptyDataset is returned by New when there is nothing to train on.
var ErrEmptyDataset = errors.New("empty dataset")

// Step records the outcome of one optimization step.
type Step struct {
	Step     int
	Loss     float64 // Hinge loss plus L2 penalty
	Accuracy float64 // Fraction of the batch classified correctly
	LR       float64 // Learning rate used for the update
}

// Result summarizes a completed run.
type Result struct {
	RunID    uuid.UUID
	History  []Step
	Final    Step
	Duration time.Duration
}

// Trainer owns the graph, model, optimizer and data of one training run.
//
// Parameters are created first on the graph; everything built above the
// mark taken right after them is released at the start of each step.
type Trainer struct {
	cfg       Config
	logger    *log.Logger
	runID     uuid.UUID
	rng       *rand.Rand
	data      *datasets.Dataset
	g         *engine.Graph
	mark      engine.Mark
	model     *nn.MLP
	optimizer optim.Optimizer
	schedule  optim.Schedule
}

// LoadData returns the dataset named by cfg: the CSV file at cfg.Dataset,
// or freshly generated moons.
func LoadData(cfg Config) (*datasets.Dataset, error) {
	if cfg.Dataset != "" {
		return datasets.LoadCSV(cfg.Dataset)
	}
	//nolint:gosec // data generation is not security-critical
	return datasets.MakeMoons(cfg.Samples, cfg.Noise, rand.New(rand.NewSource(cfg.Seed))), nil
}

// New builds a trainer for data. A nil logger discards progress output.
func New(cfg Config, data *datasets.Dataset, logger *log.Logger) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data == nil || data.Len() == 0 || data.Features() == 0 {
		return nil, ErrEmptyDataset
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	//nolint:gosec // weight initialization and batching are not security-critical
	rng := rand.New(rand.NewSource(cfg.Seed))
	g := engine.NewGraph()
	model := nn.NewMLP(g, data.Features(), cfg.Layers(), nn.Uniform(rng, -1, 1))

	t := &Trainer{
		cfg:      cfg,
		logger:   logger,
		runID:    uuid.New(),
		rng:      rng,
		data:     data,
		g:        g,
		mark:     g.Mark(),
		model:    model,
		schedule: optim.LinearDecay{Start: cfg.LRStart, End: cfg.LREnd, Steps: cfg.Epochs},
	}

	switch cfg.Optimizer {
	case OptimizerAdam:
		t.optimizer = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.LRStart})
	default:
		t.optimizer = optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: cfg.LRStart, Momentum: cfg.Momentum})
	}
	return t, nil
}

// RunID returns the identifier of this run.
func (t *Trainer) RunID() uuid.UUID {
	return t.runID
}

// Model returns the network being trained.
func (t *Trainer) Model() *nn.MLP {
	return t.model
}

// Config returns the configuration of this run.
func (t *Trainer) Config() Config {
	return t.cfg
}

// Run performs cfg.Epochs steps, logging progress every cfg.LogEvery steps,
// and saves a checkpoint when cfg.Checkpoint is set. It stops early with
// ctx.Err() when ctx is canceled.
func (t *Trainer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:   t.runID,
		History: make([]Step, 0, t.cfg.Epochs),
	}

	t.logger.Printf("[%s] training %s on %s with %s, %d parameters",
		t.shortID(), t.model, t.data, t.cfg.Optimizer, nn.NumParams(t.model))

	for k, epochs := 0, t.cfg.Epochs; k < epochs; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s := t.Step(k)
		res.History = append(res.History, s)

		if t.cfg.LogEvery > 0 && (k%t.cfg.LogEvery == 0 || k == t.cfg.Epochs-1) {
			t.logger.Printf("[%s] step %d: loss %.6f, accuracy %.1f%%, lr %.4f",
				t.shortID(), s.Step, s.Loss, s.Accuracy*100, s.LR)
		}
	}
	t.g.Release(t.mark)

	res.Final = res.History[len(res.History)-1]
	res.Duration = time.Since(start)

	if t.cfg.Checkpoint != "" {
		if err := t.Save(t.cfg.Checkpoint, res.Final); err != nil {
			return nil, err
		}
		t.logger.Printf("[%s] saved checkpoint to %s", t.shortID(), t.cfg.Checkpoint)
	}
	return res, nil
}

// Step performs optimization step k: forward pass over a batch, hinge loss
// plus L2 penalty, backward pass, then a parameter update at the scheduled
// learning rate.
func (t *Trainer) Step(k int) Step {
	t.g.Release(t.mark)

	batch := t.data.Batch(t.rng, t.cfg.BatchSize)
	ys := batch.Signed()

	scores := make([]engine.Value, batch.Len())
	for i, x := range batch.X {
		scores[i] = t.model.Forward(t.g.Leaves(x...))[0]
	}

	dataLoss := nn.HingeLoss(scores, ys)
	regLoss := nn.L2(t.g, t.model.Parameters(), t.cfg.Alpha)
	total := dataLoss.Add(regLoss)
	acc := nn.Accuracy(scores, ys)

	t.optimizer.ZeroGrad()
	total.Backward()

	lr := t.schedule.LR(k)
	t.optimizer.SetLR(lr)
	t.optimizer.Step()

	return Step{Step: k, Loss: total.Data(), Accuracy: acc, LR: lr}
}

// Save writes the current parameters and the training state in s to path.
func (t *Trainer) Save(path string, s Step) error {
	meta := map[string]string{"hidden": formatInts(t.cfg.Hidden)}
	if t.cfg.Dataset != "" {
		meta["dataset"] = t.cfg.Dataset
	} else {
		meta["dataset"] = "moons"
	}

	return checkpoint.SaveModel(path, t.model, checkpoint.Header{
		RunID:    t.runID,
		Metadata: meta,
		Training: &checkpoint.TrainingMeta{
			Step:      s.Step,
			Loss:      s.Loss,
			Accuracy:  s.Accuracy,
			Optimizer: t.cfg.Optimizer,
			LR:        s.LR,
		},
	})
}

func (t *Trainer) shortID() string {
	return t.runID.String()[:8]
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

// Evaluate returns the fraction of d that m classifies correctly. Scores
// above zero predict label 1.
func Evaluate(m *nn.MLP, d *datasets.Dataset, cfg parallel.Config) float64 {
	if d.Len() == 0 {
		return 0
	}
	scores := m.PredictBatch(d.X, cfg)
	correct := 0
	for i, y := range d.Signed() {
		if (y > 0) == (scores[i][0] > 0) {
			correct++
		}
	}
	return float64(correct) / float64(d.Len())
}
