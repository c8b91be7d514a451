package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/born-ml/micrograd/internal/trainer"
)

// trainFlags holds the train subcommand flags that map onto trainer.Config.
type trainFlags struct {
	fs *flag.FlagSet

	samples   *int
	noise     *float64
	seed      *int64
	dataset   *string
	hidden    *string
	epochs    *int
	batch     *int
	lrStart   *float64
	lrEnd     *float64
	alpha     *float64
	optimizer *string
	momentum  *float64
	logEvery  *int
	out       *string
}

func newTrainFlags(fs *flag.FlagSet, def trainer.Config) *trainFlags {
	return &trainFlags{
		fs:        fs,
		samples:   fs.Int("samples", def.Samples, "number of moons samples"),
		noise:     fs.Float64("noise", def.Noise, "moons noise"),
		seed:      fs.Int64("seed", def.Seed, "random seed"),
		dataset:   fs.String("dataset", def.Dataset, "CSV dataset; empty generates moons"),
		hidden:    fs.String("hidden", formatInts(def.Hidden), "comma-separated hidden layer sizes"),
		epochs:    fs.Int("epochs", def.Epochs, "number of optimization steps"),
		batch:     fs.Int("batch", def.BatchSize, "batch size, 0 = full batch"),
		lrStart:   fs.Float64("lr-start", def.LRStart, "initial learning rate"),
		lrEnd:     fs.Float64("lr-end", def.LREnd, "final learning rate"),
		alpha:     fs.Float64("alpha", def.Alpha, "L2 regularization strength"),
		optimizer: fs.String("optimizer", def.Optimizer, "optimizer: sgd or adam"),
		momentum:  fs.Float64("momentum", def.Momentum, "SGD momentum"),
		logEvery:  fs.Int("log-every", def.LogEvery, "log every N steps, 0 = never"),
		out:       fs.String("checkpoint", def.Checkpoint, "write the trained model to this file"),
	}
}

// apply copies the flags that were set on the command line onto cfg.
// Flags left at their defaults do not override cfg.
func (tf *trainFlags) apply(cfg trainer.Config) (trainer.Config, error) {
	var flagErr error
	tf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			cfg.Samples = *tf.samples
		case "noise":
			cfg.Noise = *tf.noise
		case "seed":
			cfg.Seed = *tf.seed
		case "dataset":
			cfg.Dataset = *tf.dataset
		case "hidden":
			sizes, err := parseInts(*tf.hidden)
			if err != nil {
				flagErr = errors.Wrap(err, "invalid -hidden")
				return
			}
			cfg.Hidden = sizes
		case "epochs":
			cfg.Epochs = *tf.epochs
		case "batch":
			cfg.BatchSize = *tf.batch
		case "lr-start":
			cfg.LRStart = *tf.lrStart
		case "lr-end":
			cfg.LREnd = *tf.lrEnd
		case "alpha":
			cfg.Alpha = *tf.alpha
		case "optimizer":
			cfg.Optimizer = *tf.optimizer
		case "momentum":
			cfg.Momentum = *tf.momentum
		case "log-every":
			cfg.LogEvery = *tf.logEvery
		case "checkpoint":
			cfg.Checkpoint = *tf.out
		}
	})
	return cfg, flagErr
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	def := trainer.DefaultConfig()

	configPath := fs.String("config", "", "YAML config file; flags override its values")
	tf := newTrainFlags(fs, def)
	showBoundary := fs.Bool("boundary", false, "render the decision boundary after training")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = trainer.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	cfg, err := tf.apply(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := trainer.LoadData(cfg)
	if err != nil {
		return err
	}

	tr, err := trainer.New(cfg, data, log.New(os.Stderr, "", log.LstdFlags))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := tr.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d steps in %s\n", res.RunID, len(res.History), res.Duration.Round(time.Millisecond))
	fmt.Printf("final loss %.6f, batch accuracy %.1f%%, dataset accuracy %.1f%%\n",
		res.Final.Loss, res.Final.Accuracy*100,
		trainer.Evaluate(tr.Model(), data, parallel.DefaultConfig())*100)

	if *showBoundary {
		grid, err := trainer.DecisionGrid(tr.Model(), data, 0.25, parallel.DefaultConfig())
		if err != nil {
			return err
		}
		return grid.Render(os.Stdout, data)
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	xs := make([]int, len(parts))
	for i, p := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	xs := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
