package trainer

import (
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/datasets"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/parallel"
)

// ErrNotPlanar is returned when a decision grid is requested for a model or
// dataset that is not two-dimensional.
var ErrNotPlanar = errors.New("decision grid needs two input features")

// ErrGridTooLarge is returned when the mesh step would produce more than
// MaxGridCells points.
var ErrGridTooLarge = errors.New("decision grid too large")

// MaxGridCells bounds the number of mesh points evaluated by DecisionGrid.
const MaxGridCells = 1 << 20

// Grid holds model scores sampled on a regular mesh over the plane.
//
// Scores[i][j] is the score at (Xs[j], Ys[i]).
type Grid struct {
	Xs     []float64
	Ys     []float64
	Scores [][]float64
}

// DecisionGrid evaluates m on a mesh with spacing h covering the bounding
// box of d extended by one unit on every side. Rows are evaluated in
// parallel according to cfg.
func DecisionGrid(m *nn.MLP, d *datasets.Dataset, h float64, cfg parallel.Config) (*Grid, error) {
	if m.Inputs() != 2 || d.Features() != 2 {
		return nil, errors.WithMessagef(ErrNotPlanar, "model has %d inputs, data has %d features", m.Inputs(), d.Features())
	}
	if !(h > 0) {
		return nil, errors.Errorf("mesh step must be positive, got %g", h)
	}

	xMin, xMax, yMin, yMax := bounds(d)
	cells := math.Ceil((xMax-xMin+2)/h) * math.Ceil((yMax-yMin+2)/h)
	if !(cells <= MaxGridCells) {
		return nil, errors.WithMessagef(ErrGridTooLarge, "step %g gives %g points, limit %d", h, cells, MaxGridCells)
	}
	grid := &Grid{
		Xs: arange(xMin-1, xMax+1, h),
		Ys: arange(yMin-1, yMax+1, h),
	}

	points := make([][]float64, 0, len(grid.Xs)*len(grid.Ys))
	for _, y := range grid.Ys {
		for _, x := range grid.Xs {
			points = append(points, []float64{x, y})
		}
	}
	out := m.PredictBatch(points, cfg)

	grid.Scores = make([][]float64, len(grid.Ys))
	for i := range grid.Ys {
		row := make([]float64, len(grid.Xs))
		for j := range grid.Xs {
			row[j] = out[i*len(grid.Xs)+j][0]
		}
		grid.Scores[i] = row
	}
	return grid, nil
}

// Render draws g as text with the largest y on top. Cells scoring above
// zero are '#', the rest '.'. Samples of d are overlaid as 'o' (label 0)
// and 'x' (label 1) when d is not nil.
func (g *Grid) Render(w io.Writer, d *datasets.Dataset) error {
	cells := make([][]byte, len(g.Ys))
	for i, row := range g.Scores {
		cells[i] = make([]byte, len(row))
		for j, s := range row {
			if s > 0 {
				cells[i][j] = '#'
			} else {
				cells[i][j] = '.'
			}
		}
	}

	if d != nil && len(g.Xs) > 0 && len(g.Ys) > 0 {
		for k, p := range d.X {
			i, j := nearest(g.Ys, p[1]), nearest(g.Xs, p[0])
			if d.Y[k] > 0.5 {
				cells[i][j] = 'x'
			} else {
				cells[i][j] = 'o'
			}
		}
	}

	var sb strings.Builder
	for i := len(cells) - 1; i >= 0; i-- {
		sb.Write(cells[i])
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "failed to write grid")
}

func bounds(d *datasets.Dataset) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, p := range d.X {
		xMin, xMax = math.Min(xMin, p[0]), math.Max(xMax, p[0])
		yMin, yMax = math.Min(yMin, p[1]), math.Max(yMax, p[1])
	}
	return xMin, xMax, yMin, yMax
}

// arange returns lo, lo+h, ... up to but excluding hi.
func arange(lo, hi, h float64) []float64 {
	n := int(math.Ceil((hi - lo) / h))
	xs := make([]float64, 0, max(n, 0))
	for i := 0; i < n; i++ {
		xs = append(xs, lo+float64(i)*h)
	}
	return xs
}

// nearest returns the index of the value in sorted xs closest to x.
func nearest(xs []float64, x float64) int {
	best := 0
	for i, v := range xs {
		if math.Abs(v-x) < math.Abs(xs[best]-x) {
			best = i
		}
	}
	return best
}
