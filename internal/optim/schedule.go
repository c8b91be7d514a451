package optim

// Schedule maps a step index to a learning rate.
type Schedule interface {
	LR(step int) float64
}

// Constant keeps the learning rate fixed.
type Constant float64

// LR implements Schedule.
func (c Constant) LR(int) float64 {
	return float64(c)
}

// LinearDecay interpolates from Start at step 0 to End at step Steps and
// stays at End afterwards.
//
//	lr(k) = Start - (Start - End) * k / Steps
//
// LinearDecay{Start: 1.0, End: 0.1, Steps: 100} gives 1.0 - 0.9*k/100.
type LinearDecay struct {
	Start float64
	End   float64
	Steps int
}

// LR implements Schedule.
func (d LinearDecay) LR(step int) float64 {
	if d.Steps <= 0 || step >= d.Steps {
		return d.End
	}
	if step < 0 {
		step = 0
	}
	return d.Start - (d.Start-d.End)*float64(step)/float64(d.Steps)
}
