// Package optim implements optimization algorithms for training networks
// built on the scalar autodiff engine.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - Schedule: learning-rate schedules (Constant, LinearDecay)
//
// Optimizers read each parameter's accumulated gradient and write the
// updated value straight back with SetData.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 1.0})
//	schedule := optim.LinearDecay{Start: 1.0, End: 0.1, Steps: 100}
//
//	for k := range 100 {
//	    loss := computeLoss(model, data)
//
//	    optimizer.ZeroGrad()
//	    loss.Backward()
//
//	    optimizer.SetLR(schedule.LR(k))
//	    optimizer.Step()
//	}
package optim

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next backward pass
//   - GetLR / SetLR: Read and change the learning rate
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called before each backward pass, otherwise gradients
	// from the previous iteration accumulate.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate. Used by schedules.
	SetLR(lr float64)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
