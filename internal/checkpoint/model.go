package checkpoint

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
)

// SaveModel writes the parameter values of m to path. The architecture
// fields of header are taken from m.
func SaveModel(path string, m *nn.MLP, header Header) error {
	header.Architecture = Architecture{
		Inputs:  m.Inputs(),
		Outputs: m.Outputs(),
	}
	return Save(path, header, m.Weights())
}

// LoadModel rebuilds the MLP recorded at path on a fresh graph and loads
// its parameter values.
func LoadModel(path string) (*nn.MLP, Header, error) {
	header, params, err := Load(path)
	if err != nil {
		return nil, Header{}, err
	}

	arch := header.Architecture
	want, err := arch.NumParams()
	if err != nil {
		return nil, Header{}, err
	}
	if want != len(params) {
		return nil, Header{}, errors.WithMessagef(ErrParamCountMismatch,
			"architecture %d%v needs %d parameters, data holds %d", arch.Inputs, arch.Outputs, want, len(params))
	}

	m := nn.NewMLP(engine.NewGraph(), arch.Inputs, arch.Outputs, nn.Constant(0))
	if err := m.LoadWeights(params); err != nil {
		return nil, Header{}, err
	}
	return m, header, nil
}

// NumParams returns the number of parameters of an MLP with this
// architecture: Σ (nin+1)·nout over its layers. Counts that could not fit
// in a data section fail with ErrInvalidArchitecture.
func (a Architecture) NumParams() (int, error) {
	if a.Inputs < 1 || len(a.Outputs) == 0 {
		return 0, errors.WithMessagef(ErrInvalidArchitecture, "%d inputs, layers %v", a.Inputs, a.Outputs)
	}
	const limit = MaxDataSize / ValueSize
	total, nin := 0, a.Inputs
	for _, nout := range a.Outputs {
		if nout < 1 {
			return 0, errors.WithMessagef(ErrInvalidArchitecture, "layer size %d", nout)
		}
		if nin >= limit || nout > limit/(nin+1) {
			return 0, errors.WithMessagef(ErrInvalidArchitecture, "layer %d -> %d exceeds %d parameters", nin, nout, limit)
		}
		total += (nin + 1) * nout
		if total > limit {
			return 0, errors.WithMessagef(ErrInvalidArchitecture, "more than %d parameters", limit)
		}
		nin = nout
	}
	return total, nil
}
