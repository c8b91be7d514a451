package engine

import "github.com/pkg/errors"

// ErrInvalidExponentType is returned by Pow when the exponent is a Value.
// Only literal exponents can be differentiated; a node exponent needs the
// exp(p * log(base)) decomposition instead.
var ErrInvalidExponentType = errors.New("invalid exponent type")
