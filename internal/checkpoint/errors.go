package checkpoint

import "github.com/pkg/errors"

// Common errors.
var (
	ErrChecksumMismatch    = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge      = errors.New("header exceeds maximum size")
	ErrDataTooLarge        = errors.New("data section exceeds maximum size")
	ErrInvalidMagic        = errors.New("invalid magic bytes")
	ErrUnsupportedVersion  = errors.New("unsupported format version")
	ErrInvalidDataSize     = errors.New("data size is not a whole number of parameters")
	ErrParamCountMismatch  = errors.New("parameter count does not match data section")
	ErrInvalidArchitecture = errors.New("invalid architecture")
)
