package cpu

import "errors"

// Sentinel errors. Shape problems are reported with tensor.ErrDimension.
var (
	// ErrInvalidParameter reports an auxiliary parameter outside its domain
	// (unknown boundary mode, negative sigma, even window size).
	ErrInvalidParameter = errors.New("cpu: invalid parameter")

	// ErrSingular reports a banded system with no unique solution.
	ErrSingular = errors.New("cpu: singular matrix")
)
