package signature

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrBinding is matched (errors.Is) by every *BindingError.
	ErrBinding = errors.New("signature: cannot bind arguments")

	// ErrInvalidSignature reports a malformed parameter list.
	ErrInvalidSignature = errors.New("signature: invalid signature")
)

// BindingError describes why call-site arguments could not be matched to
// the declared parameters.
type BindingError struct {
	Param  string // Parameter or keyword involved, if any
	Reason string
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("signature: %s %q", e.Reason, e.Param)
	}
	return "signature: " + e.Reason
}

// Unwrap makes errors.Is(err, ErrBinding) hold.
func (e *BindingError) Unwrap() error {
	return ErrBinding
}
