package sim

import (
	"errors"
	"fmt"
)

// The engine reports failures on two channels with different recovery
// semantics: configuration problems abort before the first tick, while an
// inconsistent product aborts a running simulation and leaves the belt
// counters and results valid for reporting.
var (
	ErrConfigValidation    = errors.New("invalid configuration")
	ErrInconsistentProduct = errors.New("inconsistent product")
)

// ConfigError wraps a catalog or parameter rule violation detected at setup.
type ConfigError struct {
	Kind error
	Msg  string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Kind }

func invalidConfigf(format string, args ...any) error {
	return &ConfigError{Kind: ErrConfigValidation, Msg: fmt.Sprintf(format, args...)}
}

// ProductError reports a completed assembly that fails verification.
// It signals a defect in the pick/assemble logic, not bad input, so the
// scheduler stops the run instead of correcting the hand.
type ProductError struct {
	WorkerID    int
	Combination string
	Reason      string
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("%s: worker %d assembled %q: %s",
		ErrInconsistentProduct.Error(), e.WorkerID, e.Combination, e.Reason)
}

func (e *ProductError) Unwrap() error { return ErrInconsistentProduct }
