package generation

import (
	"errors"
	"fmt"
)

var (
	// ErrPlacementInfeasible means no cell or position satisfies a hard constraint
	ErrPlacementInfeasible = errors.New("placement infeasible")

	// ErrConfigurationMismatch means a generator configuration is malformed
	ErrConfigurationMismatch = errors.New("configuration mismatch")
)

// ConstraintError names the constraint that could not be satisfied
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Constraint)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func infeasible(format string, args ...any) error {
	return &ConstraintError{Constraint: fmt.Sprintf(format, args...), Err: ErrPlacementInfeasible}
}

func mismatch(format string, args ...any) error {
	return &ConstraintError{Constraint: fmt.Sprintf(format, args...), Err: ErrConfigurationMismatch}
}
