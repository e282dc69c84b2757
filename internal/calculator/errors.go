package calculator

import "errors"

var (
	// ErrInvalidTarget is returned when the requested resource target is negative.
	ErrInvalidTarget = errors.New("target must be a non-negative integer")
	// ErrCannotFulfill is returned when no combination of crafts uses the target exactly.
	ErrCannotFulfill = errors.New("cannot spend the target exactly with 4 and 6 unit crafts")
)
