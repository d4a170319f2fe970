package control

import (
	"errors"
	"fmt"

	"github.com/banshee-data/aimlock/internal/geom"
)

var (
	// ErrInvalidInput is returned by Step when a tick carries a NaN or
	// infinite component. Controller state is left untouched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNonFiniteOutput is returned by Step when finite input drives the
	// aim past the float64 range. The actuator is not called.
	ErrNonFiniteOutput = errors.New("non-finite output")

	// ErrInvalidConfig is returned when a Controller cannot be built from
	// the given profile and options.
	ErrInvalidConfig = errors.New("invalid controller config")
)

// InputError identifies the offending field of a rejected tick.
type InputError struct {
	Field string
	Value geom.Vector3
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s is not finite (%g, %g, %g)", e.Field, e.Value.X, e.Value.Y, e.Value.Z)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error { return ErrInvalidInput }
