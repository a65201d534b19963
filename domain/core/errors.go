package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrValidation = errors.New("validation failed")
	ErrShape      = errors.New("word has wrong shape")

	// Point set errors
	ErrDuplicatePoint = errors.New("point already present")
	ErrMissingPoint   = errors.New("point not present")

	// Persistence errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

func NewDuplicatePointError(point int) error {
	return fmt.Errorf("%w: %d", ErrDuplicatePoint, point)
}

func NewMissingPointError(point int) error {
	return fmt.Errorf("%w: %d", ErrMissingPoint, point)
}

func NewShapeError(want, got int) error {
	return fmt.Errorf("%w: expected length %d, got %d", ErrShape, want, got)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}

func IsDuplicatePointError(err error) bool {
	return errors.Is(err, ErrDuplicatePoint)
}

func IsMissingPointError(err error) bool {
	return errors.Is(err, ErrMissingPoint)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports whether err was caused by caller input rather than
// by the engine or its infrastructure.
func IsInputError(err error) bool {
	return IsValidationError(err) || IsShapeError(err)
}
