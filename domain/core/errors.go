package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input shape errors
	ErrShapeMismatch = errors.New("input arrays do not match expected shape")

	// Configuration errors
	ErrInvalidDegree     = errors.New("invalid maximum spherical harmonic degree")
	ErrInvalidConfidence = errors.New("confidence level outside (0, 1)")

	// IO errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformedRecord   = errors.New("malformed table record")
)

// Error constructors with context

func NewShapeMismatchError(array string, got, want int) error {
	return fmt.Errorf("%w: %s has %d entries, expected %d", ErrShapeMismatch, array, got, want)
}

func NewInvalidDegreeError(degree int) error {
	return fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
}

func NewInvalidConfidenceError(level float64) error {
	return fmt.Errorf("%w: %g", ErrInvalidConfidence, level)
}

func NewMalformedRecordError(line int, err error) error {
	return fmt.Errorf("%w at line %d: %v", ErrMalformedRecord, line, err)
}

// Error checking helpers

func IsValidationError(err error) bool {
	return errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrInvalidDegree) ||
		errors.Is(err, ErrInvalidConfidence)
}

func IsIOError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrMalformedRecord)
}
