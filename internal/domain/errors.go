package domain

import (
	"errors"
	"fmt"
)

// Startup errors. Every one of them is fatal: the dashboard cannot render a
// partially loaded or misaligned dataset.
var (
	ErrResourceLoad          = errors.New("resource load failed")
	ErrMalformedInput        = errors.New("malformed input")
	ErrInvalidNumber         = errors.New("invalid number")
	ErrJoinLengthMismatch    = errors.New("join length mismatch")
	ErrStateIdentityMismatch = errors.New("state identity mismatch")
)

// ResourceLoadError reports a source document that could not be fetched.
type ResourceLoadError struct {
	Resource string // crashes, age, bac or geography
	Location string
	Err      error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Resource, e.Location, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrResourceLoad) hold for every ResourceLoadError.
func (e *ResourceLoadError) Is(target error) bool { return target == ErrResourceLoad }

// InvalidNumberError identifies a numeric cell that failed to parse.
type InvalidNumberError struct {
	Dataset string
	State   string
	Column  int
	Value   string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s: %s column %d: %q is not a non-negative integer", e.Dataset, e.State, e.Column, e.Value)
}

func (e *InvalidNumberError) Unwrap() error { return ErrInvalidNumber }
