package sieve

import "errors"

var (
	// ErrResourceExhausted indicates the marking buffer could not be sized or allocated.
	ErrResourceExhausted = errors.New("sieve: resource exhausted")

	// ErrBoundEstimateViolated indicates the sieve range ran out before the n-th prime,
	// even after every allowed widening.
	ErrBoundEstimateViolated = errors.New("sieve: bound estimate violated")

	// ErrInvalidInput indicates n < 1 under WithStrict().
	ErrInvalidInput = errors.New("sieve: n must be at least 1")

	// ErrBadBufferMode indicates an unknown BufferMode.
	ErrBadBufferMode = errors.New("sieve: unknown buffer mode")

	// ErrBadMaxBufferBytes indicates a non-positive buffer budget.
	ErrBadMaxBufferBytes = errors.New("sieve: MaxBufferBytes must be positive")

	// ErrBadMaxWidenings indicates a negative widening cap.
	ErrBadMaxWidenings = errors.New("sieve: MaxWidenings must be non-negative")

	// ErrNilBoundFunc indicates WithBoundFunc(nil).
	ErrNilBoundFunc = errors.New("sieve: bound function is nil")
)

// Error kinds reported by ErrorKind.
const (
	KindOK                    = "ok"
	KindResourceExhausted     = "resource_exhausted"
	KindBoundEstimateViolated = "bound_estimate_violated"
	KindInvalidInput          = "invalid_input"
	KindUnknown               = "unknown"
)

// ErrorKind classifies err into one of the Kind* labels.
// A nil error is KindOK.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrResourceExhausted):
		return KindResourceExhausted
	case errors.Is(err, ErrBoundEstimateViolated):
		return KindBoundEstimateViolated
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindUnknown
	}
}
