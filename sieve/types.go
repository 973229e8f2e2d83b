package sieve

import (
	"fmt"
	"strings"
)

// BufferMode controls how the composite marks are stored.
//
//   - Bitset: one bit per number, backed by bits-and-blooms/bitset.
//     Memory: ⌈(limit+1)/64⌉·8 bytes. Default.
//
//   - Bytes : one bool per number in a plain slice.
//     Memory: limit+1 bytes. Slightly faster marking, eight times the footprint.
type BufferMode int

const (
	// Bitset stores one mark per bit.
	Bitset BufferMode = iota

	// Bytes stores one mark per byte.
	Bytes
)

// String returns the flag spelling of the mode.
func (m BufferMode) String() string {
	switch m {
	case Bitset:
		return "bitset"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("BufferMode(%d)", int(m))
	}
}

// ParseBufferMode maps "bitset" or "bytes" (case-insensitive) to a BufferMode.
func ParseBufferMode(s string) (BufferMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bitset", "bits":
		return Bitset, nil
	case "bytes", "bool":
		return Bytes, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadBufferMode, s)
	}
}

func (m BufferMode) valid() bool {
	return m == Bitset || m == Bytes
}

// BoundFunc returns an upper estimate for the value of the n-th prime.
// It is only called for n ≥ 2. The result is rounded up; values below 2 are
// raised to 2, non-finite values fail the call with ErrResourceExhausted.
type BoundFunc func(n int) float64

// Defaults applied by DefaultOptions.
const (
	// DefaultMaxBufferBytes caps a single marking buffer at 1 GiB.
	DefaultMaxBufferBytes int64 = 1 << 30

	// DefaultMaxWidenings is the number of doubling retries after a bound violation.
	DefaultMaxWidenings = 8
)

// Options configures Find and NthPrime.
//
// Strict         – reject n < 1 with ErrInvalidInput instead of returning 2.
// BufferMode     – storage used for composite marks.
// MaxBufferBytes – budget for one buffer; larger requests fail with ErrResourceExhausted.
// MaxWidenings   – doubling retries allowed when the bound undershoots.
// Bound          – bound estimator, EstimateBound by default.
// OnWiden        – optional hook, called with the old and new limit before each retry.
type Options struct {
	Strict         bool
	BufferMode     BufferMode
	MaxBufferBytes int64
	MaxWidenings   int
	Bound          BoundFunc
	OnWiden        func(from, to int)
}

// Option represents a functional option for configuring the sieve.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
//
// Defaults:
//   - Strict:         false (n ≤ 1 returns 2).
//   - BufferMode:     Bitset.
//   - MaxBufferBytes: DefaultMaxBufferBytes (1 GiB).
//   - MaxWidenings:   DefaultMaxWidenings.
//   - Bound:          EstimateBound.
//   - OnWiden:        nil.
func DefaultOptions() Options {
	return Options{
		Strict:         false,
		BufferMode:     Bitset,
		MaxBufferBytes: DefaultMaxBufferBytes,
		MaxWidenings:   DefaultMaxWidenings,
		Bound:          EstimateBound,
	}
}

// WithStrict makes n < 1 an error (ErrInvalidInput).
func WithStrict() Option {
	return func(o *Options) {
		o.Strict = true
	}
}

// WithBufferMode selects the mark storage. Unknown modes panic with ErrBadBufferMode.
func WithBufferMode(mode BufferMode) Option {
	return func(o *Options) {
		if !mode.valid() {
			panic(ErrBadBufferMode.Error())
		}
		o.BufferMode = mode
	}
}

// WithMaxBufferBytes sets the per-buffer budget. Non-positive values panic
// with ErrBadMaxBufferBytes.
func WithMaxBufferBytes(max int64) Option {
	return func(o *Options) {
		if max <= 0 {
			panic(ErrBadMaxBufferBytes.Error())
		}
		o.MaxBufferBytes = max
	}
}

// WithMaxWidenings sets how many times the limit may be doubled after a
// bound violation. Zero disables widening; negative values panic with
// ErrBadMaxWidenings.
func WithMaxWidenings(max int) Option {
	return func(o *Options) {
		if max < 0 {
			panic(ErrBadMaxWidenings.Error())
		}
		o.MaxWidenings = max
	}
}

// WithBoundFunc replaces the bound estimator. A nil function panics with ErrNilBoundFunc.
func WithBoundFunc(fn BoundFunc) Option {
	return func(o *Options) {
		if fn == nil {
			panic(ErrNilBoundFunc.Error())
		}
		o.Bound = fn
	}
}

// WithOnWiden registers a hook called before each widen-and-retry round.
func WithOnWiden(fn func(from, to int)) Option {
	return func(o *Options) {
		o.OnWiden = fn
	}
}

// Result describes a successful lookup.
type Result struct {
	N           int        // requested index, as passed in
	Prime       int        // the n-th prime
	Limit       int        // sieve bound of the final attempt; 0 when no sieve ran
	Widenings   int        // doubling retries performed
	BufferBytes int64      // bytes requested for the final buffer
	Mode        BufferMode // storage used
}
