package sieve

import (
	"fmt"
	"math"
)

// rosserMinN is the smallest n for which n·ln(n) + n·ln(ln(n)) is a proven
// upper bound on the n-th prime.
const rosserMinN = 6

// smallBound covers p(2)..p(5) = 3, 5, 7, 11.
const smallBound = 11

// EstimateBound returns an upper bound for the value of the n-th prime.
//
// For n ≥ 6 it is Rosser's bound n·ln(n) + n·ln(ln(n)). Below that the
// formula is unreliable (ln(ln(n)) is negative or undefined for n ≤ e), so a
// fixed bound of 11 is returned instead.
func EstimateBound(n int) float64 {
	if n < rosserMinN {
		return smallBound
	}
	fn := float64(n)
	return fn*math.Log(fn) + fn*math.Log(math.Log(fn))
}

// limitFor turns an estimate into an inclusive sieve limit.
// The limit must leave room for a limit+1 sized buffer in an int.
func limitFor(n int, estimate float64) (int, error) {
	if math.IsNaN(estimate) || math.IsInf(estimate, 0) {
		return 0, fmt.Errorf("%w: n=%d: bound estimate %v is not finite", ErrResourceExhausted, n, estimate)
	}
	c := math.Ceil(estimate)
	if c < 2 {
		return 2, nil
	}
	if c >= float64(math.MaxInt) {
		return 0, fmt.Errorf("%w: n=%d: bound %.0f does not fit in int", ErrResourceExhausted, n, c)
	}
	return int(c), nil
}

// widen doubles limit. It reports false when the result would not fit in an int.
func widen(limit int) (int, bool) {
	if limit > (math.MaxInt-1)/2 {
		return 0, false
	}
	return limit * 2, true
}
