// Package sieve finds the n-th prime number with a bounded Sieve of Eratosthenes.
//
// Overview:
//
//   - The value of the n-th prime is bounded from above before sieving starts,
//     using Rosser's estimate p(n) < n·ln(n) + n·ln(ln(n)) for n ≥ 6.
//   - A marking buffer of limit+1 entries is allocated per call, composites are
//     struck out, and primes are counted in ascending order until the n-th one.
//   - If the scan reaches the end of the buffer before the n-th prime (the bound
//     undershot), the limit is doubled and the sieve is rerun on a fresh buffer.
//
// When to use:
//
//   - Whenever a single prime by index is needed and the index fits in memory
//     (n up to a few tens of millions with the default 1 GiB budget).
//   - Not for primes beyond int range, streaming generation, or parallel sieving.
//
// Key features:
//
//   - Functional options tune behavior without changing the API signature.
//   - WithBufferMode: Bitset (1 bit per number, default) or Bytes (1 byte per number).
//   - WithMaxBufferBytes: refuses to allocate more than the given budget.
//   - WithMaxWidenings: caps widen-and-retry rounds after a bound violation.
//   - WithBoundFunc: replaces the bound estimator (testing, tuning).
//   - WithStrict: reject n < 1 instead of answering 2.
//   - WithOnWiden: hook called on every widening.
//
// Degenerate input:
//
//	NthPrime(n) for n ≤ 1 returns 2 without sieving. This is a long-standing
//	quirk kept for compatibility: 0 and negative indices are treated as a
//	request for the first prime. WithStrict() turns n < 1 into ErrInvalidInput.
//
// Performance and complexity:
//
//   - Time:  O(L · log log L) where L ≈ n·ln(n·ln n) is the bound.
//   - Space: O(L) bits (Bitset) or bytes (Bytes), released when the call returns.
//
// Error handling (sentinel errors):
//
//   - ErrResourceExhausted:
//     the bound does not fit in an int, exceeds the buffer budget, or the
//     allocation itself failed. Nothing is computed.
//   - ErrBoundEstimateViolated:
//     the sieve range was exhausted and every allowed widening failed too.
//   - ErrInvalidInput:
//     n < 1 under WithStrict().
//
// API reference:
//
//	func NthPrime(n int, opts ...Option) (int, error)
//	func Find(n int, opts ...Option) (Result, error)
//	func EstimateBound(n int) float64
//
// Thread safety:
//
//   - Every call owns its buffer; nothing is shared or pooled, so concurrent
//     calls are safe. A single call never runs in more than one goroutine.
//   - There is no cancellation point. Callers that need one should bound n or
//     the buffer budget before calling.
package sieve
