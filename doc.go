// Package primesieve finds the n-th prime number with a bounded Sieve of
// Eratosthenes, as a Go library and as the nth-prime command.
//
// What is in here?
//
//	• sieve/           : NthPrime / Find: bound estimate, marking buffer, widen-and-retry
//	• cmd/nth-prime/   : CLI adapter: one integer in, one integer out, per argument
//	• internal/config  : NTHPRIME_* environment and .env loading
//	• internal/logging : zap logger construction
//	• internal/metrics : Prometheus textfile metrics for CLI runs
//
// Guarantees:
//
//   - Every call allocates its own buffer and returns it to the GC on every path.
//   - The sieve never reads or writes past its buffer; a bound that undershoots
//     is widened and retried, never silently trusted.
//   - Requests that would exceed the buffer budget fail with an error instead of
//     exhausting memory.
//
// Quick example:
//
//	p, err := sieve.NthPrime(10000) // 104729
//
//	$ nth-prime 1 2 3 6
//	2
//	3
//	5
//	13
//
//	go get github.com/katalvlaran/primesieve/sieve
package primesieve
