package sieve

import "fmt"

// Find: n-th prime by bounded Sieve of Eratosthenes
//
// Algorithm Outline:
//  1. n ≤ 1: answer 2 immediately (ErrInvalidInput for n < 1 under Strict).
//  2. limit = ⌈Bound(n)⌉, checked to fit in an int.
//  3. Check the buffer cost for limit+1 entries against MaxBufferBytes and allocate.
//  4. For i = 2..limit:
//     unmarked i is prime → count++; if count == n return i;
//     otherwise mark i·i, i·i+i, … ≤ limit.
//  5. count < n at the end means the bound undershot: double limit and go to 3,
//     at most MaxWidenings times, then fail with ErrBoundEstimateViolated.
//
// Complexity:
//
//	Time   = O(L · log log L) per attempt, L = final limit
//	Memory = O(L) bits (Bitset) or bytes (Bytes)
//
// Errors:
//   - ErrInvalidInput:          n < 1 with Strict.
//   - ErrResourceExhausted:     bound unrepresentable, over budget, or allocation failed.
//   - ErrBoundEstimateViolated: still short of n primes after all widenings.
func Find(n int, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Quirk kept on purpose: any n ≤ 1, including 0 and negatives, is read as
	// a request for the first prime.
	if n <= 1 {
		if o.Strict && n < 1 {
			return Result{}, fmt.Errorf("%w: got %d", ErrInvalidInput, n)
		}
		return Result{N: n, Prime: 2, Mode: o.BufferMode}, nil
	}

	limit, err := limitFor(n, o.Bound(n))
	if err != nil {
		return Result{}, err
	}

	for widenings := 0; ; widenings++ {
		need := bufferBytes(o.BufferMode, limit+1)
		if need > o.MaxBufferBytes {
			return Result{}, fmt.Errorf("%w: n=%d: limit %d needs %d bytes, budget is %d",
				ErrResourceExhausted, n, limit, need, o.MaxBufferBytes)
		}

		buf, err := allocate(o.BufferMode, limit+1)
		if err != nil {
			return Result{}, err
		}

		if p, ok := scan(buf, limit, n); ok {
			return Result{
				N:           n,
				Prime:       p,
				Limit:       limit,
				Widenings:   widenings,
				BufferBytes: need,
				Mode:        o.BufferMode,
			}, nil
		}

		if widenings >= o.MaxWidenings {
			return Result{}, fmt.Errorf("%w: n=%d: fewer than n primes up to %d after %d widenings",
				ErrBoundEstimateViolated, n, limit, widenings)
		}
		next, ok := widen(limit)
		if !ok {
			return Result{}, fmt.Errorf("%w: n=%d: cannot widen limit %d", ErrResourceExhausted, n, limit)
		}
		if o.OnWiden != nil {
			o.OnWiden(limit, next)
		}
		limit = next
	}
}

// NthPrime returns the n-th prime (1-indexed: NthPrime(1) == 2).
// See Find for the algorithm, options and errors.
func NthPrime(n int, opts ...Option) (int, error) {
	res, err := Find(n, opts...)
	if err != nil {
		return 0, err
	}
	return res.Prime, nil
}

// scan sieves buf over 2..limit and returns the n-th prime found.
// It reports false when fewer than n primes are ≤ limit.
func scan(buf marker, limit, n int) (int, bool) {
	count := 0
	for i := 2; i <= limit; i++ {
		if buf.isComposite(i) {
			continue
		}
		count++
		if count == n {
			return i, true
		}
		// multiples below i·i were struck by smaller primes
		if i > limit/i {
			continue
		}
		for j := i * i; j <= limit; j += i {
			buf.mark(j)
		}
	}
	return 0, false
}
