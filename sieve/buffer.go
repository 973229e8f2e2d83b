package sieve

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// marker holds the composite marks for 0..size-1. Marks are never cleared.
type marker interface {
	isComposite(i int) bool
	mark(i int)
}

type bitMarker struct {
	bits *bitset.BitSet
}

func (m bitMarker) isComposite(i int) bool { return m.bits.Test(uint(i)) }
func (m bitMarker) mark(i int)             { m.bits.Set(uint(i)) }

type byteMarker []bool

func (m byteMarker) isComposite(i int) bool { return m[i] }
func (m byteMarker) mark(i int)             { m[i] = true }

// bufferBytes is the memory a size-entry buffer of the given mode needs.
func bufferBytes(mode BufferMode, size int) int64 {
	if mode == Bytes {
		return int64(size)
	}
	words := (uint64(size) + 63) / 64
	return int64(words * 8)
}

// allocate returns a fresh, all-clear buffer of size entries.
// Failures surface as ErrResourceExhausted instead of a crash.
func allocate(mode BufferMode, size int) (m marker, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("%w: allocating %s buffer of %d entries: %v", ErrResourceExhausted, mode, size, r)
		}
	}()

	if mode == Bytes {
		return byteMarker(make([]bool, size)), nil
	}

	// bitset.New recovers its own allocation panic and hands back an empty set.
	bits := bitset.New(uint(size))
	if bits.Len() < uint(size) {
		return nil, fmt.Errorf("%w: allocating bitset of %d bits", ErrResourceExhausted, size)
	}
	return bitMarker{bits: bits}, nil
}
