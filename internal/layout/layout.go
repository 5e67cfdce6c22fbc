// Package layout implements the size/alignment arithmetic used to compute
// the machine-level memory layout of every Sierra concrete type.
package layout

import (
	"errors"
	"fmt"
)

// ErrOverflow is returned when a Layout computation would overflow a
// machine word.
var ErrOverflow = errors.New("layout: size overflow")

// Layout is the (size, align) pair of a machine-level aggregate. Align is
// always a power of two.
type Layout struct {
	Size  uint64
	Align uint64
}

// New returns the layout of a scalar of the given bit width, rounded up to
// the next byte and naturally aligned to its own size. Unlike a general
// ABI's machine-word cap, felt252-family scalars are wider than a pointer
// (32 bytes) and still carry their own natural alignment: Sierra's scalar
// set tops out at Felt252/Bytes31, so this never needs a cap.
func New(bitWidth uint64) Layout {
	size := (bitWidth + 7) / 8
	align := nextPowerOfTwo(size)
	if align == 0 {
		align = 1
	}
	return Layout{Size: size, Align: align}
}

// Pointer is the layout of an opaque pointer on a 64-bit target.
func Pointer() Layout {
	return Layout{Size: 8, Align: 8}
}

// Unit is the zero-size, one-align layout of an empty aggregate.
func Unit() Layout {
	return Layout{Size: 0, Align: 1}
}

// Extend appends other after l, inserting padding so that other starts at
// an offset satisfying other.Align. It returns the combined layout and the
// offset at which other begins.
func (l Layout) Extend(other Layout) (Layout, uint64, error) {
	offset, err := roundUp(l.Size, other.Align)
	if err != nil {
		return Layout{}, 0, err
	}
	size, ok := addOverflow(offset, other.Size)
	if !ok {
		return Layout{}, 0, fmt.Errorf("%w: extending %+v by %+v", ErrOverflow, l, other)
	}
	return Layout{Size: size, Align: max(l.Align, other.Align)}, offset, nil
}

// Repeat computes the layout of an array of n copies of l, as if by
// extending l with itself n-1 times.
func Repeat(l Layout, n uint64) (Layout, error) {
	if n == 0 {
		return Unit(), nil
	}
	padded := l.PadToAlign()
	size, ok := mulOverflow(padded.Size, n)
	if !ok {
		return Layout{}, fmt.Errorf("%w: repeating %+v %d times", ErrOverflow, l, n)
	}
	return Layout{Size: size, Align: padded.Align}, nil
}

// PadToAlign rounds Size up to a multiple of Align, leaving Align unchanged.
func (l Layout) PadToAlign() Layout {
	size, err := roundUp(l.Size, l.Align)
	if err != nil {
		// Padding a valid layout to its own alignment cannot overflow in
		// practice (sizes are bounded by program-derived aggregates well
		// under 2^63); treat it as the invariant violation it would be.
		panic(fmt.Sprintf("layout: pad_to_align overflow on %+v: %v", l, err))
	}
	return Layout{Size: size, Align: l.Align}
}

func roundUp(size, align uint64) (uint64, error) {
	if align == 0 {
		align = 1
	}
	rem := size % align
	if rem == 0 {
		return size, nil
	}
	padding := align - rem
	out, ok := addOverflow(size, padding)
	if !ok {
		return 0, ErrOverflow
	}
	return out, nil
}

func addOverflow(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

func mulOverflow(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	return p, p/a == b
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return n
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

func max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
