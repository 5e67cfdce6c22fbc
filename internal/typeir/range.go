package typeir

import "math/big"

// Prime is the Cairo field's modulus, P = 2^251 + 17*2^192 + 1.
var Prime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	term := new(big.Int).Lsh(big.NewInt(17), 192)
	p.Add(p, term)
	p.Add(p, big.NewInt(1))
	return p
}()

// Range is an integer type's value range, [Lower, Upper), Upper exclusive
// (spec.md §3).
type Range struct {
	Lower *big.Int
	Upper *big.Int
}

// unsignedRange returns [0, 2^bits).
func unsignedRange(bits uint) Range {
	upper := new(big.Int).Lsh(big.NewInt(1), bits)
	return Range{Lower: big.NewInt(0), Upper: upper}
}

// signedRange returns [-2^(bits-1), 2^(bits-1)).
func signedRange(bits uint) Range {
	half := new(big.Int).Lsh(big.NewInt(1), bits-1)
	lower := new(big.Int).Neg(half)
	return Range{Lower: lower, Upper: half}
}

func felt252Range() Range {
	return Range{Lower: big.NewInt(0), Upper: new(big.Int).Set(Prime)}
}

func bytes31Range() Range {
	return unsignedRange(248)
}

// Span returns Upper - Lower.
func (r Range) Span() *big.Int {
	return new(big.Int).Sub(r.Upper, r.Lower)
}

// OffsetBitWidth returns the minimum number of bits needed to represent
// Upper-Lower as an unsigned integer.
func (r Range) OffsetBitWidth() uint {
	span := r.Span()
	// BitLen of n requires ceil(log2(n+1)) bits to hold values [0, n]
	// inclusive; span here is itself an exclusive count (upper-lower), so
	// the number of representable values is span, requiring BitLen(span-1)
	// bits for span > 0, and 0 bits for span == 0.
	if span.Sign() <= 0 {
		return 0
	}
	maxValue := new(big.Int).Sub(span, big.NewInt(1))
	return uint(maxValue.BitLen())
}
