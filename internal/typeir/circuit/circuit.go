// Package circuit implements the §9 "Circuit.*" sub-table (spec.md Open
// Question 2): layout, is_zst and is_complex for the circuit type family,
// kept as three pure functions the way the reference implementation
// delegates to an auxiliary module.
//
// Only Circuit.AddMod and Circuit.MulMod are modeled as distinct,
// classifier-visible categories (both are builtins: single machine words
// used as cost-accounting tokens, exactly like Bitwise/Pedersen/Poseidon).
// Every other circuit-related type (the accumulated circuit input buffer,
// the computed-circuit output buffer, the circuit descriptor) is modeled
// uniformly as an opaque heap pointer: the real implementation's circuit
// buffers are always accessed indirectly, never flattened into registers,
// so a pointer-sized, non-complex, non-zero-sized layout is the correct
// and sufficient model for everything this backend's driver/type contract
// needs (spec.md places the actual circuit libfunc lowerings, which do
// touch the buffer's internal shape, out of scope).
package circuit

import "github.com/hakymulla/cairo-native/internal/layout"

// Category distinguishes the circuit sub-family a concrete type belongs
// to.
type Category int

const (
	CategoryAddMod Category = iota
	CategoryMulMod
	CategoryOther
)

// IsBuiltin reports whether cat is one of the circuit builtin counters.
func IsBuiltin(cat Category) bool {
	return cat == CategoryAddMod || cat == CategoryMulMod
}

// Layout returns the machine layout of the circuit sub-family.
func Layout(cat Category) layout.Layout {
	switch cat {
	case CategoryAddMod, CategoryMulMod:
		return layout.New(64)
	default:
		return layout.Pointer()
	}
}

// IsZST reports whether the circuit sub-family is zero-sized. None are:
// the builtins occupy a machine word and the buffers are pointers.
func IsZST(Category) bool {
	return false
}

// IsComplex reports whether the circuit sub-family requires a
// return-by-pointer ABI. Builtins and opaque buffer pointers are both
// single machine words, never complex.
func IsComplex(Category) bool {
	return false
}
