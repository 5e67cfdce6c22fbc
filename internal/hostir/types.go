package hostir

import "tinygo.org/x/go-llvm"

// Type is a lowered host machine IR type (spec.md §4.E). It wraps the
// underlying framework type opaquely so the rest of the backend never
// imports tinygo.org/x/go-llvm directly.
type Type struct {
	llvm llvm.Type
}

// String renders the type the way the host framework prints it, used by
// type-lowering tests to assert on shape without exposing llvm.Type.
func (t Type) String() string {
	return t.llvm.String()
}

// IntType returns an integer type of the given bit width. Sierra's 252-
// and 248-bit families (Felt252, Bytes31) are first-class widths here,
// same as any narrower integer (spec.md §4.E).
func (c *Context) IntType(bits uint) Type {
	return Type{llvm: c.llvm.IntType(int(bits))}
}

// PointerType returns an opaque pointer in address space 0, the lowering
// target for every pointer-like Sierra family (Box, Nullable,
// Felt252Dict, Starknet.System, …).
func (c *Context) PointerType() Type {
	return Type{llvm: llvm.PointerType(c.llvm.Int8Type(), 0)}
}

// StructType returns the struct type over fields in declared order, with
// the host ABI's natural packing (no explicit padding inserted here: the
// layout package already accounts for it).
func (c *Context) StructType(fields []Type, packed bool) Type {
	elems := make([]llvm.Type, len(fields))
	for i, f := range fields {
		elems[i] = f.llvm
	}
	return Type{llvm: c.llvm.StructType(elems, packed)}
}

// ArrayType returns a fixed-length array of elem, the lowering target for
// EcPoint ([i252 x 2]), EcState ([i252 x 4]), and an Enum's payload byte
// array ([i8 x payload_bytes]).
func (c *Context) ArrayType(elem Type, count int) Type {
	return Type{llvm: llvm.ArrayType(elem.llvm, count)}
}

// VoidType returns the host framework's void type, used for functions with
// no return value.
func (c *Context) VoidType() Type {
	return Type{llvm: c.llvm.VoidType()}
}
