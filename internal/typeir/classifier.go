package typeir

import (
	"errors"
	"math/big"

	"github.com/hakymulla/cairo-native/internal/cairoerr"
	"github.com/hakymulla/cairo-native/internal/layout"
	"github.com/hakymulla/cairo-native/internal/sierra"
	"github.com/hakymulla/cairo-native/internal/typeir/circuit"
)

// Classifier evaluates the four ABI predicates and their accessors over a
// Registry, for a fixed target ABI (spec.md §4.D). It is data-driven: each
// predicate below is a single table switch over sierra.TypeCategory,
// matching the reference implementation's closed-sum `match self { ... }`
// one-for-one (see DESIGN.md), so adding a new Sierra family is a single
// new case rather than a new virtual method.
type Classifier struct {
	Registry *Registry
	Target   Target
}

// NewClassifier builds a Classifier over r for the given target ABI.
func NewClassifier(r *Registry, target Target) *Classifier {
	return &Classifier{Registry: r, Target: target}
}

func (c *Classifier) get(id sierra.ConcreteTypeId) (*sierra.TypeDeclaration, error) {
	return c.Registry.GetType(id)
}

// builtinCategories is the set recognized by IsBuiltin (spec.md §4.D).
var builtinCategories = map[sierra.TypeCategory]bool{
	sierra.CategoryBitwise:        true,
	sierra.CategoryEcOp:           true,
	sierra.CategoryGasBuiltin:     true,
	sierra.CategoryBuiltinCosts:   true,
	sierra.CategoryRangeCheck:     true,
	sierra.CategoryRangeCheck96:   true,
	sierra.CategoryPedersen:       true,
	sierra.CategoryPoseidon:       true,
	sierra.CategoryCoupon:         true,
	sierra.CategoryStarknetSystem: true,
	sierra.CategorySegmentArena:   true,
	sierra.CategoryCircuitAddMod:  true,
	sierra.CategoryCircuitMulMod:  true,
}

// IsBuiltin reports whether t is one of the builtin counter/token types.
func (c *Classifier) IsBuiltin(t *sierra.TypeDeclaration) bool {
	return builtinCategories[t.Category]
}

// fieldSizedStarknetHashTypes are the field-element-sized Starknet domain
// types whose is_complex follows the x86-64/AArch64 split, same as
// Felt252/Bytes31 (spec.md §4.D).
var fieldSizedStarknetHashTypes = map[sierra.TypeCategory]bool{
	sierra.CategoryStarknetClassHash:          true,
	sierra.CategoryStarknetContractAddress:    true,
	sierra.CategoryStarknetStorageAddress:     true,
	sierra.CategoryStarknetStorageBaseAddress: true,
}

// IsComplex implements the ABI return-by-pointer test (spec.md §4.D).
func (c *Classifier) IsComplex(t *sierra.TypeDeclaration) (bool, error) {
	switch t.Category {
	// Builtins and the always-scalar non-complex set.
	case sierra.CategoryBitwise, sierra.CategoryEcOp, sierra.CategoryGasBuiltin,
		sierra.CategoryBuiltinCosts, sierra.CategoryRangeCheck, sierra.CategoryPedersen,
		sierra.CategoryPoseidon, sierra.CategoryRangeCheck96, sierra.CategoryStarknetSystem,
		sierra.CategorySegmentArena:
		return false, nil

	case sierra.CategoryBox, sierra.CategoryUint8, sierra.CategoryUint16, sierra.CategoryUint32,
		sierra.CategoryUint64, sierra.CategoryUint128, sierra.CategoryUint128MulGuarantee,
		sierra.CategorySint8, sierra.CategorySint16, sierra.CategorySint32, sierra.CategorySint64,
		sierra.CategorySint128, sierra.CategoryNullable, sierra.CategoryFelt252Dict,
		sierra.CategorySquashedFelt252Dict, sierra.CategoryStarknetSha256Handle:
		return false, nil

	case sierra.CategoryArray, sierra.CategoryEcPoint, sierra.CategoryEcState,
		sierra.CategoryFelt252DictEntry, sierra.CategoryStruct:
		return true, nil

	case sierra.CategoryFelt252, sierra.CategoryBytes31:
		return c.Target == TargetAMD64, nil

	case sierra.CategoryStarknetSecp256:
		return c.Target == TargetAMD64, nil

	default:
		if fieldSizedStarknetHashTypes[t.Category] {
			return c.Target == TargetAMD64, nil
		}
	}

	switch t.Category {
	case sierra.CategoryNonZero, sierra.CategoryUninitialized, sierra.CategorySnapshot:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return false, err
		}
		return c.IsComplex(inner)

	case sierra.CategoryConst:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return false, err
		}
		return c.IsComplex(inner)

	case sierra.CategoryEnum:
		switch len(t.Variants) {
		case 0:
			return false, nil
		case 1:
			inner, err := c.get(t.Variants[0])
			if err != nil {
				return false, err
			}
			return c.IsComplex(inner)
		default:
			zst, err := c.IsZST(t)
			if err != nil {
				return false, err
			}
			return !zst, nil
		}

	case sierra.CategoryBoundedInt:
		r, err := c.boundedIntRange(t)
		if err != nil {
			return false, err
		}
		if c.Target == TargetARM64 {
			return false, nil
		}
		return r.OffsetBitWidth() > 128, nil

	case sierra.CategoryCoupon:
		return false, nil

	case sierra.CategoryIntRange:
		return false, nil

	case sierra.CategoryCircuitAddMod, sierra.CategoryCircuitMulMod:
		return circuit.IsComplex(circuitCategory(t.Category)), nil
	case sierra.CategoryCircuit:
		return circuit.IsComplex(circuit.CategoryOther), nil

	case sierra.CategorySpan, sierra.CategoryBlake, sierra.CategoryQM31:
		return false, cairoerr.UnsupportedType(string(t.Category))
	}

	return false, cairoerr.UnsupportedType(string(t.Category))
}

// IsZST reports whether t resolves to a zero-sized type (spec.md §4.D).
func (c *Classifier) IsZST(t *sierra.TypeDeclaration) (bool, error) {
	switch t.Category {
	case sierra.CategoryBitwise, sierra.CategoryEcOp, sierra.CategoryRangeCheck,
		sierra.CategoryPedersen, sierra.CategoryPoseidon, sierra.CategoryRangeCheck96,
		sierra.CategorySegmentArena, sierra.CategoryBuiltinCosts:
		return false, nil

	case sierra.CategoryUint128MulGuarantee, sierra.CategoryCoupon:
		return true, nil

	case sierra.CategoryArray, sierra.CategoryBox, sierra.CategoryBytes31, sierra.CategoryEcPoint,
		sierra.CategoryEcState, sierra.CategoryFelt252, sierra.CategoryGasBuiltin,
		sierra.CategoryUint8, sierra.CategoryUint16, sierra.CategoryUint32, sierra.CategoryUint64,
		sierra.CategoryUint128, sierra.CategorySint8, sierra.CategorySint16, sierra.CategorySint32,
		sierra.CategorySint64, sierra.CategorySint128, sierra.CategoryFelt252Dict,
		sierra.CategoryFelt252DictEntry, sierra.CategorySquashedFelt252Dict, sierra.CategoryNullable,
		sierra.CategoryStarknetSystem, sierra.CategoryStarknetClassHash, sierra.CategoryStarknetContractAddress,
		sierra.CategoryStarknetStorageAddress, sierra.CategoryStarknetStorageBaseAddress,
		sierra.CategoryStarknetSecp256, sierra.CategoryStarknetSha256Handle:
		return false, nil

	case sierra.CategoryNonZero, sierra.CategoryUninitialized, sierra.CategorySnapshot, sierra.CategoryConst:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return false, err
		}
		return c.IsZST(inner)

	case sierra.CategoryEnum:
		if len(t.Variants) == 0 {
			return true, nil
		}
		if len(t.Variants) == 1 {
			inner, err := c.get(t.Variants[0])
			if err != nil {
				return false, err
			}
			return c.IsZST(inner)
		}
		return false, nil

	case sierra.CategoryStruct:
		for _, member := range t.Members {
			inner, err := c.get(member)
			if err != nil {
				return false, err
			}
			zst, err := c.IsZST(inner)
			if err != nil {
				return false, err
			}
			if !zst {
				return false, nil
			}
		}
		return true, nil

	case sierra.CategoryBoundedInt:
		return false, nil

	case sierra.CategoryIntRange:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return false, err
		}
		return c.IsZST(inner)

	case sierra.CategoryCircuitAddMod, sierra.CategoryCircuitMulMod:
		return circuit.IsZST(circuitCategory(t.Category)), nil
	case sierra.CategoryCircuit:
		return circuit.IsZST(circuit.CategoryOther), nil

	case sierra.CategorySpan, sierra.CategoryBlake, sierra.CategoryQM31:
		return false, cairoerr.UnsupportedType(string(t.Category))
	}

	return false, cairoerr.UnsupportedType(string(t.Category))
}

// IsMemoryAllocated reports whether t requires a stack slot to flatten an
// enum payload through the ABI (spec.md §4.D).
func (c *Classifier) IsMemoryAllocated(t *sierra.TypeDeclaration) (bool, error) {
	switch t.Category {
	case sierra.CategoryEnum:
		switch len(t.Variants) {
		case 0:
			return false, nil
		case 1:
			inner, err := c.get(t.Variants[0])
			if err != nil {
				return false, err
			}
			return c.IsMemoryAllocated(inner)
		default:
			for _, variant := range t.Variants {
				inner, err := c.get(variant)
				if err != nil {
					return false, err
				}
				zst, err := c.IsZST(inner)
				if err != nil {
					return false, err
				}
				if !zst {
					return true, nil
				}
			}
			return false, nil
		}

	case sierra.CategoryStruct:
		for _, member := range t.Members {
			inner, err := c.get(member)
			if err != nil {
				return false, err
			}
			allocated, err := c.IsMemoryAllocated(inner)
			if err != nil {
				return false, err
			}
			if allocated {
				return true, nil
			}
		}
		return false, nil

	case sierra.CategoryNonZero, sierra.CategoryUninitialized, sierra.CategorySnapshot, sierra.CategoryConst:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return false, err
		}
		return c.IsMemoryAllocated(inner)

	case sierra.CategorySpan, sierra.CategoryBlake, sierra.CategoryQM31:
		return false, cairoerr.UnsupportedType(string(t.Category))

	default:
		// Every other family is a scalar, pointer, counter, or fixed-shape
		// aggregate with no enum inside: none of these require memory
		// allocation to flatten an enum payload.
		return false, nil
	}
}

// IntegerRange returns t's value range, defined for the numeric families
// plus transparent wrappers (spec.md §4.D). It fails with
// KindIntegerLikeTypeExpected for every other family.
func (c *Classifier) IntegerRange(t *sierra.TypeDeclaration) (Range, error) {
	switch t.Category {
	case sierra.CategoryUint8:
		return unsignedRange(8), nil
	case sierra.CategoryUint16:
		return unsignedRange(16), nil
	case sierra.CategoryUint32:
		return unsignedRange(32), nil
	case sierra.CategoryUint64:
		return unsignedRange(64), nil
	case sierra.CategoryUint128:
		return unsignedRange(128), nil
	case sierra.CategorySint8:
		return signedRange(8), nil
	case sierra.CategorySint16:
		return signedRange(16), nil
	case sierra.CategorySint32:
		return signedRange(32), nil
	case sierra.CategorySint64:
		return signedRange(64), nil
	case sierra.CategorySint128:
		return signedRange(128), nil
	case sierra.CategoryFelt252:
		return felt252Range(), nil
	case sierra.CategoryBytes31:
		return bytes31Range(), nil
	case sierra.CategoryBoundedInt:
		return c.boundedIntRange(t)
	case sierra.CategoryConst, sierra.CategoryNonZero, sierra.CategorySnapshot, sierra.CategoryUninitialized:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return Range{}, err
		}
		return c.IntegerRange(inner)
	default:
		return Range{}, cairoerr.IntegerLikeTypeExpected(string(t.Category))
	}
}

func (c *Classifier) boundedIntRange(t *sierra.TypeDeclaration) (Range, error) {
	lower, ok := new(big.Int).SetString(t.RangeLower, 10)
	if !ok {
		return Range{}, cairoerr.New(cairoerr.KindAssertionViolated, "BoundedInt %s has malformed lower bound %q", t.Id, t.RangeLower)
	}
	upper, ok := new(big.Int).SetString(t.RangeUpper, 10)
	if !ok {
		return Range{}, cairoerr.New(cairoerr.KindAssertionViolated, "BoundedInt %s has malformed upper bound %q", t.Id, t.RangeUpper)
	}
	return Range{Lower: lower, Upper: upper}, nil
}

// IsBoundedInt reports whether t is a BoundedInt, directly or
// transparently through NonZero (spec.md §4.D).
func (c *Classifier) IsBoundedInt(t *sierra.TypeDeclaration) (bool, error) {
	switch t.Category {
	case sierra.CategoryBoundedInt:
		return true, nil
	case sierra.CategoryNonZero:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return false, err
		}
		return c.IsBoundedInt(inner)
	default:
		return false, nil
	}
}

// IsFelt252 reports whether t is a Felt252, directly or transparently
// through NonZero (spec.md §4.D).
func (c *Classifier) IsFelt252(t *sierra.TypeDeclaration) (bool, error) {
	switch t.Category {
	case sierra.CategoryFelt252:
		return true, nil
	case sierra.CategoryNonZero:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return false, err
		}
		return c.IsFelt252(inner)
	default:
		return false, nil
	}
}

// Variants returns t's enum variants, or (nil, false) for every other
// family (spec.md §4.D).
func Variants(t *sierra.TypeDeclaration) ([]sierra.ConcreteTypeId, bool) {
	if t.Category == sierra.CategoryEnum {
		return t.Variants, true
	}
	return nil, false
}

// Layout computes t's machine layout (spec.md §3/§4.D), always
// pad-to-align normalized (invariant 2).
func (c *Classifier) Layout(t *sierra.TypeDeclaration) (layout.Layout, error) {
	l, err := c.layoutUnpadded(t)
	if err != nil {
		var cerr *cairoerr.Error
		if errors.Is(err, layout.ErrOverflow) && !errors.As(err, &cerr) {
			err = cairoerr.Wrap(cairoerr.KindLayoutOverflow, err, "computing layout of %s", t.Id)
		}
		return layout.Layout{}, err
	}
	return l.PadToAlign(), nil
}

func (c *Classifier) layoutUnpadded(t *sierra.TypeDeclaration) (layout.Layout, error) {
	switch t.Category {
	case sierra.CategoryArray:
		return arrayLayout()
	case sierra.CategoryBitwise, sierra.CategoryEcOp, sierra.CategoryRangeCheck,
		sierra.CategoryRangeCheck96, sierra.CategoryPedersen, sierra.CategoryPoseidon,
		sierra.CategorySegmentArena, sierra.CategoryGasBuiltin:
		return layout.New(64), nil
	case sierra.CategoryBox, sierra.CategoryNullable, sierra.CategoryBuiltinCosts,
		sierra.CategoryFelt252Dict, sierra.CategorySquashedFelt252Dict,
		sierra.CategoryStarknetSystem, sierra.CategoryStarknetSha256Handle:
		return layout.Pointer(), nil
	case sierra.CategoryUint128MulGuarantee, sierra.CategoryCoupon:
		return layout.Unit(), nil
	case sierra.CategoryUint8:
		return layout.New(8), nil
	case sierra.CategoryUint16:
		return layout.New(16), nil
	case sierra.CategoryUint32:
		return layout.New(32), nil
	case sierra.CategoryUint64:
		return layout.New(64), nil
	case sierra.CategoryUint128:
		return layout.New(128), nil
	case sierra.CategorySint8:
		return layout.New(8), nil
	case sierra.CategorySint16:
		return layout.New(16), nil
	case sierra.CategorySint32:
		return layout.New(32), nil
	case sierra.CategorySint64:
		return layout.New(64), nil
	case sierra.CategorySint128:
		return layout.New(128), nil
	case sierra.CategoryFelt252, sierra.CategoryStarknetClassHash, sierra.CategoryStarknetContractAddress,
		sierra.CategoryStarknetStorageAddress, sierra.CategoryStarknetStorageBaseAddress:
		return layout.New(252), nil
	case sierra.CategoryBytes31:
		return layout.New(248), nil
	case sierra.CategoryBoundedInt:
		r, err := c.boundedIntRange(t)
		if err != nil {
			return layout.Layout{}, err
		}
		return layout.New(uint64(r.OffsetBitWidth())), nil
	case sierra.CategoryEcPoint:
		return layout.Repeat(layout.New(252), 2)
	case sierra.CategoryEcState:
		return layout.Repeat(layout.New(252), 4)
	case sierra.CategoryFelt252DictEntry:
		return felt252DictEntryLayout()
	case sierra.CategoryStarknetSecp256:
		return secp256PointLayout()
	case sierra.CategoryNonZero, sierra.CategoryUninitialized, sierra.CategorySnapshot, sierra.CategoryConst:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return layout.Layout{}, err
		}
		return c.layoutUnpadded(inner)
	case sierra.CategoryIntRange:
		inner, err := c.get(t.InnerTy)
		if err != nil {
			return layout.Layout{}, err
		}
		innerLayout, err := c.Layout(inner)
		if err != nil {
			return layout.Layout{}, err
		}
		combined, _, err := innerLayout.Extend(innerLayout)
		return combined, err
	case sierra.CategoryEnum:
		return c.enumLayout(t)
	case sierra.CategoryStruct:
		return c.structLayout(t)
	case sierra.CategoryCircuitAddMod, sierra.CategoryCircuitMulMod:
		return circuit.Layout(circuitCategory(t.Category)), nil
	case sierra.CategoryCircuit:
		return circuit.Layout(circuit.CategoryOther), nil
	case sierra.CategorySpan, sierra.CategoryBlake, sierra.CategoryQM31:
		return layout.Layout{}, cairoerr.UnsupportedType(string(t.Category))
	}
	return layout.Layout{}, cairoerr.UnsupportedType(string(t.Category))
}

func arrayLayout() (layout.Layout, error) {
	l := layout.Pointer()
	var err error
	for i := 0; i < 3; i++ {
		l, _, err = l.Extend(layout.New(32))
		if err != nil {
			return layout.Layout{}, err
		}
	}
	return l, nil
}

func felt252DictEntryLayout() (layout.Layout, error) {
	l, _, err := layout.New(252).Extend(layout.Pointer())
	if err != nil {
		return layout.Layout{}, err
	}
	l, _, err = l.Extend(layout.Pointer())
	return l, err
}

func secp256PointLayout() (layout.Layout, error) {
	l, _, err := layout.New(256).Extend(layout.New(256))
	if err != nil {
		return layout.Layout{}, err
	}
	l, _, err = l.Extend(layout.New(1))
	return l, err
}

// enumLayout implements spec.md invariant 6: the tag occupies
// ceil(log2(next_power_of_two(max(1, k)))) bits widened to a byte
// boundary, and the overall layout is the max over (tag ⊕ variant_i).
func (c *Classifier) enumLayout(t *sierra.TypeDeclaration) (layout.Layout, error) {
	tagLayout := enumTagLayout(len(t.Variants))
	acc := tagLayout
	for _, variantId := range t.Variants {
		variant, err := c.get(variantId)
		if err != nil {
			return layout.Layout{}, err
		}
		variantLayout, err := c.Layout(variant)
		if err != nil {
			return layout.Layout{}, err
		}
		combined, _, err := tagLayout.Extend(variantLayout)
		if err != nil {
			return layout.Layout{}, err
		}
		acc = layout.Layout{
			Size:  maxU64(acc.Size, combined.Size),
			Align: maxU64(acc.Align, combined.Align),
		}
	}
	return acc, nil
}

func enumTagLayout(numVariants int) layout.Layout {
	n := numVariants
	if n < 1 {
		n = 1
	}
	bits := bitsToRepresent(nextPow2(uint64(n)))
	return layout.New(bits)
}

// bitsToRepresent returns the bit width needed to hold values [0, n), for
// n a power of two (trailing_zeros(n) in the reference implementation).
func bitsToRepresent(n uint64) uint64 {
	if n <= 1 {
		return 0
	}
	bits := uint64(0)
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}

func nextPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

func (c *Classifier) structLayout(t *sierra.TypeDeclaration) (layout.Layout, error) {
	if len(t.Members) == 0 {
		return layout.Unit(), nil
	}
	var acc layout.Layout
	for i, memberId := range t.Members {
		member, err := c.get(memberId)
		if err != nil {
			return layout.Layout{}, err
		}
		memberLayout, err := c.Layout(member)
		if err != nil {
			return layout.Layout{}, err
		}
		if i == 0 {
			acc = memberLayout
			continue
		}
		acc, _, err = acc.Extend(memberLayout)
		if err != nil {
			return layout.Layout{}, err
		}
	}
	return acc, nil
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func circuitCategory(cat sierra.TypeCategory) circuit.Category {
	switch cat {
	case sierra.CategoryCircuitAddMod:
		return circuit.CategoryAddMod
	case sierra.CategoryCircuitMulMod:
		return circuit.CategoryMulMod
	default:
		return circuit.CategoryOther
	}
}
