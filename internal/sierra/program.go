// Package sierra models an already-parsed Sierra program: the input
// contract this backend consumes. Parsing `.sierra` text into this shape
// is an external collaborator's job (spec.md §1's "Sierra parsing" is out
// of scope); this package only defines the shape callers hand in.
package sierra

// ConcreteTypeId identifies a concrete (monomorphized) Sierra type.
type ConcreteTypeId string

// FunctionId identifies a Sierra user function.
type FunctionId string

// GenericArg is one generic argument of a concrete type or libfunc
// declaration (a type id, a literal value, or a user-type reference).
type GenericArg struct {
	Type    ConcreteTypeId
	Value   string
	IsValue bool
}

// TypeCategory is the closed tag set of Sierra concrete type families
// relevant to this backend (spec.md §3).
type TypeCategory string

const (
	CategoryUint8     TypeCategory = "Uint8"
	CategoryUint16    TypeCategory = "Uint16"
	CategoryUint32    TypeCategory = "Uint32"
	CategoryUint64    TypeCategory = "Uint64"
	CategoryUint128   TypeCategory = "Uint128"
	CategorySint8     TypeCategory = "Sint8"
	CategorySint16    TypeCategory = "Sint16"
	CategorySint32    TypeCategory = "Sint32"
	CategorySint64    TypeCategory = "Sint64"
	CategorySint128   TypeCategory = "Sint128"
	CategoryFelt252   TypeCategory = "Felt252"
	CategoryBytes31   TypeCategory = "Bytes31"
	CategoryBoundedInt TypeCategory = "BoundedInt"

	CategoryStruct TypeCategory = "Struct"
	CategoryEnum   TypeCategory = "Enum"

	CategoryNonZero       TypeCategory = "NonZero"
	CategorySnapshot      TypeCategory = "Snapshot"
	CategoryUninitialized TypeCategory = "Uninitialized"
	CategoryConst         TypeCategory = "Const"

	CategoryBox                  TypeCategory = "Box"
	CategoryNullable             TypeCategory = "Nullable"
	CategoryFelt252Dict          TypeCategory = "Felt252Dict"
	CategorySquashedFelt252Dict  TypeCategory = "SquashedFelt252Dict"
	CategoryBuiltinCosts         TypeCategory = "BuiltinCosts"
	CategoryStarknetSystem       TypeCategory = "Starknet.System"
	CategoryStarknetSha256Handle TypeCategory = "Starknet.Sha256StateHandle"

	CategoryArray             TypeCategory = "Array"
	CategoryEcPoint           TypeCategory = "EcPoint"
	CategoryEcState           TypeCategory = "EcState"
	CategoryFelt252DictEntry  TypeCategory = "Felt252DictEntry"
	CategoryIntRange          TypeCategory = "IntRange"
	CategoryStarknetSecp256   TypeCategory = "Starknet.Secp256Point"

	CategoryBitwise       TypeCategory = "Bitwise"
	CategoryEcOp          TypeCategory = "EcOp"
	CategoryRangeCheck    TypeCategory = "RangeCheck"
	CategoryRangeCheck96  TypeCategory = "RangeCheck96"
	CategoryPedersen      TypeCategory = "Pedersen"
	CategoryPoseidon      TypeCategory = "Poseidon"
	CategoryGasBuiltin    TypeCategory = "GasBuiltin"
	CategorySegmentArena  TypeCategory = "SegmentArena"
	CategoryUint128MulGuarantee TypeCategory = "Uint128MulGuarantee"
	CategoryCoupon        TypeCategory = "Coupon"

	CategoryCircuitAddMod  TypeCategory = "Circuit.AddMod"
	CategoryCircuitMulMod  TypeCategory = "Circuit.MulMod"
	CategoryCircuit        TypeCategory = "Circuit"

	CategoryStarknetClassHash           TypeCategory = "Starknet.ClassHash"
	CategoryStarknetContractAddress     TypeCategory = "Starknet.ContractAddress"
	CategoryStarknetStorageAddress      TypeCategory = "Starknet.StorageAddress"
	CategoryStarknetStorageBaseAddress  TypeCategory = "Starknet.StorageBaseAddress"

	// Unimplemented families (spec.md §7 UnsupportedType). Const is not
	// in this set: it is fully transparent for the classifier predicates
	// (see typeir.Classifier), and only its host-IR type construction
	// (internal/typeir lowering, not classification) is unimplemented.
	CategorySpan TypeCategory = "Span"
	CategoryBlake TypeCategory = "Blake"
	CategoryQM31  TypeCategory = "QM31"
)

// TypeDeclaration is a single Sierra concrete type declaration.
type TypeDeclaration struct {
	Id           ConcreteTypeId
	Category     TypeCategory
	GenericArgs  []GenericArg
	Members      []ConcreteTypeId // Struct
	Variants     []ConcreteTypeId // Enum
	InnerTy      ConcreteTypeId   // wrappers: NonZero/Snapshot/Uninitialized/Const/IntRange
	RangeLower   string           // BoundedInt: decimal-encoded lower bound
	RangeUpper   string           // BoundedInt: decimal-encoded upper bound (exclusive)
}

// LibfuncDeclaration is a single Sierra concrete libfunc declaration. Its
// lowering is out of scope (spec.md §1); only its presence and signature
// are needed to build the program registry and to know what functions the
// lowering collaborator must produce (spec.md §6).
type LibfuncDeclaration struct {
	Id          string
	GenericArgs []GenericArg
}

// Program is an already-parsed Sierra program.
type Program struct {
	TypeDeclarations    []TypeDeclaration
	LibfuncDeclarations []LibfuncDeclaration
	Functions           []FunctionId
}
