package typeir

import (
	"github.com/hakymulla/cairo-native/internal/cairoerr"
	"github.com/hakymulla/cairo-native/internal/hostir"
	"github.com/hakymulla/cairo-native/internal/metadata"
	"github.com/hakymulla/cairo-native/internal/sierra"
)

// RuntimeBindings accumulates host-function declarations that libfunc
// lowerings (and, for Felt252Dict, type lowering itself) register as they
// run (spec.md §4.C, §4.F step 3). It is seeded empty into the metadata
// store at the start of every compilation.
type RuntimeBindings struct {
	Functions map[string]hostir.Type
}

// NewRuntimeBindings returns an empty bindings set.
func NewRuntimeBindings() *RuntimeBindings {
	return &RuntimeBindings{Functions: make(map[string]hostir.Type)}
}

// register inserts name iff absent, mirroring the metadata store's own
// insert-or-refuse semantics (spec.md §8 invariant 7) at function
// granularity.
func (b *RuntimeBindings) register(name string, fn hostir.Type) bool {
	if _, ok := b.Functions[name]; ok {
		return false
	}
	b.Functions[name] = fn
	return true
}

// dictSupportInstalled marks, in the metadata store, that Felt252Dict's
// runtime support functions have already been registered this
// compilation, so a program with many dict-typed values only registers
// them once.
type dictSupportInstalled struct{}

// Lowerer maps Sierra concrete types to host IR types (spec.md §4.E),
// memoized by concrete-type-id so a given Sierra type lowers to the same
// IR type value everywhere it is referenced within one compilation.
type Lowerer struct {
	registry   *Registry
	classifier *Classifier
	ctx        *hostir.Context
	store      *metadata.Storage
	memo       map[sierra.ConcreteTypeId]hostir.Type
}

// NewLowerer builds a Lowerer over registry/classifier for one
// compilation's IR context and metadata store.
func NewLowerer(registry *Registry, classifier *Classifier, ctx *hostir.Context, store *metadata.Storage) *Lowerer {
	return &Lowerer{
		registry:   registry,
		classifier: classifier,
		ctx:        ctx,
		store:      store,
		memo:       make(map[sierra.ConcreteTypeId]hostir.Type),
	}
}

// Lower returns id's host IR type, building and memoizing it on first use.
func (l *Lowerer) Lower(id sierra.ConcreteTypeId) (hostir.Type, error) {
	if t, ok := l.memo[id]; ok {
		return t, nil
	}
	decl, err := l.registry.GetType(id)
	if err != nil {
		return hostir.Type{}, err
	}
	t, err := l.lowerDecl(decl)
	if err != nil {
		return hostir.Type{}, err
	}
	l.memo[id] = t
	return t, nil
}

func (l *Lowerer) lowerDecl(t *sierra.TypeDeclaration) (hostir.Type, error) {
	switch t.Category {
	case sierra.CategoryUint8, sierra.CategorySint8:
		return l.ctx.IntType(8), nil
	case sierra.CategoryUint16, sierra.CategorySint16:
		return l.ctx.IntType(16), nil
	case sierra.CategoryUint32, sierra.CategorySint32:
		return l.ctx.IntType(32), nil
	case sierra.CategoryUint64, sierra.CategorySint64,
		sierra.CategoryBitwise, sierra.CategoryEcOp, sierra.CategoryRangeCheck,
		sierra.CategoryRangeCheck96, sierra.CategoryPedersen, sierra.CategoryPoseidon,
		sierra.CategorySegmentArena, sierra.CategoryGasBuiltin:
		return l.ctx.IntType(64), nil
	case sierra.CategoryUint128, sierra.CategorySint128:
		return l.ctx.IntType(128), nil

	case sierra.CategoryFelt252, sierra.CategoryStarknetClassHash, sierra.CategoryStarknetContractAddress,
		sierra.CategoryStarknetStorageAddress, sierra.CategoryStarknetStorageBaseAddress:
		return l.ctx.IntType(252), nil
	case sierra.CategoryBytes31:
		return l.ctx.IntType(248), nil
	case sierra.CategoryBoundedInt:
		r, err := l.classifier.boundedIntRange(t)
		if err != nil {
			return hostir.Type{}, err
		}
		width := r.OffsetBitWidth()
		if width == 0 {
			width = 1
		}
		return l.ctx.IntType(width), nil

	case sierra.CategoryBox, sierra.CategoryNullable, sierra.CategoryBuiltinCosts,
		sierra.CategoryStarknetSystem, sierra.CategoryStarknetSha256Handle,
		sierra.CategoryUint128MulGuarantee, sierra.CategoryCoupon:
		return l.ctx.PointerType(), nil

	case sierra.CategoryFelt252Dict, sierra.CategorySquashedFelt252Dict:
		if err := l.registerDictSupport(); err != nil {
			return hostir.Type{}, err
		}
		return l.ctx.PointerType(), nil

	case sierra.CategoryArray:
		ptr := l.ctx.PointerType()
		i32 := l.ctx.IntType(32)
		return l.ctx.StructType([]hostir.Type{ptr, i32, i32, i32}, false), nil

	case sierra.CategoryEcPoint:
		return l.ctx.ArrayType(l.ctx.IntType(252), 2), nil
	case sierra.CategoryEcState:
		return l.ctx.ArrayType(l.ctx.IntType(252), 4), nil

	case sierra.CategoryFelt252DictEntry:
		return l.ctx.StructType([]hostir.Type{
			l.ctx.IntType(252), l.ctx.PointerType(), l.ctx.PointerType(),
		}, false), nil

	case sierra.CategoryStarknetSecp256:
		return l.ctx.StructType([]hostir.Type{
			l.ctx.IntType(256), l.ctx.IntType(256), l.ctx.IntType(1),
		}, false), nil

	case sierra.CategoryNonZero, sierra.CategoryUninitialized, sierra.CategorySnapshot:
		inner, err := l.registry.GetType(t.InnerTy)
		if err != nil {
			return hostir.Type{}, err
		}
		return l.lowerDecl(inner)

	case sierra.CategoryIntRange:
		inner, err := l.Lower(t.InnerTy)
		if err != nil {
			return hostir.Type{}, err
		}
		return l.ctx.StructType([]hostir.Type{inner, inner}, false), nil

	case sierra.CategoryStruct:
		fields := make([]hostir.Type, len(t.Members))
		for i, m := range t.Members {
			f, err := l.Lower(m)
			if err != nil {
				return hostir.Type{}, err
			}
			fields[i] = f
		}
		return l.ctx.StructType(fields, false), nil

	case sierra.CategoryEnum:
		return l.lowerEnum(t)

	case sierra.CategoryCircuitAddMod, sierra.CategoryCircuitMulMod:
		return l.ctx.IntType(64), nil
	case sierra.CategoryCircuit:
		return l.ctx.PointerType(), nil

	case sierra.CategoryConst, sierra.CategorySpan, sierra.CategoryBlake, sierra.CategoryQM31:
		return hostir.Type{}, cairoerr.UnsupportedType(string(t.Category))
	}
	return hostir.Type{}, cairoerr.UnsupportedType(string(t.Category))
}

// lowerEnum builds the `{i_tagwidth, [i8 x payload_bytes]}` shape spec.md
// §4.E describes, reusing the classifier's own tag-width/layout
// computation so the IR type's size always matches layout(T). A
// zero-variant enum lowers to an empty struct (it is a ZST per invariant
// 9); a single-variant enum needs no tag at all and lowers transparently
// to its one variant's type, mirroring is_complex's single-variant
// delegation.
func (l *Lowerer) lowerEnum(t *sierra.TypeDeclaration) (hostir.Type, error) {
	switch len(t.Variants) {
	case 0:
		return l.ctx.StructType(nil, false), nil
	case 1:
		return l.Lower(t.Variants[0])
	default:
		full, err := l.classifier.Layout(t)
		if err != nil {
			return hostir.Type{}, err
		}
		tagLayout := enumTagLayout(len(t.Variants))
		tagBits := tagLayout.Size * 8
		payloadBytes := full.Size - tagLayout.Size
		tagType := l.ctx.IntType(uint(tagBits))
		payloadType := l.ctx.ArrayType(l.ctx.IntType(8), int(payloadBytes))
		return l.ctx.StructType([]hostir.Type{tagType, payloadType}, false), nil
	}
}

// registerDictSupport installs the Felt252Dict runtime-support bindings
// the first time any Felt252Dict/SquashedFelt252Dict type is lowered
// (spec.md §4.E).
func (l *Lowerer) registerDictSupport() error {
	if _, already := metadata.Get[dictSupportInstalled](l.store); already {
		return nil
	}
	bindings, ok := metadata.Get[*RuntimeBindings](l.store)
	if !ok {
		return cairoerr.New(cairoerr.KindAssertionViolated, "RuntimeBindings not seeded before type lowering")
	}
	ptr := l.ctx.PointerType()
	bindings.register("felt252_dict_new", ptr)
	bindings.register("felt252_dict_get", ptr)
	bindings.register("felt252_dict_insert", ptr)
	metadata.Insert(l.store, dictSupportInstalled{})
	return nil
}
