// Package compiler implements the compilation driver (spec.md §4.F): it
// builds the top-level IR module, attaches debug-info metadata, seeds the
// metadata store, builds the program registry, lowers every declared
// type, delegates to the (out-of-scope) libfunc lowering collaborator,
// verifies the module, dumps it, and runs the pass pipeline.
package compiler

import (
	"log/slog"
	"time"

	"github.com/hakymulla/cairo-native/internal/cairoerr"
	"github.com/hakymulla/cairo-native/internal/gascost"
	"github.com/hakymulla/cairo-native/internal/hostir"
	"github.com/hakymulla/cairo-native/internal/metadata"
	"github.com/hakymulla/cairo-native/internal/sierra"
	"github.com/hakymulla/cairo-native/internal/typeir"
)

// LibfuncContext is everything the out-of-scope libfunc lowering
// collaborator is called with (spec.md §6).
type LibfuncContext struct {
	Context          *hostir.Context
	Module           *hostir.Module
	Program          *sierra.Program
	Registry         *typeir.Registry
	Store            *metadata.Storage
	CompileUnitID    string
	IgnoreDebugNames bool
}

// LibfuncLowering is the external collaborator's contract: it must not
// mutate the context's dialect set, may insert metadata, and must produce
// every function the Sierra program declares (spec.md §6). A nil
// LibfuncLowering is a valid no-op stand-in — individual libfunc
// lowerings are out of scope for this driver (spec.md §1).
type LibfuncLowering func(LibfuncContext) error

// Options configures one compilation, mirroring spec.md §4.F's
// `compile(program, ignore_debug_names, gas_config)`.
type Options struct {
	IgnoreDebugNames bool
	Target           typeir.Target
	GasConfig        *gascost.Config
	LibfuncLowering  LibfuncLowering
}

// CompiledModule is the driver's output: the lowered IR module, the
// program registry, and the metadata store (spec.md §4.F step 10).
type CompiledModule struct {
	Module   *hostir.Module
	Registry *typeir.Registry
	Store    *metadata.Storage
}

// Compile runs the full driver pipeline over program (spec.md §4.F steps
// 1-10).
func Compile(program *sierra.Program, opts Options) (*CompiledModule, error) {
	hostir.Bootstrap()
	ctx := hostir.NewContext()

	start := time.Now()

	module, err := hostir.NewModule(ctx, "program.sierra")
	if err != nil {
		return nil, cairoerr.Wrap(cairoerr.KindAssertionViolated, err, "constructing top-level module")
	}

	store := metadata.New()
	metadata.Insert(store, typeir.NewRuntimeBindings())

	gasMeta, err := gascost.Compute(program, opts.GasConfig)
	if err != nil {
		return nil, cairoerr.Wrap(cairoerr.KindGasMetadataError, err, "computing gas metadata")
	}
	metadata.Insert(store, gasMeta)

	registry, err := typeir.NewRegistry(program)
	if err != nil {
		return nil, err
	}

	classifier := typeir.NewClassifier(registry, opts.Target)
	lowerer := typeir.NewLowerer(registry, classifier, ctx, store)

	// Type declarations are lowered in registry iteration order, which is
	// Sierra declaration order (spec.md §5 ordering guarantees): runtime
	// bindings and gas metadata are already seeded above, so libfunc
	// lowering below observes them insertion-happens-before any type
	// lowering's own metadata writes (e.g. Felt252Dict's bindings).
	for _, decl := range program.TypeDeclarations {
		if _, err := lowerer.Lower(decl.Id); err != nil {
			return nil, err
		}
	}

	slog.Debug("type lowering complete",
		"compile_unit", module.CompileUnitID, "elapsed_ms", time.Since(start).Milliseconds())

	if opts.LibfuncLowering != nil {
		lctx := LibfuncContext{
			Context:          ctx,
			Module:           module,
			Program:          program,
			Registry:         registry,
			Store:            store,
			CompileUnitID:    module.CompileUnitID.String(),
			IgnoreDebugNames: opts.IgnoreDebugNames,
		}
		if err := opts.LibfuncLowering(lctx); err != nil {
			return nil, err
		}
	}

	if err := module.Verify(); err != nil {
		return nil, cairoerr.Wrap(cairoerr.KindVerificationError, err, "module failed verification")
	}

	if err := dumpPrePass(module); err != nil {
		return nil, err
	}

	passStart := time.Now()
	if err := module.RunPasses(); err != nil {
		return nil, cairoerr.Wrap(cairoerr.KindPassError, err, "running pass pipeline")
	}
	slog.Debug("pass pipeline complete",
		"compile_unit", module.CompileUnitID, "elapsed_ms", time.Since(passStart).Milliseconds())

	if err := dumpPostPass(module); err != nil {
		return nil, err
	}

	return &CompiledModule{Module: module, Registry: registry, Store: store}, nil
}
