// Package hostir isolates the one external IR-construction dependency this
// backend takes (tinygo.org/x/go-llvm) behind the narrow surface the type
// lowerer and compilation driver need: one-shot process bootstrap, module
// construction with target/debug attributes, and primitive type
// construction (spec.md §4.E, §4.H).
package hostir

import (
	"sync"

	"tinygo.org/x/go-llvm"
)

var bootstrapOnce sync.Once

// Bootstrap performs the one-shot, process-wide target/backend
// initialization spec.md §4.H requires before any module can be built.
// Safe to call from multiple goroutines concurrently; only the first call
// does work, and every caller observes a fully initialized backend once it
// returns (spec.md §5's "happens-before latch").
func Bootstrap() {
	bootstrapOnce.Do(func() {
		llvm.InitializeNativeTarget()
		llvm.InitializeNativeAsmPrinter()
		llvm.InitializeAllTargetInfos()
		llvm.InitializeAllTargets()
		llvm.InitializeAllTargetMCs()
		llvm.InitializeAllAsmParsers()
		llvm.InitializeAllAsmPrinters()
	})
}

// Context owns the IR context shared, read-only, across compilations
// (spec.md §4.H, §5 "Shared resources"). Building one only creates a
// fresh LLVM context: no dialects, passes or translations are registered
// on it. Compiling with it is left to the caller to serialize, per the
// driver's single-threaded-per-compile contract.
type Context struct {
	llvm llvm.Context
}

// NewContext builds a fresh IR context. Bootstrap must have been called at
// least once in the process before this is used to build a Module.
func NewContext() *Context {
	return &Context{llvm: llvm.NewContext()}
}

// Dispose releases the underlying context's native resources. Contexts are
// normally created once and shared for the process lifetime (spec.md §3
// "Lifecycles"), so callers rarely need this outside of tests.
func (c *Context) Dispose() {
	c.llvm.Dispose()
}
