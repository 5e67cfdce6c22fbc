package hostir

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// attachDebugInfo stamps m with the debug-info scope chain spec.md §4.F
// step 2 requires: a file node for the (fixed) source name, a compile-unit
// node keyed by the fresh compile-unit id, and a module node named
// "LLVMDialectModule" scoping the whole program to that compile unit, plus
// the fused "program.sierra:0:0" source location. The original backend
// builds this chain with MLIR's LLVM-dialect attribute constructors
// (mlirLLVMDIFileAttrGet / mlirLLVMDICompileUnitAttrGet /
// mlirLLVMDIModuleAttrGet, see original_source/src/context.rs) because it
// targets MLIR text; this backend targets LLVM IR directly via
// tinygo.org/x/go-llvm, so the same three-node chain is built with LLVM's
// own named-metadata primitives instead, attached under "llvm.dbg.cu" (the
// name LLVM tooling already recognizes for a module's compile units) and
// a "llvm.dbg.module" node alongside it — both real module-level metadata
// that appear in the text Module.String returns.
func attachDebugInfo(ctx *Context, m llvm.Module, compileUnitID string, sourceName string, attrs CompileUnitAttrs) {
	c := ctx.llvm

	file := c.MDNode([]llvm.Metadata{
		c.MDString("DIFile"),
		c.MDString(sourceName),
		c.MDString(""),
	})

	unit := c.MDNode([]llvm.Metadata{
		c.MDString("DICompileUnit"),
		c.MDString(compileUnitID),
		c.MDString(fmt.Sprintf("%#x", attrs.Language)),
		file,
		c.MDString(attrs.Producer),
		c.MDString(attrs.EmissionKind),
		c.MDString(attrs.NameTableKind),
	})

	module := c.MDNode([]llvm.Metadata{
		c.MDString("LLVMDialectModule"),
		c.MDString(fmt.Sprintf("%s:0:0", sourceName)),
		file,
		unit,
	})

	m.AddNamedMetadataOperand("llvm.dbg.cu", unit)
	m.AddNamedMetadataOperand("llvm.dbg.module", module)
}
