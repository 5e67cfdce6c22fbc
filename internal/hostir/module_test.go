package hostir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewModuleCarriesHostAttributes(t *testing.T) {
	Bootstrap()
	ctx := NewContext()
	defer ctx.Dispose()

	m, err := NewModule(ctx, "program.sierra")
	require.NoError(t, err)
	defer m.Dispose()

	require.NotEmpty(t, m.TargetTriple)
	require.NotEmpty(t, m.DataLayout)
	require.Equal(t, DefaultCompileUnitAttrs, m.CompileUnit)
	require.NotEqual(t, m.CompileUnitID.String(), "")
}

func TestNewModuleAttachesDebugInfoMetadata(t *testing.T) {
	Bootstrap()
	ctx := NewContext()
	defer ctx.Dispose()

	m, err := NewModule(ctx, "program.sierra")
	require.NoError(t, err)
	defer m.Dispose()

	text := m.String()
	require.Contains(t, text, "llvm.dbg.cu")
	require.Contains(t, text, "llvm.dbg.module")
	require.Contains(t, text, "LLVMDialectModule")
	require.Contains(t, text, "program.sierra:0:0")
	require.Contains(t, text, m.CompileUnitID.String())
	require.Contains(t, text, DefaultCompileUnitAttrs.Producer)
}

func TestTwoModulesGetDistinctCompileUnitIds(t *testing.T) {
	Bootstrap()
	ctx := NewContext()
	defer ctx.Dispose()

	a, err := NewModule(ctx, "a")
	require.NoError(t, err)
	defer a.Dispose()
	b, err := NewModule(ctx, "b")
	require.NoError(t, err)
	defer b.Dispose()

	require.NotEqual(t, a.CompileUnitID, b.CompileUnitID)
}

func TestEmptyModuleVerifies(t *testing.T) {
	Bootstrap()
	ctx := NewContext()
	defer ctx.Dispose()

	m, err := NewModule(ctx, "empty")
	require.NoError(t, err)
	defer m.Dispose()

	require.NoError(t, m.Verify())
}

func TestDebugDumpVariantsShareUnderlyingIR(t *testing.T) {
	Bootstrap()
	ctx := NewContext()
	defer ctx.Dispose()

	m, err := NewModule(ctx, "dump")
	require.NoError(t, err)
	defer m.Dispose()

	require.Equal(t, m.DebugValidString(), m.DebugPrettyString())
	require.Equal(t, m.String(), m.DebugValidString())
}
