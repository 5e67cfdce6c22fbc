package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hakymulla/cairo-native/internal/hostir"
	"github.com/stretchr/testify/require"
)

func TestDumpEnabled(t *testing.T) {
	t.Setenv(debugDumpEnvVar, "1")
	require.True(t, dumpEnabled())

	t.Setenv(debugDumpEnvVar, "true")
	require.True(t, dumpEnabled())

	t.Setenv(debugDumpEnvVar, "0")
	require.False(t, dumpEnabled())

	t.Setenv(debugDumpEnvVar, "")
	require.False(t, dumpEnabled())
}

func TestDumpPrePassWritesThreeFilesWhenEnabled(t *testing.T) {
	hostir.Bootstrap()
	ctx := hostir.NewContext()
	defer ctx.Dispose()
	module, err := hostir.NewModule(ctx, "dump-test")
	require.NoError(t, err)
	defer module.Dispose()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	t.Setenv(debugDumpEnvVar, "1")
	require.NoError(t, dumpPrePass(module))

	for _, name := range []string{
		"dump-prepass.mlir",
		"dump-prepass-debug-valid.mlir",
		"dump-prepass-debug-pretty.mlir",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.NotEmpty(t, data, name)
	}

	valid, err := os.ReadFile(filepath.Join(dir, "dump-prepass-debug-valid.mlir"))
	require.NoError(t, err)
	pretty, err := os.ReadFile(filepath.Join(dir, "dump-prepass-debug-pretty.mlir"))
	require.NoError(t, err)
	require.Equal(t, valid, pretty)
}

func TestDumpPrePassNoOpWhenDisabled(t *testing.T) {
	hostir.Bootstrap()
	ctx := hostir.NewContext()
	defer ctx.Dispose()
	module, err := hostir.NewModule(ctx, "dump-test")
	require.NoError(t, err)
	defer module.Dispose()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	t.Setenv(debugDumpEnvVar, "0")
	require.NoError(t, dumpPrePass(module))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDumpPostPassWritesThreeFilesWhenEnabled(t *testing.T) {
	hostir.Bootstrap()
	ctx := hostir.NewContext()
	defer ctx.Dispose()
	module, err := hostir.NewModule(ctx, "dump-test")
	require.NoError(t, err)
	defer module.Dispose()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	t.Setenv(debugDumpEnvVar, "true")
	require.NoError(t, dumpPostPass(module))

	for _, name := range []string{"dump.mlir", "dump-debug-pretty.mlir", "dump-debug.mlir"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.NotEmpty(t, data, name)
	}

	pretty, err := os.ReadFile(filepath.Join(dir, "dump-debug-pretty.mlir"))
	require.NoError(t, err)
	debug, err := os.ReadFile(filepath.Join(dir, "dump-debug.mlir"))
	require.NoError(t, err)
	require.Equal(t, pretty, debug)
}
