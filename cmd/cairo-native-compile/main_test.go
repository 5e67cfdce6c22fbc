package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runMain(t *testing.T, args []string) (int, string, string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet("cairo-native-compile", flag.ContinueOnError)

	stdOut := &bytes.Buffer{}
	stdErr := &bytes.Buffer{}
	oldArgs := os.Args
	os.Args = append([]string{"cairo-native-compile"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })

	code := doMain(stdOut, stdErr)
	return code, stdOut.String(), stdErr.String()
}

func writeProgramJSON(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestHelp(t *testing.T) {
	code, _, stdErr := runMain(t, []string{"-h"})
	require.Equal(t, 0, code)
	require.Contains(t, stdErr, "cairo-native-compile\n\nUsage:")
}

func TestNoArgsPrintsUsage(t *testing.T) {
	code, _, stdErr := runMain(t, nil)
	require.Equal(t, 0, code)
	require.Contains(t, stdErr, "Usage:")
}

func TestCompileEmptyProgramWritesIRToStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeProgramJSON(t, dir, "program.json", `{"TypeDeclarations":[],"LibfuncDeclarations":[],"Functions":[]}`)

	code, stdOut, stdErr := runMain(t, []string{path})
	require.Equal(t, 0, code, stdErr)
	require.Contains(t, stdOut, "ModuleID")
}

func TestCompileWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := writeProgramJSON(t, dir, "program.json", `{"TypeDeclarations":[],"LibfuncDeclarations":[],"Functions":[]}`)
	out := filepath.Join(dir, "out.ll")

	code, _, stdErr := runMain(t, []string{"-o", out, in})
	require.Equal(t, 0, code, stdErr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestMissingProgramFileFails(t *testing.T) {
	code, _, stdErr := runMain(t, []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Equal(t, 1, code)
	require.Contains(t, stdErr, "error reading program")
}

func TestMalformedProgramJSONFails(t *testing.T) {
	dir := t.TempDir()
	path := writeProgramJSON(t, dir, "bad.json", `not json`)

	code, _, stdErr := runMain(t, []string{path})
	require.Equal(t, 1, code)
	require.Contains(t, stdErr, "error reading program")
}

func TestDuplicateTypeIdsFailCompile(t *testing.T) {
	dir := t.TempDir()
	path := writeProgramJSON(t, dir, "dup.json", `{
		"TypeDeclarations": [
			{"Id": "u8", "Category": "Uint8"},
			{"Id": "u8", "Category": "Uint16"}
		]
	}`)

	code, _, stdErr := runMain(t, []string{path})
	require.Equal(t, 1, code)
	require.Contains(t, stdErr, "error compiling program")
}

func TestConfigFileSetsGasOverrides(t *testing.T) {
	dir := t.TempDir()
	program := writeProgramJSON(t, dir, "program.json", `{
		"LibfuncDeclarations": [{"Id": "pedersen"}],
		"Functions": ["main"]
	}`)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gas:\n  default_cost: 1\n  cost_overrides:\n    pedersen: 10\n"), 0o644))

	code, _, stdErr := runMain(t, []string{"-config", cfgPath, program})
	require.Equal(t, 0, code, stdErr)
}

func TestInvalidTargetFallsBackToHost(t *testing.T) {
	dir := t.TempDir()
	path := writeProgramJSON(t, dir, "program.json", `{}`)

	code, _, stdErr := runMain(t, []string{"-target", "riscv64", path})
	require.Equal(t, 0, code, stdErr)
}
