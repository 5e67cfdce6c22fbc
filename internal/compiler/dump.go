package compiler

import (
	"os"

	"github.com/hakymulla/cairo-native/internal/cairoerr"
	"github.com/hakymulla/cairo-native/internal/hostir"
)

// debugDumpEnvVar gates the six diagnostic dump files (spec.md §6).
const debugDumpEnvVar = "NATIVE_DEBUG_DUMP"

func dumpEnabled() bool {
	switch os.Getenv(debugDumpEnvVar) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// dumpPrePass writes the three pre-pass dump files (spec.md §4.F step 7),
// a no-op unless NATIVE_DEBUG_DUMP is "1" or "true".
func dumpPrePass(module *hostir.Module) error {
	if !dumpEnabled() {
		return nil
	}
	if err := writeDumpFile("dump-prepass.mlir", module.String()); err != nil {
		return err
	}
	if err := writeDumpFile("dump-prepass-debug-valid.mlir", module.DebugValidString()); err != nil {
		return err
	}
	return writeDumpFile("dump-prepass-debug-pretty.mlir", module.DebugPrettyString())
}

// dumpPostPass writes the three post-pass dump files (spec.md §4.F step
// 9), a no-op unless NATIVE_DEBUG_DUMP is "1" or "true".
func dumpPostPass(module *hostir.Module) error {
	if !dumpEnabled() {
		return nil
	}
	if err := writeDumpFile("dump.mlir", module.String()); err != nil {
		return err
	}
	if err := writeDumpFile("dump-debug-pretty.mlir", module.DebugPrettyString()); err != nil {
		return err
	}
	return writeDumpFile("dump-debug.mlir", module.DebugValidString())
}

// writeDumpFile writes text to name in the process CWD. Dumps are
// best-effort diagnostics, but an I/O failure still propagates and aborts
// compilation (spec.md §7: "so that partial artifacts cannot mask source
// bugs").
func writeDumpFile(name, text string) error {
	if err := os.WriteFile(name, []byte(text), 0o644); err != nil {
		return cairoerr.Wrap(cairoerr.KindIo, err, "writing dump file %s", name)
	}
	return nil
}
