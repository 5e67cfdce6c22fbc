// Command cairo-native-compile is the CLI front-end for the compilation
// driver (spec.md §4.F): it reads an already-parsed Sierra program (as
// JSON, standing in for the out-of-scope `.sierra` text parser's output),
// an optional YAML config file, and writes the resulting module's textual
// IR to stdout or a file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hakymulla/cairo-native/internal/compiler"
	"github.com/hakymulla/cairo-native/internal/gascost"
	"github.com/hakymulla/cairo-native/internal/sierra"
	"github.com/hakymulla/cairo-native/internal/typeir"
	"gopkg.in/yaml.v2"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr))
}

// doMain is separated from main for unit testing.
func doMain(stdOut, stdErr io.Writer) int {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "Prints usage.")

	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to an optional YAML config file (gas costs, target override).")

	var target string
	flag.StringVar(&target, "target", "", `Target ABI override: "amd64" or "arm64". Defaults to the host's.`)

	var ignoreDebugNames bool
	flag.BoolVar(&ignoreDebugNames, "ignore-debug-names", false, "Omit Sierra debug names from the lowered module.")

	var outPath string
	flag.StringVar(&outPath, "o", "", "Path to write the compiled module's textual IR. Defaults to stdout.")

	flag.Parse()

	if help || flag.NArg() == 0 {
		printUsage(stdErr)
		return 0
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "error loading config: %v\n", err)
		return 1
	}

	if target != "" {
		cfg.Backend.TargetOverride = target
	}

	program, err := loadProgram(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(stdErr, "error reading program: %v\n", err)
		return 1
	}

	opts := compiler.Options{
		IgnoreDebugNames: ignoreDebugNames,
		Target:           resolveTarget(cfg.Backend.TargetOverride),
		GasConfig:        cfg.Gas.toGascostConfig(),
	}

	out, err := compiler.Compile(program, opts)
	if err != nil {
		fmt.Fprintf(stdErr, "error compiling program: %v\n", err)
		return 1
	}
	defer out.Module.Dispose()

	if outPath == "" || outPath == "-" {
		fmt.Fprintln(stdOut, out.Module.String())
		return 0
	}
	if err := os.WriteFile(outPath, []byte(out.Module.String()), 0o644); err != nil {
		fmt.Fprintf(stdErr, "error writing output: %v\n", err)
		return 1
	}
	return 0
}

// config is the on-disk YAML shape (spec.md §10's "optional YAML file").
type config struct {
	Gas     gasConfig     `yaml:"gas"`
	Backend backendConfig `yaml:"backend"`
}

type gasConfig struct {
	DefaultCost   uint64            `yaml:"default_cost"`
	CostOverrides map[string]uint64 `yaml:"cost_overrides"`
}

func (g gasConfig) toGascostConfig() *gascost.Config {
	if g.DefaultCost == 0 && len(g.CostOverrides) == 0 {
		return nil
	}
	cost := g.DefaultCost
	if cost == 0 {
		cost = 1
	}
	return &gascost.Config{DefaultCost: cost, CostOverrides: g.CostOverrides}
}

type backendConfig struct {
	TargetOverride string `yaml:"target"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolveTarget(override string) typeir.Target {
	switch override {
	case "amd64":
		return typeir.TargetAMD64
	case "arm64":
		return typeir.TargetARM64
	default:
		return typeir.HostTarget()
	}
}

// loadProgram decodes a JSON-encoded sierra.Program: this CLI stands in
// for the out-of-scope `.sierra` text parser (spec.md §1) by accepting
// its already-parsed output directly.
func loadProgram(path string) (*sierra.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var program sierra.Program
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func printUsage(stdErr io.Writer) {
	fmt.Fprintln(stdErr, "cairo-native-compile")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  cairo-native-compile <options> <path to program json>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flag.PrintDefaults()
}
