package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"formatic/internal/config"
	"formatic/internal/decompile"
	"formatic/internal/harness"
	"formatic/internal/logging"
	"formatic/internal/report"
	"formatic/internal/walker"
)

var (
	flagInjectionMarker string
	flagInjectionIndex  int
	flagResponseMarker  string
	flagRandomMarkerLen int
	flagBytecodeVersion string
	flagOutputPath      string
	flagGzip            bool
)

var runCmd = &cobra.Command{
	Use:   "run -- COMMAND...",
	Short: "Traverse a target's object graph through a format-string injection oracle",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&flagInjectionMarker, "injection-marker", "i", "@@", "sigil replaced by the payload in the command template")
	runCmd.Flags().IntVarP(&flagInjectionIndex, "injection-index", "d", 0, "format argument index to attack")
	runCmd.Flags().StringVarP(&flagResponseMarker, "response-marker", "m", "", "override the random response marker")
	runCmd.Flags().IntVarP(&flagRandomMarkerLen, "random-response-marker-length", "l", 16, "length of the auto-generated response marker")
	runCmd.Flags().StringVarP(&flagBytecodeVersion, "bytecode_version", "b", "3.7", "version tag passed to the decompiler")
	runCmd.Flags().StringVar(&flagOutputPath, "output", "", "write the report to this path instead of stdout")
	runCmd.Flags().BoolVar(&flagGzip, "gzip", false, "gzip-compress the written report")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfgPath, err := config.ResolvePath(flagConfigPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	logger := logging.Default(cfg.Verbosity)

	responseMarker := cfg.ResponseMarker
	if responseMarker == "" {
		responseMarker, err = harness.RandomMarker(cfg.RandomResponseMarkerLen)
		if err != nil {
			return fmt.Errorf("generating response marker: %w", err)
		}
	}

	h, err := harness.NewSubprocessHarness(args, cfg.InjectionMarker, responseMarker,
		harness.WithLogger(logging.Component(logger, "harness")),
		harness.WithDiagnostics(cfg.Verbosity >= 3),
	)
	if err != nil {
		return fmt.Errorf("configuration fault: %w", err)
	}

	state := walker.NewState(h, responseMarker, cfg.BytecodeVersion, decompile.StubBackend{}, logging.Component(logger, "walker"))
	applyBlacklistOverrides(state, cfg)

	result := walker.Run(context.Background(), state, cfg.InjectionIndex)

	out := os.Stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		return report.Dump(f, result, cfg.Gzip)
	}
	return report.Dump(out, result, cfg.Gzip)
}

// applyFlagOverrides merges explicitly-set flags over the config loaded from
// Defaults()+TOML, giving compile-time defaults < TOML file < CLI flags.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("injection-marker") {
		cfg.InjectionMarker = flagInjectionMarker
	}
	if flags.Changed("injection-index") {
		cfg.InjectionIndex = flagInjectionIndex
	}
	if flags.Changed("response-marker") {
		cfg.ResponseMarker = flagResponseMarker
	}
	if flags.Changed("random-response-marker-length") {
		cfg.RandomResponseMarkerLen = flagRandomMarkerLen
	}
	if flags.Changed("bytecode_version") {
		cfg.BytecodeVersion = flagBytecodeVersion
	}
	if v, _ := cmd.Flags().GetCount("verbosity"); v > 0 {
		cfg.Verbosity = v
	}
	if flags.Changed("output") {
		cfg.OutputPath = flagOutputPath
	}
	if flags.Changed("gzip") {
		cfg.Gzip = flagGzip
	}
}

func applyBlacklistOverrides(state *walker.State, cfg config.Config) {
	for _, a := range cfg.AttributeBlacklist {
		state.AttributeBlacklist[a] = struct{}{}
	}
	for _, c := range cfg.ClassBlacklist {
		state.ClassBlacklist[c] = struct{}{}
	}
	for _, m := range cfg.ModuleBlacklist {
		state.ModuleBlacklist[m] = struct{}{}
	}
}
