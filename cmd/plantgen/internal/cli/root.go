// Package cli is the cobra.Command tree for the plantgen binary: the
// "external CLI collaborator" of spec.md §6/§7, explicitly out of scope
// for the core's own semantics. It owns argument parsing, file I/O,
// zap logging of diagnostics, and process exit status — none of which
// internal/parser, internal/semantic or internal/emitter know about.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hsmgen/plantgen/internal/config"
)

// rootFlags holds the flag values cobra binds directly; they are
// projected into config.Flags (pointer fields) only for the flags the
// user actually set, via cmd.Flags().Changed, so a flag the user never
// passed can't clobber a plantgen.toml value.
type rootFlags struct {
	outDir      string
	tracing     bool
	simpleNames bool
	parentFirst bool
	verbose     bool
	modelName   string
	configPath  string
}

// Execute builds and runs the plantgen command tree, returning the first
// error any subcommand reported. Output and diagnostics are logged
// through zap rather than returned, per the Logging note in
// SPEC_FULL.md's AMBIENT STACK.
func Execute() error {
	root := newRootCommand()
	return root.Execute()
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "plantgen",
		Short:         "Generate run-cycle state machine code from PlantUML diagrams",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newDiagramCommand())
	return root
}

// addGenerationFlags registers the flags shared by `generate` and
// `watch`, matching spec.md §6's config fields plus the CLI-only
// out-dir/model-name/config-file additions named in SPEC_FULL.md's
// [CLI] module.
func addGenerationFlags(cmd *cobra.Command, f *rootFlags) {
	cmd.Flags().StringVarP(&f.outDir, "out", "o", ".", "output directory for the generated source file")
	cmd.Flags().BoolVar(&f.tracing, "tracing", false, "emit trace_state_enter/trace_state_exit hook plumbing")
	cmd.Flags().BoolVar(&f.simpleNames, "simple-names", false, "use leaf-only (not parent-qualified) identifiers")
	cmd.Flags().BoolVar(&f.parentFirst, "parent-first", true, "parent-first execution setting (the generated react functions dispatch parent-first whatever its value)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "raise log level to debug and echo every diagnostic")
	cmd.Flags().StringVar(&f.modelName, "model-name", "", "override the model name parsed from the diagram header")
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a plantgen.toml project file to merge under the flags above")
}

// resolveConfig turns the parsed flags into a config.Config, consulting
// cmd.Flags().Changed so only flags the user actually passed participate
// in the Overlay — unset flags fall through to the file layer (if any)
// or the built-in defaults.
func resolveConfig(cmd *cobra.Command, f *rootFlags) (config.Config, error) {
	flags := config.Flags{}
	if cmd.Flags().Changed("tracing") {
		flags.Tracing = &f.tracing
	}
	if cmd.Flags().Changed("simple-names") {
		flags.SimpleNames = &f.simpleNames
	}
	if cmd.Flags().Changed("parent-first") {
		flags.ParentFirstExecution = &f.parentFirst
	}
	if cmd.Flags().Changed("verbose") {
		flags.Verbose = &f.verbose
	}
	if cmd.Flags().Changed("out") {
		flags.OutDir = &f.outDir
	}
	if cmd.Flags().Changed("model-name") {
		flags.ModelNameOverride = &f.modelName
	}
	return config.Resolve(f.configPath, flags)
}

// newLogger builds the zap.Logger the Logging note in SPEC_FULL.md's
// AMBIENT STACK describes: development encoder for readable CLI output,
// level raised to Debug under --verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("plantgen: build logger: %w", err)
	}
	return logger, nil
}
