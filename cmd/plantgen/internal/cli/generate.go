package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hsmgen/plantgen/internal/config"
	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/generate"
)

func newGenerateCommand() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "generate <file.puml>",
		Short: "Generate a run-cycle state machine implementation from a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runGenerate(logger, args[0], cfg)
		},
	}
	addGenerationFlags(cmd, f)
	return cmd
}

// readLines reads path into the slice of lines Generate expects — the
// "source-line iterator" of spec.md §6 collapsed into a slice, since the
// CLI reads the whole file before handing it to the core.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plantgen: open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("plantgen: read %s: %w", path, err)
	}
	return lines, nil
}

// runGenerate parses inputPath, runs the core pipeline, and writes the
// generated source into cfg.OutDir (the current directory when it is
// empty), named after the resolved model name lowercased (matching the
// package name Emit gives the file).
func runGenerate(logger *zap.Logger, inputPath string, cfg config.Config) error {
	lines, err := readLines(inputPath)
	if err != nil {
		return err
	}

	diag := diagnostics.NewSink()
	var body strings.Builder
	var header strings.Builder
	result := generate.Generate(lines, &header, &body, diag, cfg)

	logDiagnostics(logger, diag.All())

	if !result.Ok {
		return fmt.Errorf("plantgen: generation of %s failed", inputPath)
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "."
	}
	outPath := filepath.Join(outDir, strings.ToLower(result.Model.Name)+".go")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("plantgen: create %s: %w", outDir, err)
	}
	if err := os.WriteFile(outPath, []byte(header.String()), 0o644); err != nil {
		return fmt.Errorf("plantgen: write %s: %w", outPath, err)
	}

	logger.Info("generated state machine", zap.String("model", result.Model.Name), zap.String("out", outPath))
	return nil
}
