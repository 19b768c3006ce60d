package cli

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hsmgen/plantgen/internal/config"
)

// newWatchCommand supplements spec.md's single-shot scope (SPEC_FULL.md's
// DOMAIN STACK "File watching" note): the original C++ tool ran once per
// invocation, so watch mode is a CLI-level addition over the same
// runGenerate path `generate` uses, never touching core semantics.
func newWatchCommand() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "watch <file.puml>",
		Short: "Regenerate the state machine implementation on every save",
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
			return runWatch(logger, args[0], cfg)
		},
	}
	addGenerationFlags(cmd, f)
	return cmd
}

func runWatch(logger *zap.Logger, inputPath string, cfg config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(inputPath); err != nil {
		return err
	}

	logger.Info("watching for changes", zap.String("file", inputPath))
	if err := runGenerate(logger, inputPath, cfg); err != nil {
		logger.Error("initial generation failed", zap.Error(err))
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("change detected", zap.String("op", event.Op.String()))
			if err := runGenerate(logger, inputPath, cfg); err != nil {
				logger.Error("regeneration failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))
		}
	}
}
