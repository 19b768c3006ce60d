// Package config resolves the generation options of spec.md §6 from
// three layers — built-in defaults, an optional plantgen.toml project
// file, and CLI flags — with flags winning over file values and file
// values winning over defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/hsmgen/plantgen/internal/emitter"
)

// Config mirrors spec.md §6's generation options plus the CLI-level
// concerns (output directory, model name override) that sit outside
// the core's own Config but still need to travel with it from the
// file/flag layers down to internal/generate.
type Config struct {
	Verbose              bool
	Tracing              bool
	SimpleNames          bool
	ParentFirstExecution bool

	OutDir            string
	ModelNameOverride string
}

// Emitter projects the fields internal/emitter actually consumes.
func (c Config) Emitter() emitter.Config {
	return emitter.Config{
		Verbose:              c.Verbose,
		Tracing:              c.Tracing,
		SimpleNames:          c.SimpleNames,
		ParentFirstExecution: c.ParentFirstExecution,
	}
}

// fileConfig is the plantgen.toml shape, field names lowercased to
// match the TOML keys a project file would naturally use.
type fileConfig struct {
	Verbose              bool   `toml:"verbose"`
	Tracing              bool   `toml:"tracing"`
	SimpleNames          bool   `toml:"simple_names"`
	ParentFirstExecution bool   `toml:"parent_first_execution"`
	OutDir               string `toml:"out_dir"`
	ModelName            string `toml:"model_name"`
}

// Default returns the built-in defaults: every boolean option off, no
// output directory override, no model name override (the Styler falls
// back to the `model` header statement's own name).
func Default() Config {
	return Config{}
}

// LoadFile reads a plantgen.toml project file at path and merges its
// values over Default(). A missing file is not an error at this layer
// — callers that require the file to exist check os.Stat themselves;
// LoadFile only reports malformed TOML.
func LoadFile(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, errors.Wrapf(err, "config: decode %s", path)
	}
	cfg := Default()
	cfg.Verbose = fc.Verbose
	cfg.Tracing = fc.Tracing
	cfg.SimpleNames = fc.SimpleNames
	cfg.ParentFirstExecution = fc.ParentFirstExecution
	cfg.OutDir = fc.OutDir
	cfg.ModelNameOverride = fc.ModelName
	return cfg, nil
}

// Flags carries the subset of Config a cobra command line can set
// explicitly. Overlay only applies fields whose pointer is non-nil,
// so a flag the user never passed never clobbers a value the file
// layer already set.
type Flags struct {
	Verbose              *bool
	Tracing              *bool
	SimpleNames          *bool
	ParentFirstExecution *bool
	OutDir               *string
	ModelNameOverride    *string
}

// Overlay merges f over base, a flag's non-nil pointer meaning "the
// user passed this flag explicitly". cobra's *Var flag binding does not
// track that by itself; the CLI's resolveConfig sets a pointer only when
// cmd.Flags().Changed reports the flag as passed.
func Overlay(base Config, f Flags) Config {
	out := base
	if f.Verbose != nil {
		out.Verbose = *f.Verbose
	}
	if f.Tracing != nil {
		out.Tracing = *f.Tracing
	}
	if f.SimpleNames != nil {
		out.SimpleNames = *f.SimpleNames
	}
	if f.ParentFirstExecution != nil {
		out.ParentFirstExecution = *f.ParentFirstExecution
	}
	if f.OutDir != nil {
		out.OutDir = *f.OutDir
	}
	if f.ModelNameOverride != nil {
		out.ModelNameOverride = *f.ModelNameOverride
	}
	return out
}

// Resolve is the single entry point cmd/plantgen calls: start from
// defaults, merge in the project file when one is present at
// tomlPath (tomlPath == "" skips the file layer entirely), then
// overlay whatever flags the user actually passed.
func Resolve(tomlPath string, f Flags) (Config, error) {
	cfg := Default()
	if tomlPath != "" {
		fileCfg, err := LoadFile(tomlPath)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}
	return Overlay(cfg, f), nil
}
