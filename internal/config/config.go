// Package config loads the binding configuration: target options and
// per-object, per-property overrides.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"gobindgen/internal/version"
)

const (
	DefaultFileName       = "gobindgen.toml"
	DefaultRuntimePackage = "gobindgen/runtime/gobject"
)

type Config struct {
	Options Options   `toml:"options"`
	Objects []*Object `toml:"object"`

	byName map[string]*Object
}

type Options struct {
	Library               string           `toml:"library"`
	PackageName           string           `toml:"package_name"`
	TargetPath            string           `toml:"target_path"`
	MinCfgVersion         *version.Version `toml:"min_cfg_version"`
	DeprecateByMinVersion bool             `toml:"deprecate_by_min_version"`
	RuntimePackage        string           `toml:"runtime_package"`
}

// Object configures the bindings of one class or interface.
type Object struct {
	Name          string     `toml:"name"`
	GenerateTrait bool       `toml:"generate_trait"`
	Properties    Properties `toml:"property"`
}

// LoadFile parses a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses configuration text and applies defaults.
func Parse(text string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(text, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.init(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default is the configuration used when no file is given.
func Default(library string) *Config {
	cfg := &Config{Options: Options{Library: library}}
	if err := cfg.init(); err != nil {
		panic(err)
	}

	return cfg
}

func (cfg *Config) init() error {
	if cfg.Options.RuntimePackage == "" {
		cfg.Options.RuntimePackage = DefaultRuntimePackage
	}
	if cfg.Options.PackageName == "" {
		cfg.Options.PackageName = defaultPackageName(cfg.Options.Library)
	}

	cfg.byName = make(map[string]*Object, len(cfg.Objects))
	for _, object := range cfg.Objects {
		if err := object.Properties.compile(); err != nil {
			return fmt.Errorf("object %s: %w", object.Name, err)
		}
		cfg.byName[object.Name] = object
	}

	return nil
}

// Object returns the configuration of the named object. Unconfigured objects
// get an empty configuration.
func (cfg *Config) Object(fullName string) *Object {
	if object, found := cfg.byName[fullName]; found {
		return object
	}

	return &Object{Name: fullName}
}

// DeprecationCutoff is the version at or before which deprecated items are not
// generated at all. Nil means nothing is cut off.
func (cfg *Config) DeprecationCutoff() *version.Version {
	if !cfg.Options.DeprecateByMinVersion {
		return nil
	}

	return cfg.Options.MinCfgVersion
}

func defaultPackageName(library string) string {
	name := make([]rune, 0, len(library))
	for _, r := range library {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			name = append(name, r)
		}
	}
	if len(name) == 0 {
		return "bindings"
	}

	return string(name)
}
