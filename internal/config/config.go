// Package config loads CLI settings from defaults, a config file, SKEMAJS_
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/reoring/skemajs"
)

// Defaults.
const (
	DefaultTarget      = string(skemajs.TargetJSONSchema7)
	DefaultRefStrategy = string(skemajs.RefRoot)
	DefaultBasePath    = "#"
	DefaultOutput      = "json"
	DefaultConfigFile  = "skemajs.yaml"
	envPrefix          = "SKEMAJS_"
)

// Config holds the resolved CLI settings.
type Config struct {
	Target         string `koanf:"target"`
	RefStrategy    string `koanf:"ref_strategy"`
	BasePath       string `koanf:"base_path"`
	Name           string `koanf:"name"`
	DefinitionsKey string `koanf:"definitions_key"`
	MaxDepth       int    `koanf:"max_depth"`
	Output         string `koanf:"output"`
	Verify         bool   `koanf:"verify"`
	Verbose        bool   `koanf:"verbose"`
	Kind           string `koanf:"kind"`
	CRDName        string `koanf:"crd_name"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > skemajs.yaml > skemajs.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultConfigFile, "skemajs.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"target":          DefaultTarget,
		"ref_strategy":    DefaultRefStrategy,
		"base_path":       DefaultBasePath,
		"definitions_key": skemajs.DefinitionsKey,
		"output":          DefaultOutput,
		"verify":          false,
		"verbose":         false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: SKEMAJS_REF_STRATEGY -> ref_strategy
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set: --ref-strategy -> ref_strategy
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	return &cfg, nil
}

// Options converts the settings into conversion options.
func (c *Config) Options() skemajs.Options {
	return skemajs.Options{
		Target:         skemajs.Target(c.Target),
		RefStrategy:    skemajs.RefStrategy(c.RefStrategy),
		BasePath:       SplitBasePath(c.BasePath),
		Name:           c.Name,
		DefinitionsKey: c.DefinitionsKey,
		MaxDepth:       c.MaxDepth,
	}
}

// SplitBasePath turns "#/components/schemas" into its segments. An empty
// string yields nil, which selects the default base.
func SplitBasePath(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(p, "/"), "/")
}
