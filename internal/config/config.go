// Package config loads the optional .apidex.yaml file at the scan root.
// Explicit command-line flags override config values; config values
// override built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the apidex configuration file.
const FileName = ".apidex.yaml"

// Config holds all apidex configuration.
type Config struct {
	Out       string   `yaml:"out"`        // api.def output path
	Index     string   `yaml:"index"`      // JSON index output path
	AutoOut   string   `yaml:"auto_out"`   // selective-import header output path
	APIHeader string   `yaml:"api_header"` // header included by the generated import header
	FnPrefix  string   `yaml:"fn_prefix"`  // prototype name filter for api.def
	Exclude   []string `yaml:"exclude"`    // doublestar globs relative to the scan root
}

// Default returns configuration with the built-in defaults.
func Default() *Config {
	return &Config{
		Out:       "framework/api.def",
		Index:     "framework/api_index.json",
		AutoOut:   "framework/auto_import.h",
		APIHeader: "framework/api.h",
	}
}

// Load reads config from .apidex.yaml under root, falling back to defaults
// when the file does not exist.
func Load(root string) (*Config, error) {
	return LoadFromPath(filepath.Join(root, FileName))
}

// LoadFromPath reads config from a specific path, merging it with defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return Merge(loaded, Default()), nil
}

// Merge fills empty fields of loaded from defaults and returns a new
// config. Loaded values take precedence.
func Merge(loaded, defaults *Config) *Config {
	out := *loaded
	if out.Out == "" {
		out.Out = defaults.Out
	}
	if out.Index == "" {
		out.Index = defaults.Index
	}
	if out.AutoOut == "" {
		out.AutoOut = defaults.AutoOut
	}
	if out.APIHeader == "" {
		out.APIHeader = defaults.APIHeader
	}
	if out.FnPrefix == "" {
		out.FnPrefix = defaults.FnPrefix
	}
	if len(out.Exclude) == 0 {
		out.Exclude = defaults.Exclude
	}
	return &out
}
