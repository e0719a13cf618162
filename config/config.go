// Package config loads the mdblocks defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/mdblocks/format"
	"github.com/dhamidi/mdblocks/markdown"
)

// Config holds defaults for the command line. Flags given explicitly take
// precedence over these values.
type Config struct {
	Format      string `yaml:"format"`
	Inline      bool   `yaml:"inline"`
	Positions   bool   `yaml:"positions"`
	FrontMatter bool   `yaml:"front_matter"`
	MaxDepth    int    `yaml:"max_depth"`
	Color       bool   `yaml:"color"`
	Verbosity   int    `yaml:"verbosity"`
	LogFile     string `yaml:"log_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Format:      "tree",
		FrontMatter: true,
		MaxDepth:    1000,
	}
}

// ConfigPath returns the path to the config file.
// Can be overridden for testing.
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "mdblocks", "config.yaml")
}

// Load reads the config file at ConfigPath.
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config file at path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(format.Names, c.Format) {
		return fmt.Errorf("format must be one of %v, got %q", format.Names, c.Format)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

// Options returns the parser options the config asks for.
func (c *Config) Options() []markdown.Option {
	opts := []markdown.Option{markdown.WithMaxDepth(c.MaxDepth)}
	if c.Inline {
		opts = append(opts, markdown.WithInline())
	}
	if c.Positions {
		opts = append(opts, markdown.WithPositions())
	}
	if c.FrontMatter {
		opts = append(opts, markdown.WithFrontMatter())
	}
	return opts
}
