package config

//go:generate go run ../tools/schema-generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/ruleconv/internal/keymap"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure for ruleconv.
type Config struct {
	// Input is the path of the rule-level summary CSV to read.
	Input string `yaml:"input,omitempty"`

	// Output is the path the compact JSON record array is written to.
	// An existing file is replaced.
	Output string `yaml:"output,omitempty"`

	// Keys adds or replaces column aliases on top of the built-in table.
	// Every alias must stay unique.
	Keys map[string]string `yaml:"keys,omitempty"`
}

// LoadFile reads a YAML config file. Unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge overlays the non-empty fields of other onto c.
func (c *Config) Merge(other Config) {
	if other.Input != "" {
		c.Input = other.Input
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if len(other.Keys) > 0 {
		if c.Keys == nil {
			c.Keys = make(map[string]string, len(other.Keys))
		}
		for k, v := range other.Keys {
			c.Keys[k] = v
		}
	}
}

// KeyMap returns the built-in key map with c.Keys applied.
func (c *Config) KeyMap() (*keymap.Map, error) {
	return keymap.Default().WithOverrides(c.Keys)
}
