// Package config loads settings for the intexpr command from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/intexpr"
)

// Config holds settings for the intexpr command.
type Config struct {
	// Hex selects hexadecimal output.
	Hex bool `yaml:"hex"`
	// Hook names the extension hook. See Hook.
	Hook string `yaml:"hook"`
	// MaxDepth is the expression nesting limit. Zero selects the default;
	// a negative value removes the limit.
	MaxDepth int `yaml:"max_depth"`
	// Registers maps register names to expressions giving their values.
	Registers map[string]string `yaml:"registers"`
}

// FromFile loads configuration from a YAML file.
func FromFile(path string) (Config, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %q", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return FromYAML(data)
}

// FromYAML parses YAML data into a Config. Unknown fields are errors.
func FromYAML(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the hook and register names are valid.
func (c Config) Validate() error {
	if _, err := Hook(c.Hook); err != nil {
		return err
	}
	_, err := c.registerNames()
	return err
}

// registerNames returns the configured register names in sorted order. Since
// register names are case-insensitive, two names for the same register are an
// error.
func (c Config) registerNames() ([]string, error) {
	names := make([]string, 0, len(c.Registers))
	for name := range c.Registers {
		names = append(names, name)
	}
	sort.Strings(names)
	seen := make(map[int]string, len(names))
	for _, name := range names {
		if len(name) != 1 {
			return nil, &intexpr.RegisterError{Name: name}
		}
		k, ok := intexpr.RegisterIndex(name[0])
		if !ok {
			return nil, &intexpr.RegisterError{Name: name}
		}
		if prev, dup := seen[k]; dup {
			return nil, fmt.Errorf("duplicate register %s: also set as %s", name, prev)
		}
		seen[k] = name
	}
	return names, nil
}

// Apply evaluates the configured register values and stores them in regs.
// Register expressions are evaluated with no registers of their own.
func (c Config) Apply(regs *intexpr.Registers) error {
	names, err := c.registerNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		v, err := intexpr.Eval(c.Registers[name])
		if err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
		if err := regs.Set(name[0], v); err != nil {
			return err
		}
	}
	return nil
}

// Options returns the evaluation options for the hook and depth limit.
func (c Config) Options() ([]intexpr.Option, error) {
	h, err := Hook(c.Hook)
	if err != nil {
		return nil, err
	}
	opts := []intexpr.Option{intexpr.WithHook(h)}
	if c.MaxDepth != 0 {
		opts = append(opts, intexpr.MaxDepth(c.MaxDepth))
	}
	return opts, nil
}

// Hooks lists the hook names understood by Hook.
var Hooks = []string{"identity", "math"}

// Hook returns the hook with the given name. The empty string selects the
// identity hook.
func Hook(name string) (intexpr.Hook, error) {
	switch strings.ToLower(name) {
	case "", "identity":
		return intexpr.Identity, nil
	case "math":
		return intexpr.MathHook(), nil
	default:
		return nil, fmt.Errorf("unknown hook %q (want one of %s)", name, strings.Join(Hooks, ", "))
	}
}
