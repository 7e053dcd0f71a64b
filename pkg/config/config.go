// Package config loads the bitmath command line configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

// DefaultFilename is read when no file is named. It is optional.
const DefaultFilename = "bitmath.yaml"

// EnvSystem overrides format.system.
const EnvSystem = "BITMATH_SYSTEM"

type Config struct {
	Format  Format  `yaml:"format"`
	Listing Listing `yaml:"listing"`
	Log     Log     `yaml:"log"`
}

func (c *Config) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Dict("format", c.Format.ToDict()).
		Dict("listing", c.Listing.ToDict()).
		Dict("log", c.Log.ToDict())
}

func (c *Config) setDefaults() {
	c.Format.setDefaults()
	c.Listing.setDefaults()
	c.Log.setDefaults()
}

// Validate checks c again after fields were overridden, e.g. from flags.
func (c *Config) Validate() error { return c.validate() }

func (c *Config) validate() error {
	if err := c.Format.validate(); err != nil {
		return fmt.Errorf("format config validation failed: %v", err)
	}
	if err := c.Listing.validate(); err != nil {
		return fmt.Errorf("listing config validation failed: %v", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log config validation failed: %v", err)
	}
	return nil
}

// Format controls how sizes are printed.
type Format struct {
	System   string `yaml:"system"`
	Template string `yaml:"template"`
	Plural   bool   `yaml:"plural"`
	Output   string `yaml:"output"`
}

func (c *Format) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("system", c.System).
		Str("template", c.Template).
		Bool("plural", c.Plural).
		Str("output", c.Output)
}

func (c *Format) setDefaults() {
	if c.System == "" {
		c.System = "nist"
	}
	if c.Template == "" {
		c.Template = bitmath.DefaultTemplate
	}
	if c.Output == "" {
		c.Output = "text"
	}
}

func (c *Format) validate() error {
	if _, ok := bitmath.ParseSystem(c.System); !ok {
		return fmt.Errorf("system must be one of nist, si, binary, decimal or iec, got: %s", c.System)
	}
	if err := c.Formatter().Validate(); err != nil {
		return err
	}
	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("output must be one of: %s, got: %s", strings.Join(Outputs, ", "), c.Output)
	}
	return nil
}

// Outputs are the accepted values of format.output.
var Outputs = []string{"text", "json", "table"}

// PrefixSystem is the parsed System, NIST when unset or invalid.
func (c *Format) PrefixSystem() bitmath.System {
	s, ok := bitmath.ParseSystem(c.System)
	return lo.Ternary(ok, s, bitmath.NIST)
}

func (c *Format) Formatter() bitmath.Formatter {
	return bitmath.Formatter{Template: c.Template, Plural: c.Plural}
}

// Listing holds the defaults of the ls and du commands.
type Listing struct {
	Filter      string       `yaml:"filter"`
	FollowLinks bool         `yaml:"follow_links"`
	MinSize     bitmath.Size `yaml:"min_size"`
}

func (c *Listing) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("filter", c.Filter).
		Bool("follow_links", c.FollowLinks).
		Stringer("min_size", c.MinSize)
}

func (c *Listing) setDefaults() {
	if c.Filter == "" {
		c.Filter = "*"
	}
}

func (c *Listing) validate() error {
	if c.MinSize.Bits() < 0 {
		return errors.New("min_size must not be negative")
	}
	return nil
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Log) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("level", c.Level).
		Str("format", c.Format)
}

func (c *Log) setDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "auto"
	}
}

func (c *Log) validate() error {
	if !slices.Contains([]string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}, c.Level) {
		return fmt.Errorf(
			"level must be one of: trace, debug, info, warn, error, fatal, panic, got: %s",
			c.Level,
		)
	}
	if !slices.Contains([]string{"json", "pretty", "auto"}, c.Format) {
		return fmt.Errorf("format must be 'json', 'pretty' or 'auto', got: %s", c.Format)
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var conf Config
	conf.setDefaults()
	return &conf
}

// Load reads filename, or DefaultFilename when filename is empty. A missing
// DefaultFilename is not an error; a missing named file is.
func Load(filename string) (*Config, error) {
	path := lo.Ternary(len(filename) > 0, filename, DefaultFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if filename == "" && errors.Is(err, os.ErrNotExist) {
			data = nil
		} else {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if system := os.Getenv(EnvSystem); system != "" {
		conf.Format.System = system
	}
	conf.setDefaults()

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &conf, nil
}
