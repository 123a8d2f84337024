// Package config holds the settings of the qasmc command and loads them
// from defaults, a config file and the environment, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config file is named explicitly and it
// exists in the working directory.
const DefaultFile = ".qasmc.toml"

// EnvPrefix prefixes every environment variable, e.g. QASMC_LOG_LEVEL.
const EnvPrefix = "qasmc"

// Output formats understood by the ast subcommand.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the consolidated configuration.
type Config struct {
	IncludePaths []string `toml:"include_paths" yaml:"include_paths" envconfig:"include_paths"`
	Format       string   `toml:"format" yaml:"format" envconfig:"format"`
	LogLevel     string   `toml:"log_level" yaml:"log_level" envconfig:"log_level"`
	NoColor      bool     `toml:"no_color" yaml:"no_color" envconfig:"no_color"`
	Builtins     bool     `toml:"builtins" yaml:"builtins" envconfig:"builtins"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Format:   FormatText,
		LogLevel: logrus.WarnLevel.String(),
		Builtins: true,
	}
}

// Load consolidates defaults, the config file at path (or DefaultFile if
// path is empty and that file exists) and the environment, then validates
// the result.
func Load(fs afero.Fs, path string) (Config, error) {
	conf := Default()

	if path == "" {
		if ok, _ := afero.Exists(fs, DefaultFile); ok {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := conf.LoadFile(fs, path); err != nil {
			return conf, err
		}
	}

	if err := conf.LoadEnv(); err != nil {
		return conf, err
	}
	return conf, conf.Validate()
}

// LoadFile overlays the settings present in a TOML or YAML file. The format
// follows the file extension; anything other than .yaml or .yml is TOML.
// Keys absent from the file keep their current values.
func (c *Config) LoadFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parsing %s: unknown key %q", path, undecoded[0].String())
		}
	}
	return nil
}

// LoadEnv overlays the QASMC_* environment variables that are set.
func (c *Config) LoadEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Validate checks that every setting has an accepted value.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid format %q (want %s, %s or %s)", c.Format, FormatText, FormatJSON, FormatYAML)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	for _, dir := range c.IncludePaths {
		if dir == "" {
			return errors.New("empty include path")
		}
	}
	return nil
}

// Level returns the parsed log level. It assumes Validate has passed.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}
