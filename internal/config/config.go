// Package config loads utk settings from an optional YAML file, UTK_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/eykd/unitree-go/internal/document"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = "utk.yaml"

// EnvPrefix prefixes environment overrides, e.g. UTK_LOG_LEVEL.
const EnvPrefix = "UTK"

// Config is the resolved utk configuration.
type Config struct {
	// Definitions is the path of a unit definitions file. Empty selects the
	// built-in set.
	Definitions string         `mapstructure:"definitions"`
	Log         LogConfig      `mapstructure:"log"`
	IDs         IDConfig       `mapstructure:"ids"`
	Document    DocumentConfig `mapstructure:"document"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IDConfig selects the UUID version used for new unit ids.
type IDConfig struct {
	Version int `mapstructure:"version"`
}

// DocumentConfig selects the state document encoding.
type DocumentConfig struct {
	Format string `mapstructure:"format"`
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// ConfigFilePath is an explicit config file; it must exist.
	ConfigFilePath string
	// Dir is searched for DefaultFileName when ConfigFilePath is empty.
	// Empty means the working directory.
	Dir string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "warn"},
		IDs:      IDConfig{Version: 7},
		Document: DocumentConfig{Format: string(document.FormatAuto)},
	}
}

// Load resolves the configuration and reports which file, if any, was read.
func Load(opts LoadOptions) (Config, string, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("definitions", defaults.Definitions)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("ids.version", defaults.IDs.Version)
	v.SetDefault("document.format", defaults.Document.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return Config{}, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		local := DefaultFileName
		if opts.Dir != "" {
			local = filepath.Join(opts.Dir, DefaultFileName)
		}
		if fileExists(local) {
			resolvedPath = local
		}
	}
	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("reading config %s: %w", resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, resolvedPath, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.IDs.Version != 4 && c.IDs.Version != 7 {
		errs = append(errs, fmt.Errorf("ids.version: must be 4 or 7, got %d", c.IDs.Version))
	}
	if _, err := document.ParseFormat(c.Document.Format); err != nil {
		errs = append(errs, fmt.Errorf("document.format: %w", err))
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level. Call after Validate.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// DocumentFormat returns the parsed document format. Call after Validate.
func (c Config) DocumentFormat() document.Format {
	f, err := document.ParseFormat(c.Document.Format)
	if err != nil {
		return document.FormatAuto
	}
	return f
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
