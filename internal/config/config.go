// Package config reads presenter-gen settings from the environment. Command
// line flags take precedence over these values.
package config

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats of the render command.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the environment defaults of presenter-gen.
type Config struct {
	LogLevel  string   `env:"PRESENTER_LOG_LEVEL"  envDefault:"info"`
	OutputDir string   `env:"PRESENTER_OUTPUT_DIR" envDefault:"./presenters"`
	Package   string   `env:"PRESENTER_PACKAGE"`
	Format    string   `env:"PRESENTER_FORMAT"     envDefault:"json"`
	Indent    string   `env:"PRESENTER_INDENT"     envDefault:"  "`
	Locale    string   `env:"PRESENTER_LOCALE"     envDefault:"en-US"`
	Catalogs  []string `env:"PRESENTER_CATALOGS"   envSeparator:","`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if !slices.Contains([]string{FormatJSON, FormatYAML}, c.Format) {
		return fmt.Errorf("unsupported format %q, want %s or %s", c.Format, FormatJSON, FormatYAML)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}

	return lvl, nil
}

// NewLogger builds a production logger at the configured level, or at
// debug level when verbose is set.
func (c Config) NewLogger(verbose bool) (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}

	if verbose {
		lvl = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = !verbose

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}
