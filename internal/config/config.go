package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"urikit/internal/logger"
	"urikit/internal/uri"
)

// ErrInvalidConfig wraps every value Validate rejects. The underlying cause
// is kept in the message only, so a bad base URI in the file is not mistaken
// for a bad URI on the command line.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Base is the default base URI for commands resolving references.
	Base string `yaml:"base"`
	// DBPath is the resolution history database.
	DBPath string `yaml:"db"`
	// History records every resolution made from the command line.
	History bool `yaml:"history"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// OutputDir is mentioned in page assertion failures for long content.
	OutputDir string `yaml:"output_dir"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	if strings.TrimSpace(path) == "" {
		// Try ~/.urikit/config.yaml if exists.
		if p, ok := defaultConfigPathIfExists(); ok {
			path = p
		} else {
			return cfg, nil
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	if c.Base != "" {
		if _, err := uri.Parse(c.Base); err != nil {
			return fmt.Errorf("%w: base: %v", ErrInvalidConfig, err)
		}
	}
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format: unknown format %q (use text or json)", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Logger builds the logger described by the config, writing to w. An empty
// or invalid level means warnings and errors only.
func (c *Config) Logger(w io.Writer) logger.Logger {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		level = logger.WarnLevel
	}
	return logger.New(logger.Config{
		Level:  level,
		Format: c.LogFormat,
		Output: w,
	})
}

func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".urikit")
}

func defaultConfigPathIfExists() (string, bool) {
	dir := DefaultDir()
	if dir == "" {
		return "", false
	}
	p := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return "", false
}
