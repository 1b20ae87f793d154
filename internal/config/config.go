// Package config loads palremap command-line settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config holds the settings the palremap command accepts from a file.
// Zero values select the library defaults.
type Config struct {
	// Workers is the number of remap goroutines. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// BandHeight is the number of rows per work band. Zero picks one from
	// the image height and worker count.
	BandHeight int `yaml:"band_height"`

	// CacheSize is the match cache capacity. Negative selects the default,
	// zero disables the cache.
	CacheSize int `yaml:"cache_size"`

	// Format names the pixel format the target is converted to before
	// remapping. Empty keeps the decoded format.
	Format string `yaml:"format"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{CacheSize: -1}
}

// Load reads the YAML file at path on top of Default. A missing file is not
// an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg. Keys absent from data leave the
// corresponding fields unchanged. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("invalid yaml: %s", strings.Join(typeErr.Errors, "; "))
		}
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return cfg.Validate()
}

// Validate reports settings that cannot be applied.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.BandHeight < 0 {
		return fmt.Errorf("band_height must not be negative, got %d", c.BandHeight)
	}
	return nil
}
