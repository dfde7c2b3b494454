// Package config holds the settings shared by every command. Values come from
// flags, then GOM_* environment variables, then a YAML file, then defaults.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Workers     int    `yaml:"workers"`
		SkipInvalid bool   `yaml:"skip_invalid"`
		Indent      string `yaml:"indent"`
		LogLevel    string `yaml:"log_level"`
		DBURL       string `yaml:"db_url"`
	}
	// Overrides carries the values given on the command line or through the
	// environment. Nil means not given.
	Overrides struct {
		Workers     *int
		SkipInvalid *bool
		LogLevel    *string
		DBURL       *string
	}
)

const (
	DefaultWorkers  = 4
	DefaultIndent   = "  "
	DefaultLogLevel = "info"
	DefaultDBURL    = "sqlite://gom.db"

	MaxWorkers = 256
)

var FileNames = []string{".gom-savior.yml", ".gom-savior.yaml", "gom-savior.yml", "gom-savior.yaml"}

func Default() *Config {
	return &Config{
		Workers:     DefaultWorkers,
		SkipInvalid: false,
		Indent:      DefaultIndent,
		LogLevel:    DefaultLogLevel,
		DBURL:       DefaultDBURL,
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config.Load error")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config.Load error: parse `%s`", path)
	}
	return cfg, nil
}

// Find looks for a config file in dir and its parents. The empty string means
// none was found.
func Find(dir string) string {
	current := dir
	for {
		for _, name := range FileNames {
			path := filepath.Join(current, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

func (r *Config) Apply(overrides Overrides) {
	if overrides.Workers != nil {
		r.Workers = *overrides.Workers
	}
	if overrides.SkipInvalid != nil {
		r.SkipInvalid = *overrides.SkipInvalid
	}
	if overrides.LogLevel != nil {
		r.LogLevel = *overrides.LogLevel
	}
	if overrides.DBURL != nil {
		r.DBURL = *overrides.DBURL
	}
}

func (r *Config) Validate() error {
	if r.Workers < 1 || r.Workers > MaxWorkers {
		return errors.Errorf("config: workers must be within [1, %d]; got %d", MaxWorkers, r.Workers)
	}
	if _, err := r.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (r *Config) SlogLevel() (slog.Level, error) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(r.LogLevel)); err != nil {
		return level, errors.Errorf("config: unknown log_level `%s`", r.LogLevel)
	}
	return level, nil
}
