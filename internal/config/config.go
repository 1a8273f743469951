package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "greygoo.yaml"

type Config struct {
	StatePath   string  `yaml:"state_path" env:"STATE_PATH"`
	CatalogPath string  `yaml:"catalog_path" env:"CATALOG_PATH"`
	Store       string  `yaml:"store" env:"STORE"`
	SQLitePath  string  `yaml:"sqlite_path" env:"SQLITE_PATH"`
	LogLevel    string  `yaml:"log_level" env:"LOG_LEVEL"`
	Color       string  `yaml:"color" env:"COLOR"`
	Events      Events  `yaml:"events" envPrefix:"EVENT_"`
	Baseline    Balance `yaml:"baseline" envPrefix:"BASELINE_"`
}

// Events configure the placeholder event fired when the catalog schedules
// nothing sooner.
type Events struct {
	Offset int64  `yaml:"offset" env:"OFFSET"`
	Label  string `yaml:"label" env:"LABEL"`
}

func (e *Events) ApplyDefaults() {
	if e.Offset <= 0 {
		e.Offset = 1_000_000
	}
	if e.Label == "" {
		e.Label = "foo"
	}
}

func (c *Config) ApplyDefaults() {
	if c.StatePath == "" {
		c.StatePath = "state.json"
	}
	if c.CatalogPath == "" {
		c.CatalogPath = "game.json"
	}
	if c.Store == "" {
		c.Store = "json"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "greygoo.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	c.Events.ApplyDefaults()
	c.Baseline.ApplyDefaults()
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var r Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &r); err != nil {
			return nil, err
		}
	}
	r.ApplyDefaults()
	return &r, nil
}
