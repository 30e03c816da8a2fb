package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/finboard-dev/finboard/internal/model"
)

// FileName is the default config file name inside a finboard project.
const FileName = "finboard.yaml"

// Config represents the top-level finboard.yaml configuration.
type Config struct {
	Business    BusinessConfig        `yaml:"business"`
	Storage     StorageConfig         `yaml:"storage"`
	Display     DisplayConfig         `yaml:"display"`
	View        ViewConfig            `yaml:"view"`
	Log         LogConfig             `yaml:"log"`
	ActivityLog string                `yaml:"activity_log,omitempty"`
	Accounts    []model.AccountOption `yaml:"accounts,omitempty"`
	Rules       []model.Rule          `yaml:"rules,omitempty"`
}

// BusinessConfig identifies the business the ledger belongs to.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig selects where the ledger is kept between runs.
type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, csv or sqlite
	Path   string `yaml:"path,omitempty"`
}

// DisplayConfig controls currency rendering.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
	Symbol   string `yaml:"symbol"`
	Grouping string `yaml:"grouping"` // "indian" (12,34,567.00) or "western" (1,234,567.00)
}

// ViewConfig holds the initial sort and selection behaviour of the transaction view.
type ViewConfig struct {
	SortKey                string `yaml:"sort_key"`
	SortDirection          string `yaml:"sort_direction"`
	ClearSelectionOnFilter bool   `yaml:"clear_selection_on_filter"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads a finboard.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults: in-memory storage seeded
// with sample data, INR display, newest transactions first.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Display: DisplayConfig{
			Currency: "INR",
			Symbol:   "₹",
			Grouping: "indian",
		},
		View: ViewConfig{
			SortKey:       "date",
			SortDirection: "desc",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ResolvePaths makes relative storage and activity-log paths relative to dir.
func (c *Config) ResolvePaths(dir string) {
	if c.Storage.Path != "" && !filepath.IsAbs(c.Storage.Path) {
		c.Storage.Path = filepath.Join(dir, c.Storage.Path)
	}
	if c.ActivityLog != "" && !filepath.IsAbs(c.ActivityLog) {
		c.ActivityLog = filepath.Join(dir, c.ActivityLog)
	}
}
