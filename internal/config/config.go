package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/splitledger/splitledger/internal/history"
	"github.com/splitledger/splitledger/internal/model"
)

// FileName is the project configuration file at the project root.
const FileName = "splitledger.yaml"

// Config represents the top-level splitledger.yaml configuration.
type Config struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Rounding RoundingConfig `yaml:"rounding"`
	History  HistoryConfig  `yaml:"history"`
	Log      LogConfig      `yaml:"log"`
	Git      GitConfig      `yaml:"git"`
}

// LedgerConfig locates the per-bucket ledger files.
type LedgerConfig struct {
	Dir   string            `yaml:"dir"`
	Files map[string]string `yaml:"files"` // bucket key -> file name, relative to Dir
}

// RoundingConfig controls input normalization before allocation.
type RoundingConfig struct {
	Step int64 `yaml:"step"`
}

// HistoryConfig locates the activity log.
type HistoryConfig struct {
	File string `yaml:"file"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"` // zerolog level name
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a splitledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadProject loads the configuration of the project at root. A project
// without splitledger.yaml runs on defaults. Environment overrides are
// applied last.
func LoadProject(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	lookup, err := EnvLookup(root)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
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

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	files := make(map[string]string)
	for _, info := range model.Buckets() {
		files[string(info.Bucket)] = string(info.Bucket) + ".csv"
	}
	return &Config{
		Ledger: LedgerConfig{
			Dir:   "ledgers",
			Files: files,
		},
		Rounding: RoundingConfig{
			Step: 5,
		},
		History: HistoryConfig{
			File: history.DefaultFile,
		},
		Log: LogConfig{
			Level: "info",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Split Ledger",
			AuthorEmail: "ledger@splitledger.local",
		},
	}
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Rounding.Step < 1 {
		return fmt.Errorf("invalid config: rounding.step must be >= 1, got %d", c.Rounding.Step)
	}
	for key := range c.Ledger.Files {
		if _, err := model.ParseBucket(key); err != nil {
			return fmt.Errorf("invalid config: ledger.files: %w", err)
		}
	}
	return nil
}

// LedgerPaths resolves the ledger file of every bucket against root.
// Buckets missing from ledger.files use <bucket>.csv.
func (c *Config) LedgerPaths(root string) map[model.Bucket]string {
	dir := resolve(root, c.Ledger.Dir)
	paths := make(map[model.Bucket]string)
	for _, info := range model.Buckets() {
		name := c.Ledger.Files[string(info.Bucket)]
		if name == "" {
			name = string(info.Bucket) + ".csv"
		}
		paths[info.Bucket] = resolve(dir, name)
	}
	return paths
}

// HistoryPath resolves the activity log location against root.
func (c *Config) HistoryPath(root string) string {
	file := c.History.File
	if file == "" {
		file = history.DefaultFile
	}
	return resolve(root, file)
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
