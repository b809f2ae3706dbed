package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the vector store.
type Config struct {
	Collection CollectionConfig `yaml:"collection"`
	Search     SearchConfig     `yaml:"search"`
	Populate   PopulateConfig   `yaml:"populate"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CollectionConfig holds collection shape configuration.
type CollectionConfig struct {
	Name          string `yaml:"name"`
	EmbeddingSize int    `yaml:"embedding_size"`
	TopNResults   int    `yaml:"top_n_results"`
}

// SearchConfig holds search execution configuration.
type SearchConfig struct {
	Workers           int `yaml:"workers"`            // 0 = number of CPUs
	ParallelThreshold int `yaml:"parallel_threshold"` // store size from which scoring runs in parallel
	CacheSize         int `yaml:"cache_size"`         // 0 = query cache disabled
}

// PopulateConfig holds synthetic data generation configuration.
type PopulateConfig struct {
	Documents int    `yaml:"documents"`
	Seed      uint64 `yaml:"seed"` // 0 = non-deterministic
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			Name:          "default",
			EmbeddingSize: 768,
			TopNResults:   10,
		},
		Search: SearchConfig{
			Workers:           0,
			ParallelThreshold: 4096,
			CacheSize:         0,
		},
		Populate: PopulateConfig{
			Documents: 1000000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	if c.Collection.EmbeddingSize <= 0 {
		return fmt.Errorf("collection.embedding_size must be positive, got %d", c.Collection.EmbeddingSize)
	}
	if c.Collection.TopNResults <= 0 {
		return fmt.Errorf("collection.top_n_results must be positive, got %d", c.Collection.TopNResults)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must not be negative, got %d", c.Search.Workers)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must not be negative, got %d", c.Search.CacheSize)
	}
	if c.Populate.Documents < 0 {
		return fmt.Errorf("populate.documents must not be negative, got %d", c.Populate.Documents)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for vecstore.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "vecstore.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".vecstore", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
