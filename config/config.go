package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the retrieval tool.
type Config struct {
	Corpus   CorpusConfig        `yaml:"corpus"`
	Chunker  ChunkerConfig       `yaml:"chunker"`
	Search   SearchConfig        `yaml:"search"`
	Synonyms map[string][]string `yaml:"synonyms"`
	Logging  LoggingConfig       `yaml:"logging"`
}

// CorpusConfig holds document loading configuration.
type CorpusConfig struct {
	Dir      string   `yaml:"dir"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// ChunkerConfig holds markdown segmentation configuration.
type ChunkerConfig struct {
	HeadingDepth int `yaml:"heading_depth"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	Mode      string `yaml:"mode"`       // broad, balanced, precise
	MaxTokens int    `yaml:"max_tokens"` // context budget, clamped to [500, 50000]
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dir:      "docs",
			Includes: []string{"**/*.md"},
			Excludes: []string{"**/node_modules/**", "**/.git/**", "**/drafts/**"},
		},
		Chunker: ChunkerConfig{
			HeadingDepth: 4,
		},
		Search: SearchConfig{
			Mode:      "balanced",
			MaxTokens: 25000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
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

// LoadFromDir loads configuration from a directory (looks for paydocs.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "paydocs.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".paydocs", "config.yaml")
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

// CorpusDBPath returns the path to the corpus database.
func CorpusDBPath(dir string) string {
	return filepath.Join(dir, ".paydocs", "corpus.db")
}

// EnsureDataDir ensures the .paydocs directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".paydocs"), 0755)
}
