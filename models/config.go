// Package models defines shared configuration and corpus record types.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for a counting run. Values come from
// an optional YAML file and may be overridden by CLI flags.
type Config struct {
	// InputDir is the directory holding the JSONL corpus shards.
	InputDir string `yaml:"input_dir"`
	// ShardCount is the fixed number of shard files to process.
	ShardCount int `yaml:"shard_count"`
	// ShardPattern is a printf-style filename pattern taking the shard index,
	// e.g. "corpus-%02d.jsonl".
	ShardPattern string `yaml:"shard_pattern"`
	// OutputPath is where the final frequency JSON document is written.
	OutputPath string `yaml:"output_path"`
	// WorkerCount is the size of the record-processing worker pool.
	WorkerCount int `yaml:"worker_count"`
	// DatabasePath, when set, enables persisting run results to SQLite.
	DatabasePath string `yaml:"database_path"`

	Ingest IngestConfig `yaml:"ingest"`
}

// IngestConfig configures the HTML-to-shard ingest command.
type IngestConfig struct {
	// HTMLDir is the directory scanned recursively for .html/.htm files.
	HTMLDir string `yaml:"html_dir"`
	// ShardSize is the number of records written per shard file.
	ShardSize int `yaml:"shard_size"`
	// JapaneseOnly drops documents whose detected language is not Japanese.
	JapaneseOnly bool `yaml:"japanese_only"`
}

// DefaultConfig returns a Config with usable defaults for everything except
// the input directory.
func DefaultConfig() *Config {
	return &Config{
		ShardCount:   21,
		ShardPattern: "corpus-%02d.jsonl",
		OutputPath:   "frequency_list.json",
		WorkerCount:  4,
		Ingest: IngestConfig{
			ShardSize:    1000,
			JapaneseOnly: true,
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
