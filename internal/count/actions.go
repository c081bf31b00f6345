// Package count wires the corpus counting pipeline to the CLI.
package count

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kotoba-lab/verbfreq/models"
	"github.com/kotoba-lab/verbfreq/pkg/freqdb"
	"github.com/kotoba-lab/verbfreq/pkg/pipeline"
)

// Action runs a full counting pass over the configured shards.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	if cfg.InputDir == "" {
		return fmt.Errorf("no input directory; set --input-dir or input_dir in the config file")
	}

	var db *freqdb.DB
	if cfg.DatabasePath != "" {
		db, err = freqdb.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("persisting results", "database", db.Path())
	}

	logger.Info("starting run",
		"input_dir", cfg.InputDir,
		"shards", cfg.ShardCount,
		"workers", cfg.WorkerCount,
		"output", cfg.OutputPath)

	return pipeline.Run(pipeline.Options{
		InputDir:     cfg.InputDir,
		ShardCount:   cfg.ShardCount,
		ShardPattern: cfg.ShardPattern,
		OutputPath:   cfg.OutputPath,
		WorkerCount:  cfg.WorkerCount,
		DB:           db,
		Progress:     !c.Bool("quiet"),
		Logger:       logger,
	})
}

// resolveConfig layers CLI flags over the optional config file.
func resolveConfig(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("input-dir") {
		cfg.InputDir = c.String("input-dir")
	}
	if c.IsSet("shards") {
		cfg.ShardCount = c.Int("shards")
	}
	if c.IsSet("shard-pattern") {
		cfg.ShardPattern = c.String("shard-pattern")
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("database") {
		cfg.DatabasePath = c.String("database")
	}
	return cfg, nil
}
