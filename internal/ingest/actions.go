// Package ingest builds JSONL corpus shards from saved HTML pages.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kotoba-lab/verbfreq/models"
	"github.com/kotoba-lab/verbfreq/pkg/extract"
)

// Action scans a directory of HTML files and writes them out as corpus
// shards in the layout the count command consumes.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("html-dir") {
		cfg.Ingest.HTMLDir = c.String("html-dir")
	}
	if c.IsSet("output-dir") {
		cfg.InputDir = c.String("output-dir")
	}
	if c.IsSet("shard-size") {
		cfg.Ingest.ShardSize = c.Int("shard-size")
	}
	if c.IsSet("all-languages") {
		cfg.Ingest.JapaneseOnly = !c.Bool("all-languages")
	}

	if cfg.Ingest.HTMLDir == "" {
		return fmt.Errorf("no HTML directory; set --html-dir or ingest.html_dir in the config file")
	}
	if cfg.InputDir == "" {
		return fmt.Errorf("no shard output directory; set --output-dir or input_dir in the config file")
	}
	if cfg.Ingest.ShardSize < 1 {
		return fmt.Errorf("shard size must be positive, got %d", cfg.Ingest.ShardSize)
	}

	pages, err := findHTMLFiles(cfg.Ingest.HTMLDir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no HTML files under %s", cfg.Ingest.HTMLDir)
	}
	logger.Info("ingesting pages", "count", len(pages), "japanese_only", cfg.Ingest.JapaneseOnly)

	if err := os.MkdirAll(cfg.InputDir, 0755); err != nil {
		return fmt.Errorf("failed to create shard directory %s: %w", cfg.InputDir, err)
	}

	extractor := extract.New(cfg.Ingest.JapaneseOnly)
	writer := newShardWriter(cfg.InputDir, cfg.ShardPattern, cfg.Ingest.ShardSize)

	kept, dropped := 0, 0
	for _, page := range pages {
		doc, keep, err := extractor.ExtractFile(page)
		if err != nil {
			return err
		}
		if !keep {
			dropped++
			logger.Debug("dropped page", "path", page)
			continue
		}
		if err := writer.Write(models.Record{Text: doc.Text}); err != nil {
			return err
		}
		kept++
	}
	if err := writer.Close(); err != nil {
		return err
	}

	logger.Info("ingest complete",
		"records", kept,
		"dropped", dropped,
		"shards", writer.ShardsWritten(),
		"output_dir", cfg.InputDir)
	return nil
}

// findHTMLFiles walks dir and returns the .html/.htm files in a stable order.
func findHTMLFiles(dir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			pages = append(pages, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(pages)
	return pages, nil
}

// shardWriter rolls records into numbered shard files of a fixed size.
type shardWriter struct {
	dir     string
	pattern string
	size    int

	shard   int
	inShard int
	file    *os.File
	buf     *bufio.Writer
	enc     *json.Encoder
}

func newShardWriter(dir, pattern string, size int) *shardWriter {
	return &shardWriter{dir: dir, pattern: pattern, size: size}
}

func (w *shardWriter) Write(rec models.Record) error {
	if w.file == nil || w.inShard >= w.size {
		if err := w.roll(); err != nil {
			return err
		}
	}
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	w.inShard++
	return nil
}

func (w *shardWriter) roll() error {
	if err := w.Close(); err != nil {
		return err
	}
	path := filepath.Join(w.dir, fmt.Sprintf(w.pattern, w.shard))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create shard %s: %w", path, err)
	}
	w.file = file
	w.buf = bufio.NewWriter(file)
	w.enc = json.NewEncoder(w.buf)
	w.shard++
	w.inShard = 0
	return nil
}

func (w *shardWriter) Close() error {
	if w.file == nil {
		return nil
	}
	if err := w.buf.Flush(); err != nil {
		return err
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// ShardsWritten returns how many shard files were produced.
func (w *shardWriter) ShardsWritten() int {
	return w.shard
}
