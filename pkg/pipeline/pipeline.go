// Package pipeline drives the corpus run: shards are read sequentially, each
// shard's records fan out to a fixed worker pool, and the per-record tables
// are reduced into one global accumulator that is serialized once at the end.
package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/kotoba-lab/verbfreq/models"
	"github.com/kotoba-lab/verbfreq/pkg/freq"
	"github.com/kotoba-lab/verbfreq/pkg/freqdb"
	"github.com/kotoba-lab/verbfreq/pkg/inflect"
	"github.com/kotoba-lab/verbfreq/pkg/segment"
	"github.com/kotoba-lab/verbfreq/pkg/tokenize"
)

// Corpus lines can be whole chapters; the default scanner limit is too small.
const scannerBufSize = 4 * 1024 * 1024

type Options struct {
	InputDir     string
	ShardCount   int
	ShardPattern string
	OutputPath   string
	WorkerCount  int

	// Analyzers builds one analyzer per worker; defaults to the kagome
	// backend when nil.
	Analyzers tokenize.Factory

	// DB, when non-nil, receives the run metadata and final tables.
	DB *freqdb.DB

	// Progress enables the terminal spinner.
	Progress bool

	Logger *slog.Logger
}

// Run executes the whole pipeline. Any shard or record error aborts the run
// before the output file is written; a partial result is never produced.
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	if opts.WorkerCount < 1 {
		return fmt.Errorf("worker count must be positive, got %d", opts.WorkerCount)
	}
	if opts.ShardCount < 1 {
		return fmt.Errorf("shard count must be positive, got %d", opts.ShardCount)
	}

	factory := opts.Analyzers
	if factory == nil {
		factory = func() (tokenize.Analyzer, error) { return tokenize.NewKagomeAnalyzer() }
	}
	pool, err := tokenize.NewPool(opts.WorkerCount, factory)
	if err != nil {
		return err
	}

	var runID int64
	if opts.DB != nil {
		runID, err = opts.DB.BeginRun(opts.ShardCount, opts.WorkerCount)
		if err != nil {
			return err
		}
	}

	var spin *spinner.Spinner
	if opts.Progress {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Start()
		defer spin.Stop()
	}

	started := time.Now()
	global := freq.NewTable()
	var totalRecords int64

	for shard := 0; shard < opts.ShardCount; shard++ {
		if spin != nil {
			spin.Prefix = fmt.Sprintf("[%02d/%02d] ", shard, opts.ShardCount-1)
		}

		path := filepath.Join(opts.InputDir, fmt.Sprintf(opts.ShardPattern, shard))
		records, err := loadShard(path)
		if err != nil {
			return err
		}
		totalRecords += int64(len(records))

		shardTable := processShard(records, pool)
		global.Merge(shardTable)

		logger.Info("shard processed",
			"shard", shard,
			"records", len(records),
			"surfaces", len(global.Verbs))
	}

	if err := writeOutput(opts.OutputPath, global); err != nil {
		return err
	}

	if opts.DB != nil {
		if err := opts.DB.SaveTable(runID, global); err != nil {
			return err
		}
		if err := opts.DB.FinishRun(runID, totalRecords); err != nil {
			return err
		}
	}

	logger.Info("run complete",
		"records", totalRecords,
		"surfaces", len(global.Verbs),
		"inflections", len(global.Inflections),
		"elapsed", time.Since(started).Round(time.Millisecond).String(),
		"output", opts.OutputPath)
	return nil
}

// loadShard reads one JSONL shard fully into memory. A missing file or an
// unparseable line is fatal for the whole run.
func loadShard(path string) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shard %s: %w", path, err)
	}
	defer file.Close()

	var records []models.Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), scannerBufSize)
	line := 0
	for scanner.Scan() {
		line++
		var rec models.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("malformed record at %s:%d: %w", path, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shard %s: %w", path, err)
	}
	return records, nil
}

// processShard fans the shard's records out to the worker pool and reduces
// the per-record tables into one shard table. Each worker keeps its own
// analyzer for the whole shard, and the reduction runs single-threaded after
// all workers have finished.
func processShard(records []models.Record, pool *tokenize.Pool) *freq.Table {
	jobs := make(chan models.Record, len(records))
	results := make(chan *freq.Table, len(records))

	var wg sync.WaitGroup
	for w := 0; w < pool.Size(); w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			adapter := pool.At(worker)
			for rec := range jobs {
				results <- ProcessRecord(adapter, rec.Text)
			}
		}(w)
	}

	for _, rec := range records {
		jobs <- rec
	}
	close(jobs)

	wg.Wait()
	close(results)

	shardTable := freq.NewTable()
	for table := range results {
		shardTable.Merge(table)
	}
	return shardTable
}

// ProcessRecord builds the local frequency table for one corpus record:
// segment, tokenize per fragment, merge inflections, tally.
func ProcessRecord(adapter *tokenize.Adapter, text string) *freq.Table {
	local := freq.NewTable()
	for fragment := range segment.Split(text) {
		tokens := adapter.Tokenize(fragment)
		merged, tally := inflect.Merge(tokens)

		for _, tok := range merged {
			local.Add(tok.Surface, tok.POS, tok.Lemma)
		}
		for tag, n := range tally {
			local.AddInflection(tag, n)
		}
	}
	return local
}

// writeOutput serializes the accumulator once. encoding/json emits map keys
// in sorted order, so the document is byte-stable across worker counts.
func writeOutput(path string, table *freq.Table) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
