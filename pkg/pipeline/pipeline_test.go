package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kotoba-lab/verbfreq/pkg/freq"
	"github.com/kotoba-lab/verbfreq/pkg/tokenize"
)

// fragmentAnalyzer splits a fragment on the middle dot (not a segmenter
// boundary) and looks each piece up in a fixed lexicon, standing in for the
// real morphological analyzer.
type fragmentAnalyzer struct {
	lexicon map[string]string // surface -> feature string
}

func (f *fragmentAnalyzer) Parse(fragment string) []tokenize.RawToken {
	var out []tokenize.RawToken
	for piece := range strings.SplitSeq(fragment, "・") {
		if piece == "" {
			continue
		}
		feature, ok := f.lexicon[piece]
		if !ok {
			feature = "名詞,一般,*,*,*,*," + piece
		}
		out = append(out, tokenize.RawToken{Surface: piece, Feature: feature})
	}
	return out
}

func testFactory() tokenize.Factory {
	lexicon := map[string]string{
		"食べ": "動詞,自立,*,*,一段,連用形,食べる",
		"見":   "動詞,自立,*,*,一段,未然形,見る",
		"まし": "助動詞,*,*,*,特殊・マス,連用形,ます",
		"られ": "動詞,接尾,*,*,一段,未然形,られる",
		"ない": "助動詞,*,*,*,特殊・ナイ,基本形,ない",
		"た":   "助動詞,*,*,*,特殊・タ,基本形,た",
		"tokyo": "名詞,固有名詞,*,*,*,*,tokyo",
	}
	return func() (tokenize.Analyzer, error) {
		return &fragmentAnalyzer{lexicon: lexicon}, nil
	}
}

// writeShards lays out JSONL shard files under a temp dir.
func writeShards(t *testing.T, dir string, shards [][]string) {
	t.Helper()
	for i, texts := range shards {
		var buf bytes.Buffer
		for _, text := range texts {
			line, err := json.Marshal(map[string]string{"text": text})
			if err != nil {
				t.Fatal(err)
			}
			buf.Write(line)
			buf.WriteByte('\n')
		}
		path := filepath.Join(dir, fmt.Sprintf("corpus-%02d.jsonl", i))
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func runOpts(t *testing.T, dir string, shards, workers int) Options {
	t.Helper()
	return Options{
		InputDir:     dir,
		ShardCount:   shards,
		ShardPattern: "corpus-%02d.jsonl",
		OutputPath:   filepath.Join(dir, "out.json"),
		WorkerCount:  workers,
		Analyzers:    testFactory(),
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeShards(t, dir, [][]string{
		{"食べ・まし・た。見・られ・ない・た"},
		{"食べ・まし・た tokyo"},
	})

	opts := runOpts(t, dir, 2, 2)
	if err := Run(opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(opts.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got freq.Table
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if e := got.Verbs["食べました"]; e == nil || e.Frequency != 2 || e.Lemma != "食べる" {
		t.Errorf("食べました = %+v, want frequency 2, lemma 食べる", e)
	}
	if e := got.Verbs["見られない"]; e == nil || e.Frequency != 1 {
		t.Errorf("見られない = %+v, want frequency 1", e)
	}
	// The stray た after 見られない stays a separate token.
	if e := got.Verbs["た"]; e == nil || e.Frequency != 1 {
		t.Errorf("た = %+v, want frequency 1", e)
	}
	// Latin surfaces are merged and tokenized but never counted.
	if _, ok := got.Verbs["tokyo"]; ok {
		t.Error("tokyo must be filtered from the verbs table")
	}
	if got.Inflections["ました"] != 2 || got.Inflections["られない"] != 1 {
		t.Errorf("inflections = %v", got.Inflections)
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	dir := t.TempDir()
	var texts []string
	for i := 0; i < 50; i++ {
		texts = append(texts, "食べ・まし・た。見・られ・ない")
	}
	writeShards(t, dir, [][]string{texts, texts})

	var outputs [][]byte
	for _, workers := range []int{1, 4, 8} {
		opts := runOpts(t, dir, 2, workers)
		opts.OutputPath = filepath.Join(dir, fmt.Sprintf("out-%d.json", workers))
		if err := Run(opts); err != nil {
			t.Fatalf("Run(workers=%d) error = %v", workers, err)
		}
		data, err := os.ReadFile(opts.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}

	for i := 1; i < len(outputs); i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Errorf("output %d differs from output 0; result must be byte-stable", i)
		}
	}
}

func TestRunMalformedRecordIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus-00.jsonl")
	content := `{"text": "食べ・まし・た"}` + "\n" + `{not json}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts := runOpts(t, dir, 1, 2)
	err := Run(opts)
	if err == nil {
		t.Fatal("Run() error = nil, want fatal error for malformed record")
	}
	if !strings.Contains(err.Error(), "malformed record") {
		t.Errorf("error = %v, want malformed record", err)
	}
	if _, statErr := os.Stat(opts.OutputPath); !os.IsNotExist(statErr) {
		t.Error("output file written despite fatal error")
	}
}

func TestRunMissingShardIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeShards(t, dir, [][]string{{"食べ・た"}})

	opts := runOpts(t, dir, 2, 1) // shard 01 does not exist
	if err := Run(opts); err == nil {
		t.Fatal("Run() error = nil, want error for missing shard")
	}
}

func TestProcessRecordEmptyAndBoundaryOnlyText(t *testing.T) {
	factory := testFactory()
	analyzer, _ := factory()
	adapter := tokenize.NewAdapter(analyzer)

	for _, text := range []string{"", " 。！？… "} {
		table := ProcessRecord(adapter, text)
		if len(table.Verbs) != 0 || len(table.Inflections) != 0 {
			t.Errorf("ProcessRecord(%q) produced %+v, want empty tables", text, table)
		}
	}
}
