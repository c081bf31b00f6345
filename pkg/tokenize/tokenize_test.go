package tokenize

import (
	"reflect"
	"testing"
)

// stubAnalyzer returns canned raw tokens regardless of input.
type stubAnalyzer struct {
	tokens []RawToken
}

func (s *stubAnalyzer) Parse(string) []RawToken {
	return s.tokens
}

func TestAdapterTokenize(t *testing.T) {
	stub := &stubAnalyzer{tokens: []RawToken{
		{Surface: "食べ", Feature: "動詞,自立,*,*,一段,連用形,食べる,タベ,タベ"},
		{Surface: "た", Feature: "助動詞,*,*,*,特殊・タ,基本形,た,タ,タ"},
	}}

	got := NewAdapter(stub).Tokenize("食べた")
	want := []Token{
		{Surface: "食べ", POS: "動詞", Lemma: "食べる"},
		{Surface: "た", POS: "助動詞", Lemma: "た"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %+v, want %+v", got, want)
	}
}

func TestAdapterShortFeatureDefaultsLemma(t *testing.T) {
	stub := &stubAnalyzer{tokens: []RawToken{
		{Surface: "ｶﾞｶﾞ", Feature: "名詞,一般,*,*,*,*"},
	}}

	got := NewAdapter(stub).Tokenize("ｶﾞｶﾞ")
	if len(got) != 1 {
		t.Fatalf("Tokenize() returned %d tokens, want 1", len(got))
	}
	if got[0].POS != "名詞" {
		t.Errorf("POS = %q, want 名詞", got[0].POS)
	}
	if got[0].Lemma != "" {
		t.Errorf("Lemma = %q, want empty for short feature string", got[0].Lemma)
	}
}

func TestAdapterEmptyFragment(t *testing.T) {
	got := NewAdapter(&stubAnalyzer{}).Tokenize("")
	if len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want no tokens", got)
	}
}

func TestPoolGivesEachWorkerOwnAdapter(t *testing.T) {
	built := 0
	pool, err := NewPool(3, func() (Analyzer, error) {
		built++
		return &stubAnalyzer{}, nil
	})
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}

	if built != 3 {
		t.Errorf("factory called %d times, want 3", built)
	}
	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}
	seen := map[*Adapter]bool{}
	for w := 0; w < pool.Size(); w++ {
		ad := pool.At(w)
		if ad == nil {
			t.Fatalf("At(%d) = nil", w)
		}
		if seen[ad] {
			t.Errorf("adapter for worker %d shared with another worker", w)
		}
		seen[ad] = true
		if pool.At(w) != ad {
			t.Errorf("At(%d) not stable across calls", w)
		}
	}
}

func TestPoolRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewPool(0, func() (Analyzer, error) { return &stubAnalyzer{}, nil }); err == nil {
		t.Error("NewPool(0) error = nil, want error")
	}
}
