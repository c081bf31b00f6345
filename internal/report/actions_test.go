package report

import (
	"reflect"
	"testing"

	"github.com/kotoba-lab/verbfreq/pkg/freq"
)

func sampleTable() *freq.Table {
	table := freq.NewTable()
	table.Verbs["食べた"] = &freq.VerbEntry{POS: "動詞", Lemma: "食べる", Frequency: 10}
	table.Verbs["見た"] = &freq.VerbEntry{POS: "動詞", Lemma: "見る", Frequency: 7}
	table.Verbs["行った"] = &freq.VerbEntry{POS: "動詞", Lemma: "行く", Frequency: 7}
	table.Verbs["寝た"] = &freq.VerbEntry{POS: "動詞", Lemma: "寝る", Frequency: 1}
	table.Inflections["た"] = 25
	table.Inflections["ました"] = 4
	return table
}

func TestTopVerbsSortedAndTieBroken(t *testing.T) {
	got := topVerbs(sampleTable(), 3)
	want := []string{
		"食べた:10 (動詞, 食べる)",
		"行った:7 (動詞, 行く)",
		"見た:7 (動詞, 見る)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topVerbs() = %v, want %v", got, want)
	}
}

func TestTopVerbsLimitExceedsSize(t *testing.T) {
	got := topVerbs(sampleTable(), 100)
	if len(got) != 4 {
		t.Errorf("topVerbs(100) returned %d rows, want 4", len(got))
	}
}

func TestTopInflections(t *testing.T) {
	got := topInflections(sampleTable(), 2)
	want := []string{"た:25", "ました:4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topInflections() = %v, want %v", got, want)
	}
}
