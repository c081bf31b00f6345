// Package freq aggregates surface-form and inflection frequencies. Tables are
// built per record, reduced per shard, and reduced once more into the global
// result; Merge is commutative and associative so the reduction order never
// changes the outcome.
package freq

import "regexp"

// nativeScript gates the surface table: a surface is counted only when every
// rune is a Han, Katakana or Hiragana character. Inflection tallies are never
// gated.
var nativeScript = regexp.MustCompile(`^(\p{Han}|\p{Katakana}|\p{Hiragana})+$`)

// VerbEntry is the frequency record for one merged surface form.
type VerbEntry struct {
	POS       string `json:"pos"`
	Lemma     string `json:"dictionary_form"`
	Frequency int    `json:"frequency"`
}

// Table is one accumulator level: merged surfaces with their part-of-speech,
// dictionary form and count, plus per-inflection-tag counts. Its JSON form is
// the final output document.
type Table struct {
	Verbs       map[string]*VerbEntry `json:"verbs"`
	Inflections map[string]int        `json:"inflections"`
}

func NewTable() *Table {
	return &Table{
		Verbs:       make(map[string]*VerbEntry),
		Inflections: make(map[string]int),
	}
}

// Add counts one occurrence of a merged surface. The first occurrence fixes
// the recorded part-of-speech and lemma; later ones only increment the count.
// Surfaces containing anything outside Han/Katakana/Hiragana are dropped.
func (t *Table) Add(surface, pos, lemma string) {
	if !nativeScript.MatchString(surface) {
		return
	}
	if entry, ok := t.Verbs[surface]; ok {
		entry.Frequency++
		return
	}
	t.Verbs[surface] = &VerbEntry{POS: pos, Lemma: lemma, Frequency: 1}
}

// AddInflection counts n occurrences of an inflection tag.
func (t *Table) AddInflection(tag string, n int) {
	t.Inflections[tag] += n
}

// Merge folds src into t: union of keys, frequencies summed, and for surfaces
// already present the recorded part-of-speech and lemma stay untouched.
func (t *Table) Merge(src *Table) {
	for surface, entry := range src.Verbs {
		if cur, ok := t.Verbs[surface]; ok {
			cur.Frequency += entry.Frequency
			continue
		}
		t.Verbs[surface] = &VerbEntry{
			POS:       entry.POS,
			Lemma:     entry.Lemma,
			Frequency: entry.Frequency,
		}
	}
	for tag, n := range src.Inflections {
		t.Inflections[tag] += n
	}
}
