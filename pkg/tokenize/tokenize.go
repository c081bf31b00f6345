// Package tokenize adapts an external morphological analyzer into the token
// shape the rest of the pipeline consumes.
package tokenize

import "strings"

// Token is one analyzed morpheme: its surface text, coarse part-of-speech tag
// and dictionary (base) form.
type Token struct {
	Surface string
	POS     string
	Lemma   string
}

// RawToken is what an Analyzer emits: a surface substring plus the analyzer's
// comma-separated feature string (IPA dictionary layout).
type RawToken struct {
	Surface string
	Feature string
}

// Analyzer produces the ordered raw token sequence for one fragment.
// Implementations are stateful and must not be called concurrently; the
// pipeline gives each worker its own instance via Pool.
type Analyzer interface {
	Parse(fragment string) []RawToken
}

// Feature-string layout (IPA dictionary): field 0 is the coarse
// part-of-speech, field 6 is the base form.
const lemmaField = 6

// Adapter converts an Analyzer's raw tokens into Tokens.
type Adapter struct {
	analyzer Analyzer
}

func NewAdapter(a Analyzer) *Adapter {
	return &Adapter{analyzer: a}
}

// Tokenize analyzes one fragment. A feature string too short to carry a base
// form yields an empty lemma rather than an error.
func (ad *Adapter) Tokenize(fragment string) []Token {
	raw := ad.analyzer.Parse(fragment)

	tokens := make([]Token, 0, len(raw))
	for _, rt := range raw {
		fields := strings.Split(rt.Feature, ",")
		lemma := ""
		if len(fields) > lemmaField {
			lemma = fields[lemmaField]
		}
		tokens = append(tokens, Token{
			Surface: rt.Surface,
			POS:     fields[0],
			Lemma:   lemma,
		})
	}
	return tokens
}
