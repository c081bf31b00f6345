package tokenize

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	kagome "github.com/ikawaha/kagome/v2/tokenizer"
)

// KagomeAnalyzer backs the Analyzer contract with the kagome tokenizer and
// the IPA dictionary, whose feature layout matches what Adapter expects.
// One instance holds mutable lattice state; never share it across goroutines.
type KagomeAnalyzer struct {
	t *kagome.Tokenizer
}

func NewKagomeAnalyzer() (*KagomeAnalyzer, error) {
	t, err := kagome.New(ipa.Dict(), kagome.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to build kagome tokenizer: %w", err)
	}
	return &KagomeAnalyzer{t: t}, nil
}

func (k *KagomeAnalyzer) Parse(fragment string) []RawToken {
	tokens := k.t.Tokenize(fragment)

	out := make([]RawToken, 0, len(tokens))
	for _, tk := range tokens {
		// OmitBosEos drops the sentinels, but guard anyway: a DUMMY token has
		// no surface or features worth counting.
		if tk.Class == kagome.DUMMY {
			continue
		}
		out = append(out, RawToken{
			Surface: tk.Surface,
			Feature: strings.Join(tk.Features(), ","),
		})
	}
	return out
}
