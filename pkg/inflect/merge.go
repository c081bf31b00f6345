package inflect

import "github.com/kotoba-lab/verbfreq/pkg/tokenize"

// Merge scans one fragment's tokens left to right. Non-verb tokens pass
// through unchanged. For a verb token, the first matching rule replaces the
// verb plus its matched run with a single merged token (surface + suffix,
// part-of-speech and lemma copied from the verb) and tallies the rule's tag;
// without a match the verb passes through unchanged. The cursor only moves
// forward, by 1 or by arity+1, so the scan is O(n) with no backtracking.
func Merge(tokens []tokenize.Token) ([]tokenize.Token, map[string]int) {
	merged := make([]tokenize.Token, 0, len(tokens))
	tally := make(map[string]int)

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if tok.POS != VerbPOS {
			merged = append(merged, tok)
			i++
			continue
		}

		rule, ok := matchAt(tokens, i)
		if !ok {
			merged = append(merged, tok)
			i++
			continue
		}

		merged = append(merged, tokenize.Token{
			Surface: tok.Surface + rule.Tag,
			POS:     tok.POS,
			Lemma:   tok.Lemma,
		})
		tally[rule.Tag]++
		i += rule.Arity() + 1
	}

	return merged, tally
}

// matchAt tests the rules in declared order against the tokens following
// position i.
func matchAt(tokens []tokenize.Token, i int) (Rule, bool) {
	for _, rule := range Rules {
		if lookaheadMatches(tokens, i, rule.Lookahead) {
			return rule, true
		}
	}
	return Rule{}, false
}

func lookaheadMatches(tokens []tokenize.Token, i int, want []string) bool {
	for k, surface := range want {
		j := i + 1 + k
		if j >= len(tokens) || tokens[j].Surface != surface {
			return false
		}
	}
	return true
}
