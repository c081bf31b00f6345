// Package inflect folds multi-token verb inflections into single surface
// forms using a fixed, priority-ordered suffix rule table.
package inflect

// VerbPOS is the part-of-speech tag that triggers suffix matching.
const VerbPOS = "動詞"

// maxLookahead is the largest rule arity; the scanner never peeks further.
const maxLookahead = 4

// Rule matches a run of tokens following a verb by their surface text. The
// matched run is replaced by appending Tag to the verb's surface, and Tag is
// also the label tallied in the inflection table.
type Rule struct {
	Lookahead []string
	Tag       string
}

// Arity is the number of lookahead tokens the rule consumes.
func (r Rule) Arity() int {
	return len(r.Lookahead)
}

// Rules is tried strictly top to bottom; the first rule whose lookahead
// matches wins. Longer patterns are declared before shorter ones sharing a
// prefix (ませんでした before ません, られない before た), so the order is a
// correctness requirement, not a tuning choice.
var Rules = []Rule{
	{Lookahead: []string{"ませ", "ん", "でし", "た"}, Tag: "ませんでした"},
	{Lookahead: []string{"させ", "られ", "ない"}, Tag: "させられない"},
	{Lookahead: []string{"られ", "ませ", "ん"}, Tag: "られません"},
	{Lookahead: []string{"させ", "ない"}, Tag: "させない"},
	{Lookahead: []string{"させ", "られる"}, Tag: "させられる"},
	{Lookahead: []string{"なかっ", "た"}, Tag: "なかった"},
	{Lookahead: []string{"なく", "て"}, Tag: "なくて"},
	{Lookahead: []string{"まし", "た"}, Tag: "ました"},
	{Lookahead: []string{"せ", "ない"}, Tag: "せない"},
	{Lookahead: []string{"ませ", "ん"}, Tag: "ません"},
	{Lookahead: []string{"られ", "ない"}, Tag: "られない"},
	{Lookahead: []string{"られ", "ます"}, Tag: "られます"},
	{Lookahead: []string{"れ", "ない"}, Tag: "れない"},
	{Lookahead: []string{"させる"}, Tag: "させる"},
	{Lookahead: []string{"せる"}, Tag: "せる"},
	{Lookahead: []string{"た"}, Tag: "た"},
	{Lookahead: []string{"だ"}, Tag: "だ"},
	{Lookahead: []string{"て"}, Tag: "て"},
	{Lookahead: []string{"で"}, Tag: "で"},
	{Lookahead: []string{"な"}, Tag: "な"},
	{Lookahead: []string{"ない"}, Tag: "ない"},
	{Lookahead: []string{"ます"}, Tag: "ます"},
	{Lookahead: []string{"られる"}, Tag: "られる"},
	{Lookahead: []string{"れる"}, Tag: "れる"},
}
