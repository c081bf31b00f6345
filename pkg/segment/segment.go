// Package segment splits raw corpus text into analyzer-sized fragments.
package segment

import (
	"iter"
	"strings"
	"unicode"
)

// asciiPunct is all 32 ASCII punctuation characters, a wider set than
// unicode.IsPunct (it includes $, +, <, =, >, ^, `, | and ~).
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// fullWidthBoundaries are the CJK punctuation marks that terminate a fragment
// in addition to whitespace and ASCII punctuation.
const fullWidthBoundaries = "，…‥。！？"

// IsBoundary reports whether r separates two fragments.
func IsBoundary(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	if r < unicode.MaxASCII && strings.ContainsRune(asciiPunct, r) {
		return true
	}
	return strings.ContainsRune(fullWidthBoundaries, r)
}

// Split yields the non-empty fragments of text, cut at every boundary rune.
// Runs of boundary runes produce no empty fragments.
func Split(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i, r := range text {
			if IsBoundary(r) {
				if start >= 0 {
					if !yield(text[start:i]) {
						return
					}
					start = -1
				}
			} else if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			yield(text[start:])
		}
	}
}
