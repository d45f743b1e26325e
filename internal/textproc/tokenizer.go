// Package textproc implements tokenization, stop-word filtering and n-gram
// extraction for Latin and Perso-Arabic text.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Everything that is not a letter, digit, underscore or whitespace gets
// replaced with a space before splitting. Covers both Latin and the
// Perso-Arabic block via the unicode letter class.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// Tokenize cleans raw text and splits it into lowercase tokens. Empty input
// yields an empty slice, never an error.
func Tokenize(text string) []string {
	cleaned := nonWordRe.ReplaceAllString(text, " ")
	return strings.Fields(strings.ToLower(cleaned))
}

// IsValidWord reports whether a token qualifies as a keyword candidate:
// purely alphabetic, at least two characters (two-letter tokens only via the
// allow-list) and not a stop word.
func IsValidWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	switch n := utf8.RuneCountInString(w); {
	case n < 2:
		return false
	case n == 2:
		if _, ok := twoLetterAllow[w]; !ok {
			return false
		}
	}
	return !IsStopWord(w)
}

// ValidTokens tokenizes text and keeps only tokens passing IsValidWord.
func ValidTokens(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if IsValidWord(t) {
			out = append(out, t)
		}
	}
	return out
}
