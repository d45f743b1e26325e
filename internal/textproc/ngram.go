package textproc

import "strings"

// Ngram is a contiguous phrase of 1..n valid tokens with its occurrence
// count within the source text.
type Ngram struct {
	Phrase    string
	Size      int
	Frequency int
}

// ExtractNgrams slides windows of size 1..maxN over the filtered token
// stream of text and counts each phrase. Phrases occurring fewer than
// minFrequency times are dropped; pass 1 to keep everything. The result is
// deterministic: phrases appear in first-seen order.
func ExtractNgrams(text string, maxN, minFrequency int) []Ngram {
	words := ValidTokens(text)
	if len(words) == 0 {
		return nil
	}
	if minFrequency < 1 {
		minFrequency = 1
	}

	counts := make(map[string]int)
	var order []string

	limit := maxN
	if limit > len(words) {
		limit = len(words)
	}
	for n := 1; n <= limit; n++ {
		for i := 0; i+n <= len(words); i++ {
			phrase := strings.Join(words[i:i+n], " ")
			if !IsValidNgram(phrase) {
				continue
			}
			if _, seen := counts[phrase]; !seen {
				order = append(order, phrase)
			}
			counts[phrase]++
		}
	}

	out := make([]Ngram, 0, len(order))
	for _, phrase := range order {
		freq := counts[phrase]
		if freq < minFrequency {
			continue
		}
		out = append(out, Ngram{
			Phrase:    phrase,
			Size:      len(strings.Fields(phrase)),
			Frequency: freq,
		})
	}
	return out
}

// IsValidNgram accepts single valid words, and multi-word phrases where at
// least half the tokens independently pass IsValidWord. This keeps phrases
// with a function word embedded between content words.
func IsValidNgram(phrase string) bool {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return false
	}
	if len(words) == 1 {
		return IsValidWord(words[0])
	}
	meaningful := 0
	for _, w := range words {
		if IsValidWord(w) {
			meaningful++
		}
	}
	required := len(words) / 2
	if required < 1 {
		required = 1
	}
	return meaningful >= required
}
