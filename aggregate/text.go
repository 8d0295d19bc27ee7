// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

const (
	// TopWordsLimit caps the word frequency list of a text aggregate.
	TopWordsLimit = 20
	// DefaultTextSamples is how many raw answers a text aggregate keeps.
	DefaultTextSamples = 5
	minWordLength      = 3
)

// nonWord splits answers into words; punctuation separates words rather
// than joining them.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Text summarizes free-text answers: average length in characters, the most
// frequent words and the first samples answers. A negative samples keeps
// every answer.
func Text(values []normalize.Labeled[string], samples int) models.TextAggregate {
	lengths := make([]int, len(values))
	answers := make([]string, len(values))
	words := newOrderedCounts()
	lower := cases.Lower(language.Und)

	for i, v := range values {
		lengths[i] = utf8.RuneCountInString(v.Value)
		answers[i] = v.Value
		for _, w := range tokenize(fold(lower, v.Value)) {
			words.inc(w)
		}
	}

	if samples < 0 || samples > len(answers) {
		samples = len(answers)
	}
	return models.TextAggregate{
		TotalResponses: len(values),
		AverageLength:  round(mean(lengths)),
		TopWords:       topCounts(words, TopWordsLimit),
		Samples:        answers[:samples],
	}
}

// fold lower-cases s and composes combining marks, so "Café" and
// "cafe\u0301" count as the same word.
func fold(lower cases.Caser, s string) string {
	return norm.NFC.String(lower.String(s))
}

func tokenize(s string) []string {
	var out []string
	for _, w := range nonWord.Split(s, -1) {
		if utf8.RuneCountInString(w) < minWordLength || isStopWord(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// topCounts sorts by descending count, keeping first-seen order for ties.
// limit <= 0 returns every entry.
func topCounts(oc *orderedCounts, limit int) []models.WordCount {
	out := make([]models.WordCount, len(oc.order))
	for i, k := range oc.order {
		out[i] = models.WordCount{Text: k, Weight: oc.counts[k]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
