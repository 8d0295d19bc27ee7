// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

// Words of three or more letters that carry no meaning in a word cloud.
// Shorter words are already dropped by length.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// English
		"the", "and", "but", "for", "with", "about", "are", "was", "were",
		"this", "that", "these", "those", "from", "have", "has", "had", "not",
		"you", "your", "our", "they", "them", "their", "there", "then", "than",
		"its", "can", "could", "would", "should", "will", "just",
		"all", "any", "some", "more", "most", "very", "also", "been", "being",
		"into", "out", "what", "which", "who", "when", "where", "why", "how",
		"because", "does", "did", "doing", "his", "her", "she", "him",
		// Dutch
		"het", "een", "van", "dat", "die", "niet", "zijn", "met", "voor",
		"ook", "maar", "als", "aan", "bij", "door", "naar", "dan", "nog",
		"wel", "geen", "wat", "wie", "waar", "hoe", "omdat", "deze", "dit",
		"heb", "hebben", "heeft", "was", "waren", "wordt", "worden", "werd",
		"kan", "kunnen", "moet", "moeten", "zou", "zal", "zullen", "over",
		"uit", "tot", "hij", "zij", "wij", "jij", "ons", "onze", "mijn",
		"jouw", "hun", "haar", "hem", "meer", "veel", "heel", "erg", "alle",
		"iets", "niets", "altijd", "nooit", "toch", "even", "zeer", "want",
	} {
		stopWords[w] = struct{}{}
	}
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
