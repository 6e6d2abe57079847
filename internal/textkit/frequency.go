package textkit

import (
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
)

// WordCount pairs a word with its number of occurrences.
type WordCount struct {
	Word  string
	Count int
}

// FrequentWords returns the topN most frequent words of text, lowercased.
// Stopwords of the given ISO language code ("en", "pt", ...) are dropped
// unless includeStopwords is set. Ties break alphabetically.
func FrequentWords(text string, topN int, includeStopwords bool, lang string) ([]WordCount, error) {
	var words []string

	if includeStopwords {
		tokens, err := tokenize(strings.ToLower(text))
		if err != nil {
			return nil, err
		}
		for _, tok := range tokens {
			if isAlpha(tok) {
				words = append(words, tok)
			}
		}
	} else {
		words = contentWords(text, lang)
	}

	freq := make(map[string]int)
	for _, word := range words {
		freq[word]++
	}

	out := make([]WordCount, 0, len(freq))
	for word, count := range freq {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// contentWords lowercases the text, strips punctuation and digits and drops
// stopwords of the given language.
func contentWords(text, lang string) []string {
	if lang == "" {
		lang = "en"
	}
	return strings.Fields(stopwords.CleanString(text, lang, false))
}
