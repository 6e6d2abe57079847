package textkit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
	prose "github.com/jdkato/prose/v2"
)

// Summarize builds an extractive summary of at most n sentences: sentences
// are scored by the frequency of their content words, normalized by
// sentence length, and the best ones are emitted in document order. Texts
// with n sentences or fewer are returned unchanged.
func Summarize(text string, n int) (string, error) {
	if n < 1 {
		n = 3
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return "", fmt.Errorf("failed to segment text: %w", err)
	}

	sents := doc.Sentences()
	if len(sents) <= n {
		return text, nil
	}

	// Content word frequencies, with English and Portuguese stopwords
	// removed to match the sentiment lexicons.
	freq := make(map[string]int)
	cleaned := stopwords.CleanString(stopwords.CleanString(text, "en", false), "pt", false)
	for _, word := range strings.Fields(cleaned) {
		freq[word]++
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sents))
	for i, sent := range sents {
		tokens, err := tokenize(strings.ToLower(sent.Text))
		if err != nil {
			return "", err
		}
		sum := 0
		for _, tok := range tokens {
			sum += freq[tok]
		}
		ranked[i] = scored{index: i, score: float64(sum) / float64(len(tokens)+1)}
	}

	// Ties keep the earlier sentence.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	top := ranked[:n]
	sort.Slice(top, func(i, j int) bool { return top[i].index < top[j].index })

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = strings.TrimSpace(sents[s.index].Text)
	}
	return strings.Join(parts, " "), nil
}
