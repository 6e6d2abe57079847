// Package textkit analyzes plain text: statistics, frequent words, entity
// extraction, keyword sentiment and extractive summaries.
package textkit

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	prose "github.com/jdkato/prose/v2"
)

// ReadFile loads a text file as UTF-8. Files that are not valid UTF-8 are
// reinterpreted as Latin-1.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	// Latin-1 bytes map one to one onto code points.
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// Stats holds basic statistics of a text.
type Stats struct {
	Characters        int
	Words             int
	Sentences         int
	UniqueWords       int
	AvgWordLength     float64
	AvgSentenceLength float64
	LexicalDiversity  float64
}

// Analyze computes basic statistics. Word counts follow the tokenizer, so
// punctuation tokens count as words; unique words only consider alphabetic
// tokens.
func Analyze(text string) (*Stats, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize text: %w", err)
	}

	tokens := doc.Tokens()
	sentences := doc.Sentences()

	stats := &Stats{
		Characters: utf8.RuneCountInString(text),
		Words:      len(tokens),
		Sentences:  len(sentences),
	}

	unique := make(map[string]bool)
	totalLength := 0
	for _, tok := range tokens {
		totalLength += utf8.RuneCountInString(tok.Text)
		if isAlpha(tok.Text) {
			unique[strings.ToLower(tok.Text)] = true
		}
	}
	stats.UniqueWords = len(unique)

	if stats.Words > 0 {
		stats.AvgWordLength = float64(totalLength) / float64(stats.Words)
		stats.LexicalDiversity = float64(stats.UniqueWords) / float64(stats.Words)
	}
	if stats.Sentences > 0 {
		stats.AvgSentenceLength = float64(stats.Words) / float64(stats.Sentences)
	}

	return stats, nil
}

// tokenize returns the token texts of text.
func tokenize(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize text: %w", err)
	}

	tokens := doc.Tokens()
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out, nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
