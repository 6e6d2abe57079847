package textkit

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "utf8.txt")
	require.NoError(t, os.WriteFile(path, []byte("héllo wörld"), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", got)
}

func TestReadFileLatin1(t *testing.T) {
	dir := t.TempDir()

	// "café" encoded as Latin-1, invalid as UTF-8.
	path := filepath.Join(dir, "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9}, 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog. It was amazing."

	stats, err := Analyze(text)
	require.NoError(t, err)

	assert.Equal(t, utf8.RuneCountInString(text), stats.Characters)
	assert.Equal(t, 2, stats.Sentences)
	assert.Greater(t, stats.Words, 10)
	assert.Equal(t, 11, stats.UniqueWords)
	assert.Greater(t, stats.AvgWordLength, 0.0)
	assert.InDelta(t, float64(stats.Words)/2, stats.AvgSentenceLength, 0.001)
	assert.Greater(t, stats.LexicalDiversity, 0.0)
	assert.LessOrEqual(t, stats.LexicalDiversity, 1.0)
}

func TestAnalyzeSingleWord(t *testing.T) {
	stats, err := Analyze("hello")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Words)
	assert.Equal(t, 1, stats.Sentences)
	assert.Equal(t, 1, stats.UniqueWords)
	assert.InDelta(t, 5.0, stats.AvgWordLength, 0.001)
}

func TestFrequentWords(t *testing.T) {
	text := "The cat and the dog. The cat runs."

	words, err := FrequentWords(text, 2, false, "en")
	require.NoError(t, err)

	require.Len(t, words, 2)
	assert.Equal(t, WordCount{Word: "cat", Count: 2}, words[0])
	// Ties break alphabetically.
	assert.Equal(t, WordCount{Word: "dog", Count: 1}, words[1])
}

func TestFrequentWordsIncludeStopwords(t *testing.T) {
	text := "The cat and the dog. The cat runs."

	words, err := FrequentWords(text, 1, true, "en")
	require.NoError(t, err)

	require.Len(t, words, 1)
	assert.Equal(t, WordCount{Word: "the", Count: 3}, words[0])
}

func TestFrequentWordsNoLimit(t *testing.T) {
	words, err := FrequentWords("alpha beta alpha", 0, false, "en")
	require.NoError(t, err)

	require.Len(t, words, 2)
	assert.Equal(t, WordCount{Word: "alpha", Count: 2}, words[0])
}
