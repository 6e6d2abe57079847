package textkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeShortTextUnchanged(t *testing.T) {
	text := "One sentence. Another sentence."

	summary, err := Summarize(text, 3)
	require.NoError(t, err)
	assert.Equal(t, text, summary)
}

func TestSummarizePicksDenseSentence(t *testing.T) {
	text := "Cats cats cats cats. Dogs bark near rivers. Birds fly over mountains. Fish swim in lakes."

	summary, err := Summarize(text, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cats cats cats cats.", summary)
}

func TestSummarizeKeepsDocumentOrder(t *testing.T) {
	text := "Quantum computers use quantum bits. The sky looked plain. " +
		"Quantum algorithms exploit quantum effects. A bird sat nearby. Dinner came late."

	summary, err := Summarize(text, 2)
	require.NoError(t, err)

	first := strings.Index(summary, "Quantum computers")
	second := strings.Index(summary, "Quantum algorithms")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)

	// Only the selected sentences appear.
	assert.NotContains(t, summary, "sky")
	assert.NotContains(t, summary, "Dinner")
}
