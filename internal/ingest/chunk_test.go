package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple sentences",
			input:    "First one. Second one! Third one?",
			expected: []string{"First one.", "Second one!", "Third one?"},
		},
		{
			name:     "soft wraps joined",
			input:    "A sentence\nwrapped over lines.",
			expected: []string{"A sentence wrapped over lines."},
		},
		{
			name:     "paragraphs are boundaries",
			input:    "Para one\n\nPara two",
			expected: []string{"Para one", "Para two"},
		},
		{
			name:     "decimal points survive",
			input:    "Version 1.5 is out. Use it.",
			expected: []string{"Version 1.5 is out.", "Use it."},
		},
		{
			name:     "no terminator",
			input:    "just some words",
			expected: []string{"just some words"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitSentences(tt.input))
		})
	}
}

func TestChunkText_Empty(t *testing.T) {
	assert.Nil(t, ChunkText("", ChunkerConfig{MaxTokens: 100}))
	assert.Nil(t, ChunkText("   \n  ", ChunkerConfig{MaxTokens: 100}))
}

func TestChunkText_SingleChunk(t *testing.T) {
	chunks := ChunkText("One short sentence. Another short one.", ChunkerConfig{MaxTokens: 100, OverlapTokens: 10})

	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "One short sentence. Another short one.", chunks[0].Text)
	assert.Greater(t, chunks[0].Tokens, 0)
}

func TestChunkText_RespectsMaxTokens(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This is a filler sentence with a handful of tokens in it. ")
	}

	cfg := ChunkerConfig{MaxTokens: 50, OverlapTokens: 10}
	chunks := ChunkText(sb.String(), cfg)

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, chunk.Tokens, cfg.MaxTokens+cfg.OverlapTokens, "chunk %d too large", i)
		assert.Equal(t, i, chunk.Index)
	}
}

func TestChunkText_OversizedSentenceIsSliced(t *testing.T) {
	longSentence := strings.Repeat("token ", 300) + "end."

	chunks := ChunkText(longSentence, ChunkerConfig{MaxTokens: 50, OverlapTokens: 5})

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, chunk.Tokens, 50)
	}
}
