package ingest

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

type Chunk struct {
	Text   string
	Tokens int
	Index  int
}

type ChunkerConfig struct {
	MaxTokens     int
	OverlapTokens int
}

// ChunkText packs sentences into chunks of at most MaxTokens tokens,
// carrying OverlapTokens of trailing context into the next chunk so
// retrieval doesn't lose meaning at chunk boundaries.
func ChunkText(text string, cfg ChunkerConfig) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []Chunk
	var current strings.Builder
	currentTokens := 0
	index := 0

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:   strings.TrimSpace(current.String()),
			Tokens: currentTokens,
			Index:  index,
		})
		index++
		current.Reset()
		currentTokens = 0
	}

	for i, sentence := range sentences {
		tokens := countTokens(sentence)

		// A single oversized sentence gets sliced on raw token boundaries.
		if tokens > cfg.MaxTokens {
			flush()
			for _, piece := range sliceByTokens(sentence, cfg.MaxTokens) {
				chunks = append(chunks, Chunk{Text: piece.Text, Tokens: piece.Tokens, Index: index})
				index++
			}
			continue
		}

		if currentTokens+tokens > cfg.MaxTokens && current.Len() > 0 {
			flush()

			overlap := overlapTail(sentences, i, cfg.OverlapTokens)
			current.WriteString(overlap)
			currentTokens = countTokens(overlap)
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
		currentTokens += tokens
	}

	flush()
	return chunks
}

// sliceByTokens splits text into pieces of at most maxTokens by encoding
// and cutting the token stream directly.
func sliceByTokens(text string, maxTokens int) []Chunk {
	enc := tokenizer()
	tokens := enc.Encode(text, nil, nil)

	var chunks []Chunk
	for start := 0; start < len(tokens); start += maxTokens {
		end := start + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		piece := tokens[start:end]
		chunks = append(chunks, Chunk{
			Text:   strings.TrimSpace(enc.Decode(piece)),
			Tokens: len(piece),
		})
	}
	return chunks
}

// overlapTail collects whole sentences before sentences[currentIdx] until
// at least targetTokens of context is gathered.
func overlapTail(sentences []string, currentIdx, targetTokens int) string {
	if currentIdx == 0 || targetTokens <= 0 {
		return ""
	}

	var tail []string
	tokens := 0
	for i := currentIdx - 1; i >= 0 && tokens < targetTokens; i-- {
		tail = append([]string{sentences[i]}, tail...)
		tokens += countTokens(sentences[i])
	}
	return strings.Join(tail, " ")
}

// splitSentences breaks text into sentences, treating blank lines as hard
// boundaries and single newlines as soft wraps.
func splitSentences(text string) []string {
	var sentences []string

	for _, para := range splitParagraphs(text) {
		var current strings.Builder
		runes := []rune(para)

		for i, r := range runes {
			current.WriteRune(r)

			if r == '.' || r == '!' || r == '?' {
				if i+1 >= len(runes) || runes[i+1] == ' ' {
					if s := strings.TrimSpace(current.String()); s != "" {
						sentences = append(sentences, s)
					}
					current.Reset()
				}
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 && text != "" {
		return []string{text}
	}
	return sentences
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func tokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

func countTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(tokenizer().Encode(text, nil, nil))
}
