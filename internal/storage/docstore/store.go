// Package docstore holds embedded document chunks in memory and serves
// similarity search over them. State lives for the process lifetime only.
package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/internal/vector"
	"github.com/sandevgo/scribe/pkg/log"
)

const storeName = "in_memory_vector_db"

type embeddedChunk struct {
	core.DocumentChunk
	embedding []float32
}

type Stats struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

type Store struct {
	embedder core.Embedder

	mu     sync.RWMutex
	chunks []embeddedChunk
}

func NewStore(embedder core.Embedder) *Store {
	return &Store{embedder: embedder}
}

// AddDocuments embeds each chunk and appends it to the store. A chunk whose
// embedding fails is skipped; the rest of the batch is still processed.
// Embedding happens before the lock is taken so slow network calls never
// block concurrent searches.
func (s *Store) AddDocuments(ctx context.Context, chunks []core.DocumentChunk) error {
	logger := log.FromCtx(ctx)

	embedded := make([]embeddedChunk, 0, len(chunks))
	failed := 0
	for _, chunk := range chunks {
		emb, err := s.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			logger.Warn().Err(err).Str("chunk", chunk.ID).Msg("failed to embed chunk, skipping")
			failed++
			continue
		}
		embedded = append(embedded, embeddedChunk{DocumentChunk: chunk, embedding: emb})
	}

	s.mu.Lock()
	s.chunks = append(s.chunks, embedded...)
	s.mu.Unlock()

	if failed > 0 {
		logger.Warn().Msgf("embedded %d/%d chunks (%d failed)", len(embedded), len(chunks), failed)
	} else {
		logger.Info().Msgf("added %d chunks to %s", len(embedded), storeName)
	}
	return nil
}

// Search embeds the query and returns at most topK chunks whose similarity
// is at least threshold, ordered by descending similarity. An empty store
// yields an empty result.
func (s *Store) Search(ctx context.Context, query string, topK int, threshold float64) ([]core.SearchResult, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	s.mu.RLock()
	candidates := make([]vector.Candidate, len(s.chunks))
	for i, c := range s.chunks {
		candidates[i] = vector.Candidate{ID: c.ID, Vector: c.embedding, Payload: c.DocumentChunk}
	}
	s.mu.RUnlock()

	ranked, err := vector.TopK(queryVec, candidates, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to rank chunks: %w", err)
	}

	results := make([]core.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		if r.Similarity < threshold {
			continue
		}
		chunk := r.Payload.(core.DocumentChunk)
		results = append(results, core.SearchResult{
			Content:    chunk.Content,
			Source:     chunk.Source,
			Similarity: r.Similarity,
			Metadata:   chunk.Metadata,
		})
	}

	log.FromCtx(ctx).Debug().Int("results", len(results)).Msg("document search completed")
	return results, nil
}

// Clear drops all stored chunks. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	s.chunks = nil
	s.mu.Unlock()
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Count: len(s.chunks), Name: storeName}
}
