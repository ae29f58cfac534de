package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribe/pkg/log"
)

type RAGConfig struct {
	TopK                int     `env:"RAG_TOP_K" envDefault:"3"`
	SimilarityThreshold float64 `env:"RAG_SIMILARITY_THRESHOLD" envDefault:"0.7"`
	ChunkMaxTokens      int     `env:"RAG_CHUNK_MAX_TOKENS" envDefault:"400"`
	ChunkOverlapTokens  int     `env:"RAG_CHUNK_OVERLAP_TOKENS" envDefault:"50"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	c := &RAGConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return c
}
