package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribe/pkg/log"
)

type LLMConfig struct {
	BaseURL        string  `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	APIKey         string  `env:"OPENAI_API_KEY,required,notEmpty"`
	Model          string  `env:"OPENAI_MODEL" envDefault:"gpt-4"`
	EmbeddingModel string  `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`
	Temperature    float64 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens      int     `env:"OPENAI_MAX_TOKENS" envDefault:"1000"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}
