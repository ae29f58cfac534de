package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribe/pkg/log"
)

type MemoryConfig struct {
	MaxMessagesPerSession int `env:"MEMORY_MAX_MESSAGES" envDefault:"10"`
	MaxSessions           int `env:"MEMORY_MAX_SESSIONS" envDefault:"1000"`
}

func NewMemoryConfig(ctx context.Context) *MemoryConfig {
	c := &MemoryConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Memory config")
	}
	return c
}
