package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribe/pkg/log"
)

type AppConfig struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DocsPath string `env:"DOCS_PATH" envDefault:"docs"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
