package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribe/pkg/log"
)

type PluginsConfig struct {
	WeatherEnabled bool `env:"PLUGIN_WEATHER_ENABLED" envDefault:"true"`
	MathEnabled    bool `env:"PLUGIN_MATH_ENABLED" envDefault:"true"`
}

func NewPluginsConfig(ctx context.Context) *PluginsConfig {
	c := &PluginsConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Plugins config")
	}
	return c
}
