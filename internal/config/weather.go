package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribe/pkg/log"
)

type WeatherConfig struct {
	BaseURL  string        `env:"WEATHER_BASE_URL" envDefault:"http://api.weatherapi.com/v1"`
	APIKey   string        `env:"WEATHER_API_KEY"`
	CacheTTL time.Duration `env:"WEATHER_CACHE_TTL" envDefault:"5m"`
}

func NewWeatherConfig(ctx context.Context) *WeatherConfig {
	c := &WeatherConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Weather config")
	}
	return c
}
