package core

import "context"

// Generator produces the final answer text for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a fixed-length vector. The dimension must be
// stable across calls for a given configuration.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// WeatherClient resolves a location to current conditions.
type WeatherClient interface {
	Lookup(ctx context.Context, location string) (WeatherReport, error)
}

// Plugin is one statically registered capability.
type Plugin interface {
	Name() string
	Description() string
	Keywords() []string
	Execute(ctx context.Context, params map[string]string) PluginResult
}
