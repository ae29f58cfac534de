package plugins

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/pkg/log"
)

const WeatherPluginName = "weather"

type WeatherPlugin struct {
	client core.WeatherClient
}

func NewWeatherPlugin(client core.WeatherClient) *WeatherPlugin {
	return &WeatherPlugin{client: client}
}

func (p *WeatherPlugin) Name() string { return WeatherPluginName }

func (p *WeatherPlugin) Description() string {
	return "Get current weather information for a location"
}

func (p *WeatherPlugin) Keywords() []string {
	return []string{"weather", "temperature", "forecast", "climate", "hot", "cold", "rain", "sunny"}
}

func (p *WeatherPlugin) ExtractParams(message string) map[string]string {
	if loc := ExtractLocation(message); loc != "" {
		return map[string]string{"location": loc}
	}
	return nil
}

func (p *WeatherPlugin) Execute(ctx context.Context, params map[string]string) core.PluginResult {
	location := params["location"]
	if location == "" {
		return core.PluginResult{Success: false, Error: "no location provided"}
	}

	report, err := p.client.Lookup(ctx, location)
	if err != nil {
		if errors.Is(err, core.ErrLocationNotFound) {
			return core.PluginResult{
				Success: false,
				Error:   fmt.Sprintf("Location not found: %s", location),
			}
		}
		log.FromCtx(ctx).Error().Err(err).Str("location", location).Msg("weather lookup failed")
		return core.PluginResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to get weather data: %v", err),
		}
	}

	return core.PluginResult{
		Success: true,
		Data: map[string]any{
			"temperature": fmt.Sprintf("%d°C", int(math.Round(report.TemperatureC))),
			"condition":   report.Condition,
			"humidity":    fmt.Sprintf("%d%%", report.Humidity),
			"wind":        fmt.Sprintf("%g km/h", report.WindKph),
			"location":    report.Location,
		},
	}
}
