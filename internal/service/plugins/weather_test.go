package plugins

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/scribe/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherPlugin_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("success formats report", func(t *testing.T) {
		p := NewWeatherPlugin(&stubWeatherClient{
			report: core.WeatherReport{
				TemperatureC: 21.6,
				Condition:    "Partly cloudy",
				Humidity:     64,
				WindKph:      12.5,
				Location:     "Paris",
			},
		})

		result := p.Execute(ctx, map[string]string{"location": "paris"})

		require.True(t, result.Success)
		assert.Equal(t, "22°C", result.Data["temperature"])
		assert.Equal(t, "Partly cloudy", result.Data["condition"])
		assert.Equal(t, "64%", result.Data["humidity"])
		assert.Equal(t, "12.5 km/h", result.Data["wind"])
		assert.Equal(t, "Paris", result.Data["location"])
	})

	t.Run("unknown location", func(t *testing.T) {
		p := NewWeatherPlugin(&stubWeatherClient{err: core.ErrLocationNotFound})

		result := p.Execute(ctx, map[string]string{"location": "Atlantis"})

		require.False(t, result.Success)
		assert.Contains(t, result.Error, "Location not found: Atlantis")
	})

	t.Run("missing location param", func(t *testing.T) {
		p := NewWeatherPlugin(&stubWeatherClient{})

		result := p.Execute(ctx, nil)

		require.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("transport failure", func(t *testing.T) {
		p := NewWeatherPlugin(&stubWeatherClient{err: errors.New("connection refused")})

		result := p.Execute(ctx, map[string]string{"location": "Paris"})

		require.False(t, result.Success)
		assert.Contains(t, result.Error, "connection refused")
	})
}
