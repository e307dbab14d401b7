package datasource

import (
	"context"

	"github.com/luisalfonso634/forecast-weather/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current conditions for a city query ("Name, CC")
	GetWeather(ctx context.Context, city string) (models.CurrentConditions, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the 3-hour-step forecast for a city for up to 5 days
	FetchForecast(ctx context.Context, city string, days int) (models.ForecastSeries, error)

	// Name returns the source's name
	Name() string
}

// Provider combines both interfaces; every wrapper in this package
// implements it so the chain composes freely.
type Provider interface {
	WeatherProvider
	ForecastSource
}
