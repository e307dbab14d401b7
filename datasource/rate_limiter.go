package datasource

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/luisalfonso634/forecast-weather/models"
)

// RateLimitedProvider wraps a Provider with client-side rate limiting.
// The current-weather and forecast endpoints share one limiter because
// the API counts them against the same quota.
type RateLimitedProvider struct {
	next    Provider
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedProvider creates a new rate limited provider
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedProvider(next Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", next.Name()),
	}
}

// GetWeather fetches current conditions, respecting rate limits
func (r *RateLimitedProvider) GetWeather(ctx context.Context, city string) (models.CurrentConditions, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return models.CurrentConditions{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying provider
	return r.next.GetWeather(ctx, city)
}

// FetchForecast fetches forecast data, respecting rate limits
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, city string, days int) (models.ForecastSeries, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ForecastSeries{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying provider
	return r.next.FetchForecast(ctx, city, days)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

// Verify that the rate limited wrapper implements the required interfaces
var _ Provider = (*RateLimitedProvider)(nil)
