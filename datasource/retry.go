package datasource

import (
	"context"
	"fmt"

	"github.com/luisalfonso634/forecast-weather/models"
)

// DefaultAttempts is the total request budget per call: the first try
// plus two immediate re-attempts, with no delay between them.
const DefaultAttempts = 3

// RetryingProvider wraps a Provider and re-issues failed calls.
// Timeouts, connection failures and unrecognized non-200 statuses are
// retried immediately; InvalidCredentials, NotFound and RateLimited
// short-circuit on the first occurrence.
type RetryingProvider struct {
	next     Provider
	attempts int
	name     string
}

// NewRetryingProvider creates a retrying wrapper around a provider.
// attempts is the total number of tries per call; values below 1 fall
// back to DefaultAttempts.
func NewRetryingProvider(next Provider, attempts int) *RetryingProvider {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	return &RetryingProvider{
		next:     next,
		attempts: attempts,
		name:     fmt.Sprintf("%s [Retrying]", next.Name()),
	}
}

// Name returns the provider name
func (r *RetryingProvider) Name() string {
	return r.name
}

// GetWeather fetches current conditions, retrying within the attempt budget
func (r *RetryingProvider) GetWeather(ctx context.Context, city string) (models.CurrentConditions, error) {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		data, err := r.next.GetWeather(ctx, city)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !Retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return models.CurrentConditions{}, lastErr
}

// FetchForecast fetches the forecast, retrying within the attempt budget
func (r *RetryingProvider) FetchForecast(ctx context.Context, city string, days int) (models.ForecastSeries, error) {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		data, err := r.next.FetchForecast(ctx, city, days)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !Retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return models.ForecastSeries{}, lastErr
}

// Ensure RetryingProvider implements the combined interface
var _ Provider = (*RetryingProvider)(nil)
