package datasource

import (
	"context"
	"testing"

	"github.com/luisalfonso634/forecast-weather/models"
)

// countingProvider fails a fixed number of times before succeeding.
type countingProvider struct {
	weatherCalls  int
	forecastCalls int
	failuresLeft  int
	err           error
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) GetWeather(ctx context.Context, city string) (models.CurrentConditions, error) {
	c.weatherCalls++
	if c.failuresLeft > 0 {
		c.failuresLeft--
		return models.CurrentConditions{}, c.err
	}
	return models.CurrentConditions{City: city}, nil
}

func (c *countingProvider) FetchForecast(ctx context.Context, city string, days int) (models.ForecastSeries, error) {
	c.forecastCalls++
	if c.failuresLeft > 0 {
		c.failuresLeft--
		return models.ForecastSeries{}, c.err
	}
	return models.ForecastSeries{City: city}, nil
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &countingProvider{
		failuresLeft: 2,
		err:          &APIError{Kind: ErrTimeout, Message: "timeout"},
	}

	data, err := NewRetryingProvider(inner, 3).GetWeather(context.Background(), "Lima, PE")
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if data.City != "Lima, PE" {
		t.Errorf("unexpected result: %+v", data)
	}
	if inner.weatherCalls != 3 {
		t.Errorf("expected 3 attempts, got %d", inner.weatherCalls)
	}
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"timeout", &APIError{Kind: ErrTimeout, Message: "timeout"}},
		{"connection", &APIError{Kind: ErrConnection, Message: "refused"}},
		{"unrecognized status", &APIError{Kind: ErrOther, StatusCode: 500, Message: "server error"}},
	}

	for _, tt := range tests {
		inner := &countingProvider{failuresLeft: 10, err: tt.err}
		_, err := NewRetryingProvider(inner, 3).FetchForecast(context.Background(), "Lima, PE", 5)
		if err == nil {
			t.Errorf("%s: expected failure after exhausting budget", tt.name)
		}
		if inner.forecastCalls != 3 {
			t.Errorf("%s: expected exactly 3 attempts, got %d", tt.name, inner.forecastCalls)
		}
	}
}

func TestRetry_ShortCircuitKinds(t *testing.T) {
	tests := []struct {
		name string
		kind ErrorKind
	}{
		{"invalid credentials", ErrInvalidCredentials},
		{"not found", ErrNotFound},
		{"rate limited", ErrRateLimited},
	}

	for _, tt := range tests {
		inner := &countingProvider{failuresLeft: 10, err: &APIError{Kind: tt.kind}}
		_, err := NewRetryingProvider(inner, 3).GetWeather(context.Background(), "Lima, PE")
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if inner.weatherCalls != 1 {
			t.Errorf("%s: expected a single attempt, got %d", tt.name, inner.weatherCalls)
		}
		if got := KindOf(err); got != tt.kind {
			t.Errorf("%s: kind lost through wrapper: got %s", tt.name, got)
		}
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	inner := &countingProvider{failuresLeft: 10, err: &APIError{Kind: ErrTimeout}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRetryingProvider(inner, 3).GetWeather(ctx, "Lima, PE")
	if err == nil {
		t.Fatal("expected error with cancelled context")
	}
	if inner.weatherCalls != 1 {
		t.Errorf("expected no re-attempts after cancellation, got %d calls", inner.weatherCalls)
	}
}
