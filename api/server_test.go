package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/luisalfonso634/forecast-weather/cache"
	"github.com/luisalfonso634/forecast-weather/collector"
	"github.com/luisalfonso634/forecast-weather/datasource"
	"github.com/luisalfonso634/forecast-weather/models"
)

// stubProvider counts calls and optionally fails everything.
type stubProvider struct {
	weatherCalls int64
	err          error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) GetWeather(ctx context.Context, city string) (models.CurrentConditions, error) {
	atomic.AddInt64(&s.weatherCalls, 1)
	if s.err != nil {
		return models.CurrentConditions{}, s.err
	}
	return models.CurrentConditions{City: city, Temperature: 22}, nil
}

func (s *stubProvider) FetchForecast(ctx context.Context, city string, days int) (models.ForecastSeries, error) {
	if s.err != nil {
		return models.ForecastSeries{}, s.err
	}
	return models.ForecastSeries{City: city}, nil
}

func testConfig() *datasource.Config {
	return &datasource.Config{
		DefaultCountry: "Chile",
		Countries: []datasource.CountryConfig{
			{Name: "Chile", Cities: []string{"Santiago, CL", "Valparaiso, CL"}},
			{Name: "Peru", Cities: []string{"Lima, PE"}},
		},
	}
}

func newTestServer(provider datasource.Provider) (*Server, *httptest.Server) {
	srv := NewServer(testConfig(), collector.New(provider, nil, 2), cache.NewCycleStore(), nil, 0)
	ts := httptest.NewServer(srv.server.Handler)
	return srv, ts
}

func decodeResult(t *testing.T, resp *http.Response) *collector.Result {
	t.Helper()
	defer resp.Body.Close()
	var result collector.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return &result
}

func TestGetWeather_DefaultCountry(t *testing.T) {
	provider := &stubProvider{}
	_, ts := newTestServer(provider)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weather")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	result := decodeResult(t, resp)
	if result.Country != "Chile" {
		t.Errorf("expected default country Chile, got %s", result.Country)
	}
	if len(result.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(result.Records))
	}
	if result.Records[0].City != "Santiago, CL" {
		t.Errorf("expected city order preserved, got %v", result.Records)
	}
}

func TestGetWeather_SecondRequestServedFromCache(t *testing.T) {
	provider := &stubProvider{}
	_, ts := newTestServer(provider)
	defer ts.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Get(ts.URL + "/api/weather?country=Peru")
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}

	if calls := atomic.LoadInt64(&provider.weatherCalls); calls != 1 {
		t.Errorf("expected the second request to hit the cache, got %d provider calls", calls)
	}
}

func TestGetWeather_UnknownCountry(t *testing.T) {
	_, ts := newTestServer(&stubProvider{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weather?country=Bolivia")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unconfigured country, got %d", resp.StatusCode)
	}
}

func TestGetWeather_InvalidCredentials(t *testing.T) {
	provider := &stubProvider{err: &datasource.APIError{Kind: datasource.ErrInvalidCredentials, StatusCode: 401, Message: "API key rejected"}}
	_, ts := newTestServer(provider)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weather")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for rejected API key, got %d", resp.StatusCode)
	}
}

func TestGetCountries(t *testing.T) {
	_, ts := newTestServer(&stubProvider{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/countries")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Countries []string `json:"countries"`
		Default   string   `json:"default"`
		Count     int      `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if payload.Count != 2 || payload.Default != "Chile" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if len(payload.Countries) != 2 || payload.Countries[0] != "Chile" || payload.Countries[1] != "Peru" {
		t.Errorf("expected config order [Chile Peru], got %v", payload.Countries)
	}
}

func TestRefresh_ForcesNewCycle(t *testing.T) {
	provider := &stubProvider{}
	_, ts := newTestServer(provider)
	defer ts.Close()

	if resp, err := http.Get(ts.URL + "/api/weather?country=Chile"); err != nil {
		t.Fatalf("initial fetch failed: %v", err)
	} else {
		resp.Body.Close()
	}
	before := atomic.LoadInt64(&provider.weatherCalls)

	resp, err := http.Post(ts.URL+"/api/refresh?country=Chile", "application/json", nil)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if after := atomic.LoadInt64(&provider.weatherCalls); after <= before {
		t.Errorf("expected refresh to refetch, calls stayed at %d", after)
	}
}

func TestRefresh_RequiresPost(t *testing.T) {
	_, ts := newTestServer(&stubProvider{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/refresh")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(&stubProvider{})
	defer ts.Close()

	for _, path := range []string{"/api/health", "/metrics"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s: request failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
