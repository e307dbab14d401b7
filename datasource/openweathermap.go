package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/luisalfonso634/forecast-weather/models"
)

// msToKMH converts the API's m/s wind speeds to km/h.
const msToKMH = 3.6

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// get executes one API request and maps failures to typed APIErrors.
func (p *OpenWeatherMapProvider) get(ctx context.Context, endpoint, city string) ([]byte, error) {
	params := url.Values{}
	params.Add("q", city)
	params.Add("appid", p.apiKey)
	params.Add("units", "metric") // Use metric units
	params.Add("lang", "es")      // Spanish descriptions feed the event keyword sets

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, city, body)
	}

	return body, nil
}

// classifyStatus maps API status codes to error kinds. Anything not
// recognized stays ErrOther, which the retry wrapper treats as retryable.
func classifyStatus(code int, city string, body []byte) *APIError {
	switch code {
	case http.StatusUnauthorized:
		return &APIError{Kind: ErrInvalidCredentials, StatusCode: code, Message: "API key rejected"}
	case http.StatusNotFound:
		return &APIError{Kind: ErrNotFound, StatusCode: code, Message: fmt.Sprintf("city %q not found", city)}
	case http.StatusTooManyRequests:
		return &APIError{Kind: ErrRateLimited, StatusCode: code, Message: "request limit exceeded"}
	default:
		return &APIError{Kind: ErrOther, StatusCode: code, Message: string(body)}
	}
}

// classifyTransportError distinguishes timeouts from other connection
// failures. Context cancellation passes through untouched so a superseded
// fetch cycle is not mistaken for an API failure.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Kind: ErrTimeout, Message: err.Error()}
	}
	return &APIError{Kind: ErrConnection, Message: err.Error()}
}

// GetWeather fetches current weather for a city
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, city string) (models.CurrentConditions, error) {
	body, err := p.get(ctx, fmt.Sprintf("%s/weather", p.baseURL), city)
	if err != nil {
		return models.CurrentConditions{}, err
	}

	// Parse response
	var response struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Visibility int    `json:"visibility"`
		Name       string `json:"name"`
		Sys        struct {
			Country string `json:"country"`
		} `json:"sys"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.CurrentConditions{}, fmt.Errorf("failed to parse response: %w", err)
	}

	// Extract weather description and icon if available
	description := ""
	icon := ""
	if len(response.Weather) > 0 {
		description = response.Weather[0].Description
		icon = response.Weather[0].Icon
	}

	return models.CurrentConditions{
		City:         response.Name,
		Country:      response.Sys.Country,
		Latitude:     response.Coord.Lat,
		Longitude:    response.Coord.Lon,
		Description:  description,
		Icon:         icon,
		Temperature:  response.Main.Temp,
		FeelsLike:    response.Main.FeelsLike,
		TempMin:      response.Main.TempMin,
		TempMax:      response.Main.TempMax,
		Humidity:     response.Main.Humidity,
		Pressure:     response.Main.Pressure,
		WindSpeed:    response.Wind.Speed * msToKMH,
		WindDeg:      response.Wind.Deg,
		VisibilityKM: float64(response.Visibility) / 1000,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// FetchForecast fetches forecast for a city for the specified number of days
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city string, days int) (models.ForecastSeries, error) {
	// OpenWeatherMap's 5-day forecast endpoint returns data in 3-hour steps
	body, err := p.get(ctx, fmt.Sprintf("%s/forecast", p.baseURL), city)
	if err != nil {
		return models.ForecastSeries{}, err
	}

	// Parse response
	var response struct {
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp     float64 `json:"temp"`
				Humidity int     `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
			Pop  float64 `json:"pop"`
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
			Snow struct {
				ThreeH float64 `json:"3h"`
			} `json:"snow"`
		} `json:"list"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.ForecastSeries{}, fmt.Errorf("failed to parse response: %w", err)
	}

	series := models.ForecastSeries{
		City:      fmt.Sprintf("%s,%s", response.City.Name, response.City.Country),
		Snapshots: []models.ForecastSnapshot{},
		Updated:   time.Now().UTC(),
	}

	// Number of entries to include (8 entries per day, as they come in 3-hour intervals)
	maxEntries := days * 8
	if maxEntries > len(response.List) {
		maxEntries = len(response.List)
	}

	for i := 0; i < maxEntries; i++ {
		item := response.List[i]

		group := ""
		description := ""
		if len(item.Weather) > 0 {
			group = item.Weather[0].Main
			description = item.Weather[0].Description
		}

		series.Snapshots = append(series.Snapshots, models.ForecastSnapshot{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			Group:       group,
			Description: description,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed * msToKMH,
			PoP:         item.Pop,
			Rain3H:      item.Rain.ThreeH,
			Snow3H:      item.Snow.ThreeH,
		})
	}

	return series, nil
}

// Ensure OpenWeatherMapProvider implements the combined interface
var _ Provider = (*OpenWeatherMapProvider)(nil)
