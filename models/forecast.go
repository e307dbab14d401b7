package models

import (
	"time"
)

// ForecastSnapshot is a single 3-hour forecast observation.
type ForecastSnapshot struct {
	Timestamp   time.Time `json:"timestamp"`   // time this forecast is for (UTC)
	Temperature float64   `json:"temperatura"` // in Celsius
	Group       string    `json:"grupo"`       // condition category, e.g. "Rain", "Clouds"
	Description string    `json:"descripcion"` // free-text description from the API
	Humidity    int       `json:"humedad"`     // percentage
	WindSpeed   float64   `json:"viento_kmh"`  // in km/h
	PoP         float64   `json:"pop"`         // probability of precipitation, 0.0-1.0
	Rain3H      float64   `json:"lluvia_3h"`   // rain volume over 3h in mm, 0 if absent
	Snow3H      float64   `json:"nieve_3h"`    // snow volume over 3h in mm, 0 if absent
}

// ForecastSeries holds the chronological 5-day forecast for one city,
// typically 40 snapshots at 3-hour resolution. Series are never merged
// across cities.
type ForecastSeries struct {
	City      string             `json:"ciudad"`
	Snapshots []ForecastSnapshot `json:"pronosticos"`
	Updated   time.Time          `json:"actualizado"`
}
