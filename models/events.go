package models

import (
	"time"
)

// SkyCategory is the display category assigned to a forecast snapshot,
// chosen by a fixed priority chain (storm > rain > snow > hail > clouds > clear).
type SkyCategory string

const (
	CategoryStorm  SkyCategory = "Tormenta"
	CategoryRain   SkyCategory = "Lluvia"
	CategorySnow   SkyCategory = "Nieve"
	CategoryHail   SkyCategory = "Granizo"
	CategoryClouds SkyCategory = "Nublado"
	CategoryClear  SkyCategory = "Despejado"
)

// EventSummary aggregates weather hazards detected anywhere in a city's
// 5-day forecast window. A flag is true iff at least one contributing
// timestamp or intensity entry exists, except hail, which is flag-only
// because the API exposes no hail volume or probability.
type EventSummary struct {
	Rain  bool `json:"lluvia"`
	Storm bool `json:"tormenta"`
	Hail  bool `json:"granizo"`
	Snow  bool `json:"nieve"`

	// Maximum probability of precipitation seen on matching snapshots,
	// 0.0-1.0, 0 if the event was never detected.
	RainMaxProbability float64 `json:"probabilidad_lluvia_max"`
	SnowMaxProbability float64 `json:"probabilidad_nieve_max"`

	// Maximum 3h rain volume in mm seen on rain snapshots.
	RainMaxIntensity float64 `json:"intensidad_lluvia_max"`

	// Occurrence timestamps in series order.
	RainTimes  []time.Time `json:"horas_lluvia,omitempty"`
	StormTimes []time.Time `json:"horas_tormenta,omitempty"`
	SnowTimes  []time.Time `json:"horas_nieve,omitempty"`
}

// HorizonSnapshot is the forecast snapshot nearest to a fixed future
// offset, re-derived from "now" on each query.
type HorizonSnapshot struct {
	OffsetHours int              `json:"horizonte_horas"`
	Snapshot    ForecastSnapshot `json:"pronostico"`
	Category    SkyCategory      `json:"categoria"`
}

// CityWeatherRecord combines current conditions with the derived event
// summary and horizon snapshots for one city. Records are rebuilt on
// every fetch cycle and replace any prior record for the same city.
type CityWeatherRecord struct {
	City     string                  `json:"ciudad"`
	Current  CurrentConditions       `json:"actual"`
	Events   EventSummary            `json:"eventos"`
	Horizons map[int]HorizonSnapshot `json:"horizontes,omitempty"`
}

// FailedCity reports a city excluded from a cycle because its
// current-conditions fetch failed.
type FailedCity struct {
	City  string `json:"ciudad"`
	Error string `json:"error"`
}
