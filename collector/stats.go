package collector

import (
	"github.com/luisalfonso634/forecast-weather/models"
)

// Stats is the summary row shown above the city table.
type Stats struct {
	Cities         int     `json:"ciudades"`
	AvgTemperature float64 `json:"temperatura_promedio"`
	MinTemperature float64 `json:"temperatura_minima"`
	MaxTemperature float64 `json:"temperatura_maxima"`
	AvgHumidity    float64 `json:"humedad_promedio"`
	AvgWindSpeed   float64 `json:"viento_promedio_kmh"`
}

// Summarize computes aggregate statistics over the collected records.
// An empty record set yields the zero Stats.
func Summarize(records []models.CityWeatherRecord) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	stats := Stats{
		Cities:         len(records),
		MinTemperature: records[0].Current.Temperature,
		MaxTemperature: records[0].Current.Temperature,
	}

	var sumTemp, sumHumidity, sumWind float64
	for _, rec := range records {
		temp := rec.Current.Temperature
		sumTemp += temp
		sumHumidity += float64(rec.Current.Humidity)
		sumWind += rec.Current.WindSpeed
		if temp < stats.MinTemperature {
			stats.MinTemperature = temp
		}
		if temp > stats.MaxTemperature {
			stats.MaxTemperature = temp
		}
	}

	n := float64(len(records))
	stats.AvgTemperature = sumTemp / n
	stats.AvgHumidity = sumHumidity / n
	stats.AvgWindSpeed = sumWind / n
	return stats
}
