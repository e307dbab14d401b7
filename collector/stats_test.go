package collector

import (
	"math"
	"testing"

	"github.com/luisalfonso634/forecast-weather/models"
)

func record(temp float64, humidity int, wind float64) models.CityWeatherRecord {
	return models.CityWeatherRecord{
		Current: models.CurrentConditions{Temperature: temp, Humidity: humidity, WindSpeed: wind},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); got != (Stats{}) {
		t.Errorf("expected zero stats for empty records, got %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	records := []models.CityWeatherRecord{
		record(10, 40, 5),
		record(20, 60, 15),
		record(30, 80, 10),
	}

	stats := Summarize(records)
	if stats.Cities != 3 {
		t.Errorf("expected 3 cities, got %d", stats.Cities)
	}
	if !almostEqual(stats.AvgTemperature, 20) {
		t.Errorf("expected avg temp 20, got %v", stats.AvgTemperature)
	}
	if stats.MinTemperature != 10 || stats.MaxTemperature != 30 {
		t.Errorf("expected min 10 / max 30, got %v / %v", stats.MinTemperature, stats.MaxTemperature)
	}
	if !almostEqual(stats.AvgHumidity, 60) {
		t.Errorf("expected avg humidity 60, got %v", stats.AvgHumidity)
	}
	if !almostEqual(stats.AvgWindSpeed, 10) {
		t.Errorf("expected avg wind 10, got %v", stats.AvgWindSpeed)
	}
}

func TestSummarize_SingleRecord(t *testing.T) {
	stats := Summarize([]models.CityWeatherRecord{record(-5, 30, 2)})
	if stats.MinTemperature != -5 || stats.MaxTemperature != -5 || !almostEqual(stats.AvgTemperature, -5) {
		t.Errorf("expected all temperatures -5, got %+v", stats)
	}
}
