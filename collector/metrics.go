package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_weather_cycles_total",
		Help: "Total number of fetch cycles run.",
	})
	cycleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_weather_cycle_failures_total",
		Help: "Total number of fetch cycles aborted before producing results.",
	})
	citiesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_weather_cities_collected_total",
		Help: "Total number of city records produced across all cycles.",
	})
	cityFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_weather_city_fetch_errors_total",
		Help: "Total number of per-city fetch failures by call and error kind.",
	}, []string{"call", "kind"})
)
