// Package collector runs fetch cycles: one current-conditions call and
// one forecast call per configured city, aggregated into an ordered
// record set plus a failed-cities report.
package collector

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/luisalfonso634/forecast-weather/datasource"
	"github.com/luisalfonso634/forecast-weather/forecast"
	"github.com/luisalfonso634/forecast-weather/models"
)

// forecastDays is the full window the API offers at 3-hour resolution.
const forecastDays = 5

// DefaultWorkers bounds the per-city fetch pool. Cities have no ordering
// dependency between their network calls; output order is restored by
// indexing on the city list.
const DefaultWorkers = 4

// Result is the outcome of one fetch cycle for one country.
type Result struct {
	Country   string                     `json:"pais"`
	FetchedAt time.Time                  `json:"obtenido_en"`
	Records   []models.CityWeatherRecord `json:"registros"`
	Failed    []models.FailedCity        `json:"fallidas"`
	Stats     Stats                      `json:"resumen"`
}

// Collector fetches weather data for city lists through a single provider chain.
type Collector struct {
	provider datasource.Provider
	horizons []int
	workers  int
}

// New creates a collector. horizons defaults to forecast.DefaultHorizons
// and workers to DefaultWorkers when zero values are passed.
func New(provider datasource.Provider, horizons []int, workers int) *Collector {
	if len(horizons) == 0 {
		horizons = forecast.DefaultHorizons
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Collector{
		provider: provider,
		horizons: horizons,
		workers:  workers,
	}
}

// cityOutcome is the per-city slot filled by exactly one worker, so the
// assembly phase needs no locking.
type cityOutcome struct {
	record *models.CityWeatherRecord
	failed *models.FailedCity
}

// Collect runs one fetch cycle over the cities in order. A city whose
// current-conditions fetch fails is excluded from the records and
// reported in Failed; a forecast-only failure degrades that city's
// record to defaults. InvalidCredentials aborts the whole cycle, as does
// context cancellation -- partial results of an aborted cycle are
// discarded wholesale.
func (c *Collector) Collect(ctx context.Context, country string, cities []string) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]cityOutcome, len(cities))
	jobs := make(chan int)

	var fatalOnce sync.Once
	var fatalErr error
	abort := func(err error) {
		fatalOnce.Do(func() {
			fatalErr = err
			cancel()
		})
	}

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = c.fetchCity(ctx, cities[i], abort)
			}
		}()
	}

	for i := range cities {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	cyclesTotal.Inc()

	if fatalErr != nil {
		cycleFailures.Inc()
		return nil, fmt.Errorf("fetch cycle for %s aborted: %w", country, fatalErr)
	}
	if err := ctx.Err(); err != nil {
		cycleFailures.Inc()
		return nil, err
	}

	result := &Result{
		Country:   country,
		FetchedAt: time.Now().UTC(),
		Records:   make([]models.CityWeatherRecord, 0, len(cities)),
		Failed:    []models.FailedCity{},
	}
	for _, slot := range slots {
		switch {
		case slot.record != nil:
			result.Records = append(result.Records, *slot.record)
		case slot.failed != nil:
			result.Failed = append(result.Failed, *slot.failed)
		}
	}
	result.Stats = Summarize(result.Records)

	citiesCollected.Add(float64(len(result.Records)))
	return result, nil
}

// fetchCity performs both network calls for one city and derives the
// event summary and horizon snapshots from the forecast.
func (c *Collector) fetchCity(ctx context.Context, city string, abort func(error)) cityOutcome {
	if ctx.Err() != nil {
		return cityOutcome{}
	}

	current, err := c.provider.GetWeather(ctx, city)
	if err != nil {
		kind := datasource.KindOf(err)
		cityFetchErrors.WithLabelValues("weather", kind.String()).Inc()
		if kind == datasource.ErrInvalidCredentials {
			abort(err)
			return cityOutcome{}
		}
		if ctx.Err() != nil {
			return cityOutcome{}
		}
		log.Printf("skipping %s: current conditions failed: %v", city, err)
		return cityOutcome{failed: &models.FailedCity{City: city, Error: err.Error()}}
	}

	record := models.CityWeatherRecord{
		City:     city,
		Current:  current,
		Horizons: map[int]models.HorizonSnapshot{},
	}

	series, err := c.provider.FetchForecast(ctx, city, forecastDays)
	if err != nil {
		kind := datasource.KindOf(err)
		cityFetchErrors.WithLabelValues("forecast", kind.String()).Inc()
		if kind == datasource.ErrInvalidCredentials {
			abort(err)
			return cityOutcome{}
		}
		if ctx.Err() != nil {
			return cityOutcome{}
		}
		// Forecast failure degrades the record, never drops the city.
		log.Printf("forecast unavailable for %s, keeping current conditions only: %v", city, err)
		return cityOutcome{record: &record}
	}

	record.Events = forecast.AnalyzeEvents(series.Snapshots)
	record.Horizons = forecast.SelectHorizons(series.Snapshots, c.horizons, time.Now().UTC())
	return cityOutcome{record: &record}
}
