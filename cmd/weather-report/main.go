// Command weather-report runs a single fetch cycle for one country and
// prints the city table, detected events and the summary row to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/luisalfonso634/forecast-weather/collector"
	"github.com/luisalfonso634/forecast-weather/datasource"
	"github.com/luisalfonso634/forecast-weather/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	country := flag.String("country", "", "Country to report on (defaults to the configured default)")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	apiKey := flag.String("api-key", "", "OpenWeatherMap API key (defaults to OPENWEATHER_API_KEY)")
	flag.Parse()

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		if os.IsNotExist(err) {
			config = datasource.DefaultConfig()
		} else {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	key := *apiKey
	if key == "" {
		key = os.Getenv("OPENWEATHER_API_KEY")
	}
	if key == "" {
		log.Fatal("No API key provided: set OPENWEATHER_API_KEY or pass -api-key")
	}

	if *country == "" {
		*country = config.DefaultCountry
	}
	cities, ok := config.CitiesFor(*country)
	if !ok {
		log.Fatalf("Country %q is not configured (available: %s)",
			*country, strings.Join(config.CountryNames(), ", "))
	}

	var provider datasource.Provider = datasource.NewOpenWeatherMapProvider(key)
	provider = datasource.NewRateLimitedProvider(provider, 1.0, 5)
	provider = datasource.NewRetryingProvider(provider, datasource.DefaultAttempts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	result, err := collector.New(provider, nil, collector.DefaultWorkers).Collect(ctx, *country, cities)
	if err != nil {
		log.Fatalf("Fetch cycle failed: %v", err)
	}

	printReport(result)
}

func printReport(result *collector.Result) {
	fmt.Printf("Clima en %s — %s\n\n", result.Country, result.FetchedAt.Format("2006-01-02 15:04 MST"))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Ciudad\tTemp\tHumedad\tViento\tDescripción\tEventos")
	for _, rec := range result.Records {
		fmt.Fprintf(w, "%s\t%.1f°C\t%d%%\t%.1f km/h\t%s\t%s\n",
			rec.Current.City, rec.Current.Temperature, rec.Current.Humidity,
			rec.Current.WindSpeed, rec.Current.Description, eventFlags(rec.Events))
	}
	w.Flush()

	s := result.Stats
	fmt.Printf("\nResumen: %d ciudades | temp promedio %.1f°C (min %.1f°C, max %.1f°C) | humedad %.1f%% | viento %.1f km/h\n",
		s.Cities, s.AvgTemperature, s.MinTemperature, s.MaxTemperature, s.AvgHumidity, s.AvgWindSpeed)

	if len(result.Failed) > 0 {
		fmt.Printf("\n%d ciudades no pudieron ser procesadas:\n", len(result.Failed))
		for _, f := range result.Failed {
			fmt.Printf("  %s: %s\n", f.City, f.Error)
		}
	}
}

// eventFlags renders the event summary as a compact list, with the max
// rain probability and intensity when rain was detected.
func eventFlags(ev models.EventSummary) string {
	var flags []string
	if ev.Rain {
		flags = append(flags, fmt.Sprintf("lluvia (%.0f%%, %.1fmm)", ev.RainMaxProbability*100, ev.RainMaxIntensity))
	}
	if ev.Storm {
		flags = append(flags, "tormenta")
	}
	if ev.Hail {
		flags = append(flags, "granizo")
	}
	if ev.Snow {
		flags = append(flags, fmt.Sprintf("nieve (%.0f%%)", ev.SnowMaxProbability*100))
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ", ")
}
