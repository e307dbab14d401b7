package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/luisalfonso634/forecast-weather/api"
	"github.com/luisalfonso634/forecast-weather/cache"
	"github.com/luisalfonso634/forecast-weather/collector"
	"github.com/luisalfonso634/forecast-weather/datasource"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	apiKey := flag.String("api-key", "", "OpenWeatherMap API key (defaults to OPENWEATHER_API_KEY)")
	workers := flag.Int("workers", collector.DefaultWorkers, "Concurrent per-city fetches per cycle")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	flag.Parse()

	// Load configuration, falling back to the built-in country set
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No config file at %s, using built-in countries", *configFile)
			config = datasource.DefaultConfig()
		} else {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	// An explicit flag wins; the environment is only the default
	key := *apiKey
	if key == "" {
		key = os.Getenv("OPENWEATHER_API_KEY")
	}
	if key == "" {
		log.Fatal("No API key provided: set OPENWEATHER_API_KEY or pass -api-key")
	}

	// Build the provider chain: rate limiting paces every attempt the
	// retry wrapper makes
	var provider datasource.Provider = datasource.NewOpenWeatherMapProvider(key)
	if *enableRateLimiting {
		// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
		// Allow bursts of up to 5 requests
		provider = datasource.NewRateLimitedProvider(provider, 1.0, 5)
		log.Println("Applied rate limiting to OpenWeatherMap provider")
	}
	provider = datasource.NewRetryingProvider(provider, datasource.DefaultAttempts)

	col := collector.New(provider, nil, *workers)
	store := cache.NewCycleStore()

	// Optional Redis mirror of the latest cycle
	var publisher *cache.Publisher
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		publisher, err = cache.NewPublisher(ctx, redisURL, 30*time.Minute)
		cancel()
		if err != nil {
			log.Printf("Redis unavailable, skipping publish: %v", err)
			publisher = nil
		} else {
			log.Printf("Publishing cycle results to Redis at %s", redisURL)
			defer publisher.Close()
		}
	}

	server := api.NewServer(config, col, store, publisher, *port)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdownChan
	fmt.Printf("Shutting down due to %s signal\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("Shutdown complete")
}
