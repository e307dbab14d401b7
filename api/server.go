package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luisalfonso634/forecast-weather/cache"
	"github.com/luisalfonso634/forecast-weather/collector"
	"github.com/luisalfonso634/forecast-weather/datasource"
)

// fetchTimeout caps one full cycle: worst case every city exhausts its
// retry budget against a 10s request timeout.
const fetchTimeout = 3 * time.Minute

// Server represents the API server
type Server struct {
	config    *datasource.Config
	collector *collector.Collector
	store     *cache.CycleStore
	publisher *cache.Publisher // nil when Redis is not configured
	server    *http.Server

	mutex          sync.Mutex
	cancelInFlight context.CancelFunc
}

// NewServer creates a new API server. publisher may be nil.
func NewServer(config *datasource.Config, col *collector.Collector, store *cache.CycleStore, publisher *cache.Publisher, port int) *Server {
	mux := http.NewServeMux()

	server := &Server{
		config:    config,
		collector: col,
		store:     store,
		publisher: publisher,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	mux.HandleFunc("/api/weather", server.handleGetWeather)
	mux.HandleFunc("/api/countries", server.handleGetCountries)
	mux.HandleFunc("/api/refresh", server.handleRefresh)
	mux.HandleFunc("/api/health", server.handleHealthCheck)
	mux.Handle("/metrics", promhttp.Handler())

	return server
}

// Start begins the API server
func (s *Server) Start() error {
	fmt.Printf("Starting API server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server gracefully and cancels any in-flight cycle.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mutex.Lock()
	if s.cancelInFlight != nil {
		s.cancelInFlight()
	}
	s.mutex.Unlock()
	return s.server.Shutdown(ctx)
}

// selectedCountry resolves and validates the country query parameter,
// defaulting to the configured default country.
func (s *Server) selectedCountry(r *http.Request) (string, []string, error) {
	country := r.URL.Query().Get("country")
	if country == "" {
		country = s.config.DefaultCountry
	}
	cities, ok := s.config.CitiesFor(country)
	if !ok {
		return "", nil, fmt.Errorf("country %q is not configured", country)
	}
	return country, cities, nil
}

// fetchCycle runs a fresh cycle for a country, cancelling any cycle
// still in flight. Results of the superseded cycle are discarded by the
// store's cycle-id check, never merged.
func (s *Server) fetchCycle(country string, cities []string) (*collector.Result, error) {
	s.mutex.Lock()
	if s.cancelInFlight != nil {
		s.cancelInFlight()
	}
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	s.cancelInFlight = cancel
	id := s.store.Begin(country)
	s.mutex.Unlock()
	defer cancel()

	result, err := s.collector.Collect(ctx, country, cities)
	if err != nil {
		return nil, err
	}

	if !s.store.Complete(id, country, result) {
		return nil, fmt.Errorf("fetch cycle for %s superseded", country)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, result); err != nil {
			log.Printf("warning: redis publish failed: %v", err)
		}
	}

	return result, nil
}

// handleGetWeather returns the record set for a country, fetching a
// fresh cycle when none is cached.
func (s *Server) handleGetWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	country, cities, err := s.selectedCountry(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	if result, ok := s.store.Get(country); ok {
		writeJSON(w, http.StatusOK, result)
		return
	}

	result, err := s.fetchCycle(country, cities)
	if err != nil {
		writeError(w, upstreamStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetCountries returns the configured countries in config order.
func (s *Server) handleGetCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	names := s.config.CountryNames()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"countries": names,
		"default":   s.config.DefaultCountry,
		"count":     len(names),
	})
}

// handleRefresh invalidates the cached cycle and fetches a new one.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	country, cities, err := s.selectedCountry(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	s.store.Invalidate()
	result, err := s.fetchCycle(country, cities)
	if err != nil {
		writeError(w, upstreamStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// upstreamStatus maps a failed cycle to a response code. A rejected API
// key is the caller's configuration problem; everything else is the
// upstream's.
func upstreamStatus(err error) int {
	if datasource.KindOf(err) == datasource.ErrInvalidCredentials {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
