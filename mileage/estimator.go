// Package mileage resolves trip distances and keeps the user's mileage log.
package mileage

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL       = "https://maps.googleapis.com"
	defaultCacheTTL      = 24 * time.Hour
	defaultSweepInterval = time.Hour
)

// Result is what callers of CalculateDistance see. Success is false only
// when an address is missing; every other failure degrades to a heuristic
// estimate so the UI always has a mileage figure to show. Estimated marks
// values that did not come from a real Distance Matrix measurement.
type Result struct {
	Distance  float64 `json:"distance"`
	Success   bool    `json:"success"`
	Estimated bool    `json:"estimated"`
	Error     string  `json:"error,omitempty"`
}

type cacheEntry struct {
	miles   float64
	expires time.Time
}

// EstimatorConfig carries the knobs for a Estimator. Zero values get the
// production defaults; tests override BaseURL, Rand and the intervals.
type EstimatorConfig struct {
	APIKey        string
	BaseURL       string
	CacheTTL      time.Duration
	SweepInterval time.Duration
	Client        *http.Client
	Rand          func() float64
}

// Estimator owns the distance cache and its sweep timer. Construct with
// NewEstimator, then Start to run the sweep; Stop tears it down.
type Estimator struct {
	apiKey        string
	baseURL       string
	cacheTTL      time.Duration
	sweepInterval time.Duration
	client        *http.Client
	rand          func() float64
	logger        *zap.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry

	stopOnce sync.Once
	stop     chan struct{}
}

func NewEstimator(cfg EstimatorConfig, logger *zap.Logger) *Estimator {

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}

	return &Estimator{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		cacheTTL:      cfg.CacheTTL,
		sweepInterval: cfg.SweepInterval,
		client:        cfg.Client,
		rand:          cfg.Rand,
		logger:        logger,
		cache:         make(map[string]cacheEntry),
		stop:          make(chan struct{}),
	}
}

// Start launches the periodic cache sweep.
func (e *Estimator) Start() {
	go func() {
		ticker := time.NewTicker(e.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				e.sweep()
			case <-e.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep goroutine. Safe to call more than once.
func (e *Estimator) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// CalculateDistance returns the mileage between two addresses. Lookup order:
// unexpired cache entry, live Distance Matrix call, heuristic estimate.
func (e *Estimator) CalculateDistance(ctx context.Context, origin, destination string) Result {

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return Result{Success: false, Error: "origin and destination are required"}
	}

	key := origin + "|" + destination
	if miles, ok := e.cached(key); ok {
		return Result{Distance: miles, Success: true}
	}

	if e.apiKey == "" {
		return Result{Distance: e.estimate(origin, destination), Success: true, Estimated: true}
	}

	miles, err := e.lookup(ctx, origin, destination)
	if err != nil {
		e.logger.Warn("distance lookup failed, using heuristic estimate",
			zap.Error(err),
			zap.String("origin", origin),
			zap.String("destination", destination))
		return Result{Distance: e.estimate(origin, destination), Success: true, Estimated: true}
	}

	e.put(key, miles)
	return Result{Distance: miles, Success: true}
}

func (e *Estimator) cached(key string) (float64, bool) {

	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.cache[key]
	if !ok {
		return 0, false
	}
	if time.Now().After(entry.expires) {
		delete(e.cache, key)
		return 0, false
	}

	return entry.miles, true
}

func (e *Estimator) put(key string, miles float64) {
	e.mu.Lock()
	e.cache[key] = cacheEntry{miles: miles, expires: time.Now().Add(e.cacheTTL)}
	e.mu.Unlock()
}

func (e *Estimator) sweep() {

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range e.cache {
		if now.After(entry.expires) {
			delete(e.cache, key)
			removed++
		}
	}

	if removed > 0 {
		e.logger.Debug("swept expired distance cache entries", zap.Int("removed", removed))
	}
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

func (e *Estimator) lookup(ctx context.Context, origin, destination string) (float64, error) {

	params := url.Values{}
	params.Set("units", "imperial")
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("key", e.apiKey)

	endpoint := e.baseURL + "/maps/api/distancematrix/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build distance matrix request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("distance matrix returned status %d", resp.StatusCode)
	}

	var body distanceMatrixResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode distance matrix response: %w", err)
	}

	if body.Status != "OK" {
		return 0, fmt.Errorf("distance matrix status %q", body.Status)
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance matrix returned no elements")
	}

	element := body.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("distance matrix element status %q", element.Status)
	}

	miles, err := parseDistanceText(element.Distance.Text)
	if err != nil {
		return 0, err
	}

	return miles, nil
}

// parseDistanceText extracts the leading numeric token out of a rendered
// distance like "12.3 mi" or "1,204 mi".
func parseDistanceText(text string) (float64, error) {

	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty distance text")
	}

	miles, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable distance text %q: %w", text, err)
	}

	return miles, nil
}
