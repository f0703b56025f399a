package mileage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestEstimator(cfg EstimatorConfig) *Estimator {
	if cfg.Rand == nil {
		cfg.Rand = func() float64 { return 0.5 }
	}
	return NewEstimator(cfg, zap.NewNop())
}

func TestCalculateDistance_MissingAddress(t *testing.T) {
	e := newTestEstimator(EstimatorConfig{})

	for _, pair := range [][2]string{{"", "X"}, {"X", ""}, {"  ", "X"}} {
		res := e.CalculateDistance(context.Background(), pair[0], pair[1])
		if res.Success {
			t.Errorf("expected failure for pair %q", pair)
		}
		if res.Distance != 0 {
			t.Errorf("expected zero distance, got %f", res.Distance)
		}
		if res.Error == "" {
			t.Error("expected an error message")
		}
	}
}

func TestCalculateDistance_NoAPIKeyIdenticalAddresses(t *testing.T) {
	e := newTestEstimator(EstimatorConfig{})

	res := e.CalculateDistance(context.Background(), "123 Main St, Austin, TX", "123 Main St, Austin, TX")

	if !res.Success {
		t.Error("expected success")
	}
	if res.Distance != 0 {
		t.Errorf("expected 0 for identical addresses, got %f", res.Distance)
	}
	if !res.Estimated {
		t.Error("heuristic result should be flagged estimated")
	}
}

func TestCalculateDistance_HeuristicBuckets(t *testing.T) {
	// rand pinned to 0.5: same city 2+5=7, same state 20+40=60, else 50+150=200
	e := newTestEstimator(EstimatorConfig{})

	tests := []struct {
		name                string
		origin, destination string
		want                float64
	}{
		{"same city", "123 Main St, Austin, TX", "900 Congress Ave, Austin, TX", 7},
		{"same state", "123 Main St, Austin, TX", "500 Elm St, Dallas, TX", 60},
		{"cross country", "123 Main St, Austin, TX", "1 Market St, San Francisco, CA", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.CalculateDistance(context.Background(), tt.origin, tt.destination)
			if !res.Success || !res.Estimated {
				t.Fatalf("expected estimated success, got %+v", res)
			}
			if res.Distance != tt.want {
				t.Errorf("expected %f, got %f", tt.want, res.Distance)
			}
		})
	}
}

func matrixResponse(status, elementStatus, text string) string {
	return fmt.Sprintf(`{"status":%q,"rows":[{"elements":[{"status":%q,"distance":{"text":%q,"value":1}}]}]}`,
		status, elementStatus, text)
}

func TestCalculateDistance_APISuccessAndCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if got := r.URL.Query().Get("units"); got != "imperial" {
			t.Errorf("expected imperial units, got %q", got)
		}
		fmt.Fprint(w, matrixResponse("OK", "OK", "12.3 mi"))
	}))
	defer srv.Close()

	e := newTestEstimator(EstimatorConfig{APIKey: "test-key", BaseURL: srv.URL})

	res := e.CalculateDistance(context.Background(), "A, Austin, TX", "B, Dallas, TX")
	if !res.Success || res.Estimated {
		t.Fatalf("expected measured success, got %+v", res)
	}
	if res.Distance != 12.3 {
		t.Errorf("expected 12.3, got %f", res.Distance)
	}

	// Second call within the TTL must come out of the cache.
	res = e.CalculateDistance(context.Background(), "A, Austin, TX", "B, Dallas, TX")
	if !res.Success || res.Distance != 12.3 {
		t.Fatalf("expected cached result, got %+v", res)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 API call, got %d", n)
	}

	// Reversed pair is a different key.
	e.CalculateDistance(context.Background(), "B, Dallas, TX", "A, Austin, TX")
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 API calls after reversed lookup, got %d", n)
	}
}

func TestCalculateDistance_APIFailureFallsBackToHeuristic(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"body status not ok", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, matrixResponse("OVER_QUERY_LIMIT", "OK", "12.3 mi"))
		}},
		{"element status not ok", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, matrixResponse("OK", "NOT_FOUND", ""))
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			e := newTestEstimator(EstimatorConfig{APIKey: "test-key", BaseURL: srv.URL})

			res := e.CalculateDistance(context.Background(), "A, Austin, TX", "B, Dallas, TX")
			if !res.Success {
				t.Fatalf("fallback must still report success, got %+v", res)
			}
			if !res.Estimated {
				t.Error("fallback result should be flagged estimated")
			}
			if res.Distance != 60 { // same-state bucket, rand pinned to 0.5
				t.Errorf("expected heuristic 60, got %f", res.Distance)
			}
		})
	}
}

func TestCalculateDistance_UnreachableAPIFallsBack(t *testing.T) {
	e := newTestEstimator(EstimatorConfig{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"})

	res := e.CalculateDistance(context.Background(), "A, Austin, TX", "B, Dallas, TX")
	if !res.Success || !res.Estimated {
		t.Fatalf("expected estimated success, got %+v", res)
	}
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	e := newTestEstimator(EstimatorConfig{})

	e.put("a|b", 10)
	e.mu.Lock()
	e.cache["c|d"] = cacheEntry{miles: 5, expires: time.Now().Add(-time.Minute)}
	e.mu.Unlock()

	e.sweep()

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.cache["c|d"]; ok {
		t.Error("expired entry should have been swept")
	}
	if _, ok := e.cache["a|b"]; !ok {
		t.Error("live entry should have survived the sweep")
	}
}

func TestExpiredEntryPrunedOnRead(t *testing.T) {
	e := newTestEstimator(EstimatorConfig{})

	e.mu.Lock()
	e.cache["a|b"] = cacheEntry{miles: 5, expires: time.Now().Add(-time.Minute)}
	e.mu.Unlock()

	if _, ok := e.cached("a|b"); ok {
		t.Error("expired entry must not hit")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.cache["a|b"]; ok {
		t.Error("expired entry should be pruned on read")
	}
}

func TestStartStop(t *testing.T) {
	e := newTestEstimator(EstimatorConfig{SweepInterval: 10 * time.Millisecond})

	e.mu.Lock()
	e.cache["a|b"] = cacheEntry{miles: 5, expires: time.Now().Add(-time.Minute)}
	e.mu.Unlock()

	e.Start()
	defer e.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		e.mu.Lock()
		_, ok := e.cache["a|b"]
		e.mu.Unlock()
		if !ok {
			e.Stop()
			e.Stop() // idempotent
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("sweep never removed the expired entry")
}

func TestParseDistanceText(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{"12.3 mi", 12.3, false},
		{"1,204 mi", 1204, false},
		{"0.4 mi", 0.4, false},
		{"", 0, true},
		{"far away", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDistanceText(tt.text)
		if tt.wantErr != (err != nil) {
			t.Errorf("parseDistanceText(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDistanceText(%q) = %f, want %f", tt.text, got, tt.want)
		}
	}
}
