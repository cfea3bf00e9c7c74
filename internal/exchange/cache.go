package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Rate is the cached USD exchange rate.
type Rate struct {
	Value     float64   `json:"rate"`
	Currency  string    `json:"currency"`
	FetchedAt time.Time `json:"lastUpdated"`
	Source    string    `json:"source"` // "manual" or "fallback"
}

// RateStore persists the rate between requests. Load reports whether a
// stored rate exists.
type RateStore interface {
	Load(ctx context.Context) (Rate, bool, error)
	Save(ctx context.Context, rate Rate) error
}

// RateSource fetches a fresh rate from the configured source.
type RateSource interface {
	Fetch(ctx context.Context) (float64, error)
}

// RateCache serves the stored rate while it is fresh and refreshes it from
// the source once it expires. The fallback rate is returned on fetch
// failure but never stored, so the next call retries the source.
type RateCache struct {
	store    RateStore
	source   RateSource
	fallback float64
	ttl      time.Duration
	now      func() time.Time
}

func NewRateCache(store RateStore, source RateSource, fallback float64) *RateCache {
	return &RateCache{
		store:    store,
		source:   source,
		fallback: fallback,
		ttl:      time.Hour,
		now:      time.Now,
	}
}

// WithClock overrides the cache clock.
func (rc *RateCache) WithClock(now func() time.Time) *RateCache {
	rc.now = now
	return rc
}

// GetRate never fails: a dead source degrades to the fallback rate so
// product pages always have a price.
func (rc *RateCache) GetRate(ctx context.Context) Rate {
	cached, ok, err := rc.store.Load(ctx)
	if err != nil {
		log.Printf("Failed to load cached rate: %v", err)
	}
	if ok && rc.now().Sub(cached.FetchedAt) < rc.ttl {
		return cached
	}

	value, err := rc.source.Fetch(ctx)
	if err != nil {
		log.Printf("Failed to fetch exchange rate: %v", err)
		return Rate{Value: rc.fallback, Currency: "USD", FetchedAt: rc.now(), Source: "fallback"}
	}

	fresh := Rate{Value: value, Currency: "USD", FetchedAt: rc.now(), Source: "manual"}
	if err := rc.store.Save(ctx, fresh); err != nil {
		log.Printf("Failed to store exchange rate: %v", err)
	}
	return fresh
}

// ConvertARStoUSD rounds up to the cent so the converted price never
// undercharges.
func ConvertARStoUSD(amountARS, rate float64) float64 {
	return math.Ceil(amountARS/rate*100) / 100
}

// HTTPRateSource reads the manually configured rate from the external API.
type HTTPRateSource struct {
	BaseURL string
}

func (s HTTPRateSource) Fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/settings/exchange-rate", s.BaseURL), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call rate endpoint: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate endpoint returned status: %s", resp.Status)
	}

	var body struct {
		Rate float64 `json:"rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to parse rate response: %v", err)
	}
	if body.Rate <= 0 {
		return 0, fmt.Errorf("rate endpoint returned non-positive rate")
	}

	return body.Rate, nil
}

// FallbackRate reads USD_EXCHANGE_RATE, defaulting to 1000 when unset.
func FallbackRate() float64 {
	raw := os.Getenv("USD_EXCHANGE_RATE")
	if raw == "" {
		return 1000
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		log.Printf("Invalid USD_EXCHANGE_RATE %q, using default", raw)
		return 1000
	}
	return value
}
