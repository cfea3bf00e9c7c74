package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"baul-moda/internal/exchange"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type memoryStore struct {
	rate  exchange.Rate
	has   bool
	saves int
}

func (s *memoryStore) Load(ctx context.Context) (exchange.Rate, bool, error) {
	return s.rate, s.has, nil
}

func (s *memoryStore) Save(ctx context.Context, rate exchange.Rate) error {
	s.rate = rate
	s.has = true
	s.saves++
	return nil
}

type countingSource struct {
	rate    float64
	err     error
	fetches int
}

func (s *countingSource) Fetch(ctx context.Context) (float64, error) {
	s.fetches++
	if s.err != nil {
		return 0, s.err
	}
	return s.rate, nil
}

func TestRateCache(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Second Call Within Hour Hits Cache", func(t *testing.T) {
		store := &memoryStore{}
		source := &countingSource{rate: 1200}
		now := base
		cache := exchange.NewRateCache(store, source, 1000).WithClock(func() time.Time { return now })

		first := cache.GetRate(context.Background())
		assert.Equal(t, 1200.0, first.Value)
		assert.Equal(t, "manual", first.Source)
		assert.Equal(t, 1, source.fetches)

		now = base.Add(30 * time.Minute)
		second := cache.GetRate(context.Background())
		assert.Equal(t, first, second)
		assert.Equal(t, 1, source.fetches, "cached call must not fetch")
	})

	t.Run("Expired Cache Fetches Exactly Once", func(t *testing.T) {
		store := &memoryStore{}
		source := &countingSource{rate: 1200}
		now := base
		cache := exchange.NewRateCache(store, source, 1000).WithClock(func() time.Time { return now })

		cache.GetRate(context.Background())

		source.rate = 1300
		now = base.Add(61 * time.Minute)
		refreshed := cache.GetRate(context.Background())
		assert.Equal(t, 1300.0, refreshed.Value)
		assert.Equal(t, 2, source.fetches)
		assert.Equal(t, now, refreshed.FetchedAt)
	})

	t.Run("Fetch Failure Falls Back Without Storing", func(t *testing.T) {
		store := &memoryStore{}
		source := &countingSource{err: errors.New("connection refused")}
		cache := exchange.NewRateCache(store, source, 950).WithClock(func() time.Time { return base })

		rate := cache.GetRate(context.Background())
		assert.Equal(t, 950.0, rate.Value)
		assert.Equal(t, "fallback", rate.Source)
		assert.Equal(t, 0, store.saves, "fallback must not be cached")

		// Next call retries the source instead of serving the fallback
		source.err = nil
		source.rate = 1100
		rate = cache.GetRate(context.Background())
		assert.Equal(t, 1100.0, rate.Value)
		assert.Equal(t, "manual", rate.Source)
		assert.Equal(t, 2, source.fetches)
	})
}

func TestConvertARStoUSD(t *testing.T) {
	// Rounds up to the cent so the seller never undercharges
	assert.Equal(t, 2.86, exchange.ConvertARStoUSD(1000, 350))
	assert.Equal(t, 10.0, exchange.ConvertARStoUSD(10000, 1000))
	assert.Equal(t, 0.01, exchange.ConvertARStoUSD(1, 1000))
}

func TestHTTPRateSource(t *testing.T) {
	t.Run("Reads Configured Rate", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/settings/exchange-rate", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]float64{"rate": 1185.5})
		}))
		defer server.Close()

		source := exchange.HTTPRateSource{BaseURL: server.URL}
		rate, err := source.Fetch(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 1185.5, rate)
	})

	t.Run("Non-200 Is An Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		source := exchange.HTTPRateSource{BaseURL: server.URL}
		_, err := source.Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestGetExchangeRateHandler(t *testing.T) {
	e := echo.New()

	store := &memoryStore{}
	source := &countingSource{rate: 1250}
	exchange.Cache = exchange.NewRateCache(store, source, 1000)

	req := httptest.NewRequest(http.MethodGet, "/api/exchange-rate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := exchange.GetExchangeRate(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	response := map[string]interface{}{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, 1250.0, response["rate"])
	assert.Equal(t, "USD", response["currency"])
	assert.Equal(t, "manual", response["source"])
	assert.NotEmpty(t, response["lastUpdated"])
}
