package exchange

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

var Cache *RateCache

// Init wires the shared rate cache against redis and the external API.
func Init() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}

	store := NewRedisRateStore(redis.NewClient(opts))
	source := HTTPRateSource{BaseURL: os.Getenv("API_BASE_URL")}
	Cache = NewRateCache(store, source, FallbackRate())
}

// GetExchangeRate handles GET /api/exchange-rate. Always 200, the fallback
// keeps a price on every page.
func GetExchangeRate(c echo.Context) error {
	rate := Cache.GetRate(c.Request().Context())
	return c.JSON(http.StatusOK, rate)
}
