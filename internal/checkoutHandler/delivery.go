package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"

	"baul-moda/internal/checkoutHandler/models"

	"github.com/labstack/echo/v4"
)

const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// CheckDeliveryPoint scans the configured areas in order and returns the
// first one whose radius contains the point. Radius and distance are both
// meters; a point exactly on the boundary counts as inside.
func CheckDeliveryPoint(lat, lng float64, areas []models.ServiceArea) models.DeliveryCheckResult {
	for i := range areas {
		area := areas[i]
		distance := HaversineMeters(lat, lng, area.Latitude, area.Longitude)
		if distance <= area.RadiusMeters {
			return models.DeliveryCheckResult{
				Available:      true,
				MatchedArea:    &area,
				DistanceMeters: distance,
			}
		}
	}
	return models.DeliveryCheckResult{Available: false}
}

// FetchServiceAreas loads the delivery zones from the external API. A
// failed fetch means no zones are offered, it is not an error for the
// caller.
func FetchServiceAreas() []models.ServiceArea {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		return nil
	}

	resp, err := http.Get(fmt.Sprintf("%s/settings/general", base))
	if err != nil {
		log.Printf("Failed to fetch service areas: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Settings endpoint returned status: %s", resp.Status)
		return nil
	}

	var settings models.GeneralSettings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		log.Printf("Failed to parse settings response: %v", err)
		return nil
	}

	return settings.Locations
}

// CheckDelivery handles POST /checkout/delivery-check
func CheckDelivery(c echo.Context) error {
	var req models.DeliveryCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Coordinates out of range"})
	}

	areas := FetchServiceAreas()
	result := CheckDeliveryPoint(req.Latitude, req.Longitude, areas)

	return c.JSON(http.StatusOK, result)
}
