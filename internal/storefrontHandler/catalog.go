package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	config "baul-moda/config/database"
	"baul-moda/internal/exchange"

	"github.com/labstack/echo/v4"
)

type CatalogProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PriceARS    float64   `json:"price_ars"`
	PriceUSD    float64   `json:"price_usd"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListProducts handles GET /products with optional category, search and
// price range filters. Only active products are shown.
func ListProducts(c echo.Context) error {
	query := `
		SELECT id, name, description, category, price_ars, stock, image_url, created_at
		FROM products
		WHERE is_active = TRUE
	`
	args := []interface{}{}

	if category := c.QueryParam("category"); category != "" {
		args = append(args, category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}
	if search := c.QueryParam("search"); search != "" {
		args = append(args, "%"+search+"%")
		query += " AND name ILIKE $" + strconv.Itoa(len(args))
	}
	if minPrice := c.QueryParam("min_price"); minPrice != "" {
		value, err := strconv.ParseFloat(minPrice, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid min_price"})
		}
		args = append(args, value)
		query += " AND price_ars >= $" + strconv.Itoa(len(args))
	}
	if maxPrice := c.QueryParam("max_price"); maxPrice != "" {
		value, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid max_price"})
		}
		args = append(args, value)
		query += " AND price_ars <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := config.Pool.Query(context.Background(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch products"})
	}
	defer rows.Close()

	rate := exchange.Cache.GetRate(c.Request().Context())

	var products []CatalogProduct
	for rows.Next() {
		var p CatalogProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceARS, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to parse products"})
		}
		p.PriceUSD = exchange.ConvertARStoUSD(p.PriceARS, rate.Value)
		products = append(products, p)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Products fetched successfully",
		"products": products,
	})
}

// GetProduct handles GET /products/:id
func GetProduct(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Product ID is required"})
	}

	var p CatalogProduct
	query := `
		SELECT id, name, description, category, price_ars, stock, image_url, created_at
		FROM products
		WHERE id = $1 AND is_active = TRUE
	`
	err := config.Pool.QueryRow(context.Background(), query, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceARS, &p.Stock, &p.ImageURL, &p.CreatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Product not found"})
	}

	rate := exchange.Cache.GetRate(c.Request().Context())
	p.PriceUSD = exchange.ConvertARStoUSD(p.PriceARS, rate.Value)

	return c.JSON(http.StatusOK, p)
}
