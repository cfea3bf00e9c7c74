package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	config "baul-moda/config/database"

	"github.com/labstack/echo/v4"
)

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	PriceARS    float64 `json:"price_ars" validate:"required"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PriceARS    float64   `json:"price_ars"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProduct handles POST /admin/products
func CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	if req.PriceARS <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Price must be greater than 0"})
	}
	if req.Stock < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Stock cannot be negative"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		INSERT INTO products (name, description, category, price_ars, stock, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id
	`
	var productID string
	err := config.Pool.QueryRow(ctx, query, req.Name, req.Description, req.Category, req.PriceARS, req.Stock, req.ImageURL, isActive).Scan(&productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create product"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Product %s created successfully", req.Name),
		"id":      productID,
	})
}

// ListProductsAdmin handles GET /admin/products, inactive rows included
func ListProductsAdmin(c echo.Context) error {
	query := `
		SELECT id, name, description, category, price_ars, stock, image_url, is_active, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`
	rows, err := config.Pool.Query(context.Background(), query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch products"})
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceARS, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to parse products"})
		}
		products = append(products, p)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Products fetched successfully",
		"products": products,
	})
}

// UpdateProduct handles PUT /admin/products/:id
func UpdateProduct(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Product ID is required"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	if req.PriceARS <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Price must be greater than 0"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, price_ars = $4, stock = $5, image_url = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`
	tag, err := config.Pool.Exec(ctx, query, req.Name, req.Description, req.Category, req.PriceARS, req.Stock, req.ImageURL, isActive, productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update product"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Product not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

// DeleteProduct handles DELETE /admin/products/:id
func DeleteProduct(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Product ID is required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tag, err := config.Pool.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to delete product"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Product not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
