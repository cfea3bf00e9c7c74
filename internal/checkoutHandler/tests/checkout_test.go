package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	config "baul-moda/config/database"
	checkout_handler "baul-moda/internal/checkoutHandler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func teardownCheckoutProduct(productID string) {
	if _, err := config.Pool.Exec(context.Background(), "DELETE FROM products WHERE id = $1", productID); err != nil {
		panic(err)
	}
}

func postCheckout(e *echo.Echo, payload map[string]interface{}) (*httptest.ResponseRecorder, echo.Context) {
	requestBody, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestCheckout(t *testing.T) {
	e := echo.New()

	// Insert mock product
	var productID string
	insertQuery := `INSERT INTO products (name, category, price_ars, stock) VALUES ($1, $2, $3, $4) RETURNING id`
	err := config.Pool.QueryRow(context.Background(), insertQuery, "Pollera Lino", "polleras", 30000.0, 5).Scan(&productID)
	if err != nil {
		t.Fatalf("Failed to insert mock product: %v", err)
	}
	defer teardownCheckoutProduct(productID)

	stockOf := func() int {
		var stock int
		if err := config.Pool.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock); err != nil {
			t.Fatalf("Failed to read stock: %v", err)
		}
		return stock
	}

	payload := func(quantity int) map[string]interface{} {
		return map[string]interface{}{
			"customer_name":  "Marta",
			"customer_email": "marta@example.com",
			"items": []map[string]interface{}{
				{"product_id": productID, "quantity": quantity},
			},
		}
	}

	t.Run("Order API Failure Leaves Stock Untouched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()
		os.Setenv("API_BASE_URL", server.URL)
		defer os.Unsetenv("API_BASE_URL")

		rec, c := postCheckout(e, payload(2))
		err := checkout_handler.Checkout(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, 5, stockOf(), "failed order must not consume stock")
	})

	t.Run("Successful Checkout Decrements Stock", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		os.Setenv("API_BASE_URL", server.URL)
		defer os.Unsetenv("API_BASE_URL")

		rec, c := postCheckout(e, payload(2))
		err := checkout_handler.Checkout(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		response := map[string]interface{}{}
		json.Unmarshal(rec.Body.Bytes(), &response)
		assert.NotEmpty(t, response["order_id"])
		assert.Equal(t, 3, stockOf())
	})

	t.Run("Insufficient Stock Rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		os.Setenv("API_BASE_URL", server.URL)
		defer os.Unsetenv("API_BASE_URL")

		rec, c := postCheckout(e, payload(10))
		err := checkout_handler.Checkout(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 3, stockOf())
	})

	t.Run("Unknown Product Rejected", func(t *testing.T) {
		rec, c := postCheckout(e, map[string]interface{}{
			"customer_name":  "Marta",
			"customer_email": "marta@example.com",
			"items": []map[string]interface{}{
				{"product_id": "00000000-0000-0000-0000-000000000000", "quantity": 1},
			},
		})
		err := checkout_handler.Checkout(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
