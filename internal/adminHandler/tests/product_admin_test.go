package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	config "baul-moda/config/database"
	admin_handler "baul-moda/internal/adminHandler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func teardownProducts(name string) {
	if _, err := config.Pool.Exec(context.Background(), "DELETE FROM products WHERE name = $1", name); err != nil {
		panic(err)
	}
}

func TestProductCRUD(t *testing.T) {
	e := echo.New()
	defer teardownProducts("Vestido Floral")

	// Create
	rec, c := postJSON(e, "/admin/products", map[string]interface{}{
		"name":      "Vestido Floral",
		"category":  "vestidos",
		"price_ars": 45000.0,
		"stock":     5,
	})
	err := admin_handler.CreateProduct(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	response := map[string]interface{}{}
	json.Unmarshal(rec.Body.Bytes(), &response)
	productID, _ := response["id"].(string)
	assert.NotEmpty(t, productID)

	// Create with invalid price
	rec, c = postJSON(e, "/admin/products", map[string]interface{}{
		"name":      "Vestido Floral",
		"price_ars": 0,
	})
	err = admin_handler.CreateProduct(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// List includes the new product
	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	err = admin_handler.ListProductsAdmin(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vestido Floral")

	// Update
	requestBody, _ := json.Marshal(map[string]interface{}{
		"name":      "Vestido Floral",
		"category":  "vestidos",
		"price_ars": 48000.0,
		"stock":     4,
	})
	req = httptest.NewRequest(http.MethodPut, "/admin/products/"+productID, bytes.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(productID)
	err = admin_handler.UpdateProduct(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/admin/products/"+productID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(productID)
	err = admin_handler.DeleteProduct(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete again is a 404
	req = httptest.NewRequest(http.MethodDelete, "/admin/products/"+productID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(productID)
	err = admin_handler.DeleteProduct(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
