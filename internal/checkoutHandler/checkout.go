package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	config "baul-moda/config/database"
	"baul-moda/internal/checkoutHandler/models"
	"baul-moda/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Checkout handles POST /checkout. It validates stock and totals locally,
// validates the delivery point when delivery is requested, and creates the
// order on the external order system, which owns the order from then on.
func Checkout(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	if req.CustomerName == "" || req.CustomerEmail == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Customer name and email are required"})
	}
	if !utils.ValidateEmail(req.CustomerEmail) {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid email format"})
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": fmt.Sprintf("Invalid quantity for product: %s", item.ProductID),
			})
		}
	}

	// Validate the delivery point before touching anything else
	var matchedZone string
	if req.Delivery {
		areas := FetchServiceAreas()
		result := CheckDeliveryPoint(req.Latitude, req.Longitude, areas)
		if !result.Available {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Delivery is not available for this address"})
		}
		matchedZone = result.MatchedArea.Name
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stock reads and decrements share one transaction, committed only
	// once the external order exists. Any earlier return rolls back.
	tx, err := config.Pool.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	// Verify item availability and calculate total cost
	totalAmount := 0.0
	type orderLine struct {
		ProductID string  `json:"product_id"`
		Name      string  `json:"name"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unit_price"`
	}
	var lines []orderLine

	for _, item := range req.Items {
		var name string
		var price float64
		var stock int
		productQuery := "SELECT name, price_ars, stock FROM products WHERE id = $1 AND is_active = TRUE"
		if err := tx.QueryRow(ctx, productQuery, item.ProductID).Scan(&name, &price, &stock); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": fmt.Sprintf("Invalid product: %s", item.ProductID),
			})
		}
		if stock < item.Quantity {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": fmt.Sprintf("Insufficient stock for %s", name),
			})
		}
		totalAmount += price * float64(item.Quantity)
		lines = append(lines, orderLine{ProductID: item.ProductID, Name: name, Quantity: item.Quantity, UnitPrice: price})
	}

	// Reserve the stock. The stock guard catches concurrent checkouts
	// that drained the row since the read above.
	for i, item := range req.Items {
		updateQuery := "UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1"
		tag, err := tx.Exec(ctx, updateQuery, item.Quantity, item.ProductID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update stock"})
		}
		if tag.RowsAffected() == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": fmt.Sprintf("Insufficient stock for %s", lines[i].Name),
			})
		}
	}

	// Create the order on the external order system
	orderID := fmt.Sprintf("order-%s-%d", uuid.New().String()[:8], time.Now().Unix())
	orderPayload := map[string]interface{}{
		"order_id":       orderID,
		"customer_name":  req.CustomerName,
		"customer_email": req.CustomerEmail,
		"items":          lines,
		"total_amount":   totalAmount,
		"delivery":       req.Delivery,
		"delivery_zone":  matchedZone,
		"address":        req.Address,
	}
	if err := createExternalOrder(orderPayload); err != nil {
		log.Printf("Failed to create external order: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to create order"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to confirm order"})
	}

	// Confirmation email is best effort
	if err := utils.SendOrderConfirmation(req.CustomerEmail, req.CustomerName, orderID, totalAmount); err != nil {
		log.Printf("Failed to send confirmation email: %v", err)
	}

	return c.JSON(http.StatusOK, models.CheckoutResponse{
		Message:      "Order created successfully",
		OrderID:      orderID,
		TotalAmount:  totalAmount,
		Delivery:     req.Delivery,
		DeliveryZone: matchedZone,
	})
}

func createExternalOrder(payload map[string]interface{}) error {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		return fmt.Errorf("API_BASE_URL not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %v", err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/orders", base), echo.MIMEApplicationJSON, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to call order API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order API returned status: %s", resp.Status)
	}

	return nil
}
