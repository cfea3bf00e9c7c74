package models

// ServiceArea is a circular delivery zone configured on the external API.
type ServiceArea struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

type DeliveryCheckResult struct {
	Available      bool         `json:"available"`
	MatchedArea    *ServiceArea `json:"matched_area,omitempty"`
	DistanceMeters float64      `json:"distance_meters,omitempty"`
}

type DeliveryCheckRequest struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// GeneralSettings is the shape of GET /settings/general on the external API.
type GeneralSettings struct {
	Locations []ServiceArea `json:"locations"`
}

type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CheckoutRequest struct {
	CustomerName  string         `json:"customer_name" validate:"required"`
	CustomerEmail string         `json:"customer_email" validate:"required,email"`
	Items         []CheckoutItem `json:"items" validate:"required"`
	Delivery      bool           `json:"delivery"`
	Latitude      float64        `json:"lat"`
	Longitude     float64        `json:"lng"`
	Address       string         `json:"address"`
}

type CheckoutResponse struct {
	Message      string  `json:"message"`
	OrderID      string  `json:"order_id"`
	TotalAmount  float64 `json:"total_amount"`
	Delivery     bool    `json:"delivery"`
	DeliveryZone string  `json:"delivery_zone,omitempty"`
}
