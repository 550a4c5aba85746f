package request

// OrderLine is one product line on a new order
type OrderLine struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents a new order taken for a customer
type CreateOrderRequest struct {
	CustomerID   string      `json:"customer_id" binding:"required,uuid"`
	DeliveryDate string      `json:"delivery_date" binding:"required"` // "2006-01-02"
	Lines        []OrderLine `json:"lines" binding:"required"`
}

// UpdateOrderStatusRequest represents a delivery status change. Status is one
// of "pending", "out_for_delivery", "delivered" or "failed".
type UpdateOrderStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	DriverNotes   *string `json:"driver_notes,omitempty"`
	DeliveryProof *string `json:"delivery_proof,omitempty"`
}

// AssignDriverRequest represents assigning a driver to an order
type AssignDriverRequest struct {
	DriverID string `json:"driver_id" binding:"required,uuid"`
}
