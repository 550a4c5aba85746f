package request

// ShortDeliveryLine is one shorted product on a short-delivery report
type ShortDeliveryLine struct {
	ProductID     string `json:"product_id" binding:"required,uuid"`
	QuantityShort int    `json:"quantity_short" binding:"required"`
}

// RecordShortDeliveryRequest represents a short-delivery report for an order
type RecordShortDeliveryRequest struct {
	OrderID    string              `json:"order_id" binding:"required,uuid"`
	CustomerID string              `json:"customer_id" binding:"required,uuid"`
	Items      []ShortDeliveryLine `json:"items" binding:"required"`
}

// ApplyCreditRequest represents consuming credit balance against an invoice.
// Amount is in currency units.
type ApplyCreditRequest struct {
	CustomerID string  `json:"customer_id" binding:"required,uuid"`
	InvoiceID  string  `json:"invoice_id" binding:"required,uuid"`
	Amount     float64 `json:"amount" binding:"required"`
}
