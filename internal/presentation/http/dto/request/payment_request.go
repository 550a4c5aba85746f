package request

// RecordPaymentRequest represents the payment submission payload. Amount is
// in currency units (rands); method is "cash", "yoco" or "eft".
type RecordPaymentRequest struct {
	InvoiceID   string  `json:"invoice_id" binding:"required,uuid"`
	CustomerID  string  `json:"customer_id" binding:"required,uuid"`
	Amount      float64 `json:"amount" binding:"required"`
	Method      string  `json:"method" binding:"required"`
	PaymentDate string  `json:"payment_date,omitempty"` // "2006-01-02", defaults to today
	Notes       *string `json:"notes,omitempty"`
}
