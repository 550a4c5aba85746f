package entity

import (
	"encoding/json"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment represents a payment made against an invoice. Payments are
// immutable once created: corrections are recorded as new entries so the
// audit trail stays intact. The repository exposes no update or delete.
type Payment struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	CustomerID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	Amount      int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method      enum.PaymentMethod `gorm:"default:0" json:"method"`
	PaymentDate time.Time          `gorm:"not null" json:"payment_date"`
	Notes       *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`

	// Relationships
	Invoice  Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
