package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice represents an amount owed by a customer for an order. The paid
// amount and payment status are deliberately not columns: both are derived
// from payment and credit-application rows at read time, so they can never
// go stale under concurrent writes.
type Invoice struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo  string         `gorm:"size:100;unique;not null" json:"invoice_no"`
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Total      int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DueDate    time.Time      `gorm:"not null;index" json:"due_date"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(i),
		Total: float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
