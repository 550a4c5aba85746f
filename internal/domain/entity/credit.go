package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credit represents account credit generated by a short delivery. One row is
// created per consumed order line so individual-item disputes stay
// traceable. Value is shortfall quantity times that line's snapshotted unit
// price, never the current catalog price.
type Credit struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	QuantityShort int       `gorm:"not null" json:"quantity_short"`
	Value         int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Credit) MarshalJSON() ([]byte, error) {
	type Alias Credit
	return json.Marshal(&struct {
		Alias
		Value float64 `json:"value"`
	}{
		Alias: Alias(c),
		Value: float64(c.Value) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new credit
func (c *Credit) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Credit model
func (Credit) TableName() string {
	return "credits"
}

// CreditApplication consumes credit balance against an invoice. The customer
// balance is the sum of credit values minus the sum of application amounts;
// both sides are recomputed from rows on every read.
type CreditApplication struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount     int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	AppliedAt  time.Time `gorm:"not null" json:"applied_at"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Invoice  Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ca CreditApplication) MarshalJSON() ([]byte, error) {
	type Alias CreditApplication
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(ca),
		Amount: float64(ca.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new credit application
func (ca *CreditApplication) BeforeCreate(tx *gorm.DB) error {
	if ca.ID == uuid.Nil {
		ca.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditApplication model
func (CreditApplication) TableName() string {
	return "credit_applications"
}
