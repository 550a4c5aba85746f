package entity

import (
	"encoding/json"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a customer order for a delivery date. Orders are created
// at checkout and mutated only by delivery-status transitions and
// short-delivery recording; packing-list generation never writes to them.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	DeliveryDate  time.Time        `gorm:"not null;index" json:"delivery_date"`
	Status        enum.OrderStatus `gorm:"default:0" json:"status"`
	DriverID      *uuid.UUID       `gorm:"type:uuid;index" json:"driver_id,omitempty"`
	DeliveryProof *string          `gorm:"size:255" json:"delivery_proof,omitempty"`
	DriverNotes   *string          `gorm:"type:text" json:"driver_notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ItemForProduct returns the first line item for the given product, or nil
// if the product does not appear on the order
func (o *Order) ItemForProduct(productID uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

// ItemsForProduct returns every line row for the given product. A product can
// appear on more than one line of the same order, each with its own quantity
// and snapshotted unit price.
func (o *Order) ItemsForProduct(productID uuid.UUID) []OrderItem {
	var lines []OrderItem
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			lines = append(lines, o.Items[i])
		}
	}
	return lines
}

// OrderItem represents a line item in an order. UnitPrice is snapshotted from
// the catalog at order time so later price changes cannot drift historical
// invoices or credits.
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Unit      string         `gorm:"size:50;not null" json:"unit"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
