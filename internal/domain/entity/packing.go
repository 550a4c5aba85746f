package entity

import (
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/google/uuid"
)

// PackingItem represents a single pick-sheet row: one product with the total
// quantity to pick for the order.
type PackingItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

// PackingSheet is a value object representing the per-order pick list.
// It is NOT a database entity: it is derived from an order's line items at
// generation time. Duplicate product rows on the order are already merged and
// items are sorted by product name.
type PackingSheet struct {
	OrderID      uuid.UUID     `json:"order_id"`
	CustomerName string        `json:"customer_name"`
	Address      string        `json:"address"`
	RouteKey     string        `json:"route_key"`
	DriverNotes  string        `json:"driver_notes,omitempty"`
	Items        []PackingItem `json:"items"`
}

// PackingBatch is the ordered collection of packing sheets for one delivery
// date (or for an explicitly chosen set of orders). Also derived, never
// persisted.
type PackingBatch struct {
	DeliveryDate time.Time      `json:"delivery_date"`
	SortBy       enum.BatchSort `json:"sort_by"`
	Sheets       []PackingSheet `json:"sheets"`
}
