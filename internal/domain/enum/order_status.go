package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the delivery status of an order
type OrderStatus int

const (
	OrderStatusPending        OrderStatus = 0
	OrderStatusOutForDelivery OrderStatus = 1
	OrderStatusDelivered      OrderStatus = 2
	OrderStatusFailed         OrderStatus = 3
)

func (s OrderStatus) String() string {
	names := [...]string{"pending", "out_for_delivery", "delivered", "failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

// CanTransitionTo reports whether moving to the given status is a legal
// delivery transition: pending -> out_for_delivery -> delivered | failed
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusOutForDelivery
	case OrderStatusOutForDelivery:
		return next == OrderStatusDelivered || next == OrderStatusFailed
	}
	return false
}

// IsTerminal returns true once an order has been delivered or failed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusFailed
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = OrderStatusPending
	case "out_for_delivery":
		*s = OrderStatusOutForDelivery
	case "delivered":
		*s = OrderStatusDelivered
	case "failed":
		*s = OrderStatusFailed
	}
	return nil
}

// ParseOrderStatus parses a status string; ok is false for unknown values
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch s {
	case "pending":
		return OrderStatusPending, true
	case "out_for_delivery":
		return OrderStatusOutForDelivery, true
	case "delivered":
		return OrderStatusDelivered, true
	case "failed":
		return OrderStatusFailed, true
	}
	return OrderStatusPending, false
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
