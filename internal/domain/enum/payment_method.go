package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment was made
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = 0
	PaymentMethodYoco PaymentMethod = 1
	PaymentMethodEFT  PaymentMethod = 2
)

func (m PaymentMethod) String() string {
	names := [...]string{"cash", "yoco", "eft"}
	if int(m) < 0 || int(m) >= len(names) {
		return "cash"
	}
	return names[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "cash":
		*m = PaymentMethodCash
	case "yoco":
		*m = PaymentMethodYoco
	case "eft":
		*m = PaymentMethodEFT
	}
	return nil
}

// ParsePaymentMethod parses a method string; ok is false for unknown values
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "cash":
		return PaymentMethodCash, true
	case "yoco":
		return PaymentMethodYoco, true
	case "eft":
		return PaymentMethodEFT, true
	}
	return PaymentMethodCash, false
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
