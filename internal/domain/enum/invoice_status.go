package enum

import "encoding/json"

// InvoiceStatus is the derived payment status of an invoice. It is never
// stored: it is recomputed from the invoice total and the sum of payments
// plus applied credits every time an invoice is read.
type InvoiceStatus int

const (
	InvoiceStatusUnpaid  InvoiceStatus = 0
	InvoiceStatusPartial InvoiceStatus = 1
	InvoiceStatusPaid    InvoiceStatus = 2
)

func (s InvoiceStatus) String() string {
	names := [...]string{"unpaid", "partial", "paid"}
	if int(s) < 0 || int(s) >= len(names) {
		return "unpaid"
	}
	return names[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DeriveInvoiceStatus computes the status from an invoice total and the
// amount paid against it (payments plus applied credits), both in cents
func DeriveInvoiceStatus(totalCents, paidCents int64) InvoiceStatus {
	switch {
	case paidCents <= 0:
		return InvoiceStatusUnpaid
	case paidCents < totalCents:
		return InvoiceStatusPartial
	default:
		return InvoiceStatusPaid
	}
}
