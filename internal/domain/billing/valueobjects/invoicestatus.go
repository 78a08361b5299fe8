package valueobjects

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusFailed    InvoiceStatus = "failed"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusFailed, InvoiceStatusRefunded, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}

func (s InvoiceStatus) IsPaid() bool {
	return s == InvoiceStatusPaid
}

func (s InvoiceStatus) IsFinal() bool {
	return s == InvoiceStatusRefunded || s == InvoiceStatusCancelled
}

func (s InvoiceStatus) String() string {
	return string(s)
}
