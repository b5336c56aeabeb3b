package enums

import "fmt"

// InvoiceStatus represents the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusInProgress InvoiceStatus = "in_progress"
	InvoiceStatusCancelled  InvoiceStatus = "cancelled"
	InvoiceStatusCompleted  InvoiceStatus = "completed"
)

var validInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusInProgress,
	InvoiceStatusCancelled,
	InvoiceStatusCompleted,
}

// String implements fmt.Stringer.
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InvoiceStatus.
func (s InvoiceStatus) IsValid() bool {
	for _, candidate := range validInvoiceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInvoiceStatus converts raw input into an InvoiceStatus.
func ParseInvoiceStatus(value string) (InvoiceStatus, error) {
	for _, candidate := range validInvoiceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice status %q", value)
}
