package enums

import "fmt"

// InvoiceItemStatus tracks fulfillment of a single invoice line. It has no
// bearing on revenue.
type InvoiceItemStatus string

const (
	InvoiceItemStatusPending  InvoiceItemStatus = "pending"
	InvoiceItemStatusPackaged InvoiceItemStatus = "packaged"
	InvoiceItemStatusShipped  InvoiceItemStatus = "shipped"
)

var validInvoiceItemStatuses = []InvoiceItemStatus{
	InvoiceItemStatusPending,
	InvoiceItemStatusPackaged,
	InvoiceItemStatusShipped,
}

// String implements fmt.Stringer.
func (s InvoiceItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InvoiceItemStatus.
func (s InvoiceItemStatus) IsValid() bool {
	for _, candidate := range validInvoiceItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInvoiceItemStatus converts raw input into an InvoiceItemStatus.
func ParseInvoiceItemStatus(value string) (InvoiceItemStatus, error) {
	for _, candidate := range validInvoiceItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice item status %q", value)
}
