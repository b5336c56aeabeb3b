package models

// All lists every persisted model, parents first.
func All() []any {
	return []any{
		&Merchant{},
		&Item{},
		&Customer{},
		&Invoice{},
		&InvoiceItem{},
		&Transaction{},
		&BulkDiscount{},
	}
}
