package revenue

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

func lineItem(invoiceID, merchantID uuid.UUID, name string, qty int, unitPrice int64) LineItem {
	return LineItem{
		ID:         uuid.New(),
		InvoiceID:  invoiceID,
		ItemID:     uuid.New(),
		ItemName:   name,
		MerchantID: merchantID,
		Quantity:   qty,
		UnitPrice:  unitPrice,
		Status:     enums.InvoiceItemStatusPending,
	}
}

func rule(merchantID uuid.UUID, percent, threshold int) Rule {
	return Rule{ID: uuid.New(), MerchantID: merchantID, PercentDiscount: percent, Threshold: threshold}
}

func success(invoiceID uuid.UUID) Transaction {
	return Transaction{ID: uuid.New(), InvoiceID: invoiceID, Result: enums.TransactionResultSuccess}
}

func failed(invoiceID uuid.UUID) Transaction {
	return Transaction{ID: uuid.New(), InvoiceID: invoiceID, Result: enums.TransactionResultFailed}
}
