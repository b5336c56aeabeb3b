package repo

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// transactionBatchSize keeps IN lists well under sqlite's bound-variable limit.
const transactionBatchSize = 500

const lineItemColumns = "invoice_items.id, invoice_items.invoice_id, invoice_items.item_id, " +
	"items.name AS item_name, items.merchant_id, invoice_items.quantity, invoice_items.unit_price, " +
	"invoice_items.status, invoices.created_at AS invoice_created_at"

// LineItemRow is an invoice line joined with its catalog item and invoice.
type LineItemRow struct {
	ID               uuid.UUID
	InvoiceID        uuid.UUID
	ItemID           uuid.UUID
	ItemName         string
	MerchantID       uuid.UUID
	Quantity         int
	UnitPrice        int64
	Status           enums.InvoiceItemStatus
	InvoiceCreatedAt time.Time
}

// Snapshot converts the row into the revenue line item.
func (r LineItemRow) Snapshot() revenue.LineItem {
	return revenue.LineItem{
		ID:         r.ID,
		InvoiceID:  r.InvoiceID,
		ItemID:     r.ItemID,
		ItemName:   r.ItemName,
		MerchantID: r.MerchantID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		Status:     r.Status,
	}
}

// Snapshots converts rows, preserving order.
func Snapshots(rows []LineItemRow) []revenue.LineItem {
	out := make([]revenue.LineItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Snapshot())
	}
	return out
}

// LineItems starts a query over invoice lines joined to items and invoices.
// Callers add filters and ordering.
func (b Base) LineItems(ctx context.Context) *gorm.DB {
	return b.DB(ctx).
		Model(&models.InvoiceItem{}).
		Select(lineItemColumns).
		Joins("JOIN items ON items.id = invoice_items.item_id").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id")
}

// InvoiceIDs returns the distinct invoices referenced by rows, in first-seen order.
func InvoiceIDs(rows []LineItemRow) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.InvoiceID]; ok {
			continue
		}
		seen[row.InvoiceID] = struct{}{}
		ids = append(ids, row.InvoiceID)
	}
	return ids
}

// TransactionsByInvoice loads the current payment attempts of the invoices,
// querying in batches of transactionBatchSize ids.
func (b Base) TransactionsByInvoice(ctx context.Context, invoiceIDs []uuid.UUID) (map[uuid.UUID][]revenue.Transaction, error) {
	if len(invoiceIDs) == 0 {
		return map[uuid.UUID][]revenue.Transaction{}, nil
	}
	txs := make([]revenue.Transaction, 0, len(invoiceIDs))
	for batch := range slices.Chunk(invoiceIDs, transactionBatchSize) {
		var rows []models.Transaction
		err := b.DB(ctx).
			Where("invoice_id IN ?", batch).
			Order("created_at").
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			txs = append(txs, revenue.Transaction{ID: row.ID, InvoiceID: row.InvoiceID, Result: row.Result})
		}
	}
	return revenue.GroupTransactions(txs), nil
}

// CollectedRevenue sums gross revenue in SQL over lines whose invoice has at
// least one successful transaction. A nil merchantID covers the platform.
func (b Base) CollectedRevenue(ctx context.Context, merchantID *uuid.UUID) (int64, error) {
	query := b.DB(ctx).
		Model(&models.InvoiceItem{}).
		Select("CAST(COALESCE(SUM(invoice_items.quantity * invoice_items.unit_price), 0) AS BIGINT)").
		Where("EXISTS (SELECT 1 FROM transactions WHERE transactions.invoice_id = invoice_items.invoice_id AND transactions.result = ?)",
			enums.TransactionResultSuccess)
	if merchantID != nil {
		query = query.
			Joins("JOIN items ON items.id = invoice_items.item_id").
			Where("items.merchant_id = ?", *merchantID)
	}
	var total int64
	if err := query.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
