package invoices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/internal/repo"
	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// Repository loads invoice snapshots and updates line fulfilment.
type Repository struct {
	repo.Base
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Snapshot loads the invoice with its customer, lines and transactions.
func (r *Repository) Snapshot(ctx context.Context, id uuid.UUID) (*revenue.Invoice, error) {
	var invoice models.Invoice
	err := r.DB(ctx).
		Preload("Customer").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}

	var rows []repo.LineItemRow
	err = r.LineItems(ctx).
		Where("invoice_items.invoice_id = ?", id).
		Order("items.name ASC").
		Order("invoice_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	txs, err := r.TransactionsByInvoice(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	snapshot := &revenue.Invoice{
		ID:           invoice.ID,
		CustomerID:   invoice.CustomerID,
		Status:       invoice.Status,
		CreatedAt:    invoice.CreatedAt,
		Items:        repo.Snapshots(rows),
		Transactions: txs[id],
	}
	if invoice.Customer != nil {
		snapshot.CustomerName = invoice.Customer.FullName()
	}
	return snapshot, nil
}

// LineItem loads one line of the invoice joined with its item.
func (r *Repository) LineItem(ctx context.Context, invoiceID, invoiceItemID uuid.UUID) (*repo.LineItemRow, error) {
	var rows []repo.LineItemRow
	err := r.LineItems(ctx).
		Where("invoice_items.invoice_id = ? AND invoice_items.id = ?", invoiceID, invoiceItemID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *Repository) UpdateItemStatus(ctx context.Context, invoiceItemID uuid.UUID, status enums.InvoiceItemStatus) error {
	res := r.DB(ctx).
		Model(&models.InvoiceItem{}).
		Where("id = ?", invoiceItemID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
