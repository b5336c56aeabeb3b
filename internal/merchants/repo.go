package merchants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/internal/repo"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// Repository exposes merchant persistence and dashboard queries.
type Repository struct {
	repo.Base
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.DB(ctx).Where("id = ?", id).First(&merchant).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

// CountByStatus returns merchant counts keyed by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.MerchantStatus]int64, error) {
	var rows []struct {
		Status enums.MerchantStatus
		Total  int64
	}
	err := r.DB(ctx).
		Model(&models.Merchant{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.MerchantStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// LineItems returns every invoice line of the merchant's items.
func (r *Repository) LineItems(ctx context.Context, merchantID uuid.UUID) ([]repo.LineItemRow, error) {
	var rows []repo.LineItemRow
	err := r.Base.LineItems(ctx).
		Where("items.merchant_id = ?", merchantID).
		Order("invoices.created_at ASC").
		Order("items.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ItemsReadyToShip lists the merchant's unshipped lines, oldest invoice first.
func (r *Repository) ItemsReadyToShip(ctx context.Context, merchantID uuid.UUID) ([]repo.LineItemRow, error) {
	var rows []repo.LineItemRow
	err := r.Base.LineItems(ctx).
		Where("items.merchant_id = ?", merchantID).
		Where("invoice_items.status <> ?", enums.InvoiceItemStatusShipped).
		Order("invoices.created_at ASC").
		Order("items.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CustomerRank is a customer with their count of successful transactions.
type CustomerRank struct {
	ID                     uuid.UUID
	FirstName              string
	LastName               string
	SuccessfulTransactions int64
}

// TopCustomers ranks customers by successful transactions. A nil merchantID
// ranks across the platform; otherwise only invoices holding that merchant's
// items count.
func (r *Repository) TopCustomers(ctx context.Context, merchantID *uuid.UUID, limit int) ([]CustomerRank, error) {
	q := r.DB(ctx).
		Model(&models.Customer{}).
		Select("customers.id, customers.first_name, customers.last_name, COUNT(DISTINCT transactions.id) AS successful_transactions").
		Joins("JOIN invoices ON invoices.customer_id = customers.id").
		Joins("JOIN transactions ON transactions.invoice_id = invoices.id").
		Where("transactions.result = ?", enums.TransactionResultSuccess)
	if merchantID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM invoice_items JOIN items ON items.id = invoice_items.item_id WHERE invoice_items.invoice_id = invoices.id AND items.merchant_id = ?)", *merchantID)
	}

	var rows []CustomerRank
	err := q.
		Group("customers.id, customers.first_name, customers.last_name").
		Order("successful_transactions DESC").
		Order("customers.last_name ASC").
		Order("customers.first_name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
