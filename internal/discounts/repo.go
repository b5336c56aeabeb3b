package discounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/internal/repo"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
)

// Repository persists bulk discounts.
type Repository struct {
	repo.Base
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, discount *models.BulkDiscount) error {
	return r.DB(ctx).Create(discount).Error
}

// Update writes the mutable rule fields of an existing discount.
func (r *Repository) Update(ctx context.Context, discount *models.BulkDiscount) error {
	res := r.DB(ctx).
		Model(discount).
		Select("percent_discount", "threshold", "updated_at").
		Updates(discount)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByID(ctx, &models.BulkDiscount{}, id)
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BulkDiscount, error) {
	var discount models.BulkDiscount
	if err := r.DB(ctx).Where("id = ?", id).First(&discount).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

// ListByMerchant returns a merchant's discounts ordered by threshold, then percent.
func (r *Repository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.BulkDiscount, error) {
	var discounts []models.BulkDiscount
	err := r.DB(ctx).
		Where("merchant_id = ?", merchantID).
		Order("threshold ASC").
		Order("percent_discount ASC").
		Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

// ListByMerchants returns every discount owned by any of the merchants.
func (r *Repository) ListByMerchants(ctx context.Context, merchantIDs []uuid.UUID) ([]models.BulkDiscount, error) {
	if len(merchantIDs) == 0 {
		return nil, nil
	}
	var discounts []models.BulkDiscount
	err := r.DB(ctx).
		Where("merchant_id IN ?", merchantIDs).
		Order("merchant_id").
		Order("threshold ASC").
		Order("percent_discount ASC").
		Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *Repository) CountByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.BulkDiscount{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error
	return count, err
}
