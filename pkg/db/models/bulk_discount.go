package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BulkDiscount is a merchant-wide volume discount: PercentDiscount off any
// line item of the merchant whose quantity reaches Threshold.
type BulkDiscount struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	MerchantID      uuid.UUID `gorm:"column:merchant_id;type:uuid;not null;index"`
	PercentDiscount int       `gorm:"column:percent_discount;not null"`
	Threshold       int       `gorm:"column:threshold;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *BulkDiscount) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
