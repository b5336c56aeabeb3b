package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// Merchant owns catalog items and their bulk discounts.
type Merchant struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Name          string               `gorm:"column:name;not null"`
	Status        enums.MerchantStatus `gorm:"column:status;not null;default:'disabled'"`
	Items         []Item               `gorm:"foreignKey:MerchantID"`
	BulkDiscounts []BulkDiscount       `gorm:"foreignKey:MerchantID"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Merchant) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
