package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// InvoiceItem snapshots quantity and unit price (cents) at purchase time.
type InvoiceItem struct {
	ID        uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID uuid.UUID               `gorm:"column:invoice_id;type:uuid;not null;index"`
	ItemID    uuid.UUID               `gorm:"column:item_id;type:uuid;not null;index"`
	Quantity  int                     `gorm:"column:quantity;not null"`
	UnitPrice int64                   `gorm:"column:unit_price;not null"`
	Status    enums.InvoiceItemStatus `gorm:"column:status;not null;default:'pending'"`
	Item      *Item                   `gorm:"foreignKey:ItemID"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *InvoiceItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
