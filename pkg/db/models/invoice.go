package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// Invoice groups the line items a customer purchased, possibly from several
// merchants, and the payment attempts made against it.
type Invoice struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID   uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	Status       enums.InvoiceStatus `gorm:"column:status;not null;default:'in_progress'"`
	Customer     *Customer           `gorm:"foreignKey:CustomerID"`
	InvoiceItems []InvoiceItem       `gorm:"foreignKey:InvoiceID"`
	Transactions []Transaction       `gorm:"foreignKey:InvoiceID"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
