package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// Transaction records one payment attempt against an invoice.
type Transaction struct {
	ID               uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID        uuid.UUID               `gorm:"column:invoice_id;type:uuid;not null;index"`
	CreditCardNumber string                  `gorm:"column:credit_card_number;not null;default:''"`
	Result           enums.TransactionResult `gorm:"column:result;not null"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
