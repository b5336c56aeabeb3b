package discounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
)

// DiscountDTO is the API representation of a bulk discount.
type DiscountDTO struct {
	ID              uuid.UUID `json:"id"`
	MerchantID      uuid.UUID `json:"merchant_id"`
	PercentDiscount int       `json:"percent_discount"`
	Threshold       int       `json:"threshold"`
	Label           string    `json:"label"`
	ThresholdLabel  string    `json:"threshold_label"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToRule maps a stored discount onto the revenue rule it represents.
func ToRule(m models.BulkDiscount) revenue.Rule {
	return revenue.Rule{
		ID:              m.ID,
		MerchantID:      m.MerchantID,
		PercentDiscount: m.PercentDiscount,
		Threshold:       m.Threshold,
	}
}

// ToRules maps stored discounts, preserving order.
func ToRules(rows []models.BulkDiscount) []revenue.Rule {
	rules := make([]revenue.Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, ToRule(row))
	}
	return rules
}

func toDTO(m models.BulkDiscount) DiscountDTO {
	rule := ToRule(m)
	return DiscountDTO{
		ID:              m.ID,
		MerchantID:      m.MerchantID,
		PercentDiscount: m.PercentDiscount,
		Threshold:       m.Threshold,
		Label:           rule.Label(),
		ThresholdLabel:  rule.ThresholdLabel(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
