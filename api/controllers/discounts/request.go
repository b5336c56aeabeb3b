package discounts

import (
	"github.com/angelmondragon/bulkdiscount-backend/api/validators"
	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
)

// DiscountRequest is shared by create and update. Fields may be JSON numbers
// or strings; rule validation happens in the service so every violation is
// reported together.
type DiscountRequest struct {
	PercentDiscount validators.NumericText `json:"percent_discount"`
	Threshold       validators.NumericText `json:"threshold"`
}

func (r DiscountRequest) toInput() revenue.RuleInput {
	return revenue.RuleInput{
		PercentDiscount: r.PercentDiscount.String(),
		Threshold:       r.Threshold.String(),
	}
}
