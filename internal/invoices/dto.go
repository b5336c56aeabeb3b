package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/money"
)

// AppliedDiscountDTO links a line to the bulk discount that priced it.
type AppliedDiscountDTO struct {
	ID              uuid.UUID `json:"id"`
	PercentDiscount int       `json:"percent_discount"`
	Threshold       int       `json:"threshold"`
	Label           string    `json:"label"`
	ThresholdLabel  string    `json:"threshold_label"`
}

// LineItemDTO is one invoice line with its revenue figures. AppliedDiscount
// is set only when the discount priced collected revenue.
type LineItemDTO struct {
	ID                       uuid.UUID               `json:"id"`
	ItemID                   uuid.UUID               `json:"item_id"`
	ItemName                 string                  `json:"item_name"`
	MerchantID               uuid.UUID               `json:"merchant_id"`
	Quantity                 int                     `json:"quantity"`
	UnitPrice                int64                   `json:"unit_price"`
	UnitPriceDisplay         string                  `json:"unit_price_display"`
	Status                   enums.InvoiceItemStatus `json:"status"`
	GrossRevenue             int64                   `json:"gross_revenue"`
	DiscountedRevenue        int64                   `json:"discounted_revenue"`
	DiscountedRevenueDisplay string                  `json:"discounted_revenue_display"`
	AppliedDiscount          *AppliedDiscountDTO     `json:"applied_discount,omitempty"`
}

// MerchantInvoiceDTO is the merchant's view of an invoice: only their lines.
type MerchantInvoiceDTO struct {
	ID                                 uuid.UUID           `json:"id"`
	Status                             enums.InvoiceStatus `json:"status"`
	CreatedAt                          time.Time           `json:"created_at"`
	CustomerName                       string              `json:"customer_name"`
	Paid                               bool                `json:"paid"`
	Items                              []LineItemDTO       `json:"items"`
	RevenueByMerchant                  int64               `json:"revenue_by_merchant"`
	RevenueByMerchantDisplay           string              `json:"revenue_by_merchant_display"`
	DiscountedRevenueByMerchant        int64               `json:"discounted_revenue_by_merchant"`
	DiscountedRevenueByMerchantDisplay string              `json:"discounted_revenue_by_merchant_display"`
}

// AdminInvoiceDTO is the platform view of an invoice across merchants.
type AdminInvoiceDTO struct {
	ID                              uuid.UUID           `json:"id"`
	Status                          enums.InvoiceStatus `json:"status"`
	CreatedAt                       time.Time           `json:"created_at"`
	CustomerName                    string              `json:"customer_name"`
	Paid                            bool                `json:"paid"`
	Items                           []LineItemDTO       `json:"items"`
	Revenue                         int64               `json:"revenue"`
	RevenueDisplay                  string              `json:"revenue_display"`
	InvoiceDiscountedRevenue        int64               `json:"invoice_discounted_revenue"`
	InvoiceDiscountedRevenueDisplay string              `json:"invoice_discounted_revenue_display"`
}

// ItemStatusDTO reports a fulfilment status change.
type ItemStatusDTO struct {
	ID        uuid.UUID               `json:"id"`
	InvoiceID uuid.UUID               `json:"invoice_id"`
	ItemName  string                  `json:"item_name"`
	Status    enums.InvoiceItemStatus `json:"status"`
}

func lineItemDTOs(calc revenue.Calculator, items []revenue.LineItem) ([]LineItemDTO, int) {
	out := make([]LineItemDTO, 0, len(items))
	applied := 0
	for _, li := range items {
		figures := calc.Breakdown(li)
		dto := LineItemDTO{
			ID:                       li.ID,
			ItemID:                   li.ItemID,
			ItemName:                 li.ItemName,
			MerchantID:               li.MerchantID,
			Quantity:                 li.Quantity,
			UnitPrice:                li.UnitPrice,
			UnitPriceDisplay:         money.FormatCents(li.UnitPrice),
			Status:                   li.Status,
			GrossRevenue:             figures.Gross,
			DiscountedRevenue:        figures.Discounted.IntPart(),
			DiscountedRevenueDisplay: money.FormatCents(figures.Discounted.IntPart()),
		}
		if figures.Discount != nil && calc.Eligible {
			rule := *figures.Discount
			dto.AppliedDiscount = &AppliedDiscountDTO{
				ID:              rule.ID,
				PercentDiscount: rule.PercentDiscount,
				Threshold:       rule.Threshold,
				Label:           rule.Label(),
				ThresholdLabel:  rule.ThresholdLabel(),
			}
			applied++
		}
		out = append(out, dto)
	}
	return out, applied
}
