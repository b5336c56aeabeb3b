package merchants

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/internal/repo"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/money"
)

// ReadyToShipDTO is an unshipped line on the merchant dashboard.
type ReadyToShipDTO struct {
	InvoiceItemID    uuid.UUID               `json:"invoice_item_id"`
	InvoiceID        uuid.UUID               `json:"invoice_id"`
	ItemID           uuid.UUID               `json:"item_id"`
	ItemName         string                  `json:"item_name"`
	Quantity         int                     `json:"quantity"`
	Status           enums.InvoiceItemStatus `json:"status"`
	InvoiceCreatedAt time.Time               `json:"invoice_created_at"`
}

// CustomerDTO is a ranked customer.
type CustomerDTO struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	SuccessfulTransactions int64     `json:"successful_transactions"`
}

// MerchantDashboardDTO summarises a merchant's sales.
type MerchantDashboardDTO struct {
	ID             uuid.UUID            `json:"id"`
	Name           string               `json:"name"`
	Status         enums.MerchantStatus `json:"status"`
	Revenue        int64                `json:"revenue"`
	RevenueDisplay string               `json:"revenue_display"`
	DiscountCount  int64                `json:"discount_count"`
	TopCustomers   []CustomerDTO        `json:"top_customers"`
	ReadyToShip    []ReadyToShipDTO     `json:"items_ready_to_ship"`
}

// AdminDashboardDTO summarises the platform.
type AdminDashboardDTO struct {
	Revenue           int64         `json:"revenue"`
	RevenueDisplay    string        `json:"revenue_display"`
	EnabledMerchants  int64         `json:"enabled_merchants"`
	DisabledMerchants int64         `json:"disabled_merchants"`
	TopCustomers      []CustomerDTO `json:"top_customers"`
}

func readyToShipDTOs(rows []repo.LineItemRow) []ReadyToShipDTO {
	out := make([]ReadyToShipDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ReadyToShipDTO{
			InvoiceItemID:    row.ID,
			InvoiceID:        row.InvoiceID,
			ItemID:           row.ItemID,
			ItemName:         row.ItemName,
			Quantity:         row.Quantity,
			Status:           row.Status,
			InvoiceCreatedAt: row.InvoiceCreatedAt,
		})
	}
	return out
}

func customerDTOs(rows []CustomerRank) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CustomerDTO{
			ID:                     row.ID,
			Name:                   row.FirstName + " " + row.LastName,
			SuccessfulTransactions: row.SuccessfulTransactions,
		})
	}
	return out
}

func displayCents(cents int64) string {
	return money.FormatCents(cents)
}
