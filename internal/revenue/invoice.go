package revenue

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// Invoice is a snapshot of an invoice with its lines and payment attempts.
type Invoice struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	Status       enums.InvoiceStatus
	CreatedAt    time.Time
	Items        []LineItem
	Transactions []Transaction
}

// Revenue is the gross total of every line, or zero when the invoice has no
// successful transaction.
func Revenue(inv Invoice) int64 {
	if !Eligible(inv.Transactions) {
		return 0
	}
	return sumGross(inv.Items)
}

// MerchantItems returns the merchant's lines ordered by item name. Lines with
// the same name keep their input order.
func MerchantItems(inv Invoice, merchantID uuid.UUID) []LineItem {
	out := make([]LineItem, 0, len(inv.Items))
	for _, li := range inv.Items {
		if li.MerchantID == merchantID {
			out = append(out, li)
		}
	}
	slices.SortStableFunc(out, func(a, b LineItem) int {
		return strings.Compare(a.ItemName, b.ItemName)
	})
	return out
}

// RevenueByMerchant is Revenue restricted to one merchant's lines.
func RevenueByMerchant(inv Invoice, merchantID uuid.UUID) int64 {
	if !Eligible(inv.Transactions) {
		return 0
	}
	return sumGross(MerchantItems(inv, merchantID))
}

// DiscountedRevenueByMerchant sums the merchant's discounted lines, each
// truncated to whole cents.
func DiscountedRevenueByMerchant(inv Invoice, merchantID uuid.UUID, rules RuleSet) int64 {
	return sumDiscounted(NewCalculator(rules, inv.Transactions), MerchantItems(inv, merchantID))
}

// InvoiceDiscountedRevenue discounts every line by its own merchant's best
// rule, truncates per line and sums.
func InvoiceDiscountedRevenue(inv Invoice, rules RuleSet) int64 {
	return sumDiscounted(NewCalculator(rules, inv.Transactions), inv.Items)
}

func sumGross(items []LineItem) int64 {
	var total int64
	for _, li := range items {
		total += GrossRevenue(li)
	}
	return total
}

func sumDiscounted(calc Calculator, items []LineItem) int64 {
	if !calc.Eligible {
		return 0
	}
	var total int64
	for _, li := range items {
		total += calc.Discounted(li).IntPart()
	}
	return total
}
