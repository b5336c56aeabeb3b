package revenue

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// LineItem is a snapshot of one invoice line, resolved to the merchant that
// owns the referenced catalog item.
type LineItem struct {
	ID         uuid.UUID
	InvoiceID  uuid.UUID
	ItemID     uuid.UUID
	ItemName   string
	MerchantID uuid.UUID
	Quantity   int
	UnitPrice  int64
	Status     enums.InvoiceItemStatus
}

// Transaction is a payment attempt against an invoice.
type Transaction struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Result    enums.TransactionResult
}

// GrossRevenue is quantity times unit price, in cents.
func GrossRevenue(li LineItem) int64 {
	return int64(li.Quantity) * li.UnitPrice
}

// Eligible reports whether any transaction succeeded. One success unlocks
// revenue for every line of the invoice.
func Eligible(txs []Transaction) bool {
	for _, tx := range txs {
		if tx.Result.IsSuccessful() {
			return true
		}
	}
	return false
}

// ApplicableDiscount picks, among the line item merchant's rules whose
// threshold is met, the one with the highest percent. On equal percent the
// first rule in input order is kept.
func ApplicableDiscount(li LineItem, rules []Rule) (Rule, bool) {
	var (
		best  Rule
		found bool
	)
	for _, rule := range rules {
		if rule.MerchantID != li.MerchantID || rule.Threshold > li.Quantity {
			continue
		}
		if !found || rule.PercentDiscount > best.PercentDiscount {
			best = rule
			found = true
		}
	}
	return best, found
}

// DiscountedRevenue is gross revenue less the applicable discount. It is zero
// when the owning invoice is not eligible and may carry a fractional cent.
func DiscountedRevenue(li LineItem, rules []Rule, eligible bool) decimal.Decimal {
	if !eligible {
		return decimal.Zero
	}
	gross := decimal.NewFromInt(GrossRevenue(li))
	rule, ok := ApplicableDiscount(li, rules)
	if !ok {
		return gross
	}
	return gross.Sub(gross.Mul(rule.Fraction()))
}

// LineRevenue is the per-line figure shown on invoice pages.
type LineRevenue struct {
	Gross      int64
	Discounted decimal.Decimal
	Discount   *Rule
}

// Calculator evaluates lines of a single invoice against a resolved rule set,
// with the invoice gate computed once.
type Calculator struct {
	Rules    RuleSet
	Eligible bool
}

// NewCalculator resolves the eligibility gate from the invoice transactions.
func NewCalculator(rules RuleSet, txs []Transaction) Calculator {
	return Calculator{Rules: rules, Eligible: Eligible(txs)}
}

func (c Calculator) Discount(li LineItem) (Rule, bool) {
	return ApplicableDiscount(li, c.Rules.For(li.MerchantID))
}

func (c Calculator) Discounted(li LineItem) decimal.Decimal {
	return DiscountedRevenue(li, c.Rules.For(li.MerchantID), c.Eligible)
}

// Breakdown reports gross, discounted revenue and the applied rule if any.
func (c Calculator) Breakdown(li LineItem) LineRevenue {
	out := LineRevenue{
		Gross:      GrossRevenue(li),
		Discounted: c.Discounted(li),
	}
	if rule, ok := c.Discount(li); ok {
		out.Discount = &rule
	}
	return out
}
