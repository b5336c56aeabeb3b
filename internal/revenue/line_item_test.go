package revenue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrossRevenue(t *testing.T) {
	li := lineItem(uuid.New(), uuid.New(), "Widget", 10, 15000)
	assert.Equal(t, int64(150000), GrossRevenue(li))

	li.Quantity = 0
	assert.Equal(t, int64(0), GrossRevenue(li))
}

func TestEligible(t *testing.T) {
	invoiceID := uuid.New()
	assert.False(t, Eligible(nil))
	assert.False(t, Eligible([]Transaction{failed(invoiceID), failed(invoiceID)}))
	assert.True(t, Eligible([]Transaction{failed(invoiceID), success(invoiceID)}))
}

func TestDiscountedRevenueSingleRule(t *testing.T) {
	merchantID := uuid.New()
	li := lineItem(uuid.New(), merchantID, "Widget", 10, 15000)
	rules := []Rule{rule(merchantID, 20, 10)}

	got := DiscountedRevenue(li, rules, true)
	assert.True(t, got.Equal(decimal.NewFromInt(120000)), "got %s", got)
}

func TestDiscountedRevenueHighestPercentWins(t *testing.T) {
	merchantID := uuid.New()
	li := lineItem(uuid.New(), merchantID, "Widget", 10, 15000)
	rules := []Rule{rule(merchantID, 10, 2), rule(merchantID, 50, 2)}

	got := DiscountedRevenue(li, rules, true)
	assert.True(t, got.Equal(decimal.NewFromInt(75000)), "got %s", got)
}

func TestDiscountedRevenueThresholdNotMet(t *testing.T) {
	merchantID := uuid.New()
	li := lineItem(uuid.New(), merchantID, "Widget", 5, 15000)
	rules := []Rule{rule(merchantID, 20, 10)}

	_, ok := ApplicableDiscount(li, rules)
	assert.False(t, ok)
	got := DiscountedRevenue(li, rules, true)
	assert.True(t, got.Equal(decimal.NewFromInt(GrossRevenue(li))), "got %s", got)
	assert.Equal(t, int64(75000), got.IntPart())
}

func TestDiscountedRevenueNotEligible(t *testing.T) {
	merchantID := uuid.New()
	li := lineItem(uuid.New(), merchantID, "Widget", 10, 15000)

	got := DiscountedRevenue(li, []Rule{rule(merchantID, 20, 2)}, false)
	assert.True(t, got.IsZero())
}

func TestApplicableDiscountMaxPercentNotNearestThreshold(t *testing.T) {
	merchantID := uuid.New()
	low := rule(merchantID, 10, 5)
	high := rule(merchantID, 50, 10)
	bigger := rule(merchantID, 60, 20)

	li := lineItem(uuid.New(), merchantID, "Widget", 10, 100)
	got, ok := ApplicableDiscount(li, []Rule{low, bigger, high})
	require.True(t, ok)
	assert.Equal(t, high.ID, got.ID)

	li.Quantity = 7
	got, ok = ApplicableDiscount(li, []Rule{low, bigger, high})
	require.True(t, ok)
	assert.Equal(t, low.ID, got.ID)
}

func TestApplicableDiscountTieKeepsFirst(t *testing.T) {
	merchantID := uuid.New()
	first := rule(merchantID, 30, 3)
	second := rule(merchantID, 30, 2)
	li := lineItem(uuid.New(), merchantID, "Widget", 5, 100)

	got, ok := ApplicableDiscount(li, []Rule{first, second})
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)

	got, ok = ApplicableDiscount(li, []Rule{second, first})
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestApplicableDiscountIgnoresOtherMerchants(t *testing.T) {
	merchantID := uuid.New()
	li := lineItem(uuid.New(), merchantID, "Widget", 10, 100)

	_, ok := ApplicableDiscount(li, []Rule{rule(uuid.New(), 50, 2)})
	assert.False(t, ok)
}

func TestDiscountedRevenueProperties(t *testing.T) {
	merchantID := uuid.New()
	rules := []Rule{
		rule(merchantID, 2, 2),
		rule(merchantID, 15, 4),
		rule(merchantID, 33, 7),
		rule(merchantID, 99, 12),
	}

	for qty := 0; qty <= 15; qty++ {
		for _, price := range []int64{0, 1, 7, 999, 15000} {
			li := lineItem(uuid.New(), merchantID, "Widget", qty, price)
			gross := decimal.NewFromInt(GrossRevenue(li))

			first := DiscountedRevenue(li, rules, true)
			second := DiscountedRevenue(li, rules, true)
			assert.True(t, first.Equal(second), "qty=%d price=%d not idempotent", qty, price)
			assert.True(t, first.LessThanOrEqual(gross), "qty=%d price=%d exceeds gross", qty, price)
			assert.False(t, first.IsNegative())

			got, ok := ApplicableDiscount(li, rules)
			var want *Rule
			for i := range rules {
				if rules[i].Threshold <= qty && (want == nil || rules[i].PercentDiscount > want.PercentDiscount) {
					want = &rules[i]
				}
			}
			if want == nil {
				assert.False(t, ok, "qty=%d expected no discount", qty)
				continue
			}
			require.True(t, ok, "qty=%d expected a discount", qty)
			assert.Equal(t, want.ID, got.ID, "qty=%d", qty)
		}
	}
}

func TestCalculatorBreakdown(t *testing.T) {
	merchantID := uuid.New()
	invoiceID := uuid.New()
	applied := rule(merchantID, 20, 10)
	calc := NewCalculator(GroupRules([]Rule{applied}), []Transaction{success(invoiceID)})
	require.True(t, calc.Eligible)

	discounted := calc.Breakdown(lineItem(invoiceID, merchantID, "Widget", 10, 15000))
	assert.Equal(t, int64(150000), discounted.Gross)
	assert.Equal(t, int64(120000), discounted.Discounted.IntPart())
	require.NotNil(t, discounted.Discount)
	assert.Equal(t, applied.ID, discounted.Discount.ID)

	plain := calc.Breakdown(lineItem(invoiceID, merchantID, "Gadget", 2, 500))
	assert.Equal(t, int64(1000), plain.Gross)
	assert.Equal(t, int64(1000), plain.Discounted.IntPart())
	assert.Nil(t, plain.Discount)
}
