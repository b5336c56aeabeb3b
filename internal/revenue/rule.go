package revenue

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ruleValidator = validator.New()

// Rule is a merchant-scoped volume discount: PercentDiscount off any line
// item of the merchant whose quantity is at least Threshold.
type Rule struct {
	ID              uuid.UUID
	MerchantID      uuid.UUID
	PercentDiscount int
	Threshold       int
}

// RuleInput carries the raw, untrusted text of a rule as submitted by a form
// or JSON body.
type RuleInput struct {
	PercentDiscount string
	Threshold       string
}

// NewRule builds a rule from already-numeric values, enforcing the same
// bounds as ParseRule.
func NewRule(merchantID uuid.UUID, percent, threshold int) (Rule, error) {
	var verr ValidationError
	checkPercent(&verr, percent)
	checkThreshold(&verr, threshold)
	if verr.Len() > 0 {
		return Rule{}, &verr
	}
	return Rule{MerchantID: merchantID, PercentDiscount: percent, Threshold: threshold}, nil
}

// ParseRule validates raw input and reports every violation at once.
func ParseRule(merchantID uuid.UUID, input RuleInput) (Rule, error) {
	var verr ValidationError

	percent, ok := parseField(&verr, input.PercentDiscount, fieldPercentDiscount)
	if ok {
		checkPercent(&verr, percent)
	}
	threshold, ok := parseField(&verr, input.Threshold, fieldThreshold)
	if ok {
		checkThreshold(&verr, threshold)
	}

	if verr.Len() > 0 {
		return Rule{}, &verr
	}
	return Rule{MerchantID: merchantID, PercentDiscount: percent, Threshold: threshold}, nil
}

func parseField(verr *ValidationError, raw string, field ruleField) (int, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		verr.add(field.blank, field.name, field.label+" can't be blank")
		return 0, false
	}
	parsed, err := strconv.Atoi(value)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		// Out-of-range literals arrive clamped and fail the bound checks.
		return parsed, true
	}
	if _, decErr := decimal.NewFromString(value); decErr == nil {
		verr.add(field.notANumber, field.name, field.label+" must be an integer")
	} else {
		verr.add(field.notANumber, field.name, field.label+" is not a number")
	}
	return 0, false
}

func checkPercent(verr *ValidationError, percent int) {
	if ruleValidator.Var(percent, "gt=1") != nil {
		verr.add(PercentDiscountTooLow, fieldPercentDiscount.name, "Percent discount must be greater than 1")
	}
	if ruleValidator.Var(percent, "lt=100") != nil {
		verr.add(PercentDiscountTooHigh, fieldPercentDiscount.name, "Percent discount must be less than 100")
	}
}

func checkThreshold(verr *ValidationError, threshold int) {
	if ruleValidator.Var(threshold, "gt=1") != nil {
		verr.add(ThresholdTooLow, fieldThreshold.name, "Threshold must be greater than 1")
	}
	if threshold > math.MaxInt32 {
		verr.add(ThresholdTooHigh, fieldThreshold.name, fmt.Sprintf("Threshold must be less than or equal to %d", math.MaxInt32))
	}
}

// Fraction is the exact multiplier PercentDiscount/100.
func (r Rule) Fraction() decimal.Decimal {
	return decimal.New(int64(r.PercentDiscount), -2)
}

// Label renders the percent for display, e.g. "20%".
func (r Rule) Label() string {
	return fmt.Sprintf("%d%%", r.PercentDiscount)
}

// ThresholdLabel renders the threshold for display, e.g. "Threshold: 10 items".
func (r Rule) ThresholdLabel() string {
	return fmt.Sprintf("Threshold: %d items", r.Threshold)
}

// RuleSet holds rules keyed by owning merchant.
type RuleSet map[uuid.UUID][]Rule

// GroupRules indexes rules by merchant, keeping input order within a merchant.
func GroupRules(rules []Rule) RuleSet {
	set := make(RuleSet)
	for _, rule := range rules {
		set[rule.MerchantID] = append(set[rule.MerchantID], rule)
	}
	return set
}

// For returns the rules of one merchant.
func (s RuleSet) For(merchantID uuid.UUID) []Rule {
	if s == nil {
		return nil
	}
	return s[merchantID]
}
