package revenue

import "strings"

// ViolationKind names one field/rule pair a discount rule can violate.
type ViolationKind string

const (
	PercentDiscountBlank      ViolationKind = "PercentDiscountBlank"
	PercentDiscountNotANumber ViolationKind = "PercentDiscountNotANumber"
	PercentDiscountTooLow     ViolationKind = "PercentDiscountTooLow"
	PercentDiscountTooHigh    ViolationKind = "PercentDiscountTooHigh"
	ThresholdBlank            ViolationKind = "ThresholdBlank"
	ThresholdNotANumber       ViolationKind = "ThresholdNotANumber"
	ThresholdTooLow           ViolationKind = "ThresholdTooLow"
	ThresholdTooHigh          ViolationKind = "ThresholdTooHigh"
)

type ruleField struct {
	name       string
	label      string
	blank      ViolationKind
	notANumber ViolationKind
}

var (
	fieldPercentDiscount = ruleField{
		name:       "percent_discount",
		label:      "Percent discount",
		blank:      PercentDiscountBlank,
		notANumber: PercentDiscountNotANumber,
	}
	fieldThreshold = ruleField{
		name:       "threshold",
		label:      "Threshold",
		blank:      ThresholdBlank,
		notANumber: ThresholdNotANumber,
	}
)

// Violation is a single failed check on a discount rule.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Field   string        `json:"field"`
	Message string        `json:"message"`
}

// ValidationError collects every violation found while building a rule.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) add(kind ViolationKind, field, message string) {
	e.Violations = append(e.Violations, Violation{Kind: kind, Field: field, Message: message})
}

func (e *ValidationError) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Violations)
}

// Messages returns the human readable message of every violation, in order.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Message)
	}
	return out
}

// Kinds returns the kind of every violation, in order.
func (e *ValidationError) Kinds() []ViolationKind {
	if e == nil {
		return nil
	}
	out := make([]ViolationKind, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Kind)
	}
	return out
}

func (e *ValidationError) Has(kind ViolationKind) bool {
	if e == nil {
		return false
	}
	for _, v := range e.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func (e *ValidationError) Error() string {
	return "invalid bulk discount: " + strings.Join(e.Messages(), ", ")
}
