package enums

import "fmt"

// TransactionResult is the outcome of a payment attempt against an invoice.
type TransactionResult string

const (
	TransactionResultSuccess TransactionResult = "success"
	TransactionResultFailed  TransactionResult = "failed"
)

var validTransactionResults = []TransactionResult{
	TransactionResultSuccess,
	TransactionResultFailed,
}

// String implements fmt.Stringer.
func (t TransactionResult) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionResult.
func (t TransactionResult) IsValid() bool {
	for _, candidate := range validTransactionResults {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsSuccessful reports whether the transaction unlocks revenue for its invoice.
func (t TransactionResult) IsSuccessful() bool {
	return t == TransactionResultSuccess
}

// ParseTransactionResult converts raw input into a TransactionResult.
func ParseTransactionResult(value string) (TransactionResult, error) {
	for _, candidate := range validTransactionResults {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction result %q", value)
}
