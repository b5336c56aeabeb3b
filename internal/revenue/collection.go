package revenue

import "github.com/google/uuid"

// CollectionRevenue sums gross revenue over an arbitrary set of lines,
// counting only lines whose invoice has a successful transaction. The caller
// supplies freshly loaded transactions on every call.
func CollectionRevenue(items []LineItem, txByInvoice map[uuid.UUID][]Transaction) int64 {
	gate := make(map[uuid.UUID]bool, len(txByInvoice))
	var total int64
	for _, li := range items {
		eligible, seen := gate[li.InvoiceID]
		if !seen {
			eligible = Eligible(txByInvoice[li.InvoiceID])
			gate[li.InvoiceID] = eligible
		}
		if eligible {
			total += GrossRevenue(li)
		}
	}
	return total
}

// GroupTransactions indexes transactions by invoice.
func GroupTransactions(txs []Transaction) map[uuid.UUID][]Transaction {
	out := make(map[uuid.UUID][]Transaction)
	for _, tx := range txs {
		out[tx.InvoiceID] = append(out[tx.InvoiceID], tx)
	}
	return out
}
