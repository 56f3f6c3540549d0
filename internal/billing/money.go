// Package billing holds the pure arithmetic behind orders, budgets,
// receivables, payables, recurring costs and the cash-flow reports.
// Everything here is free of persistence so it can be tested in isolation.
// All money is integer cents; floating point is never used for currency.
package billing

// SplitInstallments divides totalCents into count parts that sum back to
// totalCents exactly. Every part gets the floor share and the last one
// absorbs the remainder. Returns nil when count < 1 or totalCents < 0;
// callers validate bounds before building a plan.
func SplitInstallments(totalCents int64, count int) []int64 {
	if count < 1 || totalCents < 0 {
		return nil
	}
	base := totalCents / int64(count)
	remainder := totalCents - base*int64(count)

	amounts := make([]int64, count)
	for i := range amounts {
		amounts[i] = base
	}
	amounts[count-1] = base + remainder
	return amounts
}

// LineItem is a normalized order/budget line with its extended total.
type LineItem struct {
	Name           string
	Description    string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
}

// CalcTotals sums line totals and applies the discount, flooring at zero.
func CalcTotals(items []LineItem, discountCents int64) (subtotalCents, totalCents int64) {
	for _, it := range items {
		subtotalCents += it.TotalCents
	}
	totalCents = subtotalCents - discountCents
	if totalCents < 0 {
		totalCents = 0
	}
	return subtotalCents, totalCents
}
