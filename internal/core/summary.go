package core

import "github.com/shopspring/decimal"

// CategoryAmount is an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   decimal.Decimal
}

// Summary holds the ledger-wide aggregates shown on the dashboard: the
// grand total and per-category sums.
type Summary struct {
	Total      decimal.Decimal
	ByCategory []CategoryAmount
}

// Summarize computes the total and the per-category sums for a ledger.
// Categories appear in presentation order; categories with no records
// are omitted, matching what the charts display.
func Summarize(l Ledger) Summary {
	sums := make(map[Category]decimal.Decimal, len(l))
	total := decimal.Zero
	for _, r := range l {
		sums[r.Category] = sums[r.Category].Add(r.Amount)
		total = total.Add(r.Amount)
	}
	s := Summary{Total: total}
	for _, c := range Categories() {
		if amt, ok := sums[c]; ok {
			s.ByCategory = append(s.ByCategory, CategoryAmount{Category: c, Amount: amt})
		}
	}
	return s
}
