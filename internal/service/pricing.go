package service

import "github.com/shopspring/decimal"

// LineTotal computes quantity × weight_oz × unit_price rounded to cents.
// Money stays fixed-point end to end; float64 drifts on sums like 0.1 + 0.2.
func LineTotal(quantity int, weightOz, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(weightOz).Mul(unitPrice).Round(2)
}

// OrderTotal sums already-rounded line totals, so the order total always
// equals the sum of its items' total_price exactly.
func OrderTotal(items []LineItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Quantity, it.WeightOz, it.UnitPrice))
	}
	return total
}
