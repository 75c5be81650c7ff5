package grocery

import "github.com/shopspring/decimal"

// lineTotal computes price*quantity exactly; float multiplication drifts on
// cent values like 4.99*3.
func lineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func sumLines(entries []CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(lineTotal(e.Price, e.Quantity))
	}
	return total
}
