package projection

import "github.com/shopspring/decimal"

// EBITDASeries combines the four calculator outputs:
// ebitda = revenue - staffCost - rent - opex. Negative EBITDA is a valid
// business state, not an error.
func EBITDASeries(revenue, staffCost, rent, opex []decimal.Decimal) []decimal.Decimal {
	series := make([]decimal.Decimal, len(revenue))
	for i := range revenue {
		series[i] = revenue[i].Sub(staffCost[i]).Sub(rent[i]).Sub(opex[i])
	}
	return series
}

// EBITDAMargin is ebitda/revenue*100, defined as 0 for zero revenue.
func EBITDAMargin(ebitda, revenue decimal.Decimal) decimal.Decimal {
	return safeRatio(ebitda, revenue)
}

// RentLoad is rent/revenue*100, defined as 0 for zero revenue.
func RentLoad(rent, revenue decimal.Decimal) decimal.Decimal {
	return safeRatio(rent, revenue)
}
