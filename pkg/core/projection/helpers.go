package projection

import "github.com/shopspring/decimal"

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
	decimalDays    = decimal.NewFromInt(365)
	decimalTwelve  = decimal.NewFromInt(12)
)

// powInt raises base to a non-negative integer power. Exponents here are
// bounded by the horizon length, so a plain loop keeps full precision.
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimalOne
	for i := 0; i < n; i++ {
		result = result.Mul(base)
	}
	return result
}

// growthFactor returns (1+rate)^periods for periods >= 0.
func growthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	return powInt(decimalOne.Add(rate), periods)
}

// ceilDiv is integer division rounding away from zero for positive inputs.
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// safeRatio returns num/den*100, or zero when den is zero. Used for margin
// and rent-load percentages where a zero denominator is a valid state.
func safeRatio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(decimalHundred)
}
