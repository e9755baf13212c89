package projection

import "github.com/shopspring/decimal"

func validateOpexAccounts(accounts []OpexSubAccount) error {
	for _, acct := range accounts {
		if acct.IsFixed {
			if acct.FixedAmount.IsNegative() {
				return validationf("opex account %q: fixed amount must be >= 0", acct.Name)
			}
			continue
		}
		if acct.PercentOfRevenue.IsNegative() || acct.PercentOfRevenue.GreaterThan(decimalOne) {
			return validationf("opex account %q: percent of revenue must be in [0, 1]", acct.Name)
		}
	}
	return nil
}

// OpexSeries computes operating expenses per year: the sum of fixed
// sub-accounts plus percentage sub-accounts applied to that year's revenue.
// Historical years read actuals with the formula as fallback; transition
// and dynamic years are always formula-driven.
func OpexSeries(in *Input, src *metricSource, revenue []decimal.Decimal) []decimal.Decimal {
	fixedTotal := decimal.Zero
	pctTotal := decimal.Zero
	for _, acct := range in.Opex {
		if acct.IsFixed {
			fixedTotal = fixedTotal.Add(acct.FixedAmount)
		} else {
			pctTotal = pctTotal.Add(acct.PercentOfRevenue)
		}
	}

	series := make([]decimal.Decimal, in.EndYear-in.StartYear+1)
	for year := in.StartYear; year <= in.EndYear; year++ {
		i := year - in.StartYear
		rev := revenue[i]
		series[i] = src.resolve(MetricOpex, year, func() decimal.Decimal {
			return fixedTotal.Add(pctTotal.Mul(rev))
		})
	}
	return series
}
