package projection

import (
	"school_projection/pkg/core/period"

	"github.com/shopspring/decimal"
)

// Summarize derives the portfolio metrics from a full solved projection.
// NPV of rent discounts dynamic-period years only, anchored at the dynamic
// boundary; the averages run over every projected year.
func Summarize(years []YearlyProjection, discountRate decimal.Decimal) ProjectionSummary {
	var s ProjectionSummary
	if len(years) == 0 {
		return s
	}

	totalRevenue := decimal.Zero
	sumMargin := decimal.Zero
	sumRentLoad := decimal.Zero
	npvRent := decimal.Zero

	for _, yr := range years {
		totalRevenue = totalRevenue.Add(yr.Revenue)
		sumMargin = sumMargin.Add(yr.EBITDAMgn)
		sumRentLoad = sumRentLoad.Add(yr.RentLoad)

		if yr.Year >= period.DynamicStart {
			discount := growthFactor(discountRate, yr.Year-period.DynamicStart)
			npvRent = npvRent.Add(yr.Rent.Div(discount))
		}
	}

	count := decimal.NewFromInt(int64(len(years)))
	s.TotalRevenue = totalRevenue
	s.AvgEBITDAMargin = sumMargin.Div(count)
	s.AvgRentLoad = sumRentLoad.Div(count)
	s.NPVRent = npvRent
	return s
}
