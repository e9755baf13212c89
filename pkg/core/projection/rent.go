package projection

import (
	"school_projection/pkg/core/period"

	"github.com/shopspring/decimal"
)

func validateRentPlan(plan RentPlan) error {
	switch plan.Model {
	case RentFixedEscalation:
		if plan.FixedEscalation == nil {
			return validationf("rent model %s requires fixed_escalation parameters", plan.Model)
		}
		if plan.FixedEscalation.EscalationRate.IsNegative() {
			return validationf("rent escalation rate must be >= 0")
		}
	case RentRevenueShare:
		if plan.RevenueShare == nil {
			return validationf("rent model %s requires revenue_share parameters", plan.Model)
		}
	case RentPartnerModel:
		if plan.Partner == nil {
			return validationf("rent model %s requires partner parameters", plan.Model)
		}
	default:
		return validationf("unknown rent model %q", plan.Model)
	}
	return nil
}

// dynamicRent dispatches the tagged union once per year. revenue is the
// already-computed revenue for the same year (revenue-share input).
func dynamicRent(plan RentPlan, year int, revenue decimal.Decimal) decimal.Decimal {
	switch plan.Model {
	case RentFixedEscalation:
		p := plan.FixedEscalation
		years := year - p.StartYear
		if years < 0 {
			years = 0
		}
		return p.BaseRent.Mul(growthFactor(p.EscalationRate, years))
	case RentRevenueShare:
		p := plan.RevenueShare
		return decimal.Max(p.MinRent, revenue.Mul(p.SharePercent))
	case RentPartnerModel:
		p := plan.Partner
		asset := p.LandSize.Mul(p.LandPricePerSqm).Add(p.BUASize.Mul(p.ConstructionCostPerSqm))
		return asset.Mul(p.YieldBase)
	}
	return decimal.Zero
}

// RentSeries computes rent for every year in the horizon.
//
// Historical years read uploaded actuals (model formula as fallback).
// Transition years repeat the 2024 actual scaled by the global adjustment
// percent; the rent model deliberately does not govern them, and a missing
// 2024 actual is a hard error because transition rent has no formula to
// fall back to. Dynamic years dispatch the configured model.
func RentSeries(in *Input, src *metricSource, revenue []decimal.Decimal) ([]decimal.Decimal, error) {
	if err := validateRentPlan(in.Rent); err != nil {
		return nil, err
	}

	var transitionRent decimal.Decimal
	needTransition := false
	for year := in.StartYear; year <= in.EndYear; year++ {
		if period.Classify(year) == period.Transition {
			needTransition = true
			break
		}
	}
	if needTransition {
		base, ok := src.actual(period.TransitionStart - 1)
		if !ok {
			return nil, notFoundf("no %d actuals to base transition rent on", period.TransitionStart-1)
		}
		adj := decimalOne.Add(in.Settings.RentAdjustmentPct.Div(decimalHundred))
		transitionRent = base.Rent.Mul(adj)
	}

	series := make([]decimal.Decimal, in.EndYear-in.StartYear+1)
	for year := in.StartYear; year <= in.EndYear; year++ {
		i := year - in.StartYear
		switch period.Classify(year) {
		case period.Transition:
			series[i] = transitionRent
		default:
			y, rev := year, revenue[i]
			series[i] = src.resolve(MetricRent, year, func() decimal.Decimal {
				return dynamicRent(in.Rent, y, rev)
			})
		}
	}
	return series, nil
}
