package projection

import (
	"school_projection/pkg/core/period"

	"github.com/shopspring/decimal"
)

// TuitionForYear escalates a curriculum's base tuition by CPI in steps of
// the plan's own frequency, anchored at the plan's base year. Forward only:
// years before the base year keep the base tuition.
func TuitionForYear(plan CurriculumPlan, cpiRate decimal.Decimal, year int) decimal.Decimal {
	delta := year - plan.TuitionBaseYear
	if delta < 0 {
		delta = 0
	}
	return plan.TuitionBase.Mul(growthFactor(cpiRate, delta/plan.CPIFrequency))
}

// enrollmentForYear returns the projected students for a year; a year with
// no recorded point means zero students, not an error.
func enrollmentForYear(plan CurriculumPlan, year int) int {
	for _, pt := range plan.Enrollment {
		if pt.Year == year {
			return pt.Students
		}
	}
	return 0
}

// RationEnrollment scales each curriculum's requested enrollment by the
// common factor limit/total and floors to an integer when the total exceeds
// the cap. Proportional rationing, never priority-based truncation.
func RationEnrollment(requested []int, limit int) []int {
	total := 0
	for _, n := range requested {
		total += n
	}
	out := make([]int, len(requested))
	if total <= limit || total == 0 {
		copy(out, requested)
		return out
	}
	factor := decimal.NewFromInt(int64(limit)).Div(decimal.NewFromInt(int64(total)))
	for i, n := range requested {
		out[i] = int(decimal.NewFromInt(int64(n)).Mul(factor).Floor().IntPart())
	}
	return out
}

// transitionCap resolves the enrollment cap for a transition year: the
// admin's per-year target when recorded, otherwise the global capacity cap.
// Zero means no cap.
func transitionCap(src *metricSource, settings AdminSettings, year int) int {
	if td, ok := src.transitionData(year); ok && td.TargetEnrollment > 0 {
		return td.TargetEnrollment
	}
	return settings.CapacityCap
}

// effectiveEnrollments returns the per-curriculum student counts for a year
// after transition rationing and per-curriculum capacity clamping.
func effectiveEnrollments(in *Input, src *metricSource, year int) []int {
	requested := make([]int, len(in.Curricula))
	for i, plan := range in.Curricula {
		requested[i] = enrollmentForYear(plan, year)
	}

	if period.Classify(year) == period.Transition {
		if limit := transitionCap(src, in.Settings, year); limit > 0 {
			requested = RationEnrollment(requested, limit)
		}
	}

	for i, plan := range in.Curricula {
		if plan.Capacity > 0 && requested[i] > plan.Capacity {
			requested[i] = plan.Capacity
		}
	}
	return requested
}

// revenueFormula sums tuition * effective students across curricula.
func revenueFormula(in *Input, src *metricSource, year int) decimal.Decimal {
	students := effectiveEnrollments(in, src, year)
	total := decimal.Zero
	for i, plan := range in.Curricula {
		if students[i] == 0 {
			continue
		}
		tuition := TuitionForYear(plan, in.Settings.CPIRate, year)
		total = total.Add(tuition.Mul(decimal.NewFromInt(int64(students[i]))))
	}
	return total
}

// RevenueSeries computes total revenue for every year in the horizon,
// sourcing historical years from actuals with the formula as fallback.
func RevenueSeries(in *Input, src *metricSource) []decimal.Decimal {
	series := make([]decimal.Decimal, in.EndYear-in.StartYear+1)
	for year := in.StartYear; year <= in.EndYear; year++ {
		y := year
		series[year-in.StartYear] = src.resolve(MetricRevenue, year, func() decimal.Decimal {
			return revenueFormula(in, src, y)
		})
	}
	return series
}
