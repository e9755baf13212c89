package projection

import (
	"fmt"
	"sort"

	"school_projection/pkg/core/period"

	"github.com/shopspring/decimal"
)

// validCPIFrequency is shared by staff cost and tuition escalation.
func validCPIFrequency(freq int) bool {
	return freq >= 1 && freq <= 3
}

func validateStaffCostParams(p StaffCostParams) error {
	if !p.Base.IsPositive() {
		return validationf("base staff cost must be > 0, got %s", p.Base)
	}
	if p.CPIRate.IsNegative() {
		return validationf("cpi rate must be >= 0, got %s", p.CPIRate)
	}
	if !validCPIFrequency(p.CPIFrequency) {
		return validationf("cpi frequency must be 1, 2 or 3, got %d", p.CPIFrequency)
	}
	if p.StartYear > p.EndYear {
		return validationf("start year %d after end year %d", p.StartYear, p.EndYear)
	}
	for _, y := range []int{p.StartYear, p.EndYear, p.BaseYear} {
		if !period.InHorizon(y) {
			return validationf("year %d outside horizon [%d, %d]", y, period.HorizonStart, period.HorizonEnd)
		}
	}
	// BaseYear outside [StartYear, EndYear] is deliberately allowed: a base
	// anchored at a dynamic year back-fills earlier years via deflation.
	return nil
}

// CalculateStaffCostForYear computes one point of the staff-cost curve.
//
// At and after the base year the cost grows in step changes every freq
// years: cost = base * (1+rate)^floor(delta/freq). Before the base year the
// cost is deflated per-year, not stepped: cost = base / (1+rate)^|delta|,
// with the CPI period still reported as -ceil(|delta|/freq).
func CalculateStaffCostForYear(base, rate decimal.Decimal, freq, baseYear, year int) (decimal.Decimal, int) {
	delta := year - baseYear
	if delta >= 0 {
		cpiPeriod := delta / freq
		return base.Mul(growthFactor(rate, cpiPeriod)), cpiPeriod
	}
	back := -delta
	cpiPeriod := -ceilDiv(back, freq)
	return base.Div(growthFactor(rate, back)), cpiPeriod
}

// ComputeStaffCostSeries produces the staff-cost series for every year in
// [StartYear, EndYear]. Validation is fail-fast: no partial series is ever
// returned.
func ComputeStaffCostSeries(p StaffCostParams) ([]StaffCostYear, error) {
	if err := validateStaffCostParams(p); err != nil {
		return nil, err
	}
	series := make([]StaffCostYear, 0, p.EndYear-p.StartYear+1)
	for year := p.StartYear; year <= p.EndYear; year++ {
		cost, cpiPeriod := CalculateStaffCostForYear(p.Base, p.CPIRate, p.CPIFrequency, p.BaseYear, year)
		series = append(series, StaffCostYear{Year: year, Cost: cost, CPIPeriod: cpiPeriod})
	}
	return series, nil
}

// normalizeRatio treats a ratio above 1 as a mis-entered percentage and
// divides it by 100. Reports whether normalization happened.
func normalizeRatio(r decimal.Decimal) (decimal.Decimal, bool) {
	if r.GreaterThan(decimalOne) {
		return r.Div(decimalHundred), true
	}
	return r, false
}

// studentsNearestYear finds the enrollment for wantYear, falling back to the
// recorded year closest to it. ok is false when the plan has no enrollment
// at all.
func studentsNearestYear(plan CurriculumPlan, wantYear int) (students, foundYear int, ok bool) {
	if len(plan.Enrollment) == 0 {
		return 0, 0, false
	}
	points := make([]EnrollmentPoint, len(plan.Enrollment))
	copy(points, plan.Enrollment)
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	best := points[0]
	for _, pt := range points {
		if pt.Year == wantYear {
			return pt.Students, pt.Year, true
		}
		if abs(pt.Year-wantYear) < abs(best.Year-wantYear) {
			best = pt
		}
	}
	return best.Students, best.Year, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DeriveBaseStaffCost builds the base annual staff cost from curriculum
// staffing ratios at the chosen base year's enrollment:
//
//	teachers    = students * teacherRatio
//	nonTeachers = students * nonTeacherRatio
//	annualCost  = (teachers*teacherSalary + nonTeachers*nonTeacherSalary) * 12
//
// summed across curricula. Missing base-year enrollment falls back to the
// nearest recorded year; ratios above 1 are normalized. Both cases are
// surfaced as diagnostics, not silently absorbed.
func DeriveBaseStaffCost(curricula []CurriculumPlan, ratios []StaffingRatio, baseYear int) (decimal.Decimal, []Diagnostic, error) {
	if len(curricula) == 0 {
		return decimal.Zero, nil, validationf("no curricula supplied for base staff cost derivation")
	}
	if !period.InHorizon(baseYear) {
		return decimal.Zero, nil, validationf("base year %d outside horizon", baseYear)
	}

	byType := make(map[CurriculumType]StaffingRatio, len(ratios))
	for _, r := range ratios {
		byType[r.Curriculum] = r
	}

	total := decimal.Zero
	var diags []Diagnostic
	for _, plan := range curricula {
		ratio, ok := byType[plan.Type]
		if !ok {
			return decimal.Zero, nil, validationf("no staffing ratio for curriculum %s", plan.Type)
		}

		students, foundYear, ok := studentsNearestYear(plan, baseYear)
		if !ok {
			return decimal.Zero, nil, validationf("curriculum %s has no enrollment data", plan.Type)
		}
		if foundYear != baseYear {
			diags = append(diags, Diagnostic{
				Code:    DiagEnrollmentYearFallback,
				Message: fmt.Sprintf("curriculum %s: no enrollment for %d, using nearest year %d", plan.Type, baseYear, foundYear),
			})
		}

		teacherRatio, norm := normalizeRatio(ratio.TeacherRatio)
		if norm {
			diags = append(diags, Diagnostic{
				Code:    DiagRatioNormalized,
				Message: fmt.Sprintf("curriculum %s: teacher ratio %s treated as percentage", plan.Type, ratio.TeacherRatio),
			})
		}
		nonTeacherRatio, norm := normalizeRatio(ratio.NonTeacherRatio)
		if norm {
			diags = append(diags, Diagnostic{
				Code:    DiagRatioNormalized,
				Message: fmt.Sprintf("curriculum %s: non-teacher ratio %s treated as percentage", plan.Type, ratio.NonTeacherRatio),
			})
		}

		count := decimal.NewFromInt(int64(students))
		teachers := count.Mul(teacherRatio)
		nonTeachers := count.Mul(nonTeacherRatio)
		monthly := teachers.Mul(ratio.TeacherSalary).Add(nonTeachers.Mul(ratio.NonTeacherSalary))
		total = total.Add(monthly.Mul(decimalTwelve))
	}
	return total, diags, nil
}
