// Package projection implements the multi-year operating-model engine for a
// school: revenue, staff cost, rent and opex calculators feeding a circular
// solver that reconciles depreciation, interest, zakat and cash across the
// full horizon. The engine is a pure function over a fully-supplied input
// snapshot; it performs no I/O and holds no state between invocations.
package projection

import (
	"school_projection/pkg/core/period"

	"github.com/shopspring/decimal"
)

// validateInput fail-fasts on malformed input before any computation. It
// returns a normalized shallow copy (tuition base years defaulted, staff
// range pinned to the projection range) so the caller's snapshot is never
// mutated.
func validateInput(in *Input) (*Input, []Diagnostic, error) {
	if in == nil {
		return nil, nil, validationf("nil input")
	}
	if !period.InHorizon(in.StartYear) || !period.InHorizon(in.EndYear) {
		return nil, nil, validationf("projection range [%d, %d] outside horizon", in.StartYear, in.EndYear)
	}
	if in.StartYear > in.EndYear {
		return nil, nil, validationf("start year %d after end year %d", in.StartYear, in.EndYear)
	}

	norm := *in
	norm.Curricula = make([]CurriculumPlan, len(in.Curricula))
	copy(norm.Curricula, in.Curricula)

	for i := range norm.Curricula {
		plan := &norm.Curricula[i]
		if plan.Capacity < 0 {
			return nil, nil, validationf("curriculum %s: capacity must be >= 0", plan.Type)
		}
		if !plan.TuitionBase.IsPositive() {
			return nil, nil, validationf("curriculum %s: tuition base must be > 0", plan.Type)
		}
		if !validCPIFrequency(plan.CPIFrequency) {
			return nil, nil, validationf("curriculum %s: cpi frequency must be 1, 2 or 3", plan.Type)
		}
		if plan.TuitionBaseYear == 0 {
			plan.TuitionBaseYear = in.StartYear
		}
		if !period.InHorizon(plan.TuitionBaseYear) {
			return nil, nil, validationf("curriculum %s: tuition base year %d outside horizon", plan.Type, plan.TuitionBaseYear)
		}
		seen := make(map[int]bool, len(plan.Enrollment))
		for _, pt := range plan.Enrollment {
			if pt.Students < 0 {
				return nil, nil, validationf("curriculum %s: negative enrollment in %d", plan.Type, pt.Year)
			}
			if seen[pt.Year] {
				return nil, nil, validationf("curriculum %s: duplicate enrollment entry for %d", plan.Type, pt.Year)
			}
			seen[pt.Year] = true
		}
	}

	for _, item := range in.Capex {
		if item.Amount.IsNegative() {
			return nil, nil, validationf("capex item for %d: amount must be >= 0", item.Year)
		}
	}
	for _, td := range in.Transition {
		if period.Classify(td.Year) != period.Transition {
			return nil, nil, validationf("transition data for %d: not a transition year", td.Year)
		}
		if td.TargetEnrollment <= 0 {
			return nil, nil, validationf("transition data for %d: target enrollment must be > 0", td.Year)
		}
		if !td.StaffCostBase.IsPositive() {
			return nil, nil, validationf("transition data for %d: staff cost base must be > 0", td.Year)
		}
	}
	if err := validateOpexAccounts(in.Opex); err != nil {
		return nil, nil, err
	}

	for name, rate := range map[string]decimal.Decimal{
		"cpi rate":          in.Settings.CPIRate,
		"discount rate":     in.Settings.DiscountRate,
		"zakat rate":        in.Settings.ZakatRate,
		"debt rate":         in.Settings.DebtRate,
		"deposit rate":      in.Settings.DepositRate,
		"depreciation rate": in.Settings.DepreciationRate,
	} {
		if rate.IsNegative() {
			return nil, nil, validationf("%s must be >= 0", name)
		}
	}

	// Derive the staff base from staffing ratios when none was supplied.
	var diags []Diagnostic
	if norm.StaffCost.Base.IsZero() && len(in.StaffingRatios) > 0 {
		base, derived, err := DeriveBaseStaffCost(norm.Curricula, in.StaffingRatios, norm.StaffCost.BaseYear)
		if err != nil {
			return nil, nil, err
		}
		norm.StaffCost.Base = base
		diags = derived
	}

	// The staff series always spans the projection range; the base year may
	// sit anywhere inside or outside it.
	norm.StaffCost.StartYear = in.StartYear
	norm.StaffCost.EndYear = in.EndYear
	if err := validateStaffCostParams(norm.StaffCost); err != nil {
		return nil, nil, err
	}
	if err := validateRentPlan(in.Rent); err != nil {
		return nil, nil, err
	}
	return &norm, diags, nil
}

// staffCostSeries sources staff cost per year: historical actuals first,
// transition-year admin bases second, the CPI formula everywhere else.
func staffCostSeries(in *Input, src *metricSource) ([]decimal.Decimal, error) {
	formula, err := ComputeStaffCostSeries(in.StaffCost)
	if err != nil {
		return nil, err
	}

	series := make([]decimal.Decimal, len(formula))
	for i, point := range formula {
		year := point.Year
		switch period.Classify(year) {
		case period.Transition:
			if td, ok := src.transitionData(year); ok {
				series[i] = td.StaffCostBase
				continue
			}
			series[i] = point.Cost
		default:
			cost := point.Cost
			series[i] = src.resolve(MetricStaffCost, year, func() decimal.Decimal { return cost })
		}
	}
	return series, nil
}

// CalculateFullProjection runs the complete engine: validation, the four
// per-year calculators, the circular solver and the summary aggregation.
// Deterministic: identical inputs produce identical outputs. Solver
// non-convergence is reported on the result, not as an error.
func CalculateFullProjection(in *Input) (*Result, error) {
	norm, diags, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	src := newMetricSource(norm)

	revenue := RevenueSeries(norm, src)
	staff, err := staffCostSeries(norm, src)
	if err != nil {
		return nil, err
	}
	rent, err := RentSeries(norm, src, revenue)
	if err != nil {
		return nil, err
	}
	opex := OpexSeries(norm, src, revenue)
	capex := CapexSeries(norm, src)
	ebitda := EBITDASeries(revenue, staff, rent, opex)

	solved := RunSolver(ebitda, revenue, opex, capex, norm.Settings, DefaultSolverPolicy())

	years := make([]YearlyProjection, len(revenue))
	for i := range years {
		row := solved.Rows[i]
		years[i] = YearlyProjection{
			Year:         norm.StartYear + i,
			Revenue:      revenue[i],
			StaffCost:    staff[i],
			Rent:         rent[i],
			Opex:         opex[i],
			EBITDA:       ebitda[i],
			EBITDAMgn:    EBITDAMargin(ebitda[i], revenue[i]),
			RentLoad:     RentLoad(rent[i], revenue[i]),
			Capex:        capex[i],
			Depreciation: row.Depreciation,

			InterestExpense: row.InterestExpense,
			InterestIncome:  row.InterestIncome,
			Zakat:           row.Zakat,
			NetResult:       row.NetResult,

			OperatingCashFlow: row.OperatingCashFlow,
			InvestingCashFlow: row.InvestingCashFlow,
			FinancingCashFlow: row.FinancingCashFlow,
			NetCashFlow:       row.NetCashFlow,

			FixedAssetsClosing: row.FixedAssetsClosing,
			CashClosing:        row.CashClosing,
		}
	}

	return &Result{
		Years:       years,
		Summary:     Summarize(years, norm.Settings.DiscountRate),
		Converged:   solved.Converged,
		Iterations:  solved.Iterations,
		MaxDiff:     solved.MaxDiff,
		Diagnostics: diags,
	}, nil
}
