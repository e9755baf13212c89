package validate_test

import (
	"testing"

	"school_projection/pkg/core/projection"
	"school_projection/pkg/core/validate"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func solvedScenario(t *testing.T) (*projection.Result, projection.AdminSettings) {
	t.Helper()
	enroll := make([]projection.EnrollmentPoint, 0, 30)
	for y := 2023; y <= 2052; y++ {
		enroll = append(enroll, projection.EnrollmentPoint{Year: y, Students: 600})
	}
	in := &projection.Input{
		StartYear: 2023,
		EndYear:   2052,
		Curricula: []projection.CurriculumPlan{{
			Type:            projection.CurriculumFrench,
			Capacity:        800,
			TuitionBase:     dec("40000"),
			TuitionBaseYear: 2023,
			CPIFrequency:    2,
			Enrollment:      enroll,
		}},
		Rent: projection.RentPlan{
			Model:        projection.RentRevenueShare,
			RevenueShare: &projection.RevenueShareParams{SharePercent: dec("0.2"), MinRent: dec("4000000")},
		},
		StaffCost: projection.StaffCostParams{
			Base:         dec("10000000"),
			CPIRate:      dec("0.03"),
			CPIFrequency: 1,
			BaseYear:     2028,
		},
		Opex: []projection.OpexSubAccount{
			{Name: "general", IsFixed: true, FixedAmount: dec("1500000")},
		},
		Actuals: []projection.ActualsRecord{
			{Year: 2023, Revenue: dec("22000000"), StaffCost: dec("9000000"), Rent: dec("4400000"), Opex: dec("1400000"), Capex: dec("0")},
			{Year: 2024, Revenue: dec("23000000"), StaffCost: dec("9300000"), Rent: dec("4600000"), Opex: dec("1450000"), Capex: dec("0")},
		},
		Transition: []projection.TransitionYearData{
			{Year: 2025, TargetEnrollment: 650, StaffCostBase: dec("9500000")},
		},
		Settings: projection.AdminSettings{
			DiscountRate:      dec("0.08"),
			ZakatRate:         dec("0.025"),
			DebtRate:          dec("0.06"),
			DepositRate:       dec("0.02"),
			DepreciationRate:  dec("0.05"),
			RentAdjustmentPct: dec("4"),
			OpeningCash:       dec("2000000"),
		},
	}

	res, err := projection.CalculateFullProjection(in)
	if err != nil {
		t.Fatalf("CalculateFullProjection: %v", err)
	}
	if !res.Converged {
		t.Fatalf("solver did not converge")
	}
	return res, in.Settings
}

func TestSolvedProjectionArticulates(t *testing.T) {
	res, settings := solvedScenario(t)

	report := validate.CheckResult(res, settings, dec("0.01"))
	if !report.AllPassed {
		t.Fatalf("articulation failed for years %v", report.FailedYears)
	}
	if len(report.Years) != len(res.Years) {
		t.Fatalf("report years = %d, want %d", len(report.Years), len(res.Years))
	}
	for _, yr := range report.Years {
		if len(yr.FailedChecks) != 0 {
			t.Errorf("%d: unexpected failures %v", yr.Year, yr.FailedChecks)
		}
	}
}

func TestTamperedResultIsFlagged(t *testing.T) {
	res, settings := solvedScenario(t)
	res.Years[10].CashClosing = res.Years[10].CashClosing.Add(dec("5000"))

	report := validate.CheckResult(res, settings, dec("0.01"))
	if report.AllPassed {
		t.Fatal("tampered cash chain passed articulation")
	}

	// The break surfaces in the tampered year and in the next year's prior
	// balance, nowhere else.
	for _, yr := range report.Years {
		broken := yr.Year == res.Years[10].Year || yr.Year == res.Years[10].Year+1
		if broken == yr.AllPassed {
			t.Errorf("%d: passed=%v, want %v", yr.Year, yr.AllPassed, !yr.AllPassed)
		}
	}
}

func TestResultTieDetectsBrokenTail(t *testing.T) {
	res, settings := solvedScenario(t)
	res.Years[5].Zakat = res.Years[5].Zakat.Add(dec("100"))

	report := validate.CheckResult(res, settings, dec("0.01"))
	yr := report.Years[5]
	if yr.ResultTie.IsLinked {
		t.Fatal("broken net-result tie passed")
	}
	if yr.CashChain == nil || !yr.CashChain.IsLinked {
		t.Error("cash chain should be unaffected by the tampered zakat")
	}
}
