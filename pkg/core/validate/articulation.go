// Package validate checks that a solved projection articulates: the cash
// chain, the fixed-asset roll-forward and the P&L ties must all close across
// every year before the result is presented.
package validate

import (
	"school_projection/pkg/core/projection"

	"github.com/shopspring/decimal"
)

// CashChainLink verifies closing cash = prior closing + net cash flow.
type CashChainLink struct {
	PriorClosing decimal.Decimal `json:"prior_closing"`
	NetCashFlow  decimal.Decimal `json:"net_cash_flow"`
	CashClosing  decimal.Decimal `json:"cash_closing"`
	Difference   decimal.Decimal `json:"difference"`
	IsLinked     bool            `json:"is_linked"`
}

// AssetChainLink verifies closing assets = prior closing + capex - depreciation.
type AssetChainLink struct {
	PriorClosing  decimal.Decimal `json:"prior_closing"`
	Capex         decimal.Decimal `json:"capex"`
	Depreciation  decimal.Decimal `json:"depreciation"`
	AssetsClosing decimal.Decimal `json:"assets_closing"`
	Difference    decimal.Decimal `json:"difference"`
	IsLinked      bool            `json:"is_linked"`
}

// ResultTieLink verifies net result = EBITDA - depreciation - interest
// expense + interest income - zakat.
type ResultTieLink struct {
	Expected   decimal.Decimal `json:"expected"`
	NetResult  decimal.Decimal `json:"net_result"`
	Difference decimal.Decimal `json:"difference"`
	IsLinked   bool            `json:"is_linked"`
}

// YearReport holds one year's articulation checks.
type YearReport struct {
	Year         int             `json:"year"`
	CashChain    *CashChainLink  `json:"cash_chain"`
	AssetChain   *AssetChainLink `json:"asset_chain"`
	ResultTie    *ResultTieLink  `json:"result_tie"`
	AllPassed    bool            `json:"all_passed"`
	FailedChecks []string        `json:"failed_checks,omitempty"`
}

// Report aggregates the per-year checks for a full projection.
type Report struct {
	Years       []YearReport    `json:"years"`
	AllPassed   bool            `json:"all_passed"`
	FailedYears []int           `json:"failed_years,omitempty"`
	Tolerance   decimal.Decimal `json:"tolerance"`
}

// CheckResult validates the articulation of every year in a solved
// projection against the supplied opening balances. Tolerance absorbs
// decimal rounding, not modelling errors.
func CheckResult(res *projection.Result, settings projection.AdminSettings, tolerance decimal.Decimal) *Report {
	report := &Report{
		Years:     make([]YearReport, 0, len(res.Years)),
		AllPassed: true,
		Tolerance: tolerance,
	}

	priorCash := settings.OpeningCash
	priorAssets := settings.OpeningFixedAssets
	for _, yr := range res.Years {
		yearReport := checkYear(yr, priorCash, priorAssets, tolerance)
		if !yearReport.AllPassed {
			report.AllPassed = false
			report.FailedYears = append(report.FailedYears, yr.Year)
		}
		report.Years = append(report.Years, yearReport)

		priorCash = yr.CashClosing
		priorAssets = yr.FixedAssetsClosing
	}
	return report
}

func checkYear(yr projection.YearlyProjection, priorCash, priorAssets, tolerance decimal.Decimal) YearReport {
	report := YearReport{Year: yr.Year, AllPassed: true}

	cashDiff := yr.CashClosing.Sub(priorCash.Add(yr.NetCashFlow))
	report.CashChain = &CashChainLink{
		PriorClosing: priorCash,
		NetCashFlow:  yr.NetCashFlow,
		CashClosing:  yr.CashClosing,
		Difference:   cashDiff,
		IsLinked:     cashDiff.Abs().LessThanOrEqual(tolerance),
	}
	if !report.CashChain.IsLinked {
		report.AllPassed = false
		report.FailedChecks = append(report.FailedChecks, "closing cash vs prior closing + net cash flow")
	}

	assetDiff := yr.FixedAssetsClosing.Sub(priorAssets.Add(yr.Capex).Sub(yr.Depreciation))
	report.AssetChain = &AssetChainLink{
		PriorClosing:  priorAssets,
		Capex:         yr.Capex,
		Depreciation:  yr.Depreciation,
		AssetsClosing: yr.FixedAssetsClosing,
		Difference:    assetDiff,
		IsLinked:      assetDiff.Abs().LessThanOrEqual(tolerance),
	}
	if !report.AssetChain.IsLinked {
		report.AllPassed = false
		report.FailedChecks = append(report.FailedChecks, "fixed assets vs prior closing + capex - depreciation")
	}

	expected := yr.EBITDA.Sub(yr.Depreciation).Sub(yr.InterestExpense).Add(yr.InterestIncome).Sub(yr.Zakat)
	tieDiff := yr.NetResult.Sub(expected)
	report.ResultTie = &ResultTieLink{
		Expected:   expected,
		NetResult:  yr.NetResult,
		Difference: tieDiff,
		IsLinked:   tieDiff.Abs().LessThanOrEqual(tolerance),
	}
	if !report.ResultTie.IsLinked {
		report.AllPassed = false
		report.FailedChecks = append(report.FailedChecks, "net result vs EBITDA tail")
	}

	return report
}
