package projection

import "github.com/shopspring/decimal"

// SolverPolicy bounds the fixed-point iteration. The iteration cap is the
// solver's only termination bound besides convergence.
type SolverPolicy struct {
	MaxIterations int
	Tolerance     decimal.Decimal
}

// DefaultSolverPolicy is 50 iterations at 0.01 currency units.
func DefaultSolverPolicy() SolverPolicy {
	return SolverPolicy{
		MaxIterations: 50,
		Tolerance:     decimal.RequireFromString("0.01"),
	}
}

// SolverRow is one year's solved circular block.
type SolverRow struct {
	Depreciation       decimal.Decimal
	InterestIncome     decimal.Decimal
	InterestExpense    decimal.Decimal
	Zakat              decimal.Decimal
	NetResult          decimal.Decimal
	OperatingCashFlow  decimal.Decimal
	InvestingCashFlow  decimal.Decimal
	FinancingCashFlow  decimal.Decimal
	NetCashFlow        decimal.Decimal
	FixedAssetsClosing decimal.Decimal
	CashClosing        decimal.Decimal
}

// SolverResult carries the solved rows together with the convergence state.
// A non-converged result holds the last iteration's values and the final
// max-difference diagnostic; it is never presented as final without the
// flag.
type SolverResult struct {
	Rows       []SolverRow
	Converged  bool
	Iterations int
	MaxDiff    decimal.Decimal
}

// workingCapitalDeltas derives the per-year working-capital movement from
// revenue and opex using the days policy: receivables and deferred income
// build off revenue, payables and accruals off opex. The first year's delta
// is the full initial build (zero opening working capital).
func workingCapitalDeltas(revenue, opex []decimal.Decimal, days WorkingCapitalDays) []decimal.Decimal {
	factor := func(d int) decimal.Decimal {
		return decimal.NewFromInt(int64(d)).Div(decimalDays)
	}
	arF := factor(days.ReceivableDays)
	apF := factor(days.PayableDays)
	defF := factor(days.DeferredDays)
	accF := factor(days.AccruedDays)

	deltas := make([]decimal.Decimal, len(revenue))
	prev := decimal.Zero
	for i := range revenue {
		wc := revenue[i].Mul(arF).
			Sub(opex[i].Mul(apF)).
			Sub(revenue[i].Mul(defF)).
			Sub(opex[i].Mul(accF))
		deltas[i] = wc.Sub(prev)
		prev = wc
	}
	return deltas
}

// RunSolver resolves the circular dependency between cash balances,
// interest, depreciation and net result across all years simultaneously.
//
// Fixed-point scheme: interest for a year is computed from the previous
// iteration's closing cash of the prior year, while the new cash chain
// accumulates within the pass. The iteration repeats until the cash vector
// moves less than the tolerance, or the iteration cap is exhausted.
func RunSolver(ebitda, revenue, opex, capex []decimal.Decimal, settings AdminSettings, policy SolverPolicy) SolverResult {
	n := len(ebitda)
	wcDelta := workingCapitalDeltas(revenue, opex, settings.WorkingCapital)

	cash := make([]decimal.Decimal, n) // previous iteration's closing cash, starts at zero
	rows := make([]SolverRow, n)

	res := SolverResult{MaxDiff: decimal.Zero}
	for iter := 1; iter <= policy.MaxIterations; iter++ {
		res.Iterations = iter

		// Fixed assets and depreciation, chained across years.
		prevFA := settings.OpeningFixedAssets
		for i := 0; i < n; i++ {
			dep := prevFA.Mul(settings.DepreciationRate)
			fa := prevFA.Add(capex[i]).Sub(dep)
			rows[i].Depreciation = dep
			rows[i].FixedAssetsClosing = fa
			prevFA = fa
		}

		// P&L tail and cash chain.
		newCash := make([]decimal.Decimal, n)
		prevClose := settings.OpeningCash
		for i := 0; i < n; i++ {
			// Interest reads the prior year's balance as seen by the
			// previous iteration; the opening balance anchors year one.
			balance := settings.OpeningCash
			if i > 0 {
				balance = cash[i-1]
			}
			interestIncome := decimal.Max(decimal.Zero, balance).Mul(settings.DepositRate)
			interestExpense := decimal.Max(decimal.Zero, balance.Neg()).Mul(settings.DebtRate)

			preZakat := ebitda[i].Sub(rows[i].Depreciation).Sub(interestExpense).Add(interestIncome)
			zakat := decimal.Max(decimal.Zero, preZakat).Mul(settings.ZakatRate)
			netResult := preZakat.Sub(zakat)

			ocf := netResult.Add(rows[i].Depreciation).Sub(wcDelta[i])
			icf := capex[i].Neg()
			fcf := decimal.Zero // no debt movement modeled
			ncf := ocf.Add(icf).Add(fcf)

			rows[i].InterestIncome = interestIncome
			rows[i].InterestExpense = interestExpense
			rows[i].Zakat = zakat
			rows[i].NetResult = netResult
			rows[i].OperatingCashFlow = ocf
			rows[i].InvestingCashFlow = icf
			rows[i].FinancingCashFlow = fcf
			rows[i].NetCashFlow = ncf

			newCash[i] = prevClose.Add(ncf)
			prevClose = newCash[i]
		}

		maxDiff := decimal.Zero
		for i := 0; i < n; i++ {
			diff := newCash[i].Sub(cash[i]).Abs()
			if diff.GreaterThan(maxDiff) {
				maxDiff = diff
			}
		}
		cash = newCash
		res.MaxDiff = maxDiff

		if maxDiff.LessThan(policy.Tolerance) {
			res.Converged = true
			break
		}
	}

	for i := 0; i < n; i++ {
		rows[i].CashClosing = cash[i]
	}
	res.Rows = rows
	return res
}
