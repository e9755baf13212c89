package projection

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurriculumType identifies a tuition stream.
type CurriculumType string

const (
	CurriculumFrench CurriculumType = "FR"
	CurriculumIB     CurriculumType = "IB"
)

// EnrollmentPoint is one year of projected students for a curriculum.
type EnrollmentPoint struct {
	Year     int `json:"year"`
	Students int `json:"students"`
}

// CurriculumPlan is an immutable snapshot of one curriculum's tuition and
// enrollment assumptions. Tuition escalates by CPI in steps of CPIFrequency
// years, anchored at TuitionBaseYear (forward only).
type CurriculumPlan struct {
	Type            CurriculumType    `json:"type"`
	Capacity        int               `json:"capacity"`
	TuitionBase     decimal.Decimal   `json:"tuition_base"`
	TuitionBaseYear int               `json:"tuition_base_year"`
	CPIFrequency    int               `json:"cpi_frequency"`
	Enrollment      []EnrollmentPoint `json:"enrollment"`
}

// RentModelType tags the rent model variant in play for a projection.
type RentModelType string

const (
	RentFixedEscalation RentModelType = "FIXED_ESCALATION"
	RentRevenueShare    RentModelType = "REVENUE_SHARE"
	RentPartnerModel    RentModelType = "PARTNER_MODEL"
)

// FixedEscalationParams compounds a base rent annually from the model's own
// start year, independent of the dynamic-period boundary.
type FixedEscalationParams struct {
	BaseRent       decimal.Decimal `json:"base_rent"`
	EscalationRate decimal.Decimal `json:"escalation_rate"`
	StartYear      int             `json:"start_year"`
}

// RevenueShareParams charges a percentage of revenue with a floor.
type RevenueShareParams struct {
	SharePercent decimal.Decimal `json:"share_percent"`
	MinRent      decimal.Decimal `json:"min_rent"`
}

// PartnerModelParams derives a constant yield-based rent from land and
// construction cost, insensitive to enrollment.
type PartnerModelParams struct {
	LandSize               decimal.Decimal `json:"land_size"`
	LandPricePerSqm        decimal.Decimal `json:"land_price_per_sqm"`
	BUASize                decimal.Decimal `json:"bua_size"`
	ConstructionCostPerSqm decimal.Decimal `json:"construction_cost_per_sqm"`
	YieldBase              decimal.Decimal `json:"yield_base"`
}

// RentPlan is a tagged union over the three rent models. Exactly the params
// struct matching Model must be set.
type RentPlan struct {
	Model           RentModelType          `json:"model"`
	FixedEscalation *FixedEscalationParams `json:"fixed_escalation,omitempty"`
	RevenueShare    *RevenueShareParams    `json:"revenue_share,omitempty"`
	Partner         *PartnerModelParams    `json:"partner,omitempty"`
}

// StaffCostParams drives the staff-cost series. BaseYear may sit before,
// inside, or after [StartYear, EndYear]; years before the base are deflated
// per-year while years at or after it grow in CPIFrequency steps.
type StaffCostParams struct {
	Base         decimal.Decimal `json:"base"`
	CPIRate      decimal.Decimal `json:"cpi_rate"`
	CPIFrequency int             `json:"cpi_frequency"`
	BaseYear     int             `json:"base_year"`
	StartYear    int             `json:"start_year"`
	EndYear      int             `json:"end_year"`
}

// StaffCostYear is one computed point of the staff-cost series. CPIPeriod is
// the escalation step index relative to the base year (negative when
// deflated backward).
type StaffCostYear struct {
	Year      int             `json:"year"`
	Cost      decimal.Decimal `json:"cost"`
	CPIPeriod int             `json:"cpi_period"`
}

// StaffingRatio supplies the per-curriculum ratios used to derive a base
// staff cost from enrollment. Ratios are per student; values above 1 are
// treated as mis-entered percentages and normalized.
type StaffingRatio struct {
	Curriculum       CurriculumType  `json:"curriculum"`
	TeacherRatio     decimal.Decimal `json:"teacher_ratio"`
	NonTeacherRatio  decimal.Decimal `json:"non_teacher_ratio"`
	TeacherSalary    decimal.Decimal `json:"teacher_salary"`
	NonTeacherSalary decimal.Decimal `json:"non_teacher_salary"`
}

// CapexItem is a single year's capital expenditure. Items generated by a
// recurrence rule carry that rule's ID; manual items carry nil and survive
// rule deletion.
type CapexItem struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
	RuleID *uuid.UUID      `json:"rule_id,omitempty"`
}

// CapexRule generates recurring CapexItems every IntervalYears from
// StartYear through EndYear inclusive.
type CapexRule struct {
	ID            uuid.UUID       `json:"id"`
	StartYear     int             `json:"start_year"`
	EndYear       int             `json:"end_year"`
	IntervalYears int             `json:"interval_years"`
	Amount        decimal.Decimal `json:"amount"`
}

// OpexSubAccount is one operating-expense line: either a fixed annual amount
// or a percentage of revenue, per the IsFixed flag.
type OpexSubAccount struct {
	Name             string          `json:"name"`
	IsFixed          bool            `json:"is_fixed"`
	FixedAmount      decimal.Decimal `json:"fixed_amount"`
	PercentOfRevenue decimal.Decimal `json:"percent_of_revenue"`
}

// ActualsRecord holds the five uploaded aggregates for a historical year.
// These values are authoritative and override every calculator.
type ActualsRecord struct {
	Year      int             `json:"year"`
	Revenue   decimal.Decimal `json:"revenue"`
	StaffCost decimal.Decimal `json:"staff_cost"`
	Rent      decimal.Decimal `json:"rent"`
	Opex      decimal.Decimal `json:"opex"`
	Capex     decimal.Decimal `json:"capex"`
}

// TransitionYearData carries the admin overrides for one transition year:
// the enrollment cap applied across curricula and the staff cost for that
// year. All other transition metrics stay formula-driven.
type TransitionYearData struct {
	Year             int             `json:"year"`
	TargetEnrollment int             `json:"target_enrollment"`
	StaffCostBase    decimal.Decimal `json:"staff_cost_base"`
}

// WorkingCapitalDays parameterizes the working-capital build from revenue
// and opex (AR and deferred income off revenue, AP and accrued off opex).
type WorkingCapitalDays struct {
	ReceivableDays int `json:"receivable_days"`
	PayableDays    int `json:"payable_days"`
	DeferredDays   int `json:"deferred_days"`
	AccruedDays    int `json:"accrued_days"`
}

// AdminSettings is the cross-cutting configuration passed explicitly into
// every engine invocation. Calculators never read ambient state.
type AdminSettings struct {
	CPIRate            decimal.Decimal    `json:"cpi_rate"`
	DiscountRate       decimal.Decimal    `json:"discount_rate"`
	ZakatRate          decimal.Decimal    `json:"zakat_rate"`
	DebtRate           decimal.Decimal    `json:"debt_rate"`
	DepositRate        decimal.Decimal    `json:"deposit_rate"`
	DepreciationRate   decimal.Decimal    `json:"depreciation_rate"`
	RentAdjustmentPct  decimal.Decimal    `json:"rent_adjustment_pct"`
	CapacityCap        int                `json:"capacity_cap"`
	OpeningCash        decimal.Decimal    `json:"opening_cash"`
	OpeningFixedAssets decimal.Decimal    `json:"opening_fixed_assets"`
	WorkingCapital     WorkingCapitalDays `json:"working_capital"`
}

// Input bundles the fully-materialized snapshot a single engine invocation
// consumes. The engine never mutates it.
type Input struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	Curricula []CurriculumPlan `json:"curricula"`
	Rent      RentPlan         `json:"rent"`

	// StaffCost drives the staff series. When Base is zero and StaffingRatios
	// are supplied, the base is derived from enrollment at BaseYear.
	StaffCost      StaffCostParams `json:"staff_cost"`
	StaffingRatios []StaffingRatio `json:"staffing_ratios,omitempty"`

	Capex      []CapexItem          `json:"capex"`
	CapexRules []CapexRule          `json:"capex_rules,omitempty"`
	Opex       []OpexSubAccount     `json:"opex"`
	Actuals    []ActualsRecord      `json:"actuals"`
	Transition []TransitionYearData `json:"transition"`
	Settings   AdminSettings        `json:"settings"`
}

// YearlyProjection is one solved year of the three-statement model. Rows are
// created fresh per invocation and never mutated after the solver converges.
type YearlyProjection struct {
	Year int `json:"year"`

	Revenue      decimal.Decimal `json:"revenue"`
	StaffCost    decimal.Decimal `json:"staff_cost"`
	Rent         decimal.Decimal `json:"rent"`
	Opex         decimal.Decimal `json:"opex"`
	EBITDA       decimal.Decimal `json:"ebitda"`
	EBITDAMgn    decimal.Decimal `json:"ebitda_margin"`
	RentLoad     decimal.Decimal `json:"rent_load"`
	Capex        decimal.Decimal `json:"capex"`
	Depreciation decimal.Decimal `json:"depreciation"`

	InterestExpense decimal.Decimal `json:"interest_expense"`
	InterestIncome  decimal.Decimal `json:"interest_income"`
	Zakat           decimal.Decimal `json:"zakat"`
	NetResult       decimal.Decimal `json:"net_result"`

	OperatingCashFlow decimal.Decimal `json:"operating_cash_flow"`
	InvestingCashFlow decimal.Decimal `json:"investing_cash_flow"`
	FinancingCashFlow decimal.Decimal `json:"financing_cash_flow"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`

	FixedAssetsClosing decimal.Decimal `json:"fixed_assets_closing"`
	CashClosing        decimal.Decimal `json:"cash_closing"`
}

// ProjectionSummary holds the portfolio-level metrics derived from a full
// solved projection.
type ProjectionSummary struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgEBITDAMargin decimal.Decimal `json:"avg_ebitda_margin"`
	AvgRentLoad     decimal.Decimal `json:"avg_rent_load"`
	NPVRent         decimal.Decimal `json:"npv_rent"`
}

// Diagnostic is a non-fatal notice recorded while computing (ratio
// normalization, nearest-year enrollment fallback). Returned as data, never
// logged from inside the engine.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Diagnostic codes.
const (
	DiagRatioNormalized        = "RATIO_NORMALIZED"
	DiagEnrollmentYearFallback = "ENROLLMENT_YEAR_FALLBACK"
)

// Result is the engine output: one row per year plus summary metrics and the
// solver's convergence state. A non-converged result carries the last
// iteration's values and MaxDiff; callers decide whether to accept it.
type Result struct {
	Years   []YearlyProjection `json:"years"`
	Summary ProjectionSummary  `json:"summary"`

	Converged  bool            `json:"converged"`
	Iterations int             `json:"iterations"`
	MaxDiff    decimal.Decimal `json:"max_diff"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
