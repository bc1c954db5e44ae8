package domain

import (
	"github.com/shopspring/decimal"

	"github.com/finnav/finnav/internal/finmath"
)

// PensionScenario is one return assumption of the pension gap calculator and
// the savings effort it implies.
type PensionScenario struct {
	ReturnPA        decimal.Decimal `yaml:"return_pa" json:"return_pa"`
	RequiredMonthly decimal.Decimal `yaml:"required_monthly" json:"required_monthly"`
	ExtraMonthly    decimal.Decimal `yaml:"extra_monthly" json:"extra_monthly"`
}

// PensionResult is the outcome of the pension gap deep dive.
type PensionResult struct {
	DesiredPensionMonthly     decimal.Decimal `yaml:"desired_pension_monthly" json:"desired_pension_monthly"`
	RetirementAge             int             `yaml:"retirement_age" json:"retirement_age"`
	ReplacementRate           decimal.Decimal `yaml:"replacement_rate" json:"replacement_rate"`
	PartTimeOrCareerBreak     bool            `yaml:"part_time_or_career_break" json:"part_time_or_career_break"`
	EstimatedStatutoryMonthly decimal.Decimal `yaml:"estimated_statutory_monthly" json:"estimated_statutory_monthly"`
	GapMonthly                decimal.Decimal `yaml:"gap_monthly" json:"gap_monthly"`
	CapitalNeeded             decimal.Decimal `yaml:"capital_needed" json:"capital_needed"`
	YearsToRetirement         int             `yaml:"years_to_retirement" json:"years_to_retirement"`
	CurrentSavingsMonthly     decimal.Decimal `yaml:"current_savings_monthly" json:"current_savings_monthly"`
	CurrentCapital            decimal.Decimal `yaml:"current_capital" json:"current_capital"`
	PayoutYears               int             `yaml:"payout_years" json:"payout_years"`
	Conservative              PensionScenario `yaml:"conservative" json:"conservative"`
	Optimistic                PensionScenario `yaml:"optimistic" json:"optimistic"`
	Assessment                Status          `yaml:"assessment" json:"assessment"`
	Summary                   string          `yaml:"summary" json:"summary"`
}

// FinancingScenario is one interest assumption of the financing calculator.
type FinancingScenario struct {
	Label          string          `yaml:"label" json:"label"`
	InterestPA     decimal.Decimal `yaml:"interest_pa" json:"interest_pa"`
	PaymentMonthly decimal.Decimal `yaml:"payment_monthly" json:"payment_monthly"`
	TotalRepayment decimal.Decimal `yaml:"total_repayment" json:"total_repayment"`
	DSTI           decimal.Decimal `yaml:"dsti" json:"dsti"`
}

// KIMCheck carries the per-criterion traffic lights of the mortgage
// affordability check. TermStatus is two-state (green or red).
type KIMCheck struct {
	LTVStatus         Status `yaml:"ltv_status" json:"ltv_status"`
	DSTIPrimaryStatus Status `yaml:"dsti_primary_status" json:"dsti_primary_status"`
	DSTIStressStatus  Status `yaml:"dsti_stress_status" json:"dsti_stress_status"`
	TermStatus        Status `yaml:"term_status" json:"term_status"`
}

// AncillaryCosts bundles the cost items of a financing plan with their
// resolved total.
type AncillaryCosts struct {
	Items []finmath.CostItem `yaml:"items" json:"items"`
	Total decimal.Decimal    `yaml:"total" json:"total"`
}

// FinancingResult is the outcome of the mortgage affordability deep dive.
type FinancingResult struct {
	PurchasePrice       decimal.Decimal   `yaml:"purchase_price" json:"purchase_price"`
	Purpose             string            `yaml:"purpose" json:"purpose"`
	Equity              decimal.Decimal   `yaml:"equity" json:"equity"`
	EquityWork          decimal.Decimal   `yaml:"equity_work" json:"equity_work"`
	AncillaryCosts      AncillaryCosts    `yaml:"ancillary_costs" json:"ancillary_costs"`
	LoanAmount          decimal.Decimal   `yaml:"loan_amount" json:"loan_amount"`
	TermYears           int               `yaml:"term_years" json:"term_years"`
	NetIncomeMonthly    decimal.Decimal   `yaml:"net_income_monthly" json:"net_income_monthly"`
	ExistingDebtMonthly decimal.Decimal   `yaml:"existing_debt_monthly" json:"existing_debt_monthly"`
	Primary             FinancingScenario `yaml:"primary" json:"primary"`
	Stress              FinancingScenario `yaml:"stress" json:"stress"`
	LTV                 decimal.Decimal   `yaml:"ltv" json:"ltv"`
	KIMCheck            KIMCheck          `yaml:"kim_check" json:"kim_check"`
	Assessment          Status            `yaml:"assessment" json:"assessment"`
	Summary             string            `yaml:"summary" json:"summary"`
}

// RiskResult is the outcome of the income-shock runway deep dive.
type RiskResult struct {
	NetIncomeMonthly     decimal.Decimal `yaml:"net_income_monthly" json:"net_income_monthly"`
	FixedCostsMonthly    decimal.Decimal `yaml:"fixed_costs_monthly" json:"fixed_costs_monthly"`
	DebtPaymentsMonthly  decimal.Decimal `yaml:"debt_payments_monthly" json:"debt_payments_monthly"`
	VariableCostsMonthly decimal.Decimal `yaml:"variable_costs_monthly" json:"variable_costs_monthly"`
	MonthlyBurn          decimal.Decimal `yaml:"monthly_burn" json:"monthly_burn"`
	Savings              decimal.Decimal `yaml:"savings" json:"savings"`
	QuickInvestments     decimal.Decimal `yaml:"quick_investments" json:"quick_investments"`
	LiquidReserves       decimal.Decimal `yaml:"liquid_reserves" json:"liquid_reserves"`
	RunwayMonths         decimal.Decimal `yaml:"runway_months" json:"runway_months"`
	ShockMonths          int             `yaml:"shock_months" json:"shock_months"`
	SupportMonthly       decimal.Decimal `yaml:"support_monthly" json:"support_monthly"`
	ShockDeficitMonthly  decimal.Decimal `yaml:"shock_deficit_monthly" json:"shock_deficit_monthly"`
	TotalShockNeed       decimal.Decimal `yaml:"total_shock_need" json:"total_shock_need"`
	GapToSafety          decimal.Decimal `yaml:"gap_to_safety" json:"gap_to_safety"`
	IncomeProtection     TriState        `yaml:"income_protection" json:"income_protection"`
	Assessment           Status          `yaml:"assessment" json:"assessment"`
	Summary              string          `yaml:"summary" json:"summary"`
}
