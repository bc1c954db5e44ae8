package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the root aggregate for one assessment session. It carries the
// raw intake answers, the derived scores and recommendations, and the results
// of any deep-dive module the user has run.
//
// Profiles are immutable values within the calculation layer: the scoring
// engine and the module calculators take a Profile and return an updated
// copy. Serializing writes to shared session state is the caller's job.
type Profile struct {
	Meta               Meta          `yaml:"meta" json:"meta"`
	Basic              Basic         `yaml:"basic" json:"basic"`
	Cashflow           Cashflow      `yaml:"cashflow" json:"cashflow"`
	Assets             Assets        `yaml:"assets" json:"assets"`
	Debts              Debts         `yaml:"debts" json:"debts"`
	Protection         Protection    `yaml:"protection" json:"protection"`
	Scores             Scores        `yaml:"scores" json:"scores"`
	RecommendedModules []ModuleID    `yaml:"recommended_modules" json:"recommended_modules"`
	ModuleResults      ModuleResults `yaml:"module_results" json:"module_results"`
	Lead               Lead          `yaml:"lead" json:"lead"`
}

// Meta carries the session identity and lifecycle flags. SessionID is
// immutable once assigned; IsFinished transitions false to true exactly once
// when the basic intake completes.
type Meta struct {
	SessionID     string    `yaml:"session_id" json:"session_id"`
	CreatedAt     time.Time `yaml:"created_at" json:"created_at"`
	LastUpdatedAt time.Time `yaml:"last_updated_at" json:"last_updated_at"`
	IsFinished    bool      `yaml:"is_finished" json:"is_finished"`
}

// Basic holds the demographic intake answers.
type Basic struct {
	Age           *int           `yaml:"age" json:"age"`
	HouseholdType HouseholdType  `yaml:"household_type" json:"household_type"`
	Employment    EmploymentType `yaml:"employment" json:"employment"`
}

// Cashflow holds the monthly household cash flow figures. FreeCashMonthly is
// derived by the scoring engine when absent; a module may override it.
type Cashflow struct {
	NetIncomeMonthly  *decimal.Decimal `yaml:"net_income_monthly" json:"net_income_monthly"`
	FixedCostsMonthly *decimal.Decimal `yaml:"fixed_costs_monthly" json:"fixed_costs_monthly"`
	FreeCashMonthly   *decimal.Decimal `yaml:"free_cash_monthly" json:"free_cash_monthly"`
}

// Assets holds the liquid and invested holdings, both optional.
type Assets struct {
	Savings     *decimal.Decimal `yaml:"savings" json:"savings"`
	Investments *decimal.Decimal `yaml:"investments" json:"investments"`
}

// Debts holds the outstanding obligations, both optional.
type Debts struct {
	MortgageRemaining    *decimal.Decimal `yaml:"mortgage_remaining" json:"mortgage_remaining"`
	ConsumerLoansMonthly *decimal.Decimal `yaml:"consumer_loans_monthly" json:"consumer_loans_monthly"`
}

// Protection holds the provisioning status answers.
type Protection struct {
	EmergencyFundMonths int      `yaml:"emergency_fund_months" json:"emergency_fund_months"`
	PrivatePension      TriState `yaml:"private_pension" json:"private_pension"`
	IncomeProtection    TriState `yaml:"income_protection" json:"income_protection"`
}

// Scores holds the five domain scores plus the overall score, each 0-100.
type Scores struct {
	Liquidity  int `yaml:"liquidity" json:"liquidity"`
	Wealth     int `yaml:"wealth" json:"wealth"`
	Protection int `yaml:"protection" json:"protection"`
	Retirement int `yaml:"retirement" json:"retirement"`
	Debt       int `yaml:"debt" json:"debt"`
	Overall    int `yaml:"overall" json:"overall"`
}

// Overall mean of the five domain scores, rounded to the nearest integer.
func (s Scores) Mean() int {
	sum := s.Liquidity + s.Wealth + s.Protection + s.Retirement + s.Debt
	return int(decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(5)).Round(0).IntPart())
}

// ModuleResults holds one optional slot per deep-dive module. A slot stays
// nil until its calculator runs and persists until explicitly reset.
type ModuleResults struct {
	Pension   *PensionResult   `yaml:"pension" json:"pension"`
	Financing *FinancingResult `yaml:"financing" json:"financing"`
	Risk      *RiskResult      `yaml:"risk" json:"risk"`
}

// Lead holds the contact data captured at report unlock.
type Lead struct {
	Name    string `yaml:"name" json:"name"`
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
	Consent bool   `yaml:"consent" json:"consent"`
}

// Captured reports whether the lead form has been filled in far enough to
// unlock the report.
func (l Lead) Captured() bool {
	return l.Name != "" && l.Email != ""
}

// NetIncomeGuarded returns the monthly net income with the divide-by-zero
// guard applied: absent or non-positive income is substituted with 1.
func (p Profile) NetIncomeGuarded() decimal.Decimal {
	if p.Cashflow.NetIncomeMonthly == nil || p.Cashflow.NetIncomeMonthly.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return *p.Cashflow.NetIncomeMonthly
}

// FreeCash returns the explicit free cash figure when present, otherwise
// income minus fixed costs with absent values treated as zero.
func (p Profile) FreeCash() decimal.Decimal {
	if p.Cashflow.FreeCashMonthly != nil {
		return *p.Cashflow.FreeCashMonthly
	}
	income := decimal.Zero
	if p.Cashflow.NetIncomeMonthly != nil {
		income = *p.Cashflow.NetIncomeMonthly
	}
	fixed := decimal.Zero
	if p.Cashflow.FixedCostsMonthly != nil {
		fixed = *p.Cashflow.FixedCostsMonthly
	}
	return income.Sub(fixed)
}

// TotalAssets returns savings plus investments, absent values as zero.
func (p Profile) TotalAssets() decimal.Decimal {
	total := decimal.Zero
	if p.Assets.Savings != nil {
		total = total.Add(*p.Assets.Savings)
	}
	if p.Assets.Investments != nil {
		total = total.Add(*p.Assets.Investments)
	}
	return total
}

// ConsumerDebtMonthly returns the monthly consumer loan service, zero when absent.
func (p Profile) ConsumerDebtMonthly() decimal.Decimal {
	if p.Debts.ConsumerLoansMonthly == nil {
		return decimal.Zero
	}
	return *p.Debts.ConsumerLoansMonthly
}

// HasMortgage reports whether any mortgage balance is outstanding.
func (p Profile) HasMortgage() bool {
	return p.Debts.MortgageRemaining != nil && p.Debts.MortgageRemaining.GreaterThan(decimal.Zero)
}
